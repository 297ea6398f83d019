package app

import (
	"math"

	"realorai-service/internal/domain"
)

// PhaseOf classifies st.
func PhaseOf(st domain.GameState) Phase {
	switch {
	case st.AgeGroup == "":
		return PhaseIdle
	case st.Complete:
		return PhaseComplete
	case st.Selected != domain.SideNone:
		return PhaseAwaitingSubmission
	default:
		return PhaseInProgress
	}
}

// CurrentPair returns the pair at the current index, if any.
func CurrentPair(st domain.GameState) (domain.RandomizedPair, bool) {
	if st.CurrentIndex < 0 || st.CurrentIndex >= len(st.Pairs) {
		return domain.RandomizedPair{}, false
	}
	return st.Pairs[st.CurrentIndex], true
}

// ProgressOf reports the 1-based round number and the share of rounds already answered.
func ProgressOf(st domain.GameState) domain.Progress {
	total := len(st.Pairs)
	p := domain.Progress{Current: st.CurrentIndex + 1, Total: total}
	if total > 0 {
		p.Percentage = st.CurrentIndex * 100 / total
	}
	return p
}

// ScoreOf counts correct answers among those submitted so far.
func ScoreOf(st domain.GameState) domain.Score {
	sc := domain.Score{Total: len(st.Answers)}
	for _, a := range st.Answers {
		if a.Correct {
			sc.Correct++
		}
	}
	if sc.Total > 0 {
		sc.Percentage = int(math.Round(float64(sc.Correct) * 100 / float64(sc.Total)))
	}
	return sc
}

// ScoreByKind breaks the score down per content kind. Every kind is present.
func ScoreByKind(st domain.GameState) map[domain.ContentKind]domain.KindScore {
	out := make(map[domain.ContentKind]domain.KindScore, len(domain.ContentKinds))
	for _, k := range domain.ContentKinds {
		out[k] = domain.KindScore{}
	}
	for _, a := range st.Answers {
		ks := out[a.Kind]
		ks.Total++
		if a.Correct {
			ks.Correct++
		}
		out[a.Kind] = ks
	}
	return out
}
