package app_test

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"realorai-service/internal/app"
	"realorai-service/internal/catalog"
	"realorai-service/internal/domain"
)

type stubPairs []domain.QuizPair

func (p stubPairs) GenerateAllPairs(catalog.Rand) []domain.QuizPair {
	return append([]domain.QuizPair(nil), p...)
}

func makePairs(kinds ...domain.ContentKind) stubPairs {
	pairs := make(stubPairs, len(kinds))
	for i, k := range kinds {
		pairs[i] = domain.QuizPair{
			ID:        fmt.Sprintf("pair-%d", i),
			Kind:      k,
			Authentic: domain.QuizItem{ID: fmt.Sprintf("real-%d", i), Kind: k},
			Synthetic: domain.QuizItem{ID: fmt.Sprintf("ai-%d", i), Kind: k, Synthetic: true},
		}
	}
	return pairs
}

func newSession(pairs app.PairSource, seed int64) *app.Session {
	return app.NewSession("s1", pairs, rand.New(rand.NewSource(seed)))
}

func wrongSide(p domain.RandomizedPair) domain.Side {
	if p.RealIsLeft {
		return domain.SideRight
	}
	return domain.SideLeft
}

func TestNewSessionIsIdle(t *testing.T) {
	s := newSession(makePairs(domain.KindImage), 1)

	if s.Phase() != app.PhaseIdle {
		t.Fatalf("expected idle, got %s", s.Phase())
	}
	if _, ok := s.CurrentPair(); ok {
		t.Fatalf("expected no current pair before an age group is chosen")
	}
	if p := s.Progress(); p != (domain.Progress{Current: 1, Total: 0, Percentage: 0}) {
		t.Fatalf("unexpected progress %+v", p)
	}
	if sc := s.Score(); sc != (domain.Score{}) {
		t.Fatalf("unexpected score %+v", sc)
	}
}

func TestSetAgeGroupStartsQuiz(t *testing.T) {
	s := newSession(makePairs(domain.KindImage, domain.KindVideo, domain.KindQuote), 1)
	s.SetAgeGroup(domain.AgeGroup20to29)

	st := s.State()
	if st.AgeGroup != domain.AgeGroup20to29 || st.CurrentIndex != 0 || st.Complete || len(st.Answers) != 0 {
		t.Fatalf("unexpected state after start: %+v", st)
	}
	if len(st.Pairs) != 3 {
		t.Fatalf("expected 3 randomized pairs, got %d", len(st.Pairs))
	}
	if s.Phase() != app.PhaseInProgress {
		t.Fatalf("expected in progress, got %s", s.Phase())
	}
	for _, p := range st.Pairs {
		if p.RealIsLeft && p.Left != p.Pair.Authentic {
			t.Fatalf("left item should be authentic for %s", p.Pair.ID)
		}
		if !p.RealIsLeft && p.Right != p.Pair.Authentic {
			t.Fatalf("right item should be authentic for %s", p.Pair.ID)
		}
	}
}

func TestSubmitWithoutSelectionIsNoop(t *testing.T) {
	s := newSession(makePairs(domain.KindImage, domain.KindImage), 1)
	s.SetAgeGroup(domain.AgeGroup30to39)

	if _, ok := s.SubmitAnswer(); ok {
		t.Fatalf("expected no-op without a selection")
	}
	if st := s.State(); st.CurrentIndex != 0 || len(st.Answers) != 0 {
		t.Fatalf("state changed on no-op submit: %+v", st)
	}
}

func TestSubmitScoresAgainstAuthenticSide(t *testing.T) {
	s := newSession(makePairs(domain.KindImage, domain.KindQuote), 5)
	s.SetAgeGroup(domain.AgeGroup40to49)

	first, _ := s.CurrentPair()
	s.SelectOption(first.AuthenticSide())
	if s.Phase() != app.PhaseAwaitingSubmission {
		t.Fatalf("expected awaiting submission, got %s", s.Phase())
	}
	answer, ok := s.SubmitAnswer()
	if !ok || !answer.Correct || answer.PairID != first.Pair.ID || answer.Kind != first.Pair.Kind {
		t.Fatalf("expected correct answer for %s, got %+v ok=%v", first.Pair.ID, answer, ok)
	}
	if s.State().Selected != domain.SideNone {
		t.Fatalf("selection should be cleared after submit")
	}

	// A second submit without a new selection must not append a duplicate.
	if _, ok := s.SubmitAnswer(); ok {
		t.Fatalf("expected repeated submit to be a no-op")
	}

	second, _ := s.CurrentPair()
	s.SelectOption(wrongSide(second))
	answer, ok = s.SubmitAnswer()
	if !ok || answer.Correct {
		t.Fatalf("expected incorrect answer, got %+v ok=%v", answer, ok)
	}

	st := s.State()
	if len(st.Answers) != 2 || !st.Complete || st.CurrentIndex != 2 {
		t.Fatalf("expected completed quiz with 2 answers, got %+v", st)
	}
	if s.Phase() != app.PhaseComplete {
		t.Fatalf("expected complete, got %s", s.Phase())
	}
}

func TestIndexNeverExceedsTotal(t *testing.T) {
	s := newSession(makePairs(domain.KindImage, domain.KindVideo, domain.KindQuote), 9)
	s.SetAgeGroup(domain.AgeGroup50Plus)

	last := 0
	for i := 0; i < 10; i++ {
		s.SelectOption(domain.SideLeft)
		s.SubmitAnswer()
		idx := s.State().CurrentIndex
		if idx < last || idx > 3 {
			t.Fatalf("index went from %d to %d", last, idx)
		}
		last = idx
	}
	if got := len(s.State().Answers); got != 3 {
		t.Fatalf("expected 3 answers, got %d", got)
	}
	if p := s.Progress(); p.Percentage != 100 || p.Current != 4 || p.Total != 3 {
		t.Fatalf("unexpected final progress %+v", p)
	}
}

func TestProgressUsesAnsweredRounds(t *testing.T) {
	s := newSession(makePairs(domain.KindImage, domain.KindImage, domain.KindImage), 2)
	s.SetAgeGroup(domain.AgeGroup10to19)

	if p := s.Progress(); p != (domain.Progress{Current: 1, Total: 3, Percentage: 0}) {
		t.Fatalf("unexpected initial progress %+v", p)
	}
	s.SelectOption(domain.SideRight)
	s.SubmitAnswer()
	if p := s.Progress(); p != (domain.Progress{Current: 2, Total: 3, Percentage: 33}) {
		t.Fatalf("expected floor(1/3*100)=33, got %+v", p)
	}
}

func TestScoreAndScoreByKind(t *testing.T) {
	s := newSession(makePairs(domain.KindImage, domain.KindVideo, domain.KindQuote), 4)
	s.SetAgeGroup(domain.AgeGroup20to29)

	// Two right, one wrong.
	for i := 0; i < 3; i++ {
		p, _ := s.CurrentPair()
		if i == 2 {
			s.SelectOption(wrongSide(p))
		} else {
			s.SelectOption(p.AuthenticSide())
		}
		s.SubmitAnswer()
	}

	if sc := s.Score(); sc != (domain.Score{Correct: 2, Total: 3, Percentage: 67}) {
		t.Fatalf("unexpected score %+v", sc)
	}

	byKind := s.ScoreByKind()
	if len(byKind) != 3 {
		t.Fatalf("expected all kinds present, got %v", byKind)
	}
	correct, total := 0, 0
	for _, k := range domain.ContentKinds {
		if byKind[k].Total != 1 {
			t.Fatalf("expected one %s answer, got %+v", k, byKind[k])
		}
		correct += byKind[k].Correct
		total += byKind[k].Total
	}
	if correct != 2 || total != 3 {
		t.Fatalf("per-kind totals disagree with score: %d/%d", correct, total)
	}
}

func TestResetAndRestart(t *testing.T) {
	s := newSession(makePairs(domain.KindImage, domain.KindImage), 3)
	s.SetAgeGroup(domain.AgeGroup20to29)
	s.SelectOption(domain.SideLeft)
	s.SubmitAnswer()
	s.SelectOption(domain.SideLeft)

	s.SetAgeGroup(domain.AgeGroup30to39)
	st := s.State()
	if st.AgeGroup != domain.AgeGroup30to39 || st.CurrentIndex != 0 || len(st.Answers) != 0 || st.Selected != domain.SideNone {
		t.Fatalf("restart should clear progress, got %+v", st)
	}

	s.Reset()
	if !reflect.DeepEqual(s.State(), domain.GameState{}) {
		t.Fatalf("reset should return to idle shape, got %+v", s.State())
	}
}

func TestEmptyCatalogDegradesToNoops(t *testing.T) {
	s := newSession(stubPairs{}, 1)
	s.SetAgeGroup(domain.AgeGroup20to29)
	s.SelectOption(domain.SideLeft)

	if _, ok := s.SubmitAnswer(); ok {
		t.Fatalf("expected no-op with an empty quiz")
	}
	if p := s.Progress(); p.Percentage != 0 || p.Total != 0 {
		t.Fatalf("unexpected progress %+v", p)
	}
	if sc := s.Score(); sc.Percentage != 0 {
		t.Fatalf("unexpected score %+v", sc)
	}
}

func TestSameSeedSameSequence(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	a := newSession(c, 77)
	b := newSession(c, 77)
	a.SetAgeGroup(domain.AgeGroup20to29)
	b.SetAgeGroup(domain.AgeGroup20to29)

	if !reflect.DeepEqual(a.State().Pairs, b.State().Pairs) {
		t.Fatalf("expected identical sequences for the same seed")
	}
	if len(a.State().Pairs) != c.Len() {
		t.Fatalf("expected %d pairs, got %d", c.Len(), len(a.State().Pairs))
	}
}

func TestStateReturnsCopy(t *testing.T) {
	s := newSession(makePairs(domain.KindImage), 1)
	s.SetAgeGroup(domain.AgeGroup20to29)
	s.SelectOption(domain.SideLeft)
	s.SubmitAnswer()

	st := s.State()
	st.Answers[0].Correct = !st.Answers[0].Correct
	st.Pairs[0].RealIsLeft = !st.Pairs[0].RealIsLeft

	fresh := s.State()
	if fresh.Answers[0].Correct == st.Answers[0].Correct || fresh.Pairs[0].RealIsLeft == st.Pairs[0].RealIsLeft {
		t.Fatalf("caller mutation leaked into session state")
	}
}
