package app

import (
	"sync"

	"realorai-service/internal/catalog"
	"realorai-service/internal/domain"
)

// PairSource produces the full pair list for a new play-through.
type PairSource interface {
	GenerateAllPairs(rnd catalog.Rand) []domain.QuizPair
}

// Phase names the engine state.
type Phase string

const (
	PhaseIdle               Phase = "idle"
	PhaseInProgress         Phase = "in_progress"
	PhaseAwaitingSubmission Phase = "awaiting_submission"
	PhaseComplete           Phase = "complete"
)

// Session drives one play-through. No method fails: calls that don't apply to the
// current state leave it unchanged.
type Session struct {
	id    string
	pairs PairSource

	mu    sync.RWMutex
	rnd   catalog.Rand
	state domain.GameState
}

// NewSession returns an idle session.
func NewSession(id string, pairs PairSource, rnd catalog.Rand) *Session {
	return &Session{id: id, pairs: pairs, rnd: rnd}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Reset returns the session to idle.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.GameState{}
}

// SetAgeGroup starts a fresh play-through: regenerates the catalog, shuffles it and
// fixes a placement for every pair.
func (s *Session) SetAgeGroup(group domain.AgeGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shuffled := catalog.ShufflePairs(s.rnd, s.pairs.GenerateAllPairs(s.rnd))
	randomized := make([]domain.RandomizedPair, len(shuffled))
	for i, p := range shuffled {
		randomized[i] = catalog.RandomizePairOrder(s.rnd, p)
	}

	s.state = domain.GameState{
		AgeGroup: group,
		Pairs:    randomized,
	}
}

// SelectOption records the side the player is about to submit.
func (s *Session) SelectOption(side domain.Side) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Selected = side
}

// SubmitAnswer scores the pending selection against the current pair and advances.
// It reports false, without touching state, when nothing is selected or no pair is current.
func (s *Session) SubmitAnswer() (domain.Answer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Selected == domain.SideNone {
		return domain.Answer{}, false
	}
	current, ok := CurrentPair(s.state)
	if !ok {
		return domain.Answer{}, false
	}

	answer := domain.Answer{
		PairID:   current.Pair.ID,
		Selected: s.state.Selected,
		Correct:  s.state.Selected == current.AuthenticSide(),
		Kind:     current.Pair.Kind,
	}

	s.state.Answers = append(s.state.Answers, answer)
	s.state.CurrentIndex++
	s.state.Complete = s.state.CurrentIndex >= len(s.state.Pairs)
	s.state.Selected = domain.SideNone
	return answer, true
}

// State returns a copy of the game state.
func (s *Session) State() domain.GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	st.Answers = append([]domain.Answer(nil), s.state.Answers...)
	st.Pairs = append([]domain.RandomizedPair(nil), s.state.Pairs...)
	return st
}

func (s *Session) Phase() Phase {
	return PhaseOf(s.State())
}

func (s *Session) CurrentPair() (domain.RandomizedPair, bool) {
	return CurrentPair(s.State())
}

func (s *Session) Progress() domain.Progress {
	return ProgressOf(s.State())
}

func (s *Session) Score() domain.Score {
	return ScoreOf(s.State())
}

func (s *Session) ScoreByKind() map[domain.ContentKind]domain.KindScore {
	return ScoreByKind(s.State())
}
