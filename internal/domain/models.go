package domain

// ContentKind is the media type shared by both items of a pair.
type ContentKind string

const (
	KindImage ContentKind = "image"
	KindVideo ContentKind = "video"
	KindQuote ContentKind = "quote"
)

// ContentKinds lists every kind in display order.
var ContentKinds = []ContentKind{KindImage, KindVideo, KindQuote}

// Valid reports whether k is one of the known kinds.
func (k ContentKind) Valid() bool {
	switch k {
	case KindImage, KindVideo, KindQuote:
		return true
	}
	return false
}

// QuizItem is one piece of content. Source is a URI for media kinds and the literal text for quotes.
type QuizItem struct {
	ID          string      `json:"id"`
	Kind        ContentKind `json:"kind"`
	Source      string      `json:"source"`
	Synthetic   bool        `json:"synthetic"`
	Title       string      `json:"title,omitempty"`
	Author      string      `json:"author,omitempty"`
	Description string      `json:"description,omitempty"`
	AspectRatio string      `json:"aspectRatio,omitempty"`
	Fallback    string      `json:"fallback,omitempty"` // alternate source for platforms that can't play Source
}

// QuizPair is one authentic/synthetic comparison unit.
type QuizPair struct {
	ID          string      `json:"id"`
	Kind        ContentKind `json:"kind"`
	Authentic   QuizItem    `json:"authentic"`
	Synthetic   QuizItem    `json:"synthetic"`
	AspectRatio string      `json:"aspectRatio,omitempty"`
}

// Side is a placement on screen.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// MarshalText encodes the side as "left", "right" or "none".
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSide accepts "left"/"l" and "right"/"r".
func ParseSide(raw string) Side {
	switch raw {
	case "left", "l", "L":
		return SideLeft
	case "right", "r", "R":
		return SideRight
	}
	return SideNone
}

// RandomizedPair binds a pair to a left/right placement for one session.
type RandomizedPair struct {
	Pair       QuizPair `json:"pair"`
	Left       QuizItem `json:"left"`
	Right      QuizItem `json:"right"`
	RealIsLeft bool     `json:"realIsLeft"`
}

// AuthenticSide returns the side holding the authentic item.
func (p RandomizedPair) AuthenticSide() Side {
	if p.RealIsLeft {
		return SideLeft
	}
	return SideRight
}

// Answer records one completed round.
type Answer struct {
	PairID   string      `json:"pairId"`
	Selected Side        `json:"selected"`
	Correct  bool        `json:"correct"`
	Kind     ContentKind `json:"kind"`
}

// GameState is the whole state of one play-through.
type GameState struct {
	AgeGroup     AgeGroup
	CurrentIndex int
	Answers      []Answer
	Pairs        []RandomizedPair
	Complete     bool
	Selected     Side
}

// Progress is the round counter shown while playing.
type Progress struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Score summarizes submitted answers.
type Score struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// KindScore counts answers of a single content kind.
type KindScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// ScoreSubmission is what a finished session reports to the stats service.
type ScoreSubmission struct {
	AgeGroup AgeGroup `json:"ageGroup"`
	Correct  int      `json:"correct"`
	Total    int      `json:"total"`
}
