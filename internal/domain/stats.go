package domain

import (
	"fmt"
	"math"
)

// AgeGroup is a cohort bucket used only for aggregate scoring.
type AgeGroup string

const (
	AgeGroup10to19 AgeGroup = "10-19"
	AgeGroup20to29 AgeGroup = "20-29"
	AgeGroup30to39 AgeGroup = "30-39"
	AgeGroup40to49 AgeGroup = "40-49"
	AgeGroup50Plus AgeGroup = "50+"
)

// AgeGroups lists the buckets in leaderboard order.
var AgeGroups = []AgeGroup{AgeGroup10to19, AgeGroup20to29, AgeGroup30to39, AgeGroup40to49, AgeGroup50Plus}

// ParseAgeGroup validates raw against the fixed enumeration.
func ParseAgeGroup(raw string) (AgeGroup, error) {
	for _, g := range AgeGroups {
		if string(g) == raw {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAgeGroup, raw)
}

// StatsCounter is the stored aggregate for one age group.
type StatsCounter struct {
	TotalCorrect  int64 `json:"totalCorrect"`
	TotalAttempts int64 `json:"totalAttempts"`
}

// AgeGroupStats is one leaderboard row.
type AgeGroupStats struct {
	AgeGroup      AgeGroup `json:"ageGroup"`
	TotalCorrect  int64    `json:"totalCorrect"`
	TotalAttempts int64    `json:"totalAttempts"`
	AverageScore  float64  `json:"averageScore"`
}

// NewAgeGroupStats derives a leaderboard row from a stored counter.
func NewAgeGroupStats(group AgeGroup, c StatsCounter, roundsPerQuiz int) AgeGroupStats {
	return AgeGroupStats{
		AgeGroup:      group,
		TotalCorrect:  c.TotalCorrect,
		TotalAttempts: c.TotalAttempts,
		AverageScore:  AverageScore(c.TotalCorrect, c.TotalAttempts, roundsPerQuiz),
	}
}

// AverageScore is totalCorrect / (totalAttempts * roundsPerQuiz) as a percentage rounded to one decimal.
func AverageScore(totalCorrect, totalAttempts int64, roundsPerQuiz int) float64 {
	questions := float64(totalAttempts) * float64(roundsPerQuiz)
	if questions <= 0 {
		return 0
	}
	return math.Round(float64(totalCorrect)/questions*100*10) / 10
}
