package domain

import "errors"

var (
	// ErrInvalidAgeGroup is returned when an age group is not one of AgeGroups.
	ErrInvalidAgeGroup = errors.New("invalid age group")
	// ErrInvalidSubmission indicates a malformed score submission.
	ErrInvalidSubmission = errors.New("invalid request data")
	// ErrInvalidCatalog is returned when a catalog document fails validation.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrUnknownStatsBackend indicates an unsupported stats.backend config value.
	ErrUnknownStatsBackend = errors.New("unknown stats backend")
)
