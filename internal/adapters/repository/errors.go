package repository

import "errors"

// Sentinel kinds for standings errors.
var (
	ErrNotFound     = errors.New("wrestler not found")
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
	ErrInvalidName  = errors.New("invalid wrestler name")
)
