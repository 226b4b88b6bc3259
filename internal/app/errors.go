package service

import (
	"errors"

	"github.com/draftasticwrestling/wrestling-boxscore-sub001/internal/adapters/repository"
)

// Sentinel kinds for service errors.
var (
	ErrNoLoader   = errors.New("no event source configured")
	ErrNotStarted = errors.New("service not started")
	ErrNotFound   = repository.ErrNotFound
)
