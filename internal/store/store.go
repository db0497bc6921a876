// Package store persists aggregate snapshots. The engine never touches a
// store; the dispatcher saves each snapshot it commits and loads the last one
// on startup.
package store

import (
	"context"
	"errors"

	"github.com/finnb0y/virtualchips/internal/state"
)

// ErrNotFound is returned by Load when no snapshot has been saved yet.
var ErrNotFound = errors.New("store: no snapshot")

// Store saves and restores the tournament aggregate.
type Store interface {
	Save(ctx context.Context, s *state.State) error
	Load(ctx context.Context) (*state.State, error)
}
