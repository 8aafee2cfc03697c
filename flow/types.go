package flow

import (
	"context"
	"errors"
	"fmt"
)

// ErrSourceNotFound is returned when the source index is not a node of the network.
var ErrSourceNotFound = fmt.Errorf("flow: %w", errSourceNotFound)
var errSourceNotFound = errors.New("source node not found")

// ErrSinkNotFound is returned when the sink index is not a node of the network.
var ErrSinkNotFound = fmt.Errorf("flow: %w", errSinkNotFound)
var errSinkNotFound = errors.New("sink node not found")

// ErrSameEndpoints is returned when source and sink coincide.
var ErrSameEndpoints = errors.New("flow: source equals sink")

// EdgeError is returned by AddEdge for a negative capacity or an endpoint
// outside the network.
type EdgeError struct {
	From, To int
	Cap      int64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("flow: invalid edge %d→%d with capacity %d", e.From, e.To, e.Cap)
}

// Options configures Dinic.
//   - Ctx: cancellation; nil means context.Background().
//   - LevelRebuildInterval: rebuild the level graph every N augmentations
//     (0 = only when the blocking flow is exhausted).
type Options struct {
	Ctx                  context.Context
	LevelRebuildInterval int
}

// DefaultOptions returns production-safe defaults.
func DefaultOptions() Options {
	return Options{
		Ctx:                  context.Background(),
		LevelRebuildInterval: 0,
	}
}

func (o *Options) normalize() {
	if o.Ctx == nil {
		o.Ctx = context.Background()
	}
	if o.LevelRebuildInterval < 0 {
		o.LevelRebuildInterval = 0
	}
}
