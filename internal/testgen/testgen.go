// Package testgen builds small deterministic random instances and solves
// them by exhaustive enumeration. It exists for tests and benchmarks only.
package testgen

import (
	"math/rand/v2"

	"github.com/katalvlaran/allot/instance"
)

// Config bounds the shape of a random instance. Every Max* field is inclusive.
type Config struct {
	Producers  int
	Regions    int
	Requesters int

	MaxCapacity int
	MaxWants    int
	MaxQuota    int
	MaxMinimum  int
}

// Small is a shape that Enumerate finishes in well under a millisecond.
func Small() Config {
	return Config{
		Producers:   4,
		Regions:     3,
		Requesters:  7,
		MaxCapacity: 2,
		MaxWants:    3,
		MaxQuota:    2,
		MaxMinimum:  2,
	}
}

// Rand returns the generator used by tests for a given seed.
func Rand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Random draws an instance. The same rng state always yields the same instance.
func Random(rng *rand.Rand, cfg Config) *instance.Instance {
	var (
		producers  = make([]instance.Producer, cfg.Producers)
		regions    = make([]instance.Region, cfg.Regions)
		requesters = make([]instance.Requester, cfg.Requesters)
	)
	for i := range producers {
		producers[i] = instance.Producer{
			ID:       i + 1,
			Region:   1 + rng.IntN(cfg.Regions),
			Capacity: rng.IntN(cfg.MaxCapacity + 1),
		}
	}
	for i := range regions {
		regions[i] = instance.Region{
			ID:             i + 1,
			ExportQuota:    rng.IntN(cfg.MaxQuota + 1),
			MinFulfillment: rng.IntN(cfg.MaxMinimum + 1),
		}
	}
	for i := range requesters {
		k := rng.IntN(cfg.MaxWants + 1)
		wants := make([]int, 0, k)
		for w := 0; w < k; w++ {
			wants = append(wants, 1+rng.IntN(cfg.Producers))
		}
		requesters[i] = instance.Requester{
			ID:     i + 1,
			Region: 1 + rng.IntN(cfg.Regions),
			Wants:  wants,
		}
	}

	return instance.MustNew(producers, regions, requesters)
}
