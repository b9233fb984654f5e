package pruneconfig

import (
	"fmt"
	"runtime"

	"github.com/nspcc-dev/chunkprune/cmd/chunkprune/config"
	"github.com/nspcc-dev/chunkprune/pkg/pruner"
)

const subsection = "prune"

// Threshold returns the value of "threshold" config parameter
// from "prune" section and whether it is set.
//
// Returns an error if the value is not an integer.
func Threshold(c *config.Config) (int64, bool, error) {
	sub := c.Sub(subsection)
	if !sub.IsSet("threshold") {
		return 0, false, nil
	}

	v, err := config.Int(sub, "threshold")
	if err != nil {
		return 0, false, fmt.Errorf("invalid prune.threshold: %w", err)
	}

	return v, true, nil
}

// Workers returns the value of "workers" config parameter
// from "prune" section.
//
// Returns number of CPUs if the value is not a positive number.
func Workers(c *config.Config) int {
	v := config.IntSafe(c.Sub(subsection), "workers")
	if v > 0 {
		return int(v)
	}

	return runtime.NumCPU()
}

// DryRun returns the value of "dry_run" config parameter
// from "prune" section.
//
// Returns false if the value is not a boolean.
func DryRun(c *config.Config) bool {
	return config.BoolSafe(c.Sub(subsection), "dry_run")
}

// Roots returns the value of "roots" config parameter
// from "prune" section.
//
// Returns pruner.DefaultRoots if the value is not a non-empty string list.
func Roots(c *config.Config) []string {
	v := config.StringSliceSafe(c.Sub(subsection), "roots")
	if len(v) > 0 {
		return v
	}

	return pruner.DefaultRoots
}
