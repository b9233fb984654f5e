package metricsconfig

import (
	"github.com/nspcc-dev/chunkprune/cmd/chunkprune/config"
)

// Textfile returns the value of "textfile" config parameter
// from "metrics" section.
//
// Empty value means metrics are not exported.
func Textfile(c *config.Config) string {
	return config.StringSafe(c.Sub("metrics"), "textfile")
}
