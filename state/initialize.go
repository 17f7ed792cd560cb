package state

import (
	"time"

	"altodoc/config"
)

// newLocalEnv creates a new LocalEnv instance with default values. Logger,
// configuration and report are set later when command line is parsed.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:  time.Now(),
		Format: config.OutputFmtText,
	}
}
