package scheduler

import (
	"time"

	config "github.com/inference-gateway/toolgate/config"
)

// Options tune the scheduler
type Options struct {
	// Interactive turns wait for the front-end; otherwise ASK_USER is a hard stop
	Interactive bool
	// MaxParallel bounds concurrent executions inside a wave; zero means unbounded
	MaxParallel int
	// ConfirmationTimeout resolves a pending entry as denied; zero waits forever
	ConfirmationTimeout time.Duration
	// PreApprovedTools are approved without prompting when a call asks the user
	PreApprovedTools []string
}

// OptionsFromConfig maps the scheduler section of the configuration
func OptionsFromConfig(cfg config.SchedulerConfig) Options {
	return Options{
		Interactive:         cfg.Interactive,
		MaxParallel:         cfg.MaxParallel,
		ConfirmationTimeout: time.Duration(cfg.ConfirmationTimeout) * time.Second,
		PreApprovedTools:    append([]string(nil), cfg.PreApprovedTools...),
	}
}
