package bind

import "github.com/a2y-d5l/rxkit/telemetry"

// ActionOption configures an Action.
type ActionOption func(*actionConfig)

type actionConfig struct {
	enabledIf *Property[bool]
	logger    telemetry.Logger
	name      string
}

func defaultActionConfig() actionConfig {
	return actionConfig{
		logger: telemetry.NewClueLogger(),
		name:   "action",
	}
}

// WithEnabledIf makes the action enabled only while p is true.
func WithEnabledIf(p *Property[bool]) ActionOption {
	return func(c *actionConfig) {
		c.enabledIf = p
	}
}

// WithName sets the name used in log lines.
func WithName(name string) ActionOption {
	return func(c *actionConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger sets the logger for execution start and finish lines.
func WithLogger(l telemetry.Logger) ActionOption {
	return func(c *actionConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
