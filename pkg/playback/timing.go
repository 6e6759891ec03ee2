package playback

import "time"

// refitEvery is the step cadence for periodic view re-framing. A re-frame is
// additionally requested on the final step regardless of cadence.
const refitEvery = 5

// Timing carries the playback cadence tunables. The defaults reproduce the
// reference behavior; none of the exact values are part of the contract.
type Timing struct {
	// InitialDelay is the pause between surface load and the first reveal.
	InitialDelay time.Duration `json:"initial_delay" yaml:"initial_delay" mapstructure:"initial_delay"`

	// StepInterval is the pause between consecutive reveal steps.
	StepInterval time.Duration `json:"step_interval" yaml:"step_interval" mapstructure:"step_interval"`

	// PulseDuration is how long a node keeps the active style before settling.
	PulseDuration time.Duration `json:"pulse_duration" yaml:"pulse_duration" mapstructure:"pulse_duration"`

	// FitDuration is the requested length of a view re-frame transition.
	FitDuration time.Duration `json:"fit_duration" yaml:"fit_duration" mapstructure:"fit_duration"`

	// SkipSettleDelay is the pause between a skip-mode reveal-all and its
	// completion callback. It covers the single re-frame transition.
	SkipSettleDelay time.Duration `json:"skip_settle_delay" yaml:"skip_settle_delay" mapstructure:"skip_settle_delay"`
}

// DefaultTiming returns the reference cadence.
func DefaultTiming() Timing {
	return Timing{
		InitialDelay:    500 * time.Millisecond,
		StepInterval:    400 * time.Millisecond,
		PulseDuration:   300 * time.Millisecond,
		FitDuration:     500 * time.Millisecond,
		SkipSettleDelay: 800 * time.Millisecond,
	}
}
