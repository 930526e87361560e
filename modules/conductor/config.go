package conductor

import (
	"flag"
	"time"

	"github.com/grafana/dskit/flagext"

	"github.com/grafana/federator/modules/conductor/labels"
)

type Config struct {
	PollTimeout       time.Duration       `yaml:"poll_duration"`
	InactivityTimeout time.Duration       `yaml:"inactivity_timeout"`
	Filter            string              `yaml:"filter"`
	SharedHeaders     flagext.StringSlice `yaml:"shared_headers"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.DurationVar(&cfg.PollTimeout, prefix+".poll.duration", 500*time.Millisecond, "Timeout for a single consumer poll.")
	f.DurationVar(&cfg.InactivityTimeout, prefix+".inactivity.timeout", 30*time.Second, "Idle time after which a stream completes. Zero completes on the first idle poll.")
	f.StringVar(&cfg.Filter, prefix+".filter", labels.FilterHeaderAttributes, "Message filter variant.")
	f.Var(&cfg.SharedHeaders, prefix+".shared-headers", "Record header names forwarded to consumers.")
}
