package scheduler

import (
	"flag"
	"time"
)

type Config struct {
	RetryMinBackoff time.Duration `yaml:"retry_min_backoff"`
	RetryMaxBackoff time.Duration `yaml:"retry_max_backoff"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.DurationVar(&cfg.RetryMinBackoff, prefix+".retry-min-backoff", 500*time.Millisecond, "Minimum backoff between retries of a failed job trigger.")
	f.DurationVar(&cfg.RetryMaxBackoff, prefix+".retry-max-backoff", 30*time.Second, "Maximum backoff between retries of a failed job trigger.")
}
