package kv

import (
	"flag"
	"time"
)

type Config struct {
	Endpoint string        `yaml:"endpoint"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Timeout  time.Duration `yaml:"timeout"`
	TTL      time.Duration `yaml:"ttl"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.Endpoint, prefix+".endpoint", "localhost:6379", "Redis endpoint for the offset and token store.")
	f.StringVar(&cfg.Password, prefix+".password", "", "Redis password.")
	f.IntVar(&cfg.DB, prefix+".db", 0, "Redis database index.")
	f.DurationVar(&cfg.Timeout, prefix+".timeout", 500*time.Millisecond, "Per-request redis timeout.")
	f.DurationVar(&cfg.TTL, prefix+".ttl", 0, "Default TTL applied to keys written without an explicit TTL. Zero means no expiry.")
}
