package client

import (
	"flag"
	"time"
)

type Config struct {
	ClientID              string        `yaml:"client_id"`
	TempDir               string        `yaml:"temp_dir"`
	FilesDestination      string        `yaml:"files_destination"`
	PollInterval          time.Duration `yaml:"poll_interval"`
	Retries               int           `yaml:"retries"`
	TLSInsecureSkipVerify bool          `yaml:"tls_insecure_skip_verify"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.ClientID, prefix+".client-id", "", "Consumer identity presented to producers. Defaults to the IDP client id when empty.")
	f.StringVar(&cfg.TempDir, prefix+".temp-dir", "/var/federator/tmp", "Directory for in-flight file assemblies.")
	f.StringVar(&cfg.FilesDestination, prefix+".files.destination", "", "Destination path or key prefix for received files.")
	f.DurationVar(&cfg.PollInterval, prefix+".poll-interval", time.Minute, "How often subscription jobs re-open their streams.")
	f.IntVar(&cfg.Retries, prefix+".retries", 3, "Retry budget per subscription job trigger.")
	f.BoolVar(&cfg.TLSInsecureSkipVerify, prefix+".tls-insecure-skip-verify", false, "Skip TLS verification when dialing producers.")
}
