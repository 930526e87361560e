package gcs

import (
	"flag"
)

type Config struct {
	BucketName      string `yaml:"bucket_name"`
	Endpoint        string `yaml:"endpoint"`
	CredentialsFile string `yaml:"credentials_file"`
	Insecure        bool   `yaml:"insecure"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.BucketName, prefix+".bucket", "", "GCS bucket for file transfers.")
	f.StringVar(&cfg.Endpoint, prefix+".endpoint", "", "Optional GCS API endpoint override, used against emulators.")
	f.StringVar(&cfg.CredentialsFile, prefix+".credentials-file", "", "Service account credentials file. Falls back to application default credentials when empty.")
	f.BoolVar(&cfg.Insecure, prefix+".insecure", false, "Disable TLS to the GCS endpoint.")
}
