package s3

import (
	"flag"
)

type Config struct {
	Bucket    string `yaml:"bucket"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Insecure  bool   `yaml:"insecure"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.Bucket, prefix+".bucket", "", "S3 bucket for file transfers.")
	f.StringVar(&cfg.Endpoint, prefix+".endpoint", "s3.amazonaws.com", "S3 endpoint.")
	f.StringVar(&cfg.Region, prefix+".region", "", "S3 region.")
	f.StringVar(&cfg.AccessKey, prefix+".access-key", "", "Static access key. Falls back to the SDK credential chain when empty.")
	f.StringVar(&cfg.SecretKey, prefix+".secret-key", "", "Static secret key.")
	f.BoolVar(&cfg.Insecure, prefix+".insecure", false, "Disable TLS to the S3 endpoint.")
}
