package azure

import (
	"flag"
)

type Config struct {
	ContainerName string `yaml:"container_name"`
	AccountName   string `yaml:"account_name"`
	AccountKey    string `yaml:"account_key"`
	Endpoint      string `yaml:"endpoint"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.ContainerName, prefix+".container-name", "", "Blob container for file transfers.")
	f.StringVar(&cfg.AccountName, prefix+".account-name", "", "Storage account name.")
	f.StringVar(&cfg.AccountKey, prefix+".account-key", "", "Storage account shared key. Anonymous access when empty, used against emulators.")
	f.StringVar(&cfg.Endpoint, prefix+".endpoint", "blob.core.windows.net", "Blob endpoint suffix or full emulator URL.")
}
