package auth

import (
	"flag"
	"time"
)

type Config struct {
	TokenURL     string        `yaml:"token_url"`
	JWKSURL      string        `yaml:"jwks_url"`
	ClientID     string        `yaml:"client_id"`
	ClientSecret string        `yaml:"client_secret"`
	MTLSEnabled  bool          `yaml:"mtls_enabled"`
	Timeout      time.Duration `yaml:"timeout"`

	Keystore   KeystoreConfig   `yaml:"keystore"`
	Truststore TruststoreConfig `yaml:"truststore"`
}

// KeystoreConfig carries the client certificate used when the IDP requires
// mTLS client authentication instead of a client secret.
type KeystoreConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

type TruststoreConfig struct {
	CAFile string `yaml:"ca_file"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.TokenURL, prefix+".token.url", "", "IDP token endpoint.")
	f.StringVar(&cfg.JWKSURL, prefix+".jwks.url", "", "IDP JWKS endpoint used to verify inbound tokens.")
	f.StringVar(&cfg.ClientID, prefix+".client.id", "", "This peer's IDP client id.")
	f.StringVar(&cfg.ClientSecret, prefix+".client.secret", "", "Client secret. Ignored when mTLS is enabled.")
	f.BoolVar(&cfg.MTLSEnabled, prefix+".mtls.enabled", false, "Authenticate to the IDP with a client certificate instead of a secret.")
	f.DurationVar(&cfg.Timeout, prefix+".timeout", 10*time.Second, "HTTP timeout for IDP requests.")
	f.StringVar(&cfg.Keystore.CertFile, prefix+".keystore.cert-file", "", "Client certificate for IDP mTLS.")
	f.StringVar(&cfg.Keystore.KeyFile, prefix+".keystore.key-file", "", "Client key for IDP mTLS.")
	f.StringVar(&cfg.Truststore.CAFile, prefix+".truststore.ca-file", "", "CA bundle used to verify the IDP.")
}
