package server

import (
	"flag"
	"time"

	"github.com/grafana/federator/modules/server/sender"
)

type Config struct {
	Port             int           `yaml:"port"`
	KeepAliveTime    time.Duration `yaml:"keep_alive_time"`
	KeepAliveTimeout time.Duration `yaml:"keep_alive_timeout"`

	MTLSEnabled    bool   `yaml:"mtls_enabled"`
	CertChainFile  string `yaml:"cert_chain_file"`
	PrivateKeyFile string `yaml:"private_key_file"`
	ClientCAFile   string `yaml:"client_ca_file"`

	StallDeadline time.Duration `yaml:"stall_deadline"`
	ChunkSize     int           `yaml:"chunk_size"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.IntVar(&cfg.Port, prefix+".port", 9095, "gRPC listen port.")
	f.DurationVar(&cfg.KeepAliveTime, prefix+".keep-alive-time", 5*time.Second, "Server keepalive ping interval.")
	f.DurationVar(&cfg.KeepAliveTimeout, prefix+".keep-alive-timeout", time.Second, "Server keepalive ping timeout.")
	f.BoolVar(&cfg.MTLSEnabled, prefix+".mtls-enabled", false, "Require client certificates.")
	f.StringVar(&cfg.CertChainFile, prefix+".cert-chain-file", "", "Server certificate chain.")
	f.StringVar(&cfg.PrivateKeyFile, prefix+".private-key-file", "", "Server private key.")
	f.StringVar(&cfg.ClientCAFile, prefix+".client-ca-file", "", "CA bundle used to verify client certificates.")
	f.DurationVar(&cfg.StallDeadline, prefix+".sender.stall-deadline", sender.DefaultStallDeadline, "How long a send may wait for the transport before the call fails.")
	f.IntVar(&cfg.ChunkSize, prefix+".transfer.chunk-size", 1<<20, "File transfer chunk size in bytes.")
}
