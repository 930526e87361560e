package app

import (
	"flag"
	"fmt"

	dslog "github.com/grafana/dskit/log"

	"github.com/grafana/federator/modules/client"
	"github.com/grafana/federator/modules/conductor"
	"github.com/grafana/federator/modules/scheduler"
	"github.com/grafana/federator/modules/server"
	"github.com/grafana/federator/modules/storage"
	"github.com/grafana/federator/pkg/auth"
	"github.com/grafana/federator/pkg/fedconfig"
	"github.com/grafana/federator/pkg/ingest"
	"github.com/grafana/federator/pkg/kv"
)

// Targets select which half of the gateway a process runs.
const (
	TargetServer = "server"
	TargetClient = "client"
	TargetAll    = "all"
)

type Config struct {
	Target    string      `yaml:"target"`
	LogLevel  dslog.Level `yaml:"log_level"`
	LogFormat string      `yaml:"log_format"`

	Server    server.Config          `yaml:"server"`
	Conductor conductor.Config       `yaml:"conductor"`
	Client    client.Config          `yaml:"client"`
	Scheduler scheduler.Config       `yaml:"scheduler"`
	Kafka     ingest.KafkaConfig     `yaml:"kafka"`
	Storage   storage.Config         `yaml:"files"`
	Redis     kv.Config              `yaml:"redis"`
	IDP       auth.Config            `yaml:"idp"`
	Mgmt      fedconfig.ClientConfig `yaml:"management_node"`
}

func (c *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&c.Target, "target", TargetAll, "Which half of the gateway to run (server, client, all).")
	c.LogLevel.RegisterFlags(f)
	f.StringVar(&c.LogFormat, "log.format", "logfmt", "Log format (logfmt or json).")

	c.Server.RegisterFlagsAndApplyDefaults("server", f)
	c.Conductor.RegisterFlagsAndApplyDefaults("conductor", f)
	c.Client.RegisterFlagsAndApplyDefaults("client", f)
	c.Scheduler.RegisterFlagsAndApplyDefaults("scheduler", f)
	c.Kafka.RegisterFlagsAndApplyDefaults("kafka", f)
	c.Storage.RegisterFlagsAndApplyDefaults("files", f)
	c.Redis.RegisterFlagsAndApplyDefaults("redis", f)
	c.IDP.RegisterFlagsAndApplyDefaults("idp", f)
	c.Mgmt.RegisterFlagsAndApplyDefaults("management.node", f)
}

// Validate catches fatal misconfiguration before any service starts.
func (c *Config) Validate() error {
	switch c.Target {
	case TargetServer, TargetClient, TargetAll:
	default:
		return fmt.Errorf("unknown target %q", c.Target)
	}

	if err := ingest.ValidateConfig(&c.Kafka); err != nil {
		return err
	}

	switch c.Storage.Backend {
	case storage.BackendLocal, storage.BackendS3, storage.BackendGCS, storage.BackendAzure:
	default:
		return fmt.Errorf("unknown file transfer backend %q", c.Storage.Backend)
	}

	if c.IDP.TokenURL == "" {
		return fmt.Errorf("idp.token.url is required")
	}
	if c.Target != TargetClient && c.IDP.JWKSURL == "" {
		return fmt.Errorf("idp.jwks.url is required to verify inbound tokens")
	}
	if c.Mgmt.BaseURL == "" {
		return fmt.Errorf("management.node.base.url is required")
	}
	if c.Server.MTLSEnabled && (c.Server.CertChainFile == "" || c.Server.PrivateKeyFile == "") {
		return fmt.Errorf("mtls requires server.cert-chain-file and server.private-key-file")
	}
	return nil
}
