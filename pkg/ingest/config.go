package ingest

import (
	"flag"
	"time"

	"github.com/grafana/dskit/flagext"
)

type KafkaConfig struct {
	Brokers      flagext.StringSlice `yaml:"brokers"`
	ClientID     string              `yaml:"client_id"`
	DialTimeout  time.Duration       `yaml:"dial_timeout"`
	WriteTimeout time.Duration       `yaml:"write_timeout"`

	AutoCreateTopicEnabled bool `yaml:"auto_create_topic_enabled"`
}

func (cfg *KafkaConfig) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.Var(&cfg.Brokers, prefix+".brokers", "Kafka bootstrap brokers. Repeat for multiple.")
	f.StringVar(&cfg.ClientID, prefix+".client-id", "federator", "Kafka client id.")
	f.DurationVar(&cfg.DialTimeout, prefix+".dial-timeout", 5*time.Second, "Broker dial timeout.")
	f.DurationVar(&cfg.WriteTimeout, prefix+".write-timeout", 10*time.Second, "Produce request timeout.")
	f.BoolVar(&cfg.AutoCreateTopicEnabled, prefix+".auto-create-topic-enabled", false, "Allow auto creation of consumed and produced topics.")
}
