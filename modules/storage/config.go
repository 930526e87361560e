package storage

import (
	"flag"

	"github.com/grafana/federator/pkg/filestore/azure"
	"github.com/grafana/federator/pkg/filestore/gcs"
	"github.com/grafana/federator/pkg/filestore/local"
	"github.com/grafana/federator/pkg/filestore/s3"
	"github.com/grafana/federator/pkg/util"
)

const (
	BackendLocal = "local"
	BackendS3    = "s3"
	BackendGCS   = "gcs"
	BackendAzure = "azure"
)

// Config selects and configures the object store used both to serve source
// files on the producer side and to publish received files on the consumer
// side.
type Config struct {
	Backend string       `yaml:"backend"`
	Local   local.Config `yaml:"local"`
	S3      s3.Config    `yaml:"s3"`
	GCS     gcs.Config   `yaml:"gcs"`
	Azure   azure.Config `yaml:"azure"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.Backend, util.PrefixConfig(prefix, "backend"), BackendLocal, "File transfer backend (s3, azure, gcs, local)")

	cfg.Local.RegisterFlagsAndApplyDefaults(util.PrefixConfig(prefix, "local"), f)
	cfg.S3.RegisterFlagsAndApplyDefaults(util.PrefixConfig(prefix, "s3"), f)
	cfg.GCS.RegisterFlagsAndApplyDefaults(util.PrefixConfig(prefix, "gcs"), f)
	cfg.Azure.RegisterFlagsAndApplyDefaults(util.PrefixConfig(prefix, "azure"), f)
}
