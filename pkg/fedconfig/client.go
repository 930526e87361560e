package fedconfig

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/grafana/dskit/services"
	"github.com/pkg/errors"
)

const configPath = "/api/federation/config"

type ClientConfig struct {
	BaseURL          string        `yaml:"base_url"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	ManagementNodeID string        `yaml:"node_id"`
	RefreshInterval  time.Duration `yaml:"refresh_interval"`
}

func (cfg *ClientConfig) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.BaseURL, prefix+".base.url", "", "Base URL of the management node.")
	f.DurationVar(&cfg.RequestTimeout, prefix+".request.timeout", 10*time.Second, "Timeout for management node requests.")
	f.StringVar(&cfg.ManagementNodeID, prefix+".id", "default", "Identifier of the management node this peer answers to.")
	f.DurationVar(&cfg.RefreshInterval, prefix+".refresh.interval", time.Minute, "How often the producer config snapshot is refreshed.")
}

// TokenSource supplies the bearer token attached to management node requests.
type TokenSource interface {
	FetchToken(ctx context.Context, managementNodeID string) (string, error)
}

// Client fetches the producer/consumer graph from the management node.
type Client struct {
	cfg    ClientConfig
	http   *http.Client
	tokens TokenSource
	logger log.Logger
}

func NewClient(cfg ClientConfig, tokens TokenSource, logger log.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.RequestTimeout},
		tokens: tokens,
		logger: logger,
	}
}

// FetchProducerConfig retrieves the current declared graph for the node.
func (c *Client) FetchProducerConfig(ctx context.Context) (ProducerConfig, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+configPath, nil)
	if err != nil {
		return ProducerConfig{}, errors.Wrap(err, "building management node request")
	}

	token, err := c.tokens.FetchToken(ctx, c.cfg.ManagementNodeID)
	if err != nil {
		return ProducerConfig{}, errors.Wrap(err, "fetching management node token")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return ProducerConfig{}, errors.Wrap(err, "calling management node")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return ProducerConfig{}, fmt.Errorf("management node returned status %d", resp.StatusCode)
	}

	var cfg ProducerConfig
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return ProducerConfig{}, errors.Wrap(err, "decoding producer config")
	}
	return cfg, nil
}

// Refresher periodically replaces the store snapshot. The first fetch happens
// in starting so a bad management node fails startup, per the exit behaviour
// contract.
type Refresher struct {
	services.Service

	client   *Client
	store    *Store
	interval time.Duration
	onChange func(ProducerConfig)
	logger   log.Logger
}

// NewRefresher builds the refresh service. onChange may be nil; when set it
// runs after every successful snapshot replacement (the client app uses it to
// reconcile scheduler jobs).
func NewRefresher(client *Client, store *Store, interval time.Duration, onChange func(ProducerConfig), logger log.Logger) *Refresher {
	r := &Refresher{
		client:   client,
		store:    store,
		interval: interval,
		onChange: onChange,
		logger:   logger,
	}
	r.Service = services.NewBasicService(r.starting, r.running, r.stopping)
	return r
}

func (r *Refresher) starting(ctx context.Context) error {
	cfg, err := r.client.FetchProducerConfig(ctx)
	if err != nil {
		return errors.Wrap(err, "initial producer config fetch")
	}
	r.store.Replace(cfg)
	if r.onChange != nil {
		r.onChange(cfg)
	}
	return nil
}

func (r *Refresher) running(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			cfg, err := r.client.FetchProducerConfig(ctx)
			if err != nil {
				level.Warn(r.logger).Log("msg", "producer config refresh failed, keeping previous snapshot", "err", err)
				continue
			}
			r.store.Replace(cfg)
			if r.onChange != nil {
				r.onChange(cfg)
			}
		}
	}
}

func (r *Refresher) stopping(_ error) error {
	return nil
}
