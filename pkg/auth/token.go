// Package auth talks to the identity provider: it fetches and caches
// client-credentials tokens for outbound calls and verifies inbound bearer
// tokens against the IDP's published keys.
package auth

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/grafana/dskit/backoff"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker"

	"github.com/grafana/federator/pkg/kv"
)

// ErrTokenUnavailable is returned when the circuit to the IDP is open or all
// retries are exhausted.
var ErrTokenUnavailable = errors.New("idp token unavailable")

// TokenService hands out valid access tokens for this peer, caching them in
// the KV store for their lifetime.
type TokenService struct {
	cfg     Config
	http    *http.Client
	store   *kv.Store
	breaker *gobreaker.CircuitBreaker
	logger  log.Logger
}

// NewTokenService builds the client-secret or mTLS variant depending on
// cfg.MTLSEnabled.
func NewTokenService(cfg Config, store *kv.Store, logger log.Logger) (*TokenService, error) {
	client := &http.Client{Timeout: cfg.Timeout}

	if cfg.MTLSEnabled {
		tlsCfg, err := mtlsClientConfig(cfg)
		if err != nil {
			return nil, err
		}
		client.Transport = &http.Transport{TLSClientConfig: tlsCfg}
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "idp-token",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			level.Warn(logger).Log("msg", "idp circuit state change", "from", from.String(), "to", to.String())
		},
	})

	return &TokenService{
		cfg:     cfg,
		http:    client,
		store:   store,
		breaker: breaker,
		logger:  logger,
	}, nil
}

func mtlsClientConfig(cfg Config) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(cfg.Keystore.CertFile, cfg.Keystore.KeyFile)
	if err != nil {
		return nil, errors.Wrap(err, "loading idp client certificate")
	}

	tlsCfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	if cfg.Truststore.CAFile != "" {
		pem, err := os.ReadFile(cfg.Truststore.CAFile)
		if err != nil {
			return nil, errors.Wrap(err, "reading idp trust bundle")
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates parsed from %s", cfg.Truststore.CAFile)
		}
		tlsCfg.RootCAs = pool
	}

	return tlsCfg, nil
}

// FetchToken returns a valid access token for the management node, from cache
// when possible.
func (s *TokenService) FetchToken(ctx context.Context, managementNodeID string) (string, error) {
	if tok, ok := s.store.GetToken(ctx, managementNodeID); ok {
		return tok, nil
	}

	res, err := s.breaker.Execute(func() (any, error) {
		return s.requestToken(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", errors.Wrap(ErrTokenUnavailable, err.Error())
		}
		return "", err
	}

	tok := res.(*tokenResponse)
	ttl := time.Duration(tok.ExpiresIn) * time.Second
	if err := s.store.SetToken(ctx, managementNodeID, tok.AccessToken, ttl); err != nil {
		// the token is still usable, the next caller just pays for another fetch
		level.Warn(s.logger).Log("msg", "failed to cache token", "err", err)
	}

	return tok.AccessToken, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (s *TokenService) requestToken(ctx context.Context) (*tokenResponse, error) {
	form := url.Values{
		"grant_type": []string{"client_credentials"},
		"client_id":  []string{s.cfg.ClientID},
	}
	if !s.cfg.MTLSEnabled {
		form.Set("client_secret", s.cfg.ClientSecret)
	}
	body := form.Encode()

	boff := backoff.New(ctx, backoff.Config{
		MinBackoff: 100 * time.Millisecond,
		MaxBackoff: time.Second,
		MaxRetries: 3,
	})

	var lastErr error
	for boff.Ongoing() {
		tok, err := s.postTokenForm(ctx, body)
		if err == nil {
			return tok, nil
		}
		lastErr = err
		level.Warn(s.logger).Log("msg", "token fetch attempt failed", "attempt", boff.NumRetries(), "err", err)
		boff.Wait()
	}

	if lastErr == nil {
		lastErr = boff.Err()
	}
	return nil, errors.Wrap(lastErr, "fetching token")
}

func (s *TokenService) postTokenForm(ctx context.Context, body string) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TokenURL, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("idp returned status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, errors.Wrap(err, "decoding token response")
	}
	if tok.AccessToken == "" {
		return nil, errors.New("idp response missing access_token")
	}
	return &tok, nil
}
