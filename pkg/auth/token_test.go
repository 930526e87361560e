package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"

	"github.com/grafana/federator/pkg/kv"
)

func testKV(t *testing.T) *kv.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	s := kv.NewStore(kv.Config{Endpoint: mr.Addr(), Timeout: time.Second}, log.NewNopLogger())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFetchTokenCachesUntilExpiry(t *testing.T) {
	var calls atomic.Int64
	idp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		require.Equal(t, "org-b-consumer", r.Form.Get("client_id"))
		require.Equal(t, "hunter2", r.Form.Get("client_secret"))
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-abc",
			"expires_in":   300,
		}))
	}))
	defer idp.Close()

	svc, err := NewTokenService(Config{
		TokenURL:     idp.URL,
		ClientID:     "org-b-consumer",
		ClientSecret: "hunter2",
		Timeout:      time.Second,
	}, testKV(t), log.NewNopLogger())
	require.NoError(t, err)

	ctx := context.Background()

	tok, err := svc.FetchToken(ctx, "default")
	require.NoError(t, err)
	require.Equal(t, "tok-abc", tok)

	tok, err = svc.FetchToken(ctx, "default")
	require.NoError(t, err)
	require.Equal(t, "tok-abc", tok)

	require.Equal(t, int64(1), calls.Load(), "second fetch must hit the cache")
}

func TestFetchTokenMTLSVariantOmitsSecret(t *testing.T) {
	idp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Empty(t, r.Form.Get("client_secret"))
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-mtls",
			"expires_in":   300,
		}))
	}))
	defer idp.Close()

	// mTLS enabled but against a plain test server: skip the transport setup
	// by pointing the keystore at generated certs is not worth it here, so we
	// build the service by hand the way NewTokenService does minus TLS.
	svc, err := NewTokenService(Config{
		TokenURL:     idp.URL,
		ClientID:     "org-b-consumer",
		ClientSecret: "should-not-be-sent",
		Timeout:      time.Second,
	}, testKV(t), log.NewNopLogger())
	require.NoError(t, err)
	svc.cfg.MTLSEnabled = true

	tok, err := svc.FetchToken(context.Background(), "default")
	require.NoError(t, err)
	require.Equal(t, "tok-mtls", tok)
}

func TestFetchTokenBreakerOpens(t *testing.T) {
	idp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer idp.Close()

	svc, err := NewTokenService(Config{
		TokenURL:     idp.URL,
		ClientID:     "org-b-consumer",
		ClientSecret: "hunter2",
		Timeout:      time.Second,
	}, testKV(t), log.NewNopLogger())
	require.NoError(t, err)

	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err = svc.FetchToken(ctx, "default")
		require.Error(t, err)
	}

	_, err = svc.FetchToken(ctx, "default")
	require.ErrorIs(t, err, ErrTokenUnavailable)
}
