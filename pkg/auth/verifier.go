package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Claims are the token fields the gateway cares about.
type Claims struct {
	Subject         string
	AuthorizedParty string
	Audience        []string
}

// TokenVerifier validates an inbound bearer token and extracts its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Verifier checks RS256 signatures against the IDP's JWKS. Keys are cached;
// an unknown kid triggers one refetch before failing, which covers IDP key
// rotation.
type Verifier struct {
	jwksURL string
	http    *http.Client

	mtx  sync.Mutex
	keys map[string]*rsa.PublicKey
}

func NewVerifier(cfg Config) *Verifier {
	return &Verifier{
		jwksURL: cfg.JWKSURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		keys:    map[string]*rsa.PublicKey{},
	}
}

func (v *Verifier) Verify(ctx context.Context, raw string) (Claims, error) {
	claims := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		kid, _ := token.Header["kid"].(string)
		return v.keyFor(ctx, kid)
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return Claims{}, errors.Wrap(err, "verifying token")
	}

	out := Claims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if azp, ok := claims["azp"].(string); ok {
		out.AuthorizedParty = azp
	}
	if aud, err := claims.GetAudience(); err == nil {
		out.Audience = aud
	}
	return out, nil
}

func (v *Verifier) keyFor(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	if key, ok := v.keys[kid]; ok {
		return key, nil
	}

	if err := v.refreshLocked(ctx); err != nil {
		return nil, err
	}

	key, ok := v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("no key with kid %q in jwks", kid)
	}
	return key, nil
}

type jwks struct {
	Keys []struct {
		Kty string `json:"kty"`
		Kid string `json:"kid"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

func (v *Verifier) refreshLocked(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return err
	}

	resp, err := v.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "fetching jwks")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jwks endpoint returned status %d", resp.StatusCode)
	}

	var set jwks
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return errors.Wrap(err, "decoding jwks")
	}

	keys := map[string]*rsa.PublicKey{}
	for _, k := range set.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := rsaKeyFromJWK(k.N, k.E)
		if err != nil {
			return errors.Wrapf(err, "parsing jwks key %q", k.Kid)
		}
		keys[k.Kid] = pub
	}

	v.keys = keys
	return nil
}

func rsaKeyFromJWK(n, e string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, err
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nb),
		E: int(new(big.Int).SetBytes(eb).Int64()),
	}, nil
}
