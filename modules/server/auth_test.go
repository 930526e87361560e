package server

import (
	"context"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/grafana/federator/pkg/auth"
	"github.com/grafana/federator/pkg/fedconfig"
)

type fakeVerifier struct {
	claims auth.Claims
	err    error
}

func (f fakeVerifier) Verify(context.Context, string) (auth.Claims, error) {
	return f.claims, f.err
}

type fakeServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (f fakeServerStream) Context() context.Context { return f.ctx }

func authorizedStore() *fedconfig.Store {
	store := fedconfig.NewStore()
	store.Replace(fedconfig.ProducerConfig{
		Producers: []fedconfig.Producer{{
			Name: "org-a",
			Products: []fedconfig.Product{{
				Topic:     "orders",
				Consumers: []fedconfig.Consumer{{IDPClientID: "consumer-1"}},
			}},
		}},
	})
	return store
}

func runInterceptor(t *testing.T, verifier auth.TokenVerifier, md metadata.MD) (handlerCtx context.Context, invoked bool, err error) {
	t.Helper()

	interceptor := AuthStreamInterceptor(verifier, "gateway-a", authorizedStore(), log.NewNopLogger())

	ctx := context.Background()
	if md != nil {
		ctx = metadata.NewIncomingContext(ctx, md)
	}

	err = interceptor(nil, fakeServerStream{ctx: ctx}, &grpc.StreamServerInfo{FullMethod: "/federation.Federation/StreamEvents"},
		func(_ any, ss grpc.ServerStream) error {
			invoked = true
			handlerCtx = ss.Context()
			return nil
		})
	return handlerCtx, invoked, err
}

func validClaims() auth.Claims {
	return auth.Claims{
		Subject:         "svc",
		AuthorizedParty: "consumer-1",
		Audience:        []string{"Gateway-A", "other"},
	}
}

func TestAuthAllowsAuthorisedConsumer(t *testing.T) {
	md := metadata.Pairs("authorization", "Bearer tok")
	ctx, invoked, err := runInterceptor(t, fakeVerifier{claims: validClaims()}, md)
	require.NoError(t, err)
	require.True(t, invoked)

	id, ok := ClientIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "consumer-1", id)
}

func TestAuthRejectsMissingToken(t *testing.T) {
	_, invoked, err := runInterceptor(t, fakeVerifier{claims: validClaims()}, nil)
	require.Equal(t, codes.Unauthenticated, status.Code(err))
	require.False(t, invoked)

	_, invoked, err = runInterceptor(t, fakeVerifier{claims: validClaims()}, metadata.Pairs("authorization", "Basic zzz"))
	require.Equal(t, codes.Unauthenticated, status.Code(err))
	require.False(t, invoked)
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	md := metadata.Pairs("authorization", "Bearer tok")
	_, invoked, err := runInterceptor(t, fakeVerifier{err: context.DeadlineExceeded}, md)
	require.Equal(t, codes.Unauthenticated, status.Code(err))
	require.False(t, invoked)
}

func TestAuthRejectsWrongAudience(t *testing.T) {
	claims := validClaims()
	claims.Audience = []string{"some-other-gateway"}

	md := metadata.Pairs("authorization", "Bearer tok")
	_, invoked, err := runInterceptor(t, fakeVerifier{claims: claims}, md)
	require.Equal(t, codes.Unauthenticated, status.Code(err))
	require.False(t, invoked, "handler must not run for a wrong audience")
}

func TestAuthRejectsMissingAuthorizedParty(t *testing.T) {
	claims := validClaims()
	claims.AuthorizedParty = ""

	md := metadata.Pairs("authorization", "Bearer tok")
	_, invoked, err := runInterceptor(t, fakeVerifier{claims: claims}, md)
	require.Equal(t, codes.Unauthenticated, status.Code(err))
	require.False(t, invoked)
}

func TestAuthRejectsUnknownConsumer(t *testing.T) {
	claims := validClaims()
	claims.AuthorizedParty = "stranger"

	md := metadata.Pairs("authorization", "Bearer tok")
	_, invoked, err := runInterceptor(t, fakeVerifier{claims: claims}, md)
	require.Equal(t, codes.PermissionDenied, status.Code(err))
	require.False(t, invoked)
}
