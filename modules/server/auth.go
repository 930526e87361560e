package server

import (
	"context"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gogo/status"
	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"

	"github.com/grafana/federator/pkg/auth"
	"github.com/grafana/federator/pkg/fedconfig"
)

type contextKey int

const clientIDKey contextKey = iota

// ClientIDFromContext returns the authenticated caller id attached by the
// auth interceptor.
func ClientIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(clientIDKey).(string)
	return id, ok
}

// AuthStreamInterceptor verifies the bearer token, checks the audience
// against our own client id and the caller against the producer config, and
// attaches the caller id to the stream context. The handler never runs for a
// rejected call.
func AuthStreamInterceptor(verifier auth.TokenVerifier, audience string, store *fedconfig.Store, logger log.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx := ss.Context()

		token, err := bearerToken(ctx)
		if err != nil {
			return err
		}

		claims, err := verifier.Verify(ctx, token)
		if err != nil {
			level.Debug(logger).Log("msg", "token verification failed", "method", info.FullMethod, "err", err)
			return status.Error(codes.Unauthenticated, "invalid token")
		}

		if claims.AuthorizedParty == "" {
			return status.Error(codes.Unauthenticated, "token has no authorized party")
		}
		if !audienceContains(claims.Audience, audience) {
			return status.Error(codes.Unauthenticated, "token audience does not include this gateway")
		}
		if !store.IsAuthorizedConsumer(claims.AuthorizedParty) {
			level.Warn(logger).Log("msg", "unauthorised consumer rejected", "client_id", claims.AuthorizedParty)
			return status.Error(codes.PermissionDenied, "client is not an authorised consumer")
		}

		wrapped := grpc_middleware.WrapServerStream(ss)
		wrapped.WrappedContext = context.WithValue(ctx, clientIDKey, claims.AuthorizedParty)
		return handler(srv, wrapped)
	}
}

func bearerToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing metadata")
	}
	values := md.Get("authorization")
	if len(values) == 0 {
		return "", status.Error(codes.Unauthenticated, "missing bearer token")
	}
	token := strings.TrimSpace(values[0])
	if !strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return "", status.Error(codes.Unauthenticated, "malformed authorization header")
	}
	return strings.TrimSpace(token[len("bearer "):]), nil
}

func audienceContains(audience []string, want string) bool {
	for _, aud := range audience {
		if strings.EqualFold(aud, want) {
			return true
		}
	}
	return false
}
