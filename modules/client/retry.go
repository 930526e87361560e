package client

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Retryable classifies a stream error. Retryable errors consume the job's
// retry budget; everything else fails the trigger outright. This is the only
// place transport errors map to the taxonomy.
func Retryable(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable,
		codes.DeadlineExceeded,
		codes.ResourceExhausted,
		codes.DataLoss,
		codes.Canceled,
		codes.Aborted,
		// authorisation may be mid-rotation on the producer, a later
		// attempt can succeed with a fresh token or config
		codes.PermissionDenied,
		codes.Unauthenticated:
		return true
	default:
		return false
	}
}
