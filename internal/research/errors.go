// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mshore/blogforge/pkg/types"
)

// SourceErrorKind classifies adapter failures for logging. Source errors
// never cross the adapter boundary; the taxonomy exists so log lines are
// diagnosable without propagating anything.
type SourceErrorKind string

const (
	// ErrTransport covers network, DNS, and TLS failures.
	ErrTransport SourceErrorKind = "transport"

	// ErrUnexpectedStatus covers non-2xx HTTP responses.
	ErrUnexpectedStatus SourceErrorKind = "unexpected_status"

	// ErrMalformedResponse covers bodies that do not match the expected shape.
	ErrMalformedResponse SourceErrorKind = "malformed_response"

	// ErrAuthNotConfigured marks a platform requested without its credential.
	// The only kind surfaced to the caller, as a bundle warning.
	ErrAuthNotConfigured SourceErrorKind = "auth_not_configured"
)

// SourceError describes one contained adapter failure.
type SourceError struct {
	Platform types.SourcePlatform
	Kind     SourceErrorKind
	Status   int    // set for ErrUnexpectedStatus
	Snippet  string // leading bytes of the offending body, for ErrMalformedResponse
	Err      error
}

func (e *SourceError) Error() string {
	switch e.Kind {
	case ErrUnexpectedStatus:
		return fmt.Sprintf("%s: unexpected HTTP %d", e.Platform, e.Status)
	case ErrMalformedResponse:
		return fmt.Sprintf("%s: malformed response: %v", e.Platform, e.Err)
	case ErrAuthNotConfigured:
		return fmt.Sprintf("%s: credential not configured", e.Platform)
	default:
		return fmt.Sprintf("%s: %v", e.Platform, e.Err)
	}
}

func (e *SourceError) Unwrap() error { return e.Err }

func transportErr(p types.SourcePlatform, err error) *SourceError {
	return &SourceError{Platform: p, Kind: ErrTransport, Err: err}
}

func statusErr(p types.SourcePlatform, status int) *SourceError {
	return &SourceError{Platform: p, Kind: ErrUnexpectedStatus, Status: status}
}

func malformedErr(p types.SourcePlatform, snippet string, err error) *SourceError {
	return &SourceError{Platform: p, Kind: ErrMalformedResponse, Snippet: snippet, Err: err}
}

// snippetLen bounds how much of a malformed body ends up in a log line.
const snippetLen = 200

func bodySnippet(body []byte) string {
	if len(body) > snippetLen {
		return string(body[:snippetLen])
	}
	return string(body)
}

// logSourceError emits one structured log line for a contained failure.
func logSourceError(log *zap.Logger, err *SourceError) {
	fields := []zap.Field{
		zap.String("platform", string(err.Platform)),
		zap.String("kind", string(err.Kind)),
	}
	if err.Status != 0 {
		fields = append(fields, zap.Int("status", err.Status))
	}
	if err.Snippet != "" {
		fields = append(fields, zap.String("snippet", err.Snippet))
	}
	if err.Err != nil {
		fields = append(fields, zap.Error(err.Err))
	}
	log.Warn("source fetch failed", fields...)
}
