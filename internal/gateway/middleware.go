package gateway

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const requestIDHeader = "X-Request-Id"

// Doer executes one HTTP request.
type Doer func(req *http.Request) (*http.Response, error)

// Middleware wraps a Doer with a pre-request or post-response transform.
type Middleware func(next Doer) Doer

// RequestID stamps each request with a correlation ID.
func RequestID() Middleware {
	return func(next Doer) Doer {
		return func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(requestIDHeader) == "" {
				req.Header.Set(requestIDHeader, uuid.NewString())
			}
			return next(req)
		}
	}
}

// Tracing opens a client span per request.
func Tracing() Middleware {
	tracer := otel.Tracer("github.com/cycks/loftier-cli/internal/gateway")
	return func(next Doer) Doer {
		return func(req *http.Request) (*http.Response, error) {
			ctx, span := tracer.Start(req.Context(), req.Method+" "+req.URL.Path,
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(
					attribute.String("http.request.method", req.Method),
					attribute.String("url.path", req.URL.Path),
				),
			)
			defer span.End()

			resp, err := next(req.WithContext(ctx))
			if err != nil {
				var se *StatusError
				if errors.As(err, &se) {
					span.SetAttributes(attribute.Int("http.response.status_code", se.Code))
				}
				span.SetStatus(codes.Error, err.Error())
				span.RecordError(err)
				return resp, err
			}

			span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
			return resp, nil
		}
	}
}

// Logging records outcome, status, and duration for every request.
func Logging() Middleware {
	return func(next Doer) Doer {
		return func(req *http.Request) (*http.Response, error) {
			started := time.Now()

			resp, err := next(req)
			if err != nil {
				log.Debug().
					Str("method", req.Method).
					Str("path", req.URL.Path).
					Dur("duration", time.Since(started)).
					Err(err).
					Msg("api call")
				return resp, err
			}

			log.Debug().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", resp.StatusCode).
				Dur("duration", time.Since(started)).
				Msg("api call")

			return resp, nil
		}
	}
}

// SessionPolicy is the session store surface the gateway's policy
// middleware calls into. The gateway never mutates session state itself;
// it only triggers the store's own logout path.
type SessionPolicy interface {
	Authenticated() bool
	ConsumeSkipLogout() bool
	Invalidate(reason string)
}

// SessionGuard applies the global failure policy, registered on the
// gateway by the session store:
//
//   - if the one-shot suppression flag is armed, consume it and
//     propagate the failure untouched;
//   - 401 while the store believes itself authenticated closes the
//     session ("expired");
//   - 403 never touches the session, the caller handles it locally.
//
// The failure is always propagated after any side effect.
func SessionGuard(policy SessionPolicy) Middleware {
	return func(next Doer) Doer {
		return func(req *http.Request) (*http.Response, error) {
			resp, err := next(req)
			if err == nil {
				return resp, nil
			}

			if policy.ConsumeSkipLogout() {
				var se *StatusError
				if errors.As(err, &se) {
					se.Suppressed = true
				}
				return resp, err
			}

			if errors.Is(err, ErrAuthentication) && policy.Authenticated() {
				log.Info().Str("path", req.URL.Path).Msg("session invalidated by server")
				policy.Invalidate("expired")
			}

			return resp, err
		}
	}
}
