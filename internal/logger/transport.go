package logger

import (
	"net/http"
	"time"

	"storefront-client/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDTransport stamps every outgoing request with a request id taken
// from the context, generating one when the caller did not set it.
type RequestIDTransport struct {
	Next http.RoundTripper
}

func (t RequestIDTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	reqID := r.Header.Get(RequestIDHeader)
	if reqID == "" {
		reqID = RequestIDFrom(r.Context())
	}
	if reqID == "" {
		reqID = uuid.New().String()
	}

	// RoundTrippers must not mutate the caller's request.
	out := r.Clone(WithRequestID(r.Context(), reqID))
	out.Header.Set(RequestIDHeader, reqID)

	return next(t.Next).RoundTrip(out)
}

// LoggingTransport logs every backend call with its outcome and counts it
// in Stats when set.
type LoggingTransport struct {
	Next  http.RoundTripper
	Stats *metrics.HTTP
}

func (t LoggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	timer := metrics.StartTimer()
	log := FromCtx(r.Context())

	resp, err := next(t.Next).RoundTrip(r)
	elapsed := timer.Duration()
	if err != nil {
		t.observe(0, err, elapsed)
		log.Warn("backend request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration_ms", elapsed),
			zap.Error(err),
		)
		return nil, err
	}

	t.observe(resp.StatusCode, nil, elapsed)
	log.Info("backend request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration_ms", elapsed),
	)
	return resp, nil
}

func (t LoggingTransport) observe(status int, err error, elapsed time.Duration) {
	if t.Stats != nil {
		t.Stats.Observe(status, err, elapsed)
	}
}

func next(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		return http.DefaultTransport
	}
	return rt
}
