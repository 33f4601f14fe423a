// executor.go
// -----------
// RequestExecutor orchestrates one API call: parameter validation, pacing,
// header assembly (delegated to the AuthProvider), the transport invocation,
// HTTP error classification, and the retry loop. It owns the client's
// cumulative statistics.
//
// Retry policy: transport failures and 5xx responses are retried up to the
// configured ceiling with exponential backoff min(base * 2^(attempt-1), cap).
// A 401/403 triggers one auth-recovery attempt; if the provider recovers,
// the original request is replayed exactly once. 429 and the remaining 4xx
// are surfaced immediately.
package wpbridge

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

type RequestExecutor struct {
	config    ConfigProvider
	validator ParameterValidator
	handler   ErrorHandler
	auth      AuthProvider

	httpClient *http.Client
	logger     hclog.Logger
	pacer      *pacer
	stats      *statsRecorder
	metrics    *MetricsCollector
}

// NewRequestExecutor wires the four capability interfaces into an executor.
// httpClient and logger may be nil; defaults are used.
func NewRequestExecutor(config ConfigProvider, validator ParameterValidator, handler ErrorHandler, auth AuthProvider, httpClient *http.Client, logger hclog.Logger) *RequestExecutor {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &RequestExecutor{
		config:     config,
		validator:  validator,
		handler:    handler,
		auth:       auth,
		httpClient: httpClient,
		logger:     logger,
		pacer:      newPacer(config.RequestsPerMinute()),
		stats:      &statsRecorder{},
	}
}

// SetMetricsCollector attaches an optional Prometheus collector.
func (e *RequestExecutor) SetMetricsCollector(mc *MetricsCollector) {
	e.metrics = mc
}

// Stats returns a snapshot of the cumulative counters.
func (e *RequestExecutor) Stats() Stats { return e.stats.snapshot() }

// ResetStats zeroes the counters. Intended as a testing aid.
func (e *RequestExecutor) ResetStats() { e.stats.reset() }

// Execute performs one API call and returns the 2xx response or a typed
// error from the package taxonomy. TotalRequests is incremented exactly once
// per call regardless of outcome.
func (e *RequestExecutor) Execute(ctx context.Context, req *Request) (*Response, error) {
	e.stats.recordStart()
	requestID := uuid.NewString()

	if err := e.validator.ValidateRequest(req.Method, req.Path); err != nil {
		// Fails fast: no network activity, no success/failure counters.
		return nil, e.handler.HandleError(requestID, err)
	}

	maxRetries := e.config.MaxRetries()
	if req.MaxRetries != nil {
		maxRetries = *req.MaxRetries
	}
	timeout := e.config.RequestTimeout()
	if req.Timeout > 0 {
		timeout = req.Timeout
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = e.config.RetryBackoffBase()
	bo.MaxInterval = e.config.RetryBackoffCap()
	bo.Multiplier = 2
	bo.RandomizationFactor = 0 // deterministic schedule
	bo.MaxElapsedTime = 0
	bo.Reset()

	if err := e.pacer.wait(ctx); err != nil {
		return e.fail(req.Method, e.handler.HandleError(requestID, err))
	}

	start := time.Now()
	attempts := 0
	replayed := false
	for {
		headers, err := e.auth.AuthHeaders(ctx)
		if err != nil {
			return e.fail(req.Method, e.handler.HandleError(requestID, err))
		}

		e.logger.Debug("sending request",
			"request_id", requestID,
			"method", req.Method,
			"path", req.Path,
			"attempt", attempts+1,
		)
		resp, err := e.doTransport(ctx, req, headers, timeout)
		attempts++

		if err != nil {
			terr := &TransportError{Message: req.Method + " " + req.Path, Cause: err, RequestID: requestID}
			if attempts <= maxRetries && ctx.Err() == nil {
				wait := bo.NextBackOff()
				e.logger.Debug("transport error, retrying",
					"request_id", requestID, "error", err,
					"wait", wait, "attempt", attempts, "max_retries", maxRetries,
				)
				e.metrics.recordRetry(req.Method)
				if serr := sleepContext(ctx, wait); serr != nil {
					return e.fail(req.Method, e.handler.HandleError(requestID, terr))
				}
				continue
			}
			return e.fail(req.Method, e.handler.HandleError(requestID, terr))
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			elapsed := time.Since(start)
			e.stats.recordSuccess(elapsed)
			e.metrics.recordRequest(req.Method, resp.StatusCode, elapsed)
			if attempts > 1 {
				e.logger.Debug("request succeeded after retries",
					"request_id", requestID, "attempts", attempts)
			}
			return resp, nil
		}

		cerr := e.handler.HandleResponse(requestID, resp)

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			e.stats.recordAuthFailure()
			e.metrics.recordAuthFailure()
			if !replayed {
				recovered, rerr := e.auth.HandleAuthFailure(ctx, cerr)
				if rerr == nil && recovered {
					// One transparent replay with fresh headers.
					replayed = true
					e.logger.Debug("auth recovered, replaying request", "request_id", requestID)
					continue
				}
			}
			return e.fail(req.Method, cerr)

		case resp.StatusCode == http.StatusTooManyRequests:
			e.stats.recordRateLimitHit()
			e.metrics.recordRateLimitHit()
			return e.fail(req.Method, cerr)

		case resp.StatusCode >= 500:
			if attempts <= maxRetries {
				wait := bo.NextBackOff()
				e.logger.Debug("server error, retrying",
					"request_id", requestID, "status", resp.StatusCode,
					"wait", wait, "attempt", attempts, "max_retries", maxRetries,
				)
				e.metrics.recordRetry(req.Method)
				if serr := sleepContext(ctx, wait); serr != nil {
					return e.fail(req.Method, cerr)
				}
				continue
			}
			return e.fail(req.Method, cerr)

		default:
			// Remaining 4xx: fatal for this call, exactly one transport
			// attempt was made for it.
			return e.fail(req.Method, cerr)
		}
	}
}

// doTransport performs a single HTTP attempt bounded by timeout.
func (e *RequestExecutor) doTransport(ctx context.Context, req *Request, authHeaders map[string]string, timeout time.Duration) (*Response, error) {
	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := strings.TrimRight(e.config.BaseURL(), "/") + "/" + strings.TrimLeft(req.Path, "/")

	var body *bytes.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	} else {
		body = bytes.NewReader(nil)
	}

	httpReq, err := http.NewRequestWithContext(actx, strings.ToUpper(req.Method), url, body)
	if err != nil {
		return nil, err
	}

	// Defaults first, then auth headers, then caller headers: the caller
	// always wins.
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", e.config.UserAgent())
	for k, v := range authHeaders {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Data:       data,
	}, nil
}

func (e *RequestExecutor) fail(method string, err error) (*Response, error) {
	e.stats.recordFailure()
	e.metrics.recordError(method)
	return nil, err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
