// internal/quoting/transport/transport.go

// Package transport performs carrier HTTP calls. It owns per-call logging,
// timeout enforcement and raw request/response audit capture, and nothing
// else: carrier business status is interpreted by adapters, and retry
// policy belongs to callers.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"carrier-quoting/internal/common/errors"
	"carrier-quoting/internal/common/logger"
	"carrier-quoting/internal/common/metrics"
	"carrier-quoting/internal/common/observability"

	"github.com/google/uuid"
)

// Format declares how a request body is serialized and a response decoded.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
)

// Request describes one carrier call.
type Request struct {
	CarrierID     string
	ApplicationID string
	// Operation labels the call for audit and metrics: "auth", "quote",
	// "session" and the like.
	Operation string
	Method    string
	Host      string
	Path      string
	Headers   map[string]string
	// Body is marshaled per the declared format. []byte and string pass
	// through unmodified.
	Body interface{}
}

// RawResponse is the undigested carrier reply.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// IsSuccess reports whether the HTTP status is 2xx.
func (r *RawResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DecodeJSON unmarshals the body into v.
func (r *RawResponse) DecodeJSON(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// DecodeXML unmarshals the body into v.
func (r *RawResponse) DecodeXML(v interface{}) error {
	return xml.Unmarshal(r.Body, v)
}

// Client is the shared carrier transport.
type Client struct {
	httpClient *http.Client
	logger     logger.Logger
	audit      AuditSink
}

// New builds a transport with a bounded per-call timeout. audit may be a
// no-op sink but never nil; every call must be replayable.
func New(timeout time.Duration, log logger.Logger, audit AuditSink) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
		audit:      audit,
	}
}

// Send performs one carrier call. The returned error is always a
// *errors.StandardError classifying the transport failure; carrier-level
// business statuses (including non-2xx replies with parseable bodies) come
// back as a RawResponse for the adapter to classify.
func (c *Client) Send(ctx context.Context, req Request, format Format) (*RawResponse, error) {
	body, err := marshalBody(req.Body, format)
	if err != nil {
		return nil, errors.NewMalformedResponseError(req.CarrierID, fmt.Errorf("marshal request: %w", err))
	}

	url := req.Host + req.Path
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewCarrierUnreachableError(req.CarrierID, err)
	}
	applyHeaders(httpReq, req.Headers, format, len(body) > 0)

	record := AuditRecord{
		ID:            uuid.NewString(),
		CarrierID:     req.CarrierID,
		ApplicationID: req.ApplicationID,
		Operation:     req.Operation,
		Method:        req.Method,
		URL:           url,
		RequestBody:   string(body),
		StartedAt:     time.Now().UTC(),
	}

	callLog := c.logger.WithFields(map[string]interface{}{
		"carrier":       req.CarrierID,
		"applicationId": req.ApplicationID,
		"operation":     req.Operation,
		"url":           url,
		"auditId":       record.ID,
	})
	callLog.Info("carrier call started", nil)

	spanCtx, span := observability.StartCarrierCall(ctx, req.CarrierID, req.Operation)
	httpReq = httpReq.WithContext(spanCtx)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	record.Duration = time.Since(start)
	metrics.CarrierCallDuration.WithLabelValues(req.CarrierID, req.Operation).Observe(record.Duration.Seconds())

	if err != nil {
		stdErr := classifyCallError(ctx, req.CarrierID, err)
		record.Error = stdErr.Error()
		observability.EndCarrierCall(span, 0, stdErr)
		metrics.CarrierCallFailures.WithLabelValues(req.CarrierID, string(stdErr.Code)).Inc()
		c.record(ctx, record, callLog)
		callLog.WithError(stdErr).Error("carrier call failed", nil)
		return nil, stdErr
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)
	record.StatusCode = resp.StatusCode
	record.ResponseBody = string(respBody)
	observability.EndCarrierCall(span, resp.StatusCode, readErr)
	c.record(ctx, record, callLog)

	if readErr != nil {
		stdErr := errors.NewMalformedResponseError(req.CarrierID, readErr)
		metrics.CarrierCallFailures.WithLabelValues(req.CarrierID, string(stdErr.Code)).Inc()
		return nil, stdErr
	}

	callLog.Info("carrier call completed", map[string]interface{}{
		"httpStatus": resp.StatusCode,
		"durationMs": record.Duration.Milliseconds(),
	})

	return &RawResponse{StatusCode: resp.StatusCode, Body: respBody}, nil
}

func (c *Client) record(ctx context.Context, record AuditRecord, callLog logger.Logger) {
	// Audit failures never fail the carrier call, but they are loud:
	// disputed quotes need replayable logs.
	if err := c.audit.Record(ctx, record); err != nil {
		callLog.WithError(err).Error("carrier call audit write failed", nil)
	}
}

func classifyCallError(ctx context.Context, carrierID string, err error) *errors.StandardError {
	if ctx.Err() == context.DeadlineExceeded || isTimeout(err) {
		return errors.NewCarrierTimeoutError(carrierID)
	}
	return errors.NewCarrierUnreachableError(carrierID, err)
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	for e := err; e != nil; {
		if t, ok := e.(timeout); ok && t.Timeout() {
			return true
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return false
}

func marshalBody(body interface{}, format Format) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	}
	if format == FormatXML {
		data, err := xml.Marshal(body)
		if err != nil {
			return nil, err
		}
		return append([]byte(xml.Header), data...), nil
	}
	return json.Marshal(body)
}

func applyHeaders(req *http.Request, headers map[string]string, format Format, hasBody bool) {
	contentType := "application/json"
	if format == FormatXML {
		contentType = "text/xml"
	}
	if hasBody {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", contentType)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}
