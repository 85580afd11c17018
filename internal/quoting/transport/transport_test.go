// internal/quoting/transport/transport_test.go
package transport

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	stderrors "carrier-quoting/internal/common/errors"
	"carrier-quoting/internal/common/logger"
	"carrier-quoting/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	mu      sync.Mutex
	records []AuditRecord
}

func (s *captureSink) Record(_ context.Context, r AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return nil
}

func (s *captureSink) last(t *testing.T) AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.records)
	return s.records[len(s.records)-1]
}

func TestSend_JSONRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"quoteNumber":"Q-1","premium":125000}`))
	}))
	defer srv.Close()

	sink := &captureSink{}
	client := New(5*time.Second, logger.NewTestLogger(t), sink)

	resp, err := client.Send(context.Background(), Request{
		CarrierID:     "harborline",
		ApplicationID: "app-1",
		Operation:     "quote",
		Method:        http.MethodPost,
		Host:          srv.URL,
		Path:          "/v2/quotes",
		Body:          map[string]string{"businessName": "Acme Bakery"},
	}, FormatJSON)

	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())

	var decoded struct {
		QuoteNumber string `json:"quoteNumber"`
	}
	require.NoError(t, resp.DecodeJSON(&decoded))
	assert.Equal(t, "Q-1", decoded.QuoteNumber)

	record := sink.last(t)
	assert.Equal(t, "harborline", record.CarrierID)
	assert.Equal(t, "quote", record.Operation)
	assert.Contains(t, record.RequestBody, "Acme Bakery")
	assert.Contains(t, record.ResponseBody, "Q-1")
	assert.Equal(t, http.StatusOK, record.StatusCode)
	assert.NotEmpty(t, record.ID)
}

type acordEnvelope struct {
	XMLName xml.Name `xml:"ACORD"`
	Status  string   `xml:"Status"`
}

func TestSend_XMLRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/xml", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`<ACORD><Status>Success</Status></ACORD>`))
	}))
	defer srv.Close()

	client := New(5*time.Second, logger.NewNoOpLogger(), NopSink{})

	resp, err := client.Send(context.Background(), Request{
		CarrierID: "stonepoint",
		Operation: "quote",
		Method:    http.MethodPost,
		Host:      srv.URL,
		Path:      "/acord/quote",
		Body:      acordEnvelope{Status: "Request"},
	}, FormatXML)

	require.NoError(t, err)
	var env acordEnvelope
	require.NoError(t, resp.DecodeXML(&env))
	assert.Equal(t, "Success", env.Status)
}

func TestSend_TimeoutClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	sink := &captureSink{}
	client := New(50*time.Millisecond, logger.NewNoOpLogger(), sink)

	_, err := client.Send(context.Background(), Request{
		CarrierID: "stonepoint",
		Operation: "quote",
		Method:    http.MethodGet,
		Host:      srv.URL,
		Path:      "/slow",
	}, FormatJSON)

	require.Error(t, err)
	stdErr, ok := err.(*stderrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, stderrors.ErrCodeCarrierTimeout, stdErr.Code)

	record := sink.last(t)
	assert.NotEmpty(t, record.Error)
	assert.Zero(t, record.StatusCode)
}

func TestSend_ConnectionRefusedClassified(t *testing.T) {
	client := New(time.Second, logger.NewNoOpLogger(), NopSink{})

	_, err := client.Send(context.Background(), Request{
		CarrierID: "meridian",
		Operation: "quote",
		Method:    http.MethodGet,
		Host:      "http://127.0.0.1:1",
		Path:      "/",
	}, FormatJSON)

	require.Error(t, err)
	stdErr, ok := err.(*stderrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, stderrors.ErrCodeCarrierUnreachable, stdErr.Code)
}

func TestSend_Non2xxReturnedForClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"status":"DECLINED","message":"no appetite"}`))
	}))
	defer srv.Close()

	client := New(time.Second, logger.NewNoOpLogger(), NopSink{})

	resp, err := client.Send(context.Background(), Request{
		CarrierID: "harborline",
		Operation: "quote",
		Method:    http.MethodPost,
		Host:      srv.URL,
		Path:      "/v2/quotes",
	}, FormatJSON)

	// Business-level rejections are the adapter's to interpret.
	require.NoError(t, err)
	assert.False(t, resp.IsSuccess())
	assert.Contains(t, string(resp.Body), "no appetite")
}

func TestFetchBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
		assert.Equal(t, "agency-1", r.Form.Get("client_id"))
		_, _ = w.Write([]byte(`{"access_token":"tok-abc","token_type":"Bearer","expires_in":3600}`))
	}))
	defer srv.Close()

	client := New(time.Second, logger.NewNoOpLogger(), NopSink{})
	token, err := FetchBearerToken(context.Background(), client, "harborline", "app-1", srv.URL, "/oauth/token", models.Credentials{
		Scheme:   models.AuthSchemeBearer,
		ClientID: "agency-1",
		Secret:   "s3cret",
	})

	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token.AccessToken)
	assert.Equal(t, 3600, token.ExpiresIn)
}

func TestFetchBearerToken_RejectedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := New(time.Second, logger.NewNoOpLogger(), NopSink{})
	_, err := FetchBearerToken(context.Background(), client, "harborline", "app-1", srv.URL, "/oauth/token", models.Credentials{})

	require.Error(t, err)
	stdErr, ok := err.(*stderrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, stderrors.ErrCodeCarrierAuthFailed, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestAuthHeaders(t *testing.T) {
	tests := []struct {
		name  string
		creds models.Credentials
		token string
		want  map[string]string
	}{
		{
			name:  "basic",
			creds: models.Credentials{Scheme: models.AuthSchemeBasic, Username: "agency", Password: "pw"},
			want:  map[string]string{"Authorization": "Basic YWdlbmN5OnB3"},
		},
		{
			name:  "bearer",
			creds: models.Credentials{Scheme: models.AuthSchemeBearer},
			token: "tok-1",
			want:  map[string]string{"Authorization": "Bearer tok-1"},
		},
		{
			name:  "bearer without token",
			creds: models.Credentials{Scheme: models.AuthSchemeBearer},
			want:  map[string]string{},
		},
		{
			name:  "api key",
			creds: models.Credentials{Scheme: models.AuthSchemeAPIKey, APIKey: "k-9"},
			want:  map[string]string{"X-Api-Key": "k-9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AuthHeaders(tt.creds, tt.token))
		})
	}
}
