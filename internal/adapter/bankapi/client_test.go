package bankapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/domain"
	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/infrastructure/requestid"
)

func TestValidateAccount(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "200 is valid", status: http.StatusOK},
		{name: "404 is invalid", status: http.StatusNotFound, wantErr: true},
		{name: "500 is invalid", status: http.StatusInternalServerError, wantErr: true},
		{name: "204 is invalid", status: http.StatusNoContent, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/accounts/validate/ACC1000", r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := New(srv.URL, time.Second)
			err := client.ValidateAccount(context.Background(), "ACC1000")

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrUnexpectedStatus)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateAccount_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refused connection from here on

	client := New(srv.URL, time.Second)
	err := client.ValidateAccount(context.Background(), "ACC1000")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnexpectedStatus)
}

func TestAccountBalance_ResponseShapes(t *testing.T) {
	want := decimal.NewFromFloat(1000.0)

	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{name: "object with balance field", contentType: "application/json", body: `{"id":"ACC1000","balance":1000.0}`},
		{name: "balance field as string", contentType: "application/json", body: `{"balance":"1000.0"}`},
		{name: "bare number", contentType: "application/json", body: `1000.0`},
		{name: "plain text number", contentType: "text/plain", body: "1000.0"},
		{name: "plain text with whitespace", contentType: "text/plain", body: "  1000.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/accounts/balance/ACC1000", r.URL.Path)
				w.Header().Set("Content-Type", tt.contentType)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			client := New(srv.URL, time.Second)
			balance, err := client.AccountBalance(context.Background(), "ACC1000")

			require.NoError(t, err)
			assert.True(t, balance.Equal(want), "expected %s, got %s", want, balance)
		})
	}
}

func TestAccountBalance_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "http error", status: http.StatusBadGateway, body: "", want: domain.ErrUnexpectedStatus},
		{name: "object without balance field", status: http.StatusOK, body: `{"id":"ACC1000"}`, want: domain.ErrMalformedResponse},
		{name: "bare JSON string", status: http.StatusOK, body: `"1000.0"`, want: domain.ErrMalformedResponse},
		{name: "non-numeric text", status: http.StatusOK, body: "not a number", want: domain.ErrMalformedResponse},
		{name: "non-numeric balance field", status: http.StatusOK, body: `{"balance":"lots"}`, want: domain.ErrMalformedResponse},
		{name: "boolean balance field", status: http.StatusOK, body: `{"balance":true}`, want: domain.ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			client := New(srv.URL, time.Second)
			_, err := client.AccountBalance(context.Background(), "ACC1000")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSubmitTransfer_PayloadAndResponse(t *testing.T) {
	var captured map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transfer", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"transactionId":"tx123","status":"SUCCESS"}`)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	result, err := client.SubmitTransfer(context.Background(), domain.TransferRequest{
		FromAccount: "ACC1000",
		ToAccount:   "ACC1001",
		Amount:      decimal.NewFromFloat(100.5),
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"transactionId": "tx123", "status": "SUCCESS"}, result)

	assert.Equal(t, "ACC1000", captured["fromAccount"])
	assert.Equal(t, "ACC1001", captured["toAccount"])
	// amount must travel as a JSON number
	assert.Equal(t, 100.5, captured["amount"])
}

func TestSubmitTransfer_NonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "transfer accepted")
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	result, err := client.SubmitTransfer(context.Background(), domain.TransferRequest{
		FromAccount: "ACC1000",
		ToAccount:   "ACC1001",
		Amount:      decimal.NewFromInt(1),
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"text": "transfer accepted"}, result)
}

func TestSubmitTransfer_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	_, err := client.SubmitTransfer(context.Background(), domain.TransferRequest{
		FromAccount: "ACC1000",
		ToAccount:   "ACC1001",
		Amount:      decimal.NewFromInt(1),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnexpectedStatus)
}

func TestTransferURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{base: "http://example", want: "http://example/transfer"},
		{base: "http://example/", want: "http://example/transfer"},
		{base: "http://example/transfer", want: "http://example/transfer"},
		{base: "http://example/transfer/", want: "http://example/transfer"},
	}

	for _, tt := range tests {
		client := New(tt.base, time.Second)
		assert.Equal(t, tt.want, client.transferURL(), "base %q", tt.base)
	}
}

func TestRequestHeaders(t *testing.T) {
	var authHeader, requestIDHeader string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		requestIDHeader = r.Header.Get(requestid.Header)

		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/accounts/balance/"):
			_, _ = w.Write([]byte(`{"balance": 1000.0}`))
		case r.URL.Path == "/transfer":
			_, _ = w.Write([]byte(`{"status": "SUCCESS"}`))
		case r.URL.Path == "/authToken":
			_, _ = w.Write([]byte(`{"token": "abc"}`))
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	calls := []struct {
		name string
		call func(*Client, context.Context) error
	}{
		{name: "validate", call: func(c *Client, ctx context.Context) error {
			return c.ValidateAccount(ctx, "ACC1000")
		}},
		{name: "balance", call: func(c *Client, ctx context.Context) error {
			_, err := c.AccountBalance(ctx, "ACC1000")
			return err
		}},
		{name: "transfer", call: func(c *Client, ctx context.Context) error {
			_, err := c.SubmitTransfer(ctx, domain.TransferRequest{
				FromAccount: "ACC1000",
				ToAccount:   "ACC1001",
				Amount:      decimal.NewFromInt(1),
			})
			return err
		}},
		{name: "auth token", call: func(c *Client, ctx context.Context) error {
			_, err := c.AuthToken(ctx, "demo", "demo-pass", "enquiry")
			return err
		}},
	}

	for _, tt := range calls {
		t.Run(tt.name+" with token and request id", func(t *testing.T) {
			authHeader, requestIDHeader = "", ""
			client := New(srv.URL, time.Second, WithBearerToken("tok-1"))
			ctx := requestid.NewContext(context.Background(), "req-1")

			require.NoError(t, tt.call(client, ctx))
			assert.Equal(t, "Bearer tok-1", authHeader)
			assert.Equal(t, "req-1", requestIDHeader)
		})
	}

	t.Run("without token", func(t *testing.T) {
		authHeader, requestIDHeader = "", ""
		client := New(srv.URL, time.Second)

		require.NoError(t, client.ValidateAccount(context.Background(), "ACC1000"))
		assert.Empty(t, authHeader)
		assert.Empty(t, requestIDHeader)
	})
}

func TestTimeoutIsTransportFailure(t *testing.T) {
	started := make(chan struct{}, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := New(srv.URL, 50*time.Millisecond)
	err := client.ValidateAccount(context.Background(), "ACC1000")

	<-started
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded) || isTimeout(err),
		"expected timeout-shaped error, got %v", err)
}

func isTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
