package bankapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/domain"
	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/infrastructure/metrics"
	"github.com/nikeshboopath-jpg/julius-baer-side-quest/internal/infrastructure/requestid"
)

const (
	opValidate  = "validate_account"
	opBalance   = "get_balance"
	opTransfer  = "submit_transfer"
	opAuthToken = "auth_token"
)

// Client talks to the remote account service over HTTP. It implements
// usecase.AccountGateway. One instance is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	logger     zerolog.Logger
	metrics    *metrics.Metrics
	retrier    *Retrier
}

// Option configures a Client.
type Option func(*Client)

// WithBearerToken attaches the token to every outgoing request.
func WithBearerToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics enables per-call Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithRetrier enables retries for the idempotent GET operations.
// POST operations are never retried.
func WithRetrier(r *Retrier) Option {
	return func(c *Client) { c.retrier = r }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the account service at baseURL. Every request
// uses the given timeout.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ValidateAccount checks the account against /accounts/validate/{id}.
// Only HTTP 200 counts as valid; any other status or a transport failure
// is an error.
func (c *Client) ValidateAccount(ctx context.Context, accountID string) error {
	url := c.baseURL + "/accounts/validate/" + accountID

	resp, err := c.do(ctx, opValidate, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("validate account %s: %w", accountID, err)
	}

	if resp.status != http.StatusOK {
		return fmt.Errorf("%w: validation of %s returned %d", domain.ErrUnexpectedStatus, accountID, resp.status)
	}

	return nil
}

// AccountBalance fetches the balance from /accounts/balance/{id}.
func (c *Client) AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	url := c.baseURL + "/accounts/balance/" + accountID

	resp, err := c.do(ctx, opBalance, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("fetch balance for %s: %w", accountID, err)
	}

	if resp.status < 200 || resp.status > 299 {
		return decimal.Decimal{}, fmt.Errorf("%w: balance of %s returned %d", domain.ErrUnexpectedStatus, accountID, resp.status)
	}

	return parseBalance(resp.body)
}

// transferPayload is the wire shape of a transfer submission. The amount
// goes out as a JSON number, not a quoted string.
type transferPayload struct {
	FromAccount string      `json:"fromAccount"`
	ToAccount   string      `json:"toAccount"`
	Amount      json.Number `json:"amount"`
}

// SubmitTransfer posts the transfer to the service and returns the parsed
// response payload. A non-JSON success response is wrapped as {"text": body}.
func (c *Client) SubmitTransfer(ctx context.Context, transfer domain.TransferRequest) (map[string]any, error) {
	payload, err := json.Marshal(transferPayload{
		FromAccount: transfer.FromAccount,
		ToAccount:   transfer.ToAccount,
		Amount:      json.Number(transfer.Amount.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("encode transfer payload: %w", err)
	}

	resp, err := c.do(ctx, opTransfer, http.MethodPost, c.transferURL(), payload)
	if err != nil {
		return nil, fmt.Errorf("submit transfer: %w", err)
	}

	if resp.status < 200 || resp.status > 299 {
		return nil, fmt.Errorf("%w: transfer returned %d: %s", domain.ErrUnexpectedStatus, resp.status, string(resp.body))
	}

	if !strings.Contains(resp.header.Get("Content-Type"), "application/json") {
		return map[string]any{"text": string(resp.body)}, nil
	}

	var result map[string]any
	if err := json.Unmarshal(resp.body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	return result, nil
}

// transferURL derives the submission URL: the base endpoint is used
// verbatim when it already ends in /transfer, otherwise the segment is
// appended.
func (c *Client) transferURL() string {
	if strings.HasSuffix(c.baseURL, "/transfer") {
		return c.baseURL
	}
	return c.baseURL + "/transfer"
}

// parseBalance accepts the three balance response shapes, in order: an
// object carrying a balance field, a bare JSON number, and a raw decimal
// in a non-JSON body.
func parseBalance(body []byte) (decimal.Decimal, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		text := strings.TrimSpace(string(body))
		d, perr := decimal.NewFromString(text)
		if perr != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: cannot parse balance from %q", domain.ErrMalformedResponse, text)
		}
		return d, nil
	}

	switch v := payload.(type) {
	case map[string]any:
		raw, ok := v["balance"]
		if !ok {
			return decimal.Decimal{}, fmt.Errorf("%w: balance field missing", domain.ErrMalformedResponse)
		}
		return coerceDecimal(raw)
	case json.Number:
		return decimal.NewFromString(v.String())
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: unexpected balance payload of type %T", domain.ErrMalformedResponse, payload)
	}
}

func coerceDecimal(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: balance %q is not a number", domain.ErrMalformedResponse, v)
		}
		return d, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: balance of type %T", domain.ErrMalformedResponse, raw)
	}
}

// response is a fully drained HTTP response.
type response struct {
	status int
	header http.Header
	body   []byte
}

// do executes one request. GETs go through the retrier when one is
// configured; mutating requests are always single-shot.
func (c *Client) do(ctx context.Context, op, method, url string, payload []byte) (*response, error) {
	start := time.Now()

	c.logger.Debug().
		Str("operation", op).
		Str("method", method).
		Str("url", url).
		Msg("calling account service")

	var resp *response
	call := func() error {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, body)
		if err != nil {
			return err
		}

		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		if id := requestid.FromContext(ctx); id != "" {
			req.Header.Set(requestid.Header, id)
		}

		res, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer res.Body.Close()

		b, err := io.ReadAll(res.Body)
		if err != nil {
			return err
		}

		resp = &response{status: res.StatusCode, header: res.Header, body: b}
		return nil
	}

	var err error
	if c.retrier != nil && method == http.MethodGet {
		err = c.retrier.Retry(ctx, op, call)
	} else {
		err = call()
	}

	if c.metrics != nil {
		outcome := "ok"
		switch {
		case err != nil:
			outcome = "transport_error"
		case resp.status >= 400:
			outcome = "http_error"
		}
		c.metrics.ClientRequests.WithLabelValues(op, outcome).Inc()
		c.metrics.ClientDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}

	if err != nil {
		return nil, err
	}

	return resp, nil
}
