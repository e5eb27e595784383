package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
)

const defaultTimeout = 15 * time.Second

type Config struct {
	BaseURL     string
	AccessToken string
	APIVersion  string
	LocationID  string
	Timeout     time.Duration
}

// Client talks to the Square REST API and maps its payloads into booking
// domain types.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
	newKey func() string
}

func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   httpClient,
		logger: logger,
		newKey: uuid.NewString,
	}
}

func (c *Client) LocationID() string {
	return c.cfg.LocationID
}

// do sends one API call. Any non 2xx answer becomes a *booking.ProviderError
// carrying the first error detail; every detail is logged.
func (c *Client) do(
	ctx context.Context,
	op string,
	method string,
	path string,
	query url.Values,
	body any,
	out any,
) error {

	endpoint := c.cfg.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Square-Version", c.cfg.APIVersion)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &booking.ProviderError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return &booking.ProviderError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.Debug("square call",
		"op", op,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.providerError(op, resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &booking.ProviderError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

func (c *Client) providerError(op string, status int, raw []byte) error {
	pe := &booking.ProviderError{Op: op, StatusCode: status}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Errors) == 0 {
		pe.Err = fmt.Errorf("unexpected status %d", status)
		c.logger.Warn("square error", "op", op, "status", status)
		return pe
	}

	for i, e := range body.Errors {
		c.logger.Warn("square error",
			"op", op,
			"status", status,
			"index", i,
			"category", e.Category,
			"code", e.Code,
			"field", e.Field,
			"detail", e.Detail,
		)
	}

	first := body.Errors[0]
	pe.Code = first.Code
	pe.Detail = first.Detail
	return pe
}

// Compile-time check
var _ booking.Provider = (*Client)(nil)
