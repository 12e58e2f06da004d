package lanyard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the public Lanyard REST endpoint
	DefaultBaseURL = "https://api.lanyard.rest/v1"
	// DefaultTimeout bounds a single presence fetch
	DefaultTimeout = 10 * time.Second
)

// Client fetches presence records from the Lanyard REST API. One
// request per call, no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Lanyard API client. Empty baseURL and zero
// timeout fall back to the defaults.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With().Str("component", "lanyard_client").Logger(),
	}
}

// SetTransport replaces the underlying HTTP transport. Used to wire
// request telemetry around the client.
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.httpClient.Transport = rt
}

// GetPresence fetches the presence record for userID. The userID must
// already be validated; this method never inspects its shape. The
// returned Presence is never nil on success: a 2xx body without a data
// object yields an empty record.
func (c *Client) GetPresence(ctx context.Context, userID string) (*Presence, error) {
	reqURL := fmt.Sprintf("%s/users/%s", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, NewTransportError(err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("user_id", userID).
		Str("url", reqURL).
		Msg("Fetching presence")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.Warn().
				Str("user_id", userID).
				Err(err).
				Msg("Presence fetch timed out")
			return nil, NewTimeoutError(userID, err)
		}
		c.logger.Error().
			Str("user_id", userID).
			Err(err).
			Msg("Presence fetch failed")
		return nil, NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		switch resp.StatusCode {
		case http.StatusNotFound:
			return nil, NewNotFoundError(userID)
		case http.StatusTooManyRequests:
			return nil, NewRateLimitedError()
		default:
			return nil, NewHTTPStatusError(resp.StatusCode)
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, NewTimeoutError(userID, err)
		}
		return nil, NewTransportError(err)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, NewTransportError(err)
	}

	if !envelope.Success {
		c.logger.Warn().
			Str("user_id", userID).
			Msg("Upstream reported unsuccessful response")
		return nil, NewUnsuccessfulError(userID)
	}

	if envelope.Data == nil {
		return &Presence{}, nil
	}
	return envelope.Data, nil
}

// isTimeout reports whether err stems from the request exceeding its
// deadline, either via the client timeout or context cancellation.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
