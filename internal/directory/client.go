package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/talentdesk/applywizard/internal/logging"
	"github.com/talentdesk/applywizard/internal/version"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 15 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for failed requests
	DefaultMaxRetries = 2

	// DefaultRetryDelay is the default delay between retry attempts
	DefaultRetryDelay = 500 * time.Millisecond

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 8 * time.Second

	productFields = "id,title,category,price,thumbnail"
	userFields    = "id,firstName,lastName,email,image,company"

	maxErrorSnippet = 120
)

// Client fetches pages of the remote product catalog and user directory.
type Client struct {
	// BaseURL is the API root (e.g., "https://dummyjson.com")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// MaxRetries is the maximum number of retry attempts for retryable failures
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay caps the exponential backoff
	MaxRetryDelay time.Duration

	// UserAgent is sent with every request
	UserAgent string
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:       strings.TrimRight(baseURL, "/"),
		HTTPClient:    &http.Client{Timeout: DefaultTimeout},
		MaxRetries:    DefaultMaxRetries,
		RetryDelay:    DefaultRetryDelay,
		MaxRetryDelay: DefaultMaxRetryDelay,
		UserAgent:     version.UserAgent(),
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// FetchProducts retrieves page (0-based) of the product catalog.
func (c *Client) FetchProducts(ctx context.Context, page, pageSize int) (Page[Product], error) {
	var env productsEnvelope
	if err := c.fetchPage(ctx, KindProducts, productFields, page, pageSize, &env); err != nil {
		return Page[Product]{}, err
	}

	items := env.Products
	if items == nil {
		items = []Product{}
	}
	return Page[Product]{Items: items, Total: env.Total, Skip: env.Skip, Limit: env.Limit}, nil
}

// FetchUsers retrieves page (0-based) of the user directory.
func (c *Client) FetchUsers(ctx context.Context, page, pageSize int) (Page[User], error) {
	var env usersEnvelope
	if err := c.fetchPage(ctx, KindUsers, userFields, page, pageSize, &env); err != nil {
		return Page[User]{}, err
	}

	items := make([]User, 0, len(env.Users))
	for _, w := range env.Users {
		items = append(items, w.toUser())
	}
	return Page[User]{Items: items, Total: env.Total, Skip: env.Skip, Limit: env.Limit}, nil
}

// PageURL builds the request URL for a page of kind.
func (c *Client) PageURL(kind Kind, page, pageSize int) string {
	fields := productFields
	if kind == KindUsers {
		fields = userFields
	}
	return c.pageURL(kind, fields, page, pageSize)
}

func (c *Client) pageURL(kind Kind, fields string, page, pageSize int) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(pageSize))
	q.Set("skip", strconv.Itoa(page*pageSize))
	q.Set("select", fields)
	return fmt.Sprintf("%s/%s?%s", c.BaseURL, kind, q.Encode())
}

// fetchPage runs the retry loop around a single GET and decodes into out.
func (c *Client) fetchPage(ctx context.Context, kind Kind, fields string, page, pageSize int, out any) error {
	if page < 0 {
		return fmt.Errorf("page must be non-negative, got %d", page)
	}
	if pageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	target := c.pageURL(kind, fields, page, pageSize)
	logging.LogFetch(string(kind), page, pageSize)

	var lastErr error
	currentDelay := c.RetryDelay

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return classifyTransportError(kind, "request aborted during retry", ctx.Err())
			case <-time.After(currentDelay):
			}

			currentDelay *= 2
			if c.MaxRetryDelay > 0 && currentDelay > c.MaxRetryDelay {
				currentDelay = c.MaxRetryDelay
			}
		}

		err := c.getJSON(ctx, kind, target, out)
		if err == nil {
			return nil
		}

		lastErr = err
		if !IsRetryable(err) {
			return err
		}
		logging.Debug("Retrying page fetch",
			zap.String("kind", string(kind)),
			zap.Int("page", page),
			zap.Int("attempt", attempt+1),
		)
	}

	return fmt.Errorf("failed after %d attempts: %w", c.MaxRetries+1, lastErr)
}

func (c *Client) getJSON(ctx context.Context, kind Kind, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return classifyTransportError(kind, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return classifyTransportError(kind, "failed to connect to API", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError(kind, "failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newHTTPError(kind, resp.StatusCode, snippet(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return newParseError(kind, "failed to parse JSON response", err)
	}
	return nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorSnippet {
		s = ansi.Truncate(s, maxErrorSnippet, "...")
	}
	return s
}
