package translator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/jaxron/axonet/pkg/client"
	"github.com/jaxron/axonet/pkg/client/middleware"
	"github.com/robalyx/translate/internal/language"
	"github.com/robalyx/translate/internal/setup/telemetry/logger"
	"go.uber.org/zap"
)

const (
	// DefaultEndpoint is the public Google Translate endpoint used by the gtx client.
	DefaultEndpoint = "https://translate.googleapis.com/translate_a/single"

	// DefaultTimeout bounds a single translate request.
	DefaultTimeout = 15 * time.Second
)

var (
	// ErrTransport is returned when the request could not be completed.
	ErrTransport = errors.New("translation request failed")
	// ErrUnexpectedStatus is returned when the endpoint answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

// defaultUserAgents are rotated between requests to look like ordinary browsers.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/96.0.4664.45 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/96.0.4664.110 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:94.0) Gecko/20100101 Firefox/94.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:95.0) Gecko/20100101 Firefox/95.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/96.0.4664.93 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/96.0.4664.55 Safari/537.36",
}

// Translator translates text into a single target language.
type Translator struct {
	lang        string
	userAgents  []string
	pick        func(n int) int
	endpoint    string
	timeout     time.Duration
	logger      *zap.Logger
	middlewares []middleware.Middleware
	client      *client.Client
}

// Option configures a Translator.
type Option func(*Translator)

// WithUserAgents replaces the identity pool. An empty pool is ignored.
func WithUserAgents(userAgents []string) Option {
	return func(t *Translator) {
		if len(userAgents) > 0 {
			t.userAgents = append([]string(nil), userAgents...)
		}
	}
}

// WithPicker sets the function used to pick an identity. It must return a
// value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(t *Translator) {
		if pick != nil {
			t.pick = pick
		}
	}
}

// WithEndpoint overrides the translate endpoint.
func WithEndpoint(endpoint string) Option {
	return func(t *Translator) {
		if endpoint != "" {
			t.endpoint = endpoint
		}
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(t *Translator) {
		if timeout > 0 {
			t.timeout = timeout
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMiddleware appends middlewares after the identity middleware.
func WithMiddleware(middlewares ...middleware.Middleware) Option {
	return func(t *Translator) {
		t.middlewares = append(t.middlewares, middlewares...)
	}
}

// New creates a new Translator for the given target language.
// The language code is used as given; validation is up to the caller.
func New(lang string, opts ...Option) *Translator {
	t := &Translator{
		lang:       lang,
		userAgents: append([]string(nil), defaultUserAgents...),
		pick:       rand.IntN,
		endpoint:   DefaultEndpoint,
		timeout:    DefaultTimeout,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	// Identity goes first so every later middleware sees the header
	middlewares := make([]middleware.Middleware, 0, len(t.middlewares)+1)
	middlewares = append(middlewares, newIdentityMiddleware(t))
	middlewares = append(middlewares, t.middlewares...)

	t.client = client.NewClient(
		client.WithMarshalFunc(sonic.Marshal),
		client.WithUnmarshalFunc(sonic.Unmarshal),
		client.WithLogger(logger.New(t.logger)),
		client.WithTimeout(t.timeout),
		client.WithMiddleware(middlewares...),
	)

	return t
}

// Lang returns the target language code.
func (t *Translator) Lang() string {
	return t.lang
}

// UserAgents returns a copy of the identity pool.
func (t *Translator) UserAgents() []string {
	return append([]string(nil), t.userAgents...)
}

// SelectIdentity returns a random User-Agent from the pool.
func (t *Translator) SelectIdentity() string {
	return t.userAgents[t.pick(len(t.userAgents))]
}

// RequestURL builds the request URL for text. Spaces are escaped as %20
// rather than '+'. Translate sends the same query parameters.
func (t *Translator) RequestURL(text string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return fmt.Sprintf("%s?client=gtx&sl=%s&tl=%s&dt=t&q=%s", t.endpoint, language.Auto, t.lang, escaped)
}

// Translate sends text to the endpoint and returns the detected source
// language with the translated segments. Failures are not retried.
func (t *Translator) Translate(ctx context.Context, text string) (*Result, error) {
	log := t.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("target", t.lang),
	)

	// Send request to Google Translate API
	resp, err := t.client.NewRequest().
		Method(http.MethodGet).
		URL(t.endpoint).
		Query("client", "gtx").
		Query("sl", language.Auto).
		Query("tl", t.lang).
		Query("dt", "t").
		Query("q", text).
		Do(ctx)
	if err != nil {
		log.Debug("Translate request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Debug("Translate request rejected", zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("%w: %w: %d", ErrTransport, ErrUnexpectedStatus, resp.StatusCode)
	}

	// Read the response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	result, err := decodeResponse(body)
	if err != nil {
		log.Debug("Failed to decode translate response",
			zap.Error(err),
			zap.Int("body_size", len(body)))
		return nil, err
	}

	log.Debug("Translated text",
		zap.String("detected_language", result.DetectedLanguage),
		zap.Int("segments", len(result.Segments)))

	return result, nil
}
