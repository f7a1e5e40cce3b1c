package translator

import (
	"context"
	"net/http"

	"github.com/jaxron/axonet/pkg/client/logger"
	"github.com/jaxron/axonet/pkg/client/middleware"
)

// UserAgentHeader is the header carrying the client identity.
const UserAgentHeader = "User-Agent"

// identityMiddleware stamps every outgoing request with an identity picked
// from the translator's pool.
type identityMiddleware struct {
	translator *Translator
	logger     logger.Logger
}

func newIdentityMiddleware(t *Translator) *identityMiddleware {
	return &identityMiddleware{
		translator: t,
		logger:     &logger.NoOpLogger{},
	}
}

// Process sets the User-Agent header before passing the request on.
func (m *identityMiddleware) Process(ctx context.Context, httpClient *http.Client, req *http.Request, next middleware.NextFunc) (*http.Response, error) {
	userAgent := m.translator.SelectIdentity()
	req.Header.Set(UserAgentHeader, userAgent)

	m.logger.WithFields(
		logger.String("user_agent", userAgent),
	).Debug("Selected request identity")

	return next(ctx, httpClient, req)
}

// SetLogger sets the logger for the middleware.
func (m *identityMiddleware) SetLogger(l logger.Logger) {
	m.logger = l
}
