package transport

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Option configures the HTTP submitter.
type Option func(h *HTTP)

// WithHTTPClient sets the underlying client.
func WithHTTPClient(client *http.Client) Option {
	return func(h *HTTP) {
		if client != nil {
			h.client = client
		}
	}
}

// WithHeader adds a header sent with every submission.
func WithHeader(name, value string) Option {
	return func(h *HTTP) {
		h.headers.Set(name, value)
	}
}

// WithTokenSource authenticates submissions with bearer tokens from source.
func WithTokenSource(source oauth2.TokenSource) Option {
	return func(h *HTTP) {
		base := h.client.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		h.client = &http.Client{
			Transport: &oauth2.Transport{Source: oauth2.ReuseTokenSource(nil, source), Base: base},
			Timeout:   h.client.Timeout,
			Jar:       h.client.Jar,
		}
	}
}

// WithClientCredentials authenticates submissions using the OAuth2 client credentials grant.
func WithClientCredentials(config *clientcredentials.Config) Option {
	return WithTokenSource(config.TokenSource(context.Background()))
}

// WithLogger sets the submitter logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *HTTP) {
		if logger != nil {
			h.logger = logger
		}
	}
}
