package invitation

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/viant/invitation/capability"
	"github.com/viant/invitation/internal/logging"
	"github.com/viant/invitation/messaging"
	"github.com/viant/invitation/metrics"
	"github.com/viant/invitation/notification"
	"github.com/viant/invitation/operation"
	"github.com/viant/invitation/transport"
	"github.com/viant/scy/auth/authorizer"
	"golang.org/x/oauth2/clientcredentials"
)

// Service wires the invitation components from Options.
type Service struct {
	Options    *Options
	Logger     *slog.Logger
	Resolver   *capability.Resolver
	Registry   *operation.Registry
	Dispatcher *operation.Dispatcher
	Matcher    *notification.Matcher
	Invitation *messaging.Invitation
	Metrics    *metrics.Collector
	Relay      *notification.Relay

	redis        *redis.Client
	subscription *notification.Subscription
	cancel       context.CancelFunc
}

// Option customizes service construction.
type Option func(s *settings)

type settings struct {
	submitter  transport.Submitter
	logger     *slog.Logger
	registerer prometheus.Registerer
	newID      func() string
}

// WithSubmitter replaces the HTTP submitter.
func WithSubmitter(submitter transport.Submitter) Option {
	return func(s *settings) {
		s.submitter = submitter
	}
}

// WithLogger replaces the logger built from Options.LogLevel.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithRegisterer sets the Prometheus registerer used when metrics are enabled.
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(s *settings) {
		s.registerer = registerer
	}
}

// WithIDGenerator overrides operation id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *settings) {
		s.newID = newID
	}
}

// Handler returns the callback handler; with a relay configured, callbacks
// are published so that the instance holding the operation resolves it.
func (s *Service) Handler() http.Handler {
	var deliverer notification.Deliverer = s.Matcher
	if s.Relay != nil {
		deliverer = s.Relay
	}
	options := []notification.HandlerOption{notification.WithHandlerLogger(s.Logger)}
	if key := s.Options.Ingress.SigningKey; key != "" {
		options = append(options, notification.WithVerifier(notification.NewVerifier([]byte(key), s.Options.Ingress.Issuer)))
	}
	return notification.NewHandler(deliverer, options...)
}

// Start runs the expired operation sweeper and, when configured, the relay subscription.
func (s *Service) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)
	if s.Relay != nil {
		subscription, err := s.Relay.Subscribe(ctx, s.Matcher)
		if err != nil {
			s.cancel()
			return err
		}
		s.subscription = subscription
	}
	go s.Registry.Run(ctx, s.Options.SweepInterval())
	return nil
}

// Close stops background work and releases the relay connection.
func (s *Service) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.subscription != nil {
		_ = s.subscription.Close()
	}
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

// New creates a service for resource using options.
func New(options *Options, resource *capability.Resource, opts ...Option) (*Service, error) {
	if options == nil {
		return nil, fmt.Errorf("options were nil")
	}
	options.Init()
	if err := options.Validate(); err != nil {
		return nil, err
	}
	config := &settings{}
	for _, opt := range opts {
		opt(config)
	}
	logger := config.logger
	if logger == nil {
		logger = logging.New(logging.ParseLevel(options.LogLevel))
	}
	ret := &Service{Options: options, Logger: logger}

	registryOptions := []operation.RegistryOption{operation.WithLogger(logger)}
	if options.Metrics.Enabled {
		ret.Metrics = metrics.New(options.Metrics.Namespace)
		registerer := config.registerer
		if registerer == nil {
			registerer = prometheus.DefaultRegisterer
		}
		if err := ret.Metrics.Register(registerer); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		registryOptions = append(registryOptions, operation.WithObserver(ret.Metrics))
	}
	ret.Registry = operation.NewRegistry(registryOptions...)
	ret.Resolver = capability.NewResolver(options.BaseURL, resource)

	submitter := config.submitter
	if submitter == nil {
		var err error
		if submitter, err = newHTTPSubmitter(options, logger); err != nil {
			return nil, err
		}
	}
	ret.Dispatcher = &operation.Dispatcher{
		Resolver:  ret.Resolver,
		Registry:  ret.Registry,
		Submitter: submitter,
		Timeout:   options.Timeout(),
		NewID:     config.newID,
		Logger:    logger,
	}
	ret.Matcher = notification.NewMatcher(ret.Registry,
		notification.WithDecoder(capability.StartMeeting, messaging.MeetingDecoder()),
		notification.WithLogger(logger))
	ret.Invitation = messaging.New(ret.Resolver, ret.Dispatcher,
		messaging.WithCallbackDefaults(options.Callback),
		messaging.WithLogger(logger))

	if options.Relay.Addr != "" {
		ret.redis = redis.NewClient(&redis.Options{
			Addr:     options.Relay.Addr,
			Password: options.Relay.Password,
			DB:       options.Relay.DB,
		})
		ret.Relay = notification.NewRelay(ret.redis,
			notification.WithChannel(options.Relay.Channel),
			notification.WithRelayLogger(logger))
	}
	return ret, nil
}

func newHTTPSubmitter(options *Options, logger *slog.Logger) (*transport.HTTP, error) {
	httpOptions := []transport.Option{transport.WithLogger(logger)}
	credentials, err := clientCredentials(context.Background(), &options.Auth)
	if err != nil {
		return nil, err
	}
	if credentials != nil {
		httpOptions = append(httpOptions, transport.WithClientCredentials(credentials))
	}
	return transport.New(httpOptions...), nil
}

// clientCredentials resolves the client credentials grant config; nil means unauthenticated.
func clientCredentials(ctx context.Context, auth *AuthOptions) (*clientcredentials.Config, error) {
	if auth.ConfigURL == "" {
		if !auth.Enabled() {
			return nil, nil
		}
		return &clientcredentials.Config{
			ClientID:     auth.ClientID,
			ClientSecret: auth.ClientSecret,
			TokenURL:     auth.TokenURL,
			Scopes:       auth.Scopes,
		}, nil
	}
	configURL := auth.ConfigURL
	if auth.EncryptionKey != "" {
		configURL += "|" + auth.EncryptionKey
	}
	oauthConfig := &authorizer.OAuthConfig{ConfigURL: configURL}
	if err := authorizer.New().EnsureConfig(ctx, oauthConfig); err != nil {
		return nil, fmt.Errorf("failed to load oauth2 config %q: %w", auth.ConfigURL, err)
	}
	client := oauthConfig.Config
	ret := &clientcredentials.Config{
		ClientID:     client.ClientID,
		ClientSecret: client.ClientSecret,
		TokenURL:     client.Endpoint.TokenURL,
		Scopes:       client.Scopes,
	}
	if auth.TokenURL != "" {
		ret.TokenURL = auth.TokenURL
	}
	if len(auth.Scopes) > 0 {
		ret.Scopes = auth.Scopes
	}
	return ret, nil
}
