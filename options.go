package invitation

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/afs"
	"github.com/viant/invitation/messaging"
	"github.com/viant/invitation/notification"
	"github.com/viant/invitation/operation"
	"gopkg.in/yaml.v3"
)

// Options defines options for configuring an invitation service.
type Options struct {
	BaseURL         string                     `yaml:"baseURL" json:"baseURL,omitempty" short:"b" long:"base-url" description:"platform service base URL"`
	TimeoutMs       int                        `yaml:"timeoutMs,omitempty" json:"timeoutMs,omitempty" short:"t" long:"timeout" description:"notification wait timeout in ms"`
	SweepIntervalMs int                        `yaml:"sweepIntervalMs,omitempty" json:"sweepIntervalMs,omitempty" long:"sweep-interval" description:"expired operation sweep interval in ms"`
	LogLevel        string                     `yaml:"logLevel,omitempty" json:"logLevel,omitempty" short:"l" long:"log-level" description:"log level" choice:"debug" choice:"info" choice:"warn" choice:"error"`
	Callback        messaging.CallbackDefaults `yaml:"callback,omitempty" json:"callback,omitempty" group:"callback" namespace:"callback"`
	Ingress         IngressOptions             `yaml:"ingress,omitempty" json:"ingress,omitempty" group:"ingress" namespace:"ingress"`
	Auth            AuthOptions                `yaml:"auth,omitempty" json:"auth,omitempty" group:"auth" namespace:"auth"`
	Relay           RelayOptions               `yaml:"relay,omitempty" json:"relay,omitempty" group:"relay" namespace:"relay"`
	Metrics         MetricsOptions             `yaml:"metrics,omitempty" json:"metrics,omitempty" group:"metrics" namespace:"metrics"`
}

// IngressOptions configures the callback endpoint receiving notifications.
type IngressOptions struct {
	Path       string `yaml:"path,omitempty" json:"path,omitempty" long:"path" description:"callback path"`
	SigningKey string `yaml:"signingKey,omitempty" json:"-" long:"signing-key" description:"HMAC key required on callback bearer tokens"`
	Issuer     string `yaml:"issuer,omitempty" json:"issuer,omitempty" long:"issuer" description:"required callback token issuer"`
}

// AuthOptions configures OAuth2 client credentials for outbound submissions.
// ConfigURL names an OAuth2 client config (optionally scy encrypted with
// EncryptionKey); inline TokenURL/ClientID/ClientSecret are used without it.
type AuthOptions struct {
	ConfigURL     string `yaml:"configURL,omitempty" json:"configURL,omitempty" long:"config-url" description:"oauth2 client config location"`
	EncryptionKey string `yaml:"encryptionKey,omitempty" json:"-" long:"key" description:"oauth2 client config encryption key"`
	TokenURL     string   `yaml:"tokenURL,omitempty" json:"tokenURL,omitempty" long:"token-url" description:"oauth2 token URL"`
	ClientID     string   `yaml:"clientID,omitempty" json:"clientID,omitempty" long:"client-id" description:"oauth2 client id"`
	ClientSecret string   `yaml:"clientSecret,omitempty" json:"-" long:"client-secret" description:"oauth2 client secret"`
	Scopes       []string `yaml:"scopes,omitempty" json:"scopes,omitempty" long:"scope" description:"oauth2 scope"`
}

// Enabled reports whether client credentials are configured.
func (a *AuthOptions) Enabled() bool {
	return a.ConfigURL != "" || (a.TokenURL != "" && a.ClientID != "")
}

// RelayOptions configures the Redis notification relay.
type RelayOptions struct {
	Addr     string `yaml:"addr,omitempty" json:"addr,omitempty" long:"addr" description:"redis address; enables the relay"`
	Password string `yaml:"password,omitempty" json:"-" long:"password" description:"redis password"`
	DB       int    `yaml:"db,omitempty" json:"db,omitempty" long:"db" description:"redis database"`
	Channel  string `yaml:"channel,omitempty" json:"channel,omitempty" long:"channel" description:"pub/sub channel"`
}

// MetricsOptions configures Prometheus metrics.
type MetricsOptions struct {
	Enabled   bool   `yaml:"enabled,omitempty" json:"enabled,omitempty" long:"enabled" description:"export metrics"`
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty" long:"namespace" description:"metrics namespace"`
	Path      string `yaml:"path,omitempty" json:"path,omitempty" long:"path" description:"metrics path"`
}

// Init applies defaults.
func (o *Options) Init() {
	if o.TimeoutMs <= 0 {
		o.TimeoutMs = int(operation.DefaultTimeout / time.Millisecond)
	}
	if o.SweepIntervalMs <= 0 {
		o.SweepIntervalMs = 10000
	}
	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
	if o.Ingress.Path == "" {
		o.Ingress.Path = "/callback"
	}
	if o.Relay.Channel == "" {
		o.Relay.Channel = notification.DefaultChannel
	}
	if o.Metrics.Path == "" {
		o.Metrics.Path = "/metrics"
	}
}

// Timeout returns the notification wait timeout.
func (o *Options) Timeout() time.Duration {
	return time.Duration(o.TimeoutMs) * time.Millisecond
}

// SweepInterval returns the expired operation sweep interval.
func (o *Options) SweepInterval() time.Duration {
	return time.Duration(o.SweepIntervalMs) * time.Millisecond
}

// Validate checks required settings.
func (o *Options) Validate() error {
	if o.BaseURL == "" {
		return fmt.Errorf("baseURL was empty")
	}
	if o.Auth.ConfigURL == "" && o.Auth.TokenURL != "" && o.Auth.ClientID == "" {
		return fmt.Errorf("auth clientID was empty")
	}
	return nil
}

// LoadOptions loads YAML options from URL, which can be any afs supported location.
func LoadOptions(ctx context.Context, URL string) (*Options, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load options %v: %w", URL, err)
	}
	ret := &Options{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to parse options %v: %w", URL, err)
	}
	ret.Init()
	return ret, nil
}
