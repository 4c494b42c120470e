package settings

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Session is a configured AWS connection context. Credential resolution and
// any region configured in the environment are delegated entirely to the
// SDK's ambient configuration chain; the settings only supply defaults and
// transport tuning.
type Session struct {
	cfg aws.Config
}

// NewSession builds a Session from the process-wide settings.
func NewSession(ctx context.Context) (*Session, error) {
	return Default().NewSession(ctx)
}

// NewSession builds a Session applying this instance's settings: the default
// region, a standard retryer capped at max_retry_attempts with exponential
// backoff seeded from base_backoff_ms, and an HTTP client carrying the
// connect timeout, read timeout, and connection pool size. Every call
// constructs a fresh session; nothing is cached here.
func (s *Settings) NewSession(ctx context.Context) (*Session, error) {
	poolSize := s.Int(KeyMaxPoolConnections)
	httpClient := awshttp.NewBuildableClient().
		WithTimeout(s.ReadTimeout()).
		WithDialerOptions(func(d *net.Dialer) {
			d.Timeout = s.ConnectTimeout()
		}).
		WithTransportOptions(func(tr *http.Transport) {
			tr.MaxIdleConnsPerHost = poolSize
		})

	maxAttempts := s.Int(KeyMaxRetryAttempts)
	maxBackoff := s.BaseBackoff() << uint(maxAttempts)
	retryer := func() aws.Retryer {
		return retry.NewStandard(func(o *retry.StandardOptions) {
			o.MaxAttempts = maxAttempts
			o.Backoff = retry.NewExponentialJitterBackoff(maxBackoff)
		})
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithDefaultRegion(s.String(KeyRegion)),
		config.WithRetryer(retryer),
		config.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Session{cfg: cfg}, nil
}

// Config returns the underlying aws.Config.
func (s *Session) Config() aws.Config {
	return s.cfg
}

// Region reports the region the session resolved to.
func (s *Session) Region() string {
	return s.cfg.Region
}

// DynamoDB returns a new DynamoDB client bound to this session.
func (s *Session) DynamoDB() *dynamodb.Client {
	return dynamodb.NewFromConfig(s.cfg)
}
