package publisher

import (
	"context"
	"fmt"
	"time"

	"acf/localization/internal/config"
	"acf/localization/internal/domain"

	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const rulesPath = "/field-filters"

type httpPublisher struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client
}

// NewHTTPPublisher posts rule sets to the connector's field filter endpoint.
func NewHTTPPublisher(cfg config.ConnectorConfig) Publisher {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(1*time.Second).
		SetRetryMaxWaitTime(10*time.Second).
		SetHeader("Accept", "application/json")

	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &httpPublisher{
		rl:         rl,
		httpClient: client,
	}
}

func (p *httpPublisher) Name() string {
	return "connector"
}

func (p *httpPublisher) Publish(ctx context.Context, set domain.RuleSet) error {
	p.rl.Take()

	resp, err := p.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(set).
		Post(rulesPath)
	if err != nil {
		return fmt.Errorf("failed to post rules: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("connector rejected rules with status: %s", resp.Status())
	}

	return nil
}

func (p *httpPublisher) Close() error {
	return p.httpClient.Close()
}
