package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"acf/localization/internal/domain"

	"github.com/redis/go-redis/v9"
)

type redisPublisher struct {
	redisClient *redis.Client
	keyPrefix   string
}

// NewRedisPublisher stores the rule set under <prefix>rules and announces
// the run id on the <prefix>updates channel.
func NewRedisPublisher(redisClient *redis.Client, keyPrefix string) Publisher {
	return &redisPublisher{
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
	}
}

func (p *redisPublisher) Name() string {
	return "redis"
}

func (p *redisPublisher) RulesKey() string {
	return p.keyPrefix + "rules"
}

func (p *redisPublisher) UpdatesChannel() string {
	return p.keyPrefix + "updates"
}

func (p *redisPublisher) Publish(ctx context.Context, set domain.RuleSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to serialize rule set: %w", err)
	}

	_, err = p.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, p.RulesKey(), data, 0) // No expiration
		pipe.Publish(ctx, p.UpdatesChannel(), set.RunID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store rules in %s: %w", p.RulesKey(), err)
	}

	return nil
}
