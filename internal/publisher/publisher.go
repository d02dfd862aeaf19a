package publisher

import (
	"context"
	"fmt"

	"acf/localization/internal/domain"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Publisher hands a rule set to something the connector reads from.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, set domain.RuleSet) error
}

// PublishAll runs every publisher concurrently and returns the first error.
func PublishAll(ctx context.Context, set domain.RuleSet, publishers ...Publisher) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, p := range publishers {
		g.Go(func() error {
			if err := p.Publish(ctx, set); err != nil {
				return fmt.Errorf("%s publisher: %w", p.Name(), err)
			}
			log.Infof("✅ Published %d rules via %s (run %s)", len(set.Rules), p.Name(), set.RunID)
			return nil
		})
	}

	return g.Wait()
}
