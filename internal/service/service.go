package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"acf/localization/internal/classifier"
	"acf/localization/internal/collector"
	"acf/localization/internal/diagnostics"
	"acf/localization/internal/domain"
	"acf/localization/internal/filter"
	"acf/localization/internal/publisher"
	"acf/localization/internal/reconciler"
	"acf/localization/internal/repository"
	"acf/localization/internal/rules"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// OptionPageContentType is registered with the connector when ACF options
// pages are installed.
const OptionPageContentType = repository.PostTypeOptionPage

// FieldRulesPriority runs field rules ahead of the connector's defaults.
const FieldRulesPriority = 1

type Options struct {
	// CollectDatabase layers the definitions stored in the database over
	// the local ones and verifies both agree. Without it only local
	// definitions are used.
	CollectDatabase bool
	AdminURL        string
	PostTypes       []string
}

type Service struct {
	collector   *collector.Collector
	definitions repository.DefinitionRepository
	diagnostics diagnostics.Sink
	publishers  []publisher.Publisher
	opts        Options
}

// Result is everything one generation run produced.
type Result struct {
	RunID       string
	GeneratedAt time.Time
	PostTypes   []string
	Definitions domain.DefinitionSet
	Buckets     domain.Buckets
	Verified    bool
	Mismatches  []reconciler.Mismatch
	Registry    *filter.Registry
	Rules       []domain.Rule
}

func (r *Result) RuleSet() domain.RuleSet {
	return domain.RuleSet{
		RunID:       r.RunID,
		GeneratedAt: r.GeneratedAt,
		Rules:       r.Rules,
	}
}

func NewService(
	collector *collector.Collector,
	definitions repository.DefinitionRepository,
	diagnostics diagnostics.Sink,
	publishers []publisher.Publisher,
	opts Options,
) *Service {
	return &Service{
		collector:   collector,
		definitions: definitions,
		diagnostics: diagnostics,
		publishers:  publishers,
		opts:        opts,
	}
}

// Generate runs the pipeline once and returns the rules the field filter
// yields. It only fails on cancellation; source errors degrade the output.
func (s *Service) Generate(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Definitions: domain.DefinitionSet{},
		Verified:    true,
		Registry:    filter.NewRegistry(),
	}

	result.PostTypes = s.postTypes(ctx)

	if slices.Contains(result.PostTypes, repository.PostTypeOptionPage) {
		log.Info("🔧 ACF options pages found, registering option page content type")
		result.Registry.RegisterContentType(OptionPageContentType)
		result.Registry.AddFilter(filter.FieldFilter, filter.DefaultPriority, filter.Append(rules.MenuSlugRule))
	}

	if s.hasACFTypes(result.PostTypes) {
		if err := s.generateFieldRules(ctx, result); err != nil {
			return nil, err
		}
	} else {
		log.Warn("⚠️ ACF post types are not registered, skipping field rules")
	}

	result.Rules = result.Registry.Apply(filter.FieldFilter, nil)
	if result.Rules == nil {
		result.Rules = []domain.Rule{}
	}

	log.Infof("✅ Generated %d rules (run %s)", len(result.Rules), result.RunID)
	return result, nil
}

func (s *Service) generateFieldRules(ctx context.Context, result *Result) error {
	local, err := s.collector.CollectLocal(ctx)
	if err != nil {
		log.Warnf("⚠️ Failed to read local ACF definitions: %v", err)
		local = domain.DefinitionSet{}
	}

	db := domain.DefinitionSet{}
	if s.opts.CollectDatabase {
		db, err = s.collector.CollectDatabase(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warnf("⚠️ An error occurred while generating filters from database: %v", err)
			db = domain.DefinitionSet{}
		}

		result.Verified, result.Mismatches = reconciler.Verify(local, db)
		if !result.Verified {
			for _, m := range result.Mismatches {
				log.Debugf("Definition mismatch %s", m)
			}
			s.diagnostics.AddMessage(s.changedConfigurationMessage())
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	result.Definitions = domain.Merge(local, db)
	result.Buckets = classifier.Classify(result.Definitions)
	log.Infof("🔄 Classified %d of %d definitions (copy %d, skip %d, localize %d, translate %d)",
		result.Buckets.Len(), len(result.Definitions),
		len(result.Buckets.Copy), len(result.Buckets.Skip),
		len(result.Buckets.Localize), len(result.Buckets.Translate))

	fieldRules := rules.Compile(result.Buckets, result.Definitions, rules.Options{
		TaxonomyFromField: !s.opts.CollectDatabase,
	})
	result.Registry.AddFilter(filter.FieldFilter, FieldRulesPriority, filter.Append(fieldRules...))

	return nil
}

// Run generates the rules and hands them to every publisher.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	result, err := s.Generate(ctx)
	if err != nil {
		return nil, err
	}

	if len(s.publishers) == 0 {
		log.Debug("No publishers configured")
		return result, nil
	}

	if err := publisher.PublishAll(ctx, result.RuleSet(), s.publishers...); err != nil {
		return result, err
	}

	return result, nil
}

// Watch runs once and again every time changes fires, until ctx is done or
// changes is closed. Failed runs are logged and do not stop watching.
func (s *Service) Watch(ctx context.Context, changes <-chan struct{}) error {
	if _, err := s.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		log.Errorf("❌ Rule generation failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("🛑 Watch stopped")
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			log.Info("🔄 Local definitions changed, regenerating rules")
			if _, err := s.Run(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.Errorf("❌ Rule generation failed: %v", err)
			}
		}
	}
}

// Verify compares local and database definitions without generating rules.
func (s *Service) Verify(ctx context.Context) (bool, []reconciler.Mismatch, error) {
	if !s.opts.CollectDatabase {
		return false, nil, errors.New("verification needs database collection enabled")
	}

	local, err := s.collector.CollectLocal(ctx)
	if err != nil {
		return false, nil, err
	}

	db, err := s.collector.CollectDatabase(ctx)
	if err != nil {
		return false, nil, err
	}

	ok, mismatches := reconciler.Verify(local, db)
	return ok, mismatches, nil
}

// postTypes merges the configured post types with those found in the main
// site's posts table.
func (s *Service) postTypes(ctx context.Context) []string {
	types := slices.Clone(s.opts.PostTypes)

	if s.definitions != nil {
		stored, err := s.definitions.ListPostTypes(ctx)
		if err != nil {
			log.Warnf("⚠️ Failed to read post types: %v", err)
		}
		for _, t := range stored {
			if !slices.Contains(types, t) {
				types = append(types, t)
			}
		}
	}

	return types
}

func (s *Service) hasACFTypes(postTypes []string) bool {
	return slices.Contains(postTypes, repository.PostTypeField) &&
		slices.Contains(postTypes, repository.PostTypeFieldGroup)
}

func (s *Service) changedConfigurationMessage() string {
	url := strings.TrimSuffix(s.opts.AdminURL, "/") + "/edit.php?post_type=acf-field-group&page=acf-settings-tools"
	msg := []string{
		"ACF Configuration has been changed.",
		"Please update groups and fields definitions for all sites (As PHP generated code).",
		fmt.Sprintf(`Use <strong><a href="%s">this</a></strong> page to generate export code and add it to your theme or extra plugin.`, url),
	}
	return strings.Join(msg, "<br/>")
}
