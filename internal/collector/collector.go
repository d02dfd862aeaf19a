package collector

import (
	"context"
	"fmt"
	"slices"

	"acf/localization/internal/domain"
	"acf/localization/internal/registry"
	"acf/localization/internal/repository"
	"acf/localization/internal/site"

	log "github.com/sirupsen/logrus"
)

// Collector gathers ACF definitions from the local registry and from the
// database of every site that is the source of an active profile.
type Collector struct {
	registry    registry.Registry
	definitions repository.DefinitionRepository
	profiles    repository.ProfileRepository
	switcher    site.Switcher
}

func NewCollector(
	registry registry.Registry,
	definitions repository.DefinitionRepository,
	profiles repository.ProfileRepository,
	switcher site.Switcher,
) *Collector {
	return &Collector{
		registry:    registry,
		definitions: definitions,
		profiles:    profiles,
		switcher:    switcher,
	}
}

// CollectLocal maps the local registry's groups and fields to definitions.
func (c *Collector) CollectLocal(ctx context.Context) (domain.DefinitionSet, error) {
	groups, err := c.registry.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list local field groups: %w", err)
	}

	fields, err := c.registry.ListFields(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list local fields: %w", err)
	}

	defs := make(domain.DefinitionSet, len(groups)+len(fields))
	for _, g := range groups {
		defs.Add(domain.NewGroup(g.Key, g.Active))
	}
	for _, f := range fields {
		def := domain.NewField(f.Key, f.Type, f.Name, f.Parent)
		def.Taxonomy = f.Taxonomy
		defs.Add(def)
	}

	log.Debugf("Collected %d local definitions", len(defs))
	return defs, nil
}

// CollectDatabase reads the definitions stored by every site that is the
// source site of an active profile. A site that fails to read is logged and
// contributes nothing; the scan goes on with the remaining sites.
func (c *Collector) CollectDatabase(ctx context.Context) (domain.DefinitionSet, error) {
	log.Debug("Looking for ACF definitions in the database")

	blogs, err := c.blogsToSearch(ctx)
	if err != nil {
		return nil, err
	}

	defs := make(domain.DefinitionSet)
	for _, blog := range blogs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log.Debugf("Looking for profiles for blog %d", blog)
		applicable, err := c.profiles.FindByMainBlog(ctx, blog)
		if err != nil {
			log.Warnf("⚠️ Failed to read profiles for blog %d: %v", blog, err)
			continue
		}
		if len(applicable) == 0 {
			log.Debugf("No suitable profile found for blog %d", blog)
			continue
		}

		blogDefs, err := c.collectBlog(ctx, blog)
		if err != nil {
			log.Warnf("⚠️ Failed to read ACF definitions from blog %d: %v", blog, err)
			continue
		}

		for _, def := range blogDefs {
			defs.Add(def)
		}
		log.Debugf("Collected %d definitions from blog %d", len(blogDefs), blog)
	}

	return defs, nil
}

// blogsToSearch lists, in profile order and without repeats, the source
// sites of active profiles that belong to this installation.
func (c *Collector) blogsToSearch(ctx context.Context) ([]domain.BlogID, error) {
	blogs, err := c.definitions.ListBlogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}

	profiles, err := c.profiles.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	result := make([]domain.BlogID, 0, len(blogs))
	for _, p := range profiles {
		if !p.IsActive || !slices.Contains(blogs, p.OriginalBlogID) {
			continue
		}
		if !slices.Contains(result, p.OriginalBlogID) {
			result = append(result, p.OriginalBlogID)
		}
	}

	return result, nil
}

func (c *Collector) collectBlog(ctx context.Context, blog domain.BlogID) (domain.DefinitionSet, error) {
	release := site.Enter(c.switcher, blog)
	defer release()

	groups, err := c.definitions.ReadGroups(ctx)
	if err != nil {
		return nil, err
	}

	defs := make(domain.DefinitionSet)
	for _, g := range groups {
		defs.Add(domain.NewGroup(g.Key, true))

		fields, err := c.definitions.ReadFields(ctx, g.PostID, g.Key)
		if err != nil {
			return nil, err
		}
		for _, f := range fields {
			defs.Add(domain.NewField(f.Key, f.Type, f.Name, f.Parent))
		}
	}

	return defs, nil
}
