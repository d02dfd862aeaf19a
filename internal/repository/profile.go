package repository

import (
	"context"
	"database/sql"
	"fmt"

	"acf/localization/internal/domain"
)

// ProfileRepository reads the translation connector's configuration profiles.
// Profiles live in the network-wide table, whatever site is current.
type ProfileRepository interface {
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
	FindByMainBlog(ctx context.Context, blogID domain.BlogID) ([]domain.Profile, error)
}

type profileRepository struct {
	db    *sql.DB
	table string
}

func NewProfileRepository(db *sql.DB, tablePrefix string) ProfileRepository {
	return &profileRepository{
		db:    db,
		table: tablePrefix + "smartling_configuration_profiles",
	}
}

func (r *profileRepository) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	query := fmt.Sprintf(`SELECT id, profile_name, is_active, original_blog_id FROM %s ORDER BY id`, r.table)
	return r.query(ctx, query)
}

// FindByMainBlog returns the active profiles translating from blogID.
func (r *profileRepository) FindByMainBlog(ctx context.Context, blogID domain.BlogID) ([]domain.Profile, error) {
	query := fmt.Sprintf(`
	SELECT id, profile_name, is_active, original_blog_id
	FROM %s
	WHERE original_blog_id = ? AND is_active = 1
	ORDER BY id`, r.table)
	return r.query(ctx, query, blogID)
}

func (r *profileRepository) query(ctx context.Context, query string, args ...any) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]domain.Profile, 0)
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.IsActive, &p.OriginalBlogID); err != nil {
			return nil, fmt.Errorf("failed to scan configuration profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read configuration profiles: %w", err)
	}

	return profiles, nil
}
