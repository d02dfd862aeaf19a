package repository

import (
	"testing"

	"acf/localization/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`CREATE TABLE wp_smartling_configuration_profiles (
		id INTEGER PRIMARY KEY,
		profile_name TEXT NOT NULL,
		is_active INTEGER NOT NULL,
		original_blog_id INTEGER NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO wp_smartling_configuration_profiles (id, profile_name, is_active, original_blog_id)
		VALUES (1, 'EN to DE', 1, 1), (2, 'EN to FR', 0, 1), (3, 'ES to EN', 1, 3)`)
	require.NoError(t, err)

	repo := NewProfileRepository(db, "wp_")

	profiles, err := repo.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Profile{
		{ID: 1, Name: "EN to DE", IsActive: true, OriginalBlogID: 1},
		{ID: 2, Name: "EN to FR", IsActive: false, OriginalBlogID: 1},
		{ID: 3, Name: "ES to EN", IsActive: true, OriginalBlogID: 3},
	}, profiles)

	main, err := repo.FindByMainBlog(ctx, 1)
	require.NoError(t, err)
	require.Len(t, main, 1)
	assert.Equal(t, "EN to DE", main[0].Name)

	none, err := repo.FindByMainBlog(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, none)
}
