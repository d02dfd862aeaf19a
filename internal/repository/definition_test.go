package repository

import (
	"testing"

	"acf/localization/internal/domain"
	"acf/localization/internal/site"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablePrefix(t *testing.T) {
	assert.Equal(t, "wp_", TablePrefix("wp_", domain.MainBlogID))
	assert.Equal(t, "wp_", TablePrefix("wp_", 0))
	assert.Equal(t, "wp_7_", TablePrefix("wp_", 7))
}

func TestDefinitionRepository_ListBlogs(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`CREATE TABLE wp_blogs (blog_id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO wp_blogs (blog_id) VALUES (3), (1), (2)`)
	require.NoError(t, err)

	repo := NewDefinitionRepository(db, site.NewSwitcher(domain.MainBlogID), "wp_", true, 0)
	blogs, err := repo.ListBlogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.BlogID{1, 2, 3}, blogs)

	single := NewDefinitionRepository(db, site.NewSwitcher(domain.MainBlogID), "wp_", false, 0)
	blogs, err = single.ListBlogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.BlogID{domain.MainBlogID}, blogs)
}

func TestDefinitionRepository_ReadGroupsUsesCurrentSite(t *testing.T) {
	db := openTestDB(t)
	createPosts(t, db, "wp_",
		groupPost(10, "group_main00000001", "Main", 0),
	)
	createPosts(t, db, "wp_2_",
		groupPost(20, "group_b00000000002", "Beta", 1),
		groupPost(21, "group_a00000000001", "Alpha", 1),
		groupPost(22, "group_c00000000003", "First", 0),
		post{id: 23, name: "group_draft0000001", title: "Draft", postType: PostTypeFieldGroup, status: "draft"},
		post{id: 24, name: "hello-world", title: "Hello", postType: "post"},
	)

	switcher := site.NewSwitcher(domain.MainBlogID)
	repo := NewDefinitionRepository(db, switcher, "wp_", true, 100)

	groups, err := repo.ReadGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "group_main00000001", groups[0].Key)

	release := site.Enter(switcher, 2)
	groups, err = repo.ReadGroups(ctx)
	release()
	require.NoError(t, err)

	// menu_order first, then title
	assert.Equal(t, []GroupRecord{
		{PostID: 22, Key: "group_c00000000003", Title: "First"},
		{PostID: 21, Key: "group_a00000000001", Title: "Alpha"},
		{PostID: 20, Key: "group_b00000000002", Title: "Beta"},
	}, groups)
}

func TestDefinitionRepository_ReadFieldsRecursesIntoSubFields(t *testing.T) {
	db := openTestDB(t)
	createPosts(t, db, "wp_",
		groupPost(1, "group_5a1b2c3d4e5f6", "Product", 0),
		fieldPost(2, 1, "field_5a1b2c3d4e5f7", "price", "number", 0),
		fieldPost(3, 1, "field_5a1b2c3d4e5f8", "variants", "repeater", 1),
		fieldPost(4, 3, "field_5a1b2c3d4e5f9", "color", "color_picker", 0),
		fieldPost(5, 3, "field_5a1b2c3d4e600", "photo", "image", 1),
		fieldPost(6, 1, "field_5a1b2c3d4e601", "title", "text", 2),
	)

	repo := NewDefinitionRepository(db, site.NewSwitcher(domain.MainBlogID), "wp_", false, 0)
	fields, err := repo.ReadFields(ctx, 1, "group_5a1b2c3d4e5f6")
	require.NoError(t, err)

	assert.Equal(t, []FieldRecord{
		{PostID: 2, Key: "field_5a1b2c3d4e5f7", Name: "price", Type: "number", Parent: "group_5a1b2c3d4e5f6"},
		{PostID: 3, Key: "field_5a1b2c3d4e5f8", Name: "variants", Type: "repeater", Parent: "group_5a1b2c3d4e5f6"},
		{PostID: 4, Key: "field_5a1b2c3d4e5f9", Name: "color", Type: "color_picker", Parent: "field_5a1b2c3d4e5f8"},
		{PostID: 5, Key: "field_5a1b2c3d4e600", Name: "photo", Type: "image", Parent: "field_5a1b2c3d4e5f8"},
		{PostID: 6, Key: "field_5a1b2c3d4e601", Name: "title", Type: "text", Parent: "group_5a1b2c3d4e5f6"},
	}, fields)
}

func TestDefinitionRepository_ReadFieldsInvalidConfiguration(t *testing.T) {
	db := openTestDB(t)
	broken := fieldPost(3, 1, "field_5a1b2c3d4e5f8", "weight", "number", 1)
	broken.content = "not serialized"
	createPosts(t, db, "wp_",
		groupPost(1, "group_5a1b2c3d4e5f6", "Product", 0),
		fieldPost(2, 1, "field_5a1b2c3d4e5f7", "price", "number", 0),
		broken,
		fieldPost(4, 1, "field_5a1b2c3d4e5f9", "title", "text", 2),
	)

	repo := NewDefinitionRepository(db, site.NewSwitcher(domain.MainBlogID), "wp_", false, 0)
	fields, err := repo.ReadFields(ctx, 1, "group_5a1b2c3d4e5f6")
	require.NoError(t, err)

	assert.Equal(t, []FieldRecord{
		{PostID: 2, Key: "field_5a1b2c3d4e5f7", Name: "price", Type: "number", Parent: "group_5a1b2c3d4e5f6"},
		{PostID: 3, Key: "field_5a1b2c3d4e5f8", Name: "weight", Type: "", Parent: "group_5a1b2c3d4e5f6"},
		{PostID: 4, Key: "field_5a1b2c3d4e5f9", Name: "title", Type: "text", Parent: "group_5a1b2c3d4e5f6"},
	}, fields)
}

func TestDefinitionRepository_ListPostTypes(t *testing.T) {
	db := openTestDB(t)
	createPosts(t, db, "wp_",
		groupPost(1, "group_5a1b2c3d4e5f6", "Product", 0),
		fieldPost(2, 1, "field_5a1b2c3d4e5f7", "price", "number", 0),
		post{id: 3, name: "options", postType: PostTypeOptionPage},
		post{id: 4, name: "hello", postType: "post"},
		post{id: 5, name: "again", postType: "post"},
	)

	repo := NewDefinitionRepository(db, site.NewSwitcher(domain.MainBlogID), "wp_", false, 0)
	types, err := repo.ListPostTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{PostTypeField, PostTypeFieldGroup, PostTypeOptionPage, "post"}, types)
}

func TestDefinitionRepository_MissingTable(t *testing.T) {
	db := openTestDB(t)
	repo := NewDefinitionRepository(db, site.NewSwitcher(5), "wp_", true, 0)

	_, err := repo.ReadGroups(ctx)
	assert.ErrorContains(t, err, "failed to read field groups")
}
