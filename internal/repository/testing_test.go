package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

const postsSchema = `
CREATE TABLE %sposts (
	ID           INTEGER PRIMARY KEY,
	post_name    TEXT NOT NULL DEFAULT '',
	post_title   TEXT NOT NULL DEFAULT '',
	post_excerpt TEXT NOT NULL DEFAULT '',
	post_content TEXT NOT NULL DEFAULT '',
	post_type    TEXT NOT NULL DEFAULT 'post',
	post_status  TEXT NOT NULL DEFAULT 'publish',
	post_parent  INTEGER NOT NULL DEFAULT 0,
	menu_order   INTEGER NOT NULL DEFAULT 0
);`

type post struct {
	id        int64
	name      string
	title     string
	excerpt   string
	content   string
	postType  string
	status    string
	parent    int64
	menuOrder int
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Each connection of an in-memory database is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	return db
}

func createPosts(t *testing.T, db *sql.DB, prefix string, posts ...post) {
	t.Helper()

	_, err := db.Exec(fmt.Sprintf(postsSchema, prefix))
	require.NoError(t, err)

	for _, p := range posts {
		if p.status == "" {
			p.status = "publish"
		}
		_, err := db.Exec(
			fmt.Sprintf(`INSERT INTO %sposts (ID, post_name, post_title, post_excerpt, post_content, post_type, post_status, post_parent, menu_order)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, prefix),
			p.id, p.name, p.title, p.excerpt, p.content, p.postType, p.status, p.parent, p.menuOrder,
		)
		require.NoError(t, err)
	}
}

// serializedConfig renders an ACF field configuration the way PHP's
// serialize() does.
func serializedConfig(fieldType string) string {
	return fmt.Sprintf(`a:2:{s:4:"type";s:%d:"%s";s:8:"required";i:0;}`, len(fieldType), fieldType)
}

func groupPost(id int64, key, title string, order int) post {
	return post{id: id, name: key, title: title, postType: PostTypeFieldGroup, menuOrder: order}
}

func fieldPost(id, parent int64, key, name, fieldType string, order int) post {
	return post{
		id:        id,
		name:      key,
		title:     name,
		excerpt:   name,
		content:   serializedConfig(fieldType),
		postType:  PostTypeField,
		parent:    parent,
		menuOrder: order,
	}
}

var ctx = context.Background()
