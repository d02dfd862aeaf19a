package repository

import (
	"context"
	"database/sql"
	"fmt"

	"acf/localization/internal/domain"
	"acf/localization/internal/site"

	"github.com/elliotchance/phpserialize"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

const (
	PostTypeFieldGroup = "acf-field-group"
	PostTypeField      = "acf-field"
	PostTypeOptionPage = "acf_option_page"

	postStatusPublish = "publish"
)

// GroupRecord is a field group stored as a post.
type GroupRecord struct {
	PostID int64
	Key    string
	Title  string
}

// FieldRecord is a field stored as a post. Parent is the key of the
// enclosing group or field.
type FieldRecord struct {
	PostID int64
	Key    string
	Name   string
	Type   string
	Parent string
}

// DefinitionRepository reads ACF definitions stored in WordPress tables.
// Group and field reads are scoped to the switcher's current site.
type DefinitionRepository interface {
	ListBlogs(ctx context.Context) ([]domain.BlogID, error)
	ListPostTypes(ctx context.Context) ([]string, error)
	ReadGroups(ctx context.Context) ([]GroupRecord, error)
	ReadFields(ctx context.Context, parentID int64, parentKey string) ([]FieldRecord, error)
}

type definitionRepository struct {
	db          *sql.DB
	switcher    site.Switcher
	tablePrefix string
	multisite   bool
	rl          ratelimit.Limiter
}

func NewDefinitionRepository(db *sql.DB, switcher site.Switcher, tablePrefix string, multisite bool, maxQueriesPerSecond int) DefinitionRepository {
	rl := ratelimit.NewUnlimited()
	if maxQueriesPerSecond > 0 {
		rl = ratelimit.New(maxQueriesPerSecond)
	}

	return &definitionRepository{
		db:          db,
		switcher:    switcher,
		tablePrefix: tablePrefix,
		multisite:   multisite,
		rl:          rl,
	}
}

// TablePrefix returns the table prefix of a site: the base prefix for the
// main site, base + "<id>_" for the others.
func TablePrefix(base string, blogID domain.BlogID) string {
	if blogID <= domain.MainBlogID {
		return base
	}
	return fmt.Sprintf("%s%d_", base, blogID)
}

func (r *definitionRepository) postsTable() string {
	return TablePrefix(r.tablePrefix, r.switcher.Current()) + "posts"
}

func (r *definitionRepository) ListBlogs(ctx context.Context) ([]domain.BlogID, error) {
	if !r.multisite {
		return []domain.BlogID{domain.MainBlogID}, nil
	}

	r.rl.Take()
	query := fmt.Sprintf(`SELECT blog_id FROM %sblogs ORDER BY blog_id`, r.tablePrefix)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]domain.BlogID, 0)
	for rows.Next() {
		var id domain.BlogID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan blog id: %w", err)
		}
		blogs = append(blogs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}

	return blogs, nil
}

func (r *definitionRepository) ListPostTypes(ctx context.Context) ([]string, error) {
	r.rl.Take()
	query := fmt.Sprintf(`SELECT DISTINCT post_type FROM %s ORDER BY post_type`, r.postsTable())
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list post types: %w", err)
	}
	defer rows.Close()

	types := make([]string, 0)
	for rows.Next() {
		var postType string
		if err := rows.Scan(&postType); err != nil {
			return nil, fmt.Errorf("failed to scan post type: %w", err)
		}
		types = append(types, postType)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list post types: %w", err)
	}

	return types, nil
}

func (r *definitionRepository) ReadGroups(ctx context.Context) ([]GroupRecord, error) {
	r.rl.Take()
	query := fmt.Sprintf(`
	SELECT ID, post_name, post_title
	FROM %s
	WHERE post_type = ? AND post_status = ?
	ORDER BY menu_order ASC, post_title ASC`, r.postsTable())

	rows, err := r.db.QueryContext(ctx, query, PostTypeFieldGroup, postStatusPublish)
	if err != nil {
		return nil, fmt.Errorf("failed to read field groups: %w", err)
	}
	defer rows.Close()

	groups := make([]GroupRecord, 0)
	for rows.Next() {
		var g GroupRecord
		if err := rows.Scan(&g.PostID, &g.Key, &g.Title); err != nil {
			return nil, fmt.Errorf("failed to scan field group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read field groups: %w", err)
	}

	return groups, nil
}

// ReadFields returns the fields stored under parentID followed, field by
// field, by everything nested below them.
func (r *definitionRepository) ReadFields(ctx context.Context, parentID int64, parentKey string) ([]FieldRecord, error) {
	children, err := r.readChildFields(ctx, parentID, parentKey)
	if err != nil {
		return nil, err
	}

	fields := make([]FieldRecord, 0, len(children))
	for _, field := range children {
		fields = append(fields, field)

		nested, err := r.ReadFields(ctx, field.PostID, field.Key)
		if err != nil {
			return nil, err
		}
		fields = append(fields, nested...)
	}

	return fields, nil
}

func (r *definitionRepository) readChildFields(ctx context.Context, parentID int64, parentKey string) ([]FieldRecord, error) {
	r.rl.Take()
	query := fmt.Sprintf(`
	SELECT ID, post_name, post_excerpt, post_content
	FROM %s
	WHERE post_type = ? AND post_status = ? AND post_parent = ?
	ORDER BY menu_order ASC, post_title ASC`, r.postsTable())

	rows, err := r.db.QueryContext(ctx, query, PostTypeField, postStatusPublish, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to read fields of %s: %w", parentKey, err)
	}
	defer rows.Close()

	fields := make([]FieldRecord, 0)
	for rows.Next() {
		var (
			f       FieldRecord
			content string
		)
		if err := rows.Scan(&f.PostID, &f.Key, &f.Name, &content); err != nil {
			return nil, fmt.Errorf("failed to scan field of %s: %w", parentKey, err)
		}

		f.Parent = parentKey
		f.Type = decodeFieldType(f.Key, content)
		fields = append(fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fields of %s: %w", parentKey, err)
	}

	return fields, nil
}

// decodeFieldType extracts "type" from the PHP-serialized field
// configuration ACF keeps in post_content. A configuration that cannot be
// decoded yields an empty type, leaving the field unclassified.
func decodeFieldType(key, content string) string {
	configuration, err := phpserialize.UnmarshalAssociativeArray([]byte(content))
	if err != nil {
		log.Warnf("⚠️ Failed to decode configuration of field %s: %v", key, err)
		return ""
	}

	fieldType, ok := configuration["type"].(string)
	if !ok {
		log.Debugf("Field configuration has no type: %q", content)
		return ""
	}

	return fieldType
}
