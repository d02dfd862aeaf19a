package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// jsonRegistry reads ACF "local JSON" exports: one group per file as written
// by ACF's acf-json sync, or an array of groups as produced by the export tool.
type jsonRegistry struct {
	dir string
}

func NewJSONRegistry(dir string) Registry {
	return &jsonRegistry{dir: dir}
}

type jsonGroup struct {
	Key    string      `json:"key"`
	Title  string      `json:"title"`
	Active flexBool    `json:"active"`
	Fields []jsonField `json:"fields"`
}

type jsonField struct {
	Key       string          `json:"key"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Taxonomy  json.RawMessage `json:"taxonomy"` // A name on taxonomy fields, a filter list on post fields
	SubFields []jsonField     `json:"sub_fields"`
	Layouts   []jsonLayout    `json:"layouts"`
}

type jsonLayout struct {
	Key       string      `json:"key"`
	Name      string      `json:"name"`
	SubFields []jsonField `json:"sub_fields"`
}

// flexBool accepts true/false, 0/1 and "0"/"1"; ACF versions disagree.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(data), `"`) {
	case "true", "1":
		*b = true
	case "false", "0", "", "null":
		*b = false
	default:
		return fmt.Errorf("invalid boolean value %s", data)
	}
	return nil
}

func (r *jsonRegistry) ListGroups(ctx context.Context) ([]Group, error) {
	groups, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]Group, 0, len(groups))
	for _, g := range groups {
		result = append(result, Group{Key: g.Key, Title: g.Title, Active: bool(g.Active)})
	}
	return result, nil
}

func (r *jsonRegistry) ListFields(ctx context.Context) ([]Field, error) {
	groups, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]Field, 0)
	for _, g := range groups {
		result = flattenFields(result, g.Fields, g.Key)
	}
	return result, nil
}

// flattenFields appends fields and their descendants. Layout sub fields of a
// flexible content field take the flexible field as parent, like ACF does.
func flattenFields(dst []Field, fields []jsonField, parent string) []Field {
	for _, f := range fields {
		dst = append(dst, Field{
			Key:      f.Key,
			Type:     f.Type,
			Name:     f.Name,
			Parent:   parent,
			Taxonomy: taxonomyName(f.Taxonomy),
		})
		dst = flattenFields(dst, f.SubFields, f.Key)
		for _, layout := range f.Layouts {
			dst = flattenFields(dst, layout.SubFields, f.Key)
		}
	}
	return dst
}

func taxonomyName(raw json.RawMessage) string {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return ""
	}
	return name
}

func (r *jsonRegistry) load(ctx context.Context) ([]jsonGroup, error) {
	files, err := filepath.Glob(filepath.Join(r.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list local definitions in %s: %w", r.dir, err)
	}
	if len(files) == 0 {
		if _, statErr := os.Stat(r.dir); errors.Is(statErr, fs.ErrNotExist) {
			log.Debugf("Local definitions directory %s does not exist", r.dir)
		}
		return nil, nil
	}
	sort.Strings(files)

	groups := make([]jsonGroup, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		parsed, err := parseGroups(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		groups = append(groups, parsed...)
	}

	log.Debugf("Loaded %d local field groups from %s", len(groups), r.dir)
	return groups, nil
}

func parseGroups(data []byte) ([]jsonGroup, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var groups []jsonGroup
		if err := json.Unmarshal(data, &groups); err != nil {
			return nil, err
		}
		return groups, nil
	}

	var group jsonGroup
	if err := json.Unmarshal(data, &group); err != nil {
		return nil, err
	}
	return []jsonGroup{group}, nil
}
