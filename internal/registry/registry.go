package registry

import "context"

// Group is a field group as registered with ACF in-process.
type Group struct {
	Key    string
	Title  string
	Active bool
}

// Field is a field as registered with ACF in-process. Parent holds the key
// of the enclosing group or field.
type Field struct {
	Key      string
	Type     string
	Name     string
	Parent   string
	Taxonomy string
}

// Registry exposes the local (code-registered) ACF definitions.
type Registry interface {
	ListGroups(ctx context.Context) ([]Group, error)
	ListFields(ctx context.Context) ([]Field, error)
}

type staticRegistry struct {
	groups []Group
	fields []Field
}

// NewStaticRegistry returns a Registry serving fixed definitions.
func NewStaticRegistry(groups []Group, fields []Field) Registry {
	return &staticRegistry{groups: groups, fields: fields}
}

func (r *staticRegistry) ListGroups(ctx context.Context) ([]Group, error) {
	return r.groups, nil
}

func (r *staticRegistry) ListFields(ctx context.Context) ([]Field, error) {
	return r.fields, nil
}
