package filter

import (
	"slices"
	"sort"
	"sync"

	"acf/localization/internal/domain"
)

const (
	// FieldFilter is the connector's hook for field processing rules.
	FieldFilter = "smartling_register_field_filter"

	DefaultPriority = 10
)

// Func receives the rules registered so far and returns the extended list.
type Func func(rules []domain.Rule) []domain.Rule

type hook struct {
	priority int
	seq      int
	fn       Func
}

// Registry collects filter hooks and content types the way the host does:
// hooks run in ascending priority, registration order breaking ties.
type Registry struct {
	mutex        sync.Mutex
	hooks        map[string][]hook
	seq          int
	contentTypes []string
}

func NewRegistry() *Registry {
	return &Registry{
		hooks: make(map[string][]hook),
	}
}

func (r *Registry) AddFilter(name string, priority int, fn Func) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.seq++
	r.hooks[name] = append(r.hooks[name], hook{priority: priority, seq: r.seq, fn: fn})
}

// Apply runs the hooks registered under name over rules.
func (r *Registry) Apply(name string, rules []domain.Rule) []domain.Rule {
	r.mutex.Lock()
	hooks := slices.Clone(r.hooks[name])
	r.mutex.Unlock()

	sort.SliceStable(hooks, func(i, j int) bool {
		if hooks[i].priority != hooks[j].priority {
			return hooks[i].priority < hooks[j].priority
		}
		return hooks[i].seq < hooks[j].seq
	})

	for _, h := range hooks {
		rules = h.fn(rules)
	}
	return rules
}

// Append returns a Func adding extra after the incoming rules.
func Append(extra ...domain.Rule) Func {
	return func(rules []domain.Rule) []domain.Rule {
		merged := make([]domain.Rule, 0, len(rules)+len(extra))
		merged = append(merged, rules...)
		return append(merged, extra...)
	}
}

func (r *Registry) RegisterContentType(name string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !slices.Contains(r.contentTypes, name) {
		r.contentTypes = append(r.contentTypes, name)
	}
}

func (r *Registry) ContentTypes() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return slices.Clone(r.contentTypes)
}
