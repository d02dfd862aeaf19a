package rules

import (
	"errors"
	"fmt"
	"regexp"

	"acf/localization/internal/domain"
)

// IndexWildcard stands for the row index ACF inserts between a repeating
// field's name and its sub field's name (rows_0_cell, rows_1_cell, ...).
const IndexWildcard = `_\d+_`

var (
	ErrCyclicDefinition  = errors.New("cyclic field definition")
	ErrMissingDefinition = errors.New("missing field definition")
)

// Only fields repeat; a group parent adds nothing to the path.
var fieldKeyPattern = regexp.MustCompile(`(?i)field_[0-9a-f]{12}`)

// FullPath returns the meta key pattern of a field: the names of its field
// ancestors and its own name, joined by IndexWildcard.
func FullPath(key string, defs domain.DefinitionSet) (string, error) {
	return fullPath(key, defs, make(map[string]struct{}))
}

func fullPath(key string, defs domain.DefinitionSet, visited map[string]struct{}) (string, error) {
	if _, seen := visited[key]; seen {
		return "", fmt.Errorf("%w: %s", ErrCyclicDefinition, key)
	}
	visited[key] = struct{}{}

	def, ok := defs[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingDefinition, key)
	}

	if !fieldKeyPattern.MatchString(def.Parent) {
		return def.Name, nil
	}

	prefix, err := fullPath(def.Parent, defs, visited)
	if err != nil {
		return "", err
	}

	return prefix + IndexWildcard + def.Name, nil
}
