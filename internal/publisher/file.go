package publisher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"acf/localization/internal/domain"

	"gopkg.in/yaml.v3"
)

type filePublisher struct {
	path string
}

// NewFilePublisher writes rule sets to a YAML file, replacing it atomically.
func NewFilePublisher(path string) Publisher {
	return &filePublisher{path: path}
}

func (p *filePublisher) Name() string {
	return "file"
}

func (p *filePublisher) Publish(ctx context.Context, set domain.RuleSet) error {
	data, err := yaml.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to serialize rule set: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".rules-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), p.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", p.path, err)
	}

	return nil
}
