package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acfl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
host:
  admin_url: https://example.com/wp-admin/
  multisite: false
  post_types: [acf-field, acf-field-group, acf_option_page]
acf:
  local_json_dir: /srv/theme/acf-json
database:
  host: db
  name: site
redis:
  enabled: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/wp-admin/", cfg.Host.AdminURL)
	assert.False(t, cfg.Host.Multisite)
	assert.Equal(t, "wp_", cfg.Host.TablePrefix)
	assert.Equal(t, []string{"acf-field", "acf-field-group", "acf_option_page"}, cfg.Host.PostTypes)
	assert.Equal(t, "/srv/theme/acf-json", cfg.ACF.LocalJSONDir)
	assert.True(t, cfg.ACF.CollectDatabase)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "acfl:", cfg.Redis.KeyPrefix)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acfl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  host: db\n"), 0o644))
	t.Setenv("ACFL_DATABASE_HOST", "mysql.internal")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mysql.internal", cfg.Database.Host)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.ErrorContains(t, cfg.Validate(), "no definition source")

	cfg.ACF.CollectDatabase = true
	assert.NoError(t, cfg.Validate())

	cfg.Connector.Enabled = true
	assert.ErrorContains(t, cfg.Validate(), "connector.base_url")
}
