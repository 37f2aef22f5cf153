package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsPointAtPublicDatasets(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultTopologyURL, cfg.Sources.TopologyURL)
	assert.Equal(t, DefaultEducationURL, cfg.Sources.EducationURL)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout())
	assert.Equal(t, "", cfg.RedisAddr())
	require.NoError(t, cfg.Validate())
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "choropleth.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
sources:
  topology_url: http://local/counties.json
  timeout_s: 3
output:
  dir: /tmp/maps
redis:
  host: cache.internal
`), 0o644))

	t.Setenv("EDUCATION_URL", "http://local/education.json")
	t.Setenv("FETCH_TIMEOUT_S", "7")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "http://local/counties.json", cfg.Sources.TopologyURL)
	assert.Equal(t, "http://local/education.json", cfg.Sources.EducationURL)
	assert.Equal(t, 7*time.Second, cfg.FetchTimeout())
	assert.Equal(t, "/tmp/maps", cfg.Output.Dir)
	assert.Equal(t, "cache.internal:6379", cfg.RedisAddr())
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestEnvOverridesIgnoreBadNumbers(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT_S", "soon")
	t.Setenv("WATCH_INTERVAL_S", "-5")
	t.Setenv("REDIS_DB", "x")
	cfg := Default()
	cfg.applyEnvOverrides()
	assert.Equal(t, 15, cfg.Sources.TimeoutSec)
	assert.Equal(t, time.Hour, cfg.WatchInterval())
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestS3PathStyleFromEnv(t *testing.T) {
	t.Setenv("S3_BUCKET", "maps")
	t.Setenv("S3_PATH_STYLE", "TRUE")
	cfg := Default()
	cfg.applyEnvOverrides()
	assert.Equal(t, "maps", cfg.S3.Bucket)
	assert.True(t, cfg.S3.PathStyle)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateRejectsEmptyURL(t *testing.T) {
	cfg := Default()
	cfg.Sources.EducationURL = ""
	assert.Error(t, cfg.Validate())
}
