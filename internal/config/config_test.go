package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("PCQUOTE_POSTGRES_DSN", "")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.False(t, cfg.Postgres.Enabled)
	assert.Equal(t, time.Hour, cfg.Postgres.ConnMaxLifetime)
	assert.Equal(t, "data/raw", cfg.Pipeline.RawDir)
	assert.Equal(t, ".min.json", cfg.Pipeline.FileSuffix)
	assert.Equal(t, 5.0, cfg.Pipeline.ConflictToleranceW)
	assert.Equal(t, CollisionSuffix, cfg.Pipeline.IDCollisionPolicy)
	assert.Equal(t, 50.0, cfg.Evaluator.ExtraHeadroomW)
	assert.Equal(t, 50.0, cfg.Evaluator.PSUStepW)
	require.Contains(t, cfg.Sources, "pcpart")
	assert.True(t, cfg.Sources["pcpart"].Enabled)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	t.Setenv("PCQUOTE_POSTGRES_DSN", "")
	path := writeConfig(t, `
server:
  port: 9090
pipeline:
  raw_dir: /srv/raw
  id_collision_policy: fail
sources:
  dbgpu:
    enabled: false
    dir: gpus
evaluator:
  psu_step_w: 0
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, CollisionFail, cfg.Pipeline.IDCollisionPolicy)
	assert.False(t, cfg.Sources["dbgpu"].Enabled)
	assert.Equal(t, filepath.Join("/srv/raw", "gpus"), cfg.SourceDir("dbgpu"))
	assert.Equal(t, 0.0, cfg.Evaluator.PSUStepW)
	// 未在文件中出现的来源保留默认值
	assert.True(t, cfg.Sources["buildcores"].Enabled)
}

func TestLoadConfig_EnvOverridesDSN(t *testing.T) {
	t.Setenv("PCQUOTE_POSTGRES_DSN", "postgres://u:p@localhost:5432/pcquote")
	path := writeConfig(t, "postgres:\n  enabled: true\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost:5432/pcquote", cfg.Postgres.DSN)
}

func TestLoadConfig_Validation(t *testing.T) {
	t.Setenv("PCQUOTE_POSTGRES_DSN", "")
	tests := []struct {
		name string
		body string
	}{
		{"unknown collision policy", "pipeline:\n  id_collision_policy: overwrite\n"},
		{"negative headroom", "evaluator:\n  extra_headroom_w: -10\n"},
		{"postgres without dsn", "postgres:\n  enabled: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestSourceDir(t *testing.T) {
	cfg := &Config{
		Pipeline: PipelineConfig{RawDir: "data/raw"},
		Sources: map[string]SourceConfig{
			"abs": {Dir: "/opt/data"},
		},
	}
	assert.Equal(t, "/opt/data", cfg.SourceDir("abs"))
	assert.Equal(t, filepath.Join("data/raw", "pcpart"), cfg.SourceDir("pcpart"))
}
