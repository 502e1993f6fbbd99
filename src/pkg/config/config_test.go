package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	localConfig, e := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Nil(t, e)
	assert.Nil(t, localConfig)
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	_, e := LoadConfig(writeConfig(t, "{not json"))
	assert.NotNil(t, e)
}

func TestLoadConfigMergesDefaults(t *testing.T) {
	localConfig, e := LoadConfig(writeConfig(t, `{"output_dir": "out/transcripts", "save_ocr_text": true}`))
	require.Nil(t, e)
	require.NotNil(t, localConfig)

	merged := MergeWithDefaults(*localConfig)

	assert.Equal(t, "out/transcripts", merged.OutputDir)
	assert.True(t, merged.SaveOcrText)
	assert.Equal(t, "eng", merged.Language)
	assert.Equal(t, 200.0, merged.DPI)
}

func TestInitializeConfigWithoutFileKeepsDefaults(t *testing.T) {
	t.Cleanup(func() { Cfg = DefaultValueConfig() })
	Cfg.OutputDir = "changed"

	InitializeConfig(filepath.Join(t.TempDir(), "absent.json"))

	assert.Equal(t, DefaultValueConfig().OutputDir, Cfg.OutputDir)
}

func TestInitializeConfigKeepsServerSection(t *testing.T) {
	t.Cleanup(func() { Cfg = DefaultValueConfig() })

	InitializeConfig(writeConfig(t, `{"language": "eng+hin", "server": {"port": 9000}}`))

	assert.Equal(t, "eng+hin", Cfg.Language)
	assert.JSONEq(t, `{"port": 9000}`, string(Cfg.Server))
}

func TestMissingEnvVars(t *testing.T) {
	t.Setenv("TRANSCRIPT_TEST_PRESENT", "yes")
	t.Setenv("TRANSCRIPT_TEST_BLANK", "  ")

	missing := MissingEnvVars("TRANSCRIPT_TEST_PRESENT", "TRANSCRIPT_TEST_BLANK", "TRANSCRIPT_TEST_ABSENT_VAR")
	assert.Equal(t, []string{"TRANSCRIPT_TEST_BLANK", "TRANSCRIPT_TEST_ABSENT_VAR"}, missing)
}
