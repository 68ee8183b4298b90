package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".code-context.yml")
	require.NoError(t, os.WriteFile(path, []byte(
		"output_dir: context-files\nno_comments: true\nno_function_bodies: true\nsingle_file: true\n"), 0o644))

	config := Config{ConfigPath: path}
	require.NoError(t, loadConfigFile(&config))
	assert.Equal(t, "context-files", config.OutputDir)
	assert.True(t, config.NoComments)
	assert.True(t, config.NoFunctionBodies)
	assert.True(t, config.SingleFile)
	assert.False(t, config.NoStats)
}

func TestLoadConfigFileDoesNotOverrideFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".code-context.yml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: from-config\n"), 0o644))

	config := Config{ConfigPath: path, OutputDir: "from-flag"}
	require.NoError(t, loadConfigFile(&config))
	assert.Equal(t, "from-flag", config.OutputDir)
}

func TestLoadConfigFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		config := Config{ConfigPath: filepath.Join(t.TempDir(), "absent.yml")}
		err := loadConfigFile(&config)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yml")
		require.NoError(t, os.WriteFile(path, []byte("output_dir: [\n"), 0o644))
		config := Config{ConfigPath: path}
		err := loadConfigFile(&config)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("no config path is fine", func(t *testing.T) {
		config := Config{}
		assert.NoError(t, loadConfigFile(&config))
	})
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(envPrefix+"OUTPUT_DIR", "from-env")
	t.Setenv(envPrefix+"NO_COMMENTS", "true")
	t.Setenv(envPrefix+"NO_FUNCTION_BODIES", "1")
	t.Setenv(envPrefix+"SINGLE_FILE", "not-a-bool")

	config := Config{}
	applyEnv(&config)
	assert.Equal(t, "from-env", config.OutputDir)
	assert.True(t, config.NoComments)
	assert.True(t, config.NoFunctionBodies)
	assert.False(t, config.SingleFile)
}

func TestApplyEnvDoesNotOverrideFlags(t *testing.T) {
	t.Setenv(envPrefix+"OUTPUT_DIR", "from-env")

	config := Config{OutputDir: "from-flag"}
	applyEnv(&config)
	assert.Equal(t, "from-flag", config.OutputDir)
}

func TestEnvYieldsToFlagsButBeatsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".code-context.yml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: from-config\n"), 0o644))
	t.Setenv(envPrefix+"OUTPUT_DIR", "from-env")

	config := Config{ConfigPath: path}
	applyEnv(&config)
	require.NoError(t, loadConfigFile(&config))
	assert.Equal(t, "from-env", config.OutputDir)
}

func TestValidateConfig(t *testing.T) {
	err := validateConfig(&Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InputPath")
	assert.Contains(t, err.Error(), "required")

	err = validateConfig(&Config{InputPath: "/"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filesystem root")

	assert.NoError(t, validateConfig(&Config{InputPath: "src"}))
}
