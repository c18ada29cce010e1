package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, PolicyLog, cfg.Violation.Policy)
	assert.Equal(t, " \t", cfg.Tokens.Delimiters)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seqguard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"violation:\n  policy: silent\ntokens:\n  delimiters: \",;\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, PolicySilent, cfg.Violation.Policy)
	assert.Equal(t, ",;", cfg.Tokens.Delimiters)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, PolicyLog, cfg.Violation.Policy)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("policy override wins over file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "seqguard.yaml")
		require.NoError(t, os.WriteFile(path, []byte("violation:\n  policy: log\n"), 0o644))

		t.Setenv("SEQGUARD_VIOLATION_POLICY", "abort")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, PolicyAbort, cfg.Violation.Policy)
	})

	t.Run("delimiter override", func(t *testing.T) {
		t.Setenv("SEQGUARD_DELIMITERS", "|")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "|", cfg.Tokens.Delimiters)
	})

	t.Run("empty env is ignored", func(t *testing.T) {
		t.Setenv("SEQGUARD_VIOLATION_POLICY", "")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, PolicyLog, cfg.Violation.Policy)
	})
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Violation.Policy = "shrug"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Tokens.Delimiters = ""
	assert.Error(t, cfg.Validate())

	t.Run("bad policy via env fails Load", func(t *testing.T) {
		t.Setenv("SEQGUARD_VIOLATION_POLICY", "whatever")
		_, err := Load("")
		assert.Error(t, err)
	})
}
