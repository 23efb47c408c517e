package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/fastmrmr/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromOneBased(t *testing.T) {
	cfg := FromOneBased("data.mrmr", 3, 6)

	assert.Equal(t, "data.mrmr", cfg.File)
	assert.Equal(t, 2, cfg.ClassIndex)
	assert.Equal(t, 5, cfg.Count)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultFile, cfg.File)
	assert.Equal(t, 0, cfg.ClassIndex)
	assert.Equal(t, 10, cfg.Count)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		param string
	}{
		{"empty file", Config{File: "", ClassIndex: 0, Count: 1}, "file"},
		{"negative class", Config{File: "x", ClassIndex: -1, Count: 1}, "class_index"},
		{"zero count", Config{File: "x", ClassIndex: 0, Count: 0}, "count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			var cfgErr *errors.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.param, cfgErr.ParamName)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("file: other.mrmr\nclass: 2\nfeatures: 5\n"), 0o644))

	cfg, err := LoadFile(path, Default())
	require.NoError(t, err)
	assert.Equal(t, Config{File: "other.mrmr", ClassIndex: 1, Count: 4}, cfg)
}

func TestLoadFilePartialKeepsBase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("features: 3\n"), 0o644))

	cfg, err := LoadFile(path, Default())
	require.NoError(t, err)
	assert.Equal(t, DefaultFile, cfg.File)
	assert.Equal(t, 0, cfg.ClassIndex)
	assert.Equal(t, 2, cfg.Count)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), Default())
	var openErr *errors.FileOpenError
	assert.True(t, errors.As(err, &openErr))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unknown: 1\n"), 0o644))
	_, err = LoadFile(path, Default())
	var cfgErr *errors.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}
