package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	config := Default()
	require.NoError(t, config.Validate())

	assert.Equal(t, config.Bins, 30)
	assert.Equal(t, config.Reducer, "median")
	assert.Equal(t, config.Op().Name(), "median")
	assert.Equal(t, config.Conventions().SequentialFile, "sequential_results.csv")
	assert.Equal(t, config.Conventions().ParallelPattern, "parallel_results_*proc.csv")
}

func TestLoad_Empty(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, config, Default())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mmreport.yaml")
	content := "pictures_dir: out\nbins: 50\nlog_scale: false\nreducer: mean\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.PicturesDir, "out")
	assert.Equal(t, config.Bins, 50)
	assert.False(t, config.LogScale)
	assert.Equal(t, config.Reducer, "mean")
	assert.Equal(t, config.ResultsDir, "results")
	assert.Equal(t, config.DPI, 300)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"bins.yaml":       "bins: 0\n",
		"reducer.yaml":    "reducer: mode\n",
		"count.yaml":      "reducer: count\n",
		"std.yaml":        "reducer: std\n",
		"confidence.yaml": "confidence: 1.5\n",
		"dir.yaml":        "results_dir: \"\"\n",
	}
	for name, content := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalid, name)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_Reducers(t *testing.T) {
	config := Default()
	for _, name := range Reducers {
		config.Reducer = name
		require.NoError(t, config.Validate(), name)
		assert.Equal(t, config.Op().Name(), name)
	}
	for _, name := range []string{"count", "std", ""} {
		config.Reducer = name
		assert.ErrorIs(t, config.Validate(), ErrInvalid, name)
	}
}
