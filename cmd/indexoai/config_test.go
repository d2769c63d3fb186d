package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/miku/indexoai"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigFile = `base_url: http://files.example.org/oai
repository_name: From File
chunk_size: 20
eprints:
  policy_url: http://files.example.org/policy
`

// loadTestConfig resets the package configuration and runs initConfig for a
// command parsed from args, with home pointing to a fresh directory.
func loadTestConfig(t *testing.T, args []string, env map[string]string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	for k, val := range env {
		t.Setenv(k, val)
	}

	v = viper.New()
	flagConfig = ""
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&flagConfig, "config", "", "")
	cmd.Flags().String("database", "", "")
	cmd.Flags().String("listen", ":8080", "")
	cmd.Flags().String("base-url", "", "")
	require.NoError(t, cmd.ParseFlags(args))
	require.NoError(t, initConfig(cmd))
	return home
}

func TestRepositoryConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "indexoai.yaml")
	require.NoError(t, os.WriteFile(file, []byte(testConfigFile), 0644))

	var tests = []struct {
		about   string
		args    []string
		env     map[string]string
		baseURL string
		name    string
		chunk   int
		policy  string
	}{
		{
			about:   "environment only",
			env:     map[string]string{"INDEXOAI_BASE_URL": "http://env.example.org/oai"},
			baseURL: "http://env.example.org/oai",
			name:    "env.example.org",
			chunk:   indexoai.DefaultChunkSize,
		},
		{
			about: "nested keys and numbers from the environment",
			env: map[string]string{
				"INDEXOAI_BASE_URL":           "http://env.example.org/oai",
				"INDEXOAI_EPRINTS_POLICY_URL": "http://env.example.org/policy",
				"INDEXOAI_CHUNK_SIZE":         "10",
			},
			baseURL: "http://env.example.org/oai",
			name:    "env.example.org",
			chunk:   10,
			policy:  "http://env.example.org/policy",
		},
		{
			about:   "config file",
			args:    []string{"--config", file},
			baseURL: "http://files.example.org/oai",
			name:    "From File",
			chunk:   20,
			policy:  "http://files.example.org/policy",
		},
		{
			about:   "environment overrides file, flag overrides both",
			args:    []string{"--config", file, "--base-url", "http://flag.example.org/oai"},
			env:     map[string]string{"INDEXOAI_BASE_URL": "http://env.example.org/oai", "INDEXOAI_REPOSITORY_NAME": "From Env"},
			baseURL: "http://flag.example.org/oai",
			name:    "From Env",
			chunk:   20,
			policy:  "http://files.example.org/policy",
		},
	}
	for _, test := range tests {
		t.Run(test.about, func(t *testing.T) {
			loadTestConfig(t, test.args, test.env)
			repo, err := repository()
			require.NoError(t, err)
			assert.Equal(t, test.baseURL, repo.BaseURL)
			assert.Equal(t, test.name, repo.RepositoryName)
			assert.Equal(t, test.chunk, repo.ChunkSize)
			assert.Equal(t, test.policy, repo.Eprints.PolicyURL)
			assert.Equal(t, "text/html", repo.MimeType)

			f, err := repo.Formats.Resolve(indexoai.PrefixPrpQDC)
			require.NoError(t, err)
			assert.Contains(t, f.Schema, indexoai.SchemaPath)
		})
	}
}

func TestRepositoryConfigDefaults(t *testing.T) {
	home := loadTestConfig(t, nil, nil)
	_, err := repository()
	assert.ErrorIs(t, err, indexoai.ErrNoBaseURL)
	assert.Equal(t, ":8080", v.GetString(cfgKeyListen))

	path, err := databasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DefaultDir, "catalog.db"), path)
}

func TestDatabasePath(t *testing.T) {
	home := loadTestConfig(t, []string{"--database", "~/data/catalog.db"}, nil)
	path, err := databasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "catalog.db"), path)

	loadTestConfig(t, nil, map[string]string{"INDEXOAI_DATABASE": "/var/lib/indexoai/catalog.db"})
	path, err = databasePath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/indexoai/catalog.db", path)
}

func TestMissingConfigFile(t *testing.T) {
	v = viper.New()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("database", "", "")
	flagConfig = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { flagConfig = "" })
	assert.Error(t, initConfig(cmd))
}
