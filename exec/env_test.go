package exec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotenv(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected map[string]string
	}{
		{
			name:    "simple assignments",
			content: "FOO=bar\nBAZ=qux\n",
			expected: map[string]string{
				"FOO": "bar",
				"BAZ": "qux",
			},
		},
		{
			name:    "comments and blank lines",
			content: "# signing credentials\n\nKEY=value\n",
			expected: map[string]string{
				"KEY": "value",
			},
		},
		{
			name:    "quoted values are unwrapped",
			content: "A=\"double\"\nB='single'\n",
			expected: map[string]string{
				"A": "double",
				"B": "single",
			},
		},
		{
			name:    "lines without equals are skipped",
			content: "not-a-var\nREAL=1\n",
			expected: map[string]string{
				"REAL": "1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".env")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			result, err := LoadDotenv(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestLoadDotenv_MissingFile(t *testing.T) {
	_, err := LoadDotenv(filepath.Join(t.TempDir(), ".env"))
	assert.Error(t, err)
}

func TestComposeEnv(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("FROM_DOTENV=yes\n"), 0644))

	env := ComposeEnv(root, map[string]string{"FROM_CONFIG": "1"})

	assert.Contains(t, env, "FROM_CONFIG=1")
	assert.Contains(t, env, "FROM_DOTENV=yes")
	// Process env is the base.
	assert.Greater(t, len(env), 2)
}

func TestComposeEnv_NoDotenv(t *testing.T) {
	env := ComposeEnv(t.TempDir(), map[string]string{"ONLY": "config"})
	assert.Contains(t, env, "ONLY=config")
}
