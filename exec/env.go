package exec

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// ComposeEnv builds the environment for a toolchain invocation: the current
// process environment, the configured env map, then a .env file at the
// project root if one exists. Later sources win.
func ComposeEnv(projectRoot string, extra map[string]string) []string {
	env := os.Environ()

	for k, v := range extra {
		env = append(env, k+"="+v)
	}

	dotenvVars, err := LoadDotenv(filepath.Join(projectRoot, ".env"))
	if err == nil {
		for k, v := range dotenvVars {
			env = append(env, k+"="+v)
		}
	}

	return env
}

func LoadDotenv(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	result := make(map[string]string)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, "=")
		if idx == -1 {
			continue
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])

		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		result[key] = value
	}

	return result, scanner.Err()
}
