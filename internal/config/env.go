package config

import (
	"bufio"
	"os"
	"strings"
	"unicode"
)

// EnvPrefix is prepended to the upper snake case form of a settings key, e.g. SPINCUBE_SPRING_CONSTANT.
const EnvPrefix = "SPINCUBE_"

// LoadDotEnv reads the given file (e.g. ".env") and sets environment variables for each
// line of the form KEY=VALUE. Empty lines and lines starting with # are skipped.
// Variables already present in the environment win over the file.
// The file may be missing; that is not an error.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseEnvLine(scanner.Text())
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		_ = os.Setenv(key, value)
	}
	return scanner.Err()
}

func parseEnvLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	i := strings.Index(line, "=")
	if i <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:i])
	value = strings.TrimSpace(line[i+1:])
	if key == "" {
		return "", "", false
	}
	if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	var b strings.Builder
	b.WriteString(EnvPrefix)
	prevLower := false
	for _, r := range key {
		if unicode.IsUpper(r) && prevLower {
			b.WriteByte('_')
		}
		prevLower = unicode.IsLower(r)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// ApplyEnv overrides settings from variables found by lookup (os.LookupEnv in production).
// Values are validated like any other source; rejected ones are returned and leave the key unchanged.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) []error {
	m := make(map[string]any)
	for _, key := range Keys() {
		if v, ok := lookup(EnvName(key)); ok {
			m[key] = v
		}
	}
	if len(m) == 0 {
		return nil
	}
	return c.Apply(m)
}
