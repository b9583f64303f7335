package typedstream

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults read for the cmd/typedstream CLI. Fields mirror
// its global flags.
type Config struct {
	Strict bool `yaml:"strict"`
	Color  bool `yaml:"color"`
	Indent int  `yaml:"indent"`
}

// LoadConfig reads defaults from path (a YAML file), then from a ".env" file
// in the current directory, then from environment variables, each layer
// overriding the previous one. A missing config file or .env file is not an
// error and leaves the defaults in place; a config file that exists but is not
// valid YAML makes LoadConfig return nil and the parse error.
//
// Priority, lowest to highest: built-in defaults, path, .env, environment.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Strict: false,
		Color:  true,
		Indent: 2,
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	loadDotEnv(".env")

	if v := os.Getenv("TYPEDSTREAM_STRICT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			cfg.Strict = b
		}
	}
	if v := os.Getenv("TYPEDSTREAM_COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			cfg.Color = b
		}
	}
	if v := os.Getenv("TYPEDSTREAM_INDENT"); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			cfg.Indent = n
		}
	}

	return cfg, nil
}

// loadDotEnv reads a ".env" file and sets environment variables it defines,
// without overriding variables already set in the environment.
func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		if os.Getenv(key) == "" {
			os.Setenv(key, val)
		}
	}
}
