package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "monozip.yaml"

// DefaultYAML is the built-in configuration. It mirrors what `monozip init`
// writes so users start from the effective defaults.
const DefaultYAML = `# monozip configuration
listen: ":5000"

# Formatter processes run at once per request. 0 means one per CPU.
concurrency: 0

# Largest accepted /generate request body.
max-request-bytes: 10485760

# Path to a presets catalog replacing the built-in one.
# presets: presets.yaml

# Extra lines to drop from pasted text, matched case-insensitively.
noise-tokens: []

formatters:
  - name: prettier
    extensions: [ts, tsx, js, jsx]
    command: npx
    args: [prettier, --parser, typescript]
    timeout: 20

  - name: rustfmt
    extensions: [rs]
    command: rustfmt
    args: [--edition, "2021"]
    timeout: 10
`

type Formatter struct {
	Name       string   `yaml:"name"`
	Extensions []string `yaml:"extensions"`
	Command    string   `yaml:"command"`
	Args       []string `yaml:"args"`
	Timeout    int      `yaml:"timeout"` // seconds
}

// TimeoutDuration returns the per-file formatting timeout.
func (f Formatter) TimeoutDuration() time.Duration {
	return time.Duration(f.Timeout) * time.Second
}

type Config struct {
	Listen          string      `yaml:"listen"`
	Concurrency     int         `yaml:"concurrency"`
	MaxRequestBytes int64       `yaml:"max-request-bytes"`
	Presets         string      `yaml:"presets"`
	NoiseTokens     []string    `yaml:"noise-tokens"`
	Formatters      []Formatter `yaml:"formatters"`
}

// Parse decodes YAML config data and validates it. Relative paths inside the
// config are resolved against baseDir.
func Parse(data []byte, baseDir string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg, baseDir); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := Parse([]byte(DefaultYAML), ".")
	if err != nil {
		panic("built-in config: " + err.Error())
	}
	return cfg
}

// Load reads a YAML config file and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, filepath.Dir(path))
}

// LoadOrDefault loads path, falling back to Default when the file does not
// exist and the caller did not ask for it explicitly.
func LoadOrDefault(path string, explicit bool) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// FormatterFor returns the formatter handling ext, if any.
func (c *Config) FormatterFor(ext string) (Formatter, bool) {
	for _, f := range c.Formatters {
		for _, e := range f.Extensions {
			if e == ext {
				return f, true
			}
		}
	}
	return Formatter{}, false
}
