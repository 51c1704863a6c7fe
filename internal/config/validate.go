package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	defaultListen          = ":5000"
	defaultMaxRequestBytes = 10 << 20
	defaultTimeout         = 10
)

// defaultFormatters apply when the config omits the formatters key.
// An explicit empty list disables formatting.
var defaultFormatters = []Formatter{
	{Name: "prettier", Extensions: []string{"ts", "tsx", "js", "jsx"}, Command: "npx", Args: []string{"prettier", "--parser", "typescript"}, Timeout: 20},
	{Name: "rustfmt", Extensions: []string{"rs"}, Command: "rustfmt", Args: []string{"--edition", "2021"}, Timeout: defaultTimeout},
}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config, baseDir string) error {
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}
	if cfg.Concurrency < 0 {
		return fmt.Errorf("config: concurrency must be >= 0")
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = runtime.NumCPU()
	}
	if cfg.MaxRequestBytes < 0 {
		return fmt.Errorf("config: max-request-bytes must be >= 0")
	}
	if cfg.MaxRequestBytes == 0 {
		cfg.MaxRequestBytes = defaultMaxRequestBytes
	}
	if cfg.Presets != "" && !filepath.IsAbs(cfg.Presets) {
		cfg.Presets = filepath.Join(baseDir, cfg.Presets)
	}

	for _, tok := range cfg.NoiseTokens {
		if strings.TrimSpace(tok) == "" {
			return fmt.Errorf("config: 'noise-tokens' entries must be non-empty")
		}
	}

	if cfg.Formatters == nil {
		cfg.Formatters = make([]Formatter, len(defaultFormatters))
		copy(cfg.Formatters, defaultFormatters)
	}

	seen := make(map[string]bool)
	owner := make(map[string]string)
	for i := range cfg.Formatters {
		f := &cfg.Formatters[i]

		if f.Name == "" {
			return fmt.Errorf("config: formatter %d: 'name' is required", i+1)
		}
		if seen[f.Name] {
			return fmt.Errorf("config: duplicate formatter name %q", f.Name)
		}
		seen[f.Name] = true

		if strings.TrimSpace(f.Command) == "" {
			return fmt.Errorf("config: formatter %q: 'command' is required", f.Name)
		}
		if len(f.Extensions) == 0 {
			return fmt.Errorf("config: formatter %q: at least one extension is required", f.Name)
		}
		for _, ext := range f.Extensions {
			if ext == "" || strings.ContainsAny(ext, "./ ") {
				return fmt.Errorf("config: formatter %q: invalid extension %q (use e.g. \"ts\", without the dot)", f.Name, ext)
			}
			if prev, ok := owner[ext]; ok {
				return fmt.Errorf("config: formatter %q: extension %q already handled by %q", f.Name, ext, prev)
			}
			owner[ext] = f.Name
		}

		if f.Timeout < 0 {
			return fmt.Errorf("config: formatter %q: timeout must be >= 0", f.Name)
		}
		if f.Timeout == 0 {
			f.Timeout = defaultTimeout
		}
	}

	return nil
}
