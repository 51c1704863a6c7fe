package preset

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var defaultCatalog []byte

// DefaultYAML returns the built-in catalog source, for scaffolding.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultCatalog...)
}

// File is one path/content pair of a preset.
type File struct {
	Path    string
	Content string
}

// OrderedFiles decodes a YAML mapping of path -> content, keeping
// declaration order.
type OrderedFiles []File

func (f *OrderedFiles) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: files must be a mapping of path to content", node.Line)
	}
	files := make(OrderedFiles, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		var content string
		if err := v.Decode(&content); err != nil {
			return fmt.Errorf("line %d: file %q: %w", v.Line, k.Value, err)
		}
		files = append(files, File{Path: k.Value, Content: content})
	}
	*f = files
	return nil
}

// Preset is a named bundle of starter files.
type Preset struct {
	Key   string       `yaml:"key"`
	Label string       `yaml:"label"`
	Files OrderedFiles `yaml:"files"`
}

// Paths returns the preset's file paths in declared order.
func (p Preset) Paths() []string {
	paths := make([]string, len(p.Files))
	for i, f := range p.Files {
		paths[i] = f.Path
	}
	return paths
}

// Catalog is a read-only, ordered set of presets.
type Catalog struct {
	presets []Preset
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var presets []Preset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("presets: %w", err)
	}
	if err := validate(presets); err != nil {
		return nil, err
	}
	return &Catalog{presets: presets}, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in presets: %v", err))
	}
	return c
}

// LoadFile reads a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func validate(presets []Preset) error {
	seen := make(map[string]bool)
	for i, p := range presets {
		if strings.TrimSpace(p.Key) == "" {
			return fmt.Errorf("presets: preset %d: 'key' is required", i+1)
		}
		if seen[p.Key] {
			return fmt.Errorf("presets: duplicate key %q", p.Key)
		}
		seen[p.Key] = true
		if len(p.Files) == 0 {
			return fmt.Errorf("presets: preset %q: at least one file is required", p.Key)
		}
		for _, f := range p.Files {
			if strings.TrimSpace(f.Path) == "" {
				return fmt.Errorf("presets: preset %q: empty file path", p.Key)
			}
		}
	}
	return nil
}

// All returns every preset in catalog order.
func (c *Catalog) All() []Preset {
	return c.presets
}

// Lookup finds a preset by key.
func (c *Catalog) Lookup(key string) (Preset, bool) {
	if c == nil || key == "" {
		return Preset{}, false
	}
	for _, p := range c.presets {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}
