package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlLevel is the YAML level file layout.
type yamlLevel struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"`
}

// ParseYAML parses a YAML level file. fallbackID is used when the file has no id.
func ParseYAML(fallbackID string, data []byte) (*Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	id := yl.ID
	if id == "" {
		id = fallbackID
	}
	name := yl.Name
	if name == "" {
		name = id
	}
	return Parse(id, name, yl.Rows)
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns the valid levels sorted by ID; files that fail to parse are
// reported in the joined error rather than skipped silently.
func (l *Loader) LoadAll() ([]*Level, error) {
	var levels []*Level
	var errs []error

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, errors.Join(errs...)
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var level *Level
	switch ext {
	case ".lvl", ".txt":
		level, err = ParseText(id, string(data))
	case ".yaml", ".yml":
		level, err = ParseYAML(id, data)
	default:
		err = fmt.Errorf("unsupported extension: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	level.FilePath = path
	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (*Level, error) {
	levels, err := l.LoadAll()
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("level not found: %s", id)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	switch ext {
	case ".lvl", ".txt", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
