package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed data/*.lvl data/town.map
var builtinFS embed.FS

// Builtin returns the embedded campaign levels sorted by ID.
func Builtin() ([]*Level, error) {
	entries, err := fs.Glob(builtinFS, "data/*.lvl")
	if err != nil {
		return nil, fmt.Errorf("listing builtin levels: %w", err)
	}
	sort.Strings(entries)

	levels := make([]*Level, 0, len(entries))
	for _, name := range entries {
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading builtin level %s: %w", name, err)
		}
		id := strings.TrimSuffix(path.Base(name), ".lvl")
		lvl, err := ParseText(id, string(data))
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

// BuiltinTown returns the embedded town hub.
func BuiltinTown() (*Town, error) {
	data, err := builtinFS.ReadFile("data/town.map")
	if err != nil {
		return nil, fmt.Errorf("reading builtin town: %w", err)
	}
	return ParseTownText("town", string(data))
}

// ParseTownText parses a town file body with the same header rules as ParseText.
func ParseTownText(id, text string) (*Town, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		rows = append(rows, trimmed)
	}
	return ParseTown(id, rows)
}
