// Package levels turns grids of symbolic tile codes into level descriptions
// the world can be populated from. It knows nothing about physics.
package levels

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// TileSize is the edge length of a grid cell in world pixels.
const TileSize = 64

// ErrMalformedLevel is the sentinel wrapped by every grid validation failure.
var ErrMalformedLevel = errors.New("malformed level")

// MalformedLevelError describes why a grid was rejected.
type MalformedLevelError struct {
	Level  string
	Row    int // 1-based; 0 when the problem is not tied to a row
	Col    int // 1-based; 0 when the problem is not tied to a cell
	Reason string
}

func (e *MalformedLevelError) Error() string {
	switch {
	case e.Row > 0 && e.Col > 0:
		return fmt.Sprintf("%s: level %q row %d col %d: %s", ErrMalformedLevel, e.Level, e.Row, e.Col, e.Reason)
	case e.Row > 0:
		return fmt.Sprintf("%s: level %q row %d: %s", ErrMalformedLevel, e.Level, e.Row, e.Reason)
	default:
		return fmt.Sprintf("%s: level %q: %s", ErrMalformedLevel, e.Level, e.Reason)
	}
}

// Unwrap lets errors.Is match ErrMalformedLevel.
func (e *MalformedLevelError) Unwrap() error {
	return ErrMalformedLevel
}

// GridPos is a cell coordinate.
type GridPos struct {
	Col, Row int
}

// Pixel returns the top-left corner of the cell in world pixels.
func (p GridPos) Pixel() core.Vec2 {
	return core.V(float64(p.Col*TileSize), float64(p.Row*TileSize))
}

// SpawnKind identifies a non-terrain token.
type SpawnKind int

const (
	SpawnDoor SpawnKind = iota
	SpawnSpikes
	SpawnOrc
	SpawnFly
	SpawnCoin
	SpawnSpawner
	SpawnKey
	SpawnJumpPad
)

func (k SpawnKind) String() string {
	switch k {
	case SpawnDoor:
		return "door"
	case SpawnSpikes:
		return "spikes"
	case SpawnOrc:
		return "orc"
	case SpawnFly:
		return "fly"
	case SpawnCoin:
		return "coin"
	case SpawnSpawner:
		return "spawner"
	case SpawnKey:
		return "key"
	case SpawnJumpPad:
		return "jump_pad"
	default:
		return "unknown"
	}
}

var spawnTokens = map[string]SpawnKind{
	"D": SpawnDoor,
	"s": SpawnSpikes,
	"O": SpawnOrc,
	"F": SpawnFly,
	"c": SpawnCoin,
	"S": SpawnSpawner,
	"K": SpawnKey,
	"j": SpawnJumpPad,
}

// TerrainCodes lists the solid terrain tokens.
var TerrainCodes = []string{"g", "gr", "gl", "hg", "d", "l", "w", "la"}

// IsTerrain reports whether token is a terrain code.
func IsTerrain(token string) bool {
	for _, c := range TerrainCodes {
		if c == token {
			return true
		}
	}
	return false
}

// Spawn is the initial placement of a dynamic or interactive entity.
type Spawn struct {
	Kind SpawnKind
	Pos  GridPos
}

// TerrainTile is one static terrain cell.
type TerrainTile struct {
	Code string
	Pos  GridPos
}

// Level is a parsed tile grid.
type Level struct {
	ID       string
	Name     string
	Cols     int
	Rows     int
	Hero     GridPos
	Terrain  []TerrainTile
	Spawns   []Spawn
	Unknown  []string // tokens that produced nothing, in grid order
	FilePath string
}

// PixelWidth returns the level width in world pixels.
func (l *Level) PixelWidth() float64 { return float64(l.Cols * TileSize) }

// PixelHeight returns the level height in world pixels.
func (l *Level) PixelHeight() float64 { return float64(l.Rows * TileSize) }

// Count returns how many spawns of the given kind the level has.
func (l *Level) Count(kind SpawnKind) int {
	n := 0
	for _, s := range l.Spawns {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// Parse builds a Level from grid rows. Each row is a whitespace separated
// list of tokens:
//
//	.                        empty
//	P                        hero spawn (exactly one)
//	D s O F c S K j          door, spikes, orc, fly, coin, spawner, key, jump pad
//	g gr gl hg d l w la      terrain: grass variants, dirt, lava, water, ladder
//
// Unknown tokens produce no entity and are recorded in Level.Unknown.
func Parse(id, name string, rows []string) (*Level, error) {
	grid := tokenize(rows)
	if len(grid) == 0 {
		return nil, &MalformedLevelError{Level: id, Reason: "grid is empty"}
	}

	cols := len(grid[0])
	for r, tokens := range grid {
		if len(tokens) != cols {
			return nil, &MalformedLevelError{
				Level:  id,
				Row:    r + 1,
				Reason: fmt.Sprintf("has %d columns, expected %d", len(tokens), cols),
			}
		}
	}

	level := &Level{ID: id, Name: name, Cols: cols, Rows: len(grid)}
	heroFound := false
	for r, tokens := range grid {
		for c, tok := range tokens {
			pos := GridPos{Col: c, Row: r}
			switch {
			case tok == ".":
			case tok == "P":
				if heroFound {
					return nil, &MalformedLevelError{Level: id, Row: r + 1, Col: c + 1, Reason: "second hero token"}
				}
				heroFound = true
				level.Hero = pos
			case IsTerrain(tok):
				level.Terrain = append(level.Terrain, TerrainTile{Code: tok, Pos: pos})
			default:
				if kind, ok := spawnTokens[tok]; ok {
					level.Spawns = append(level.Spawns, Spawn{Kind: kind, Pos: pos})
				} else {
					level.Unknown = append(level.Unknown, tok)
				}
			}
		}
	}

	if !heroFound {
		return nil, &MalformedLevelError{Level: id, Reason: "no hero token"}
	}
	return level, nil
}

// ParseText parses a level file body. Blank lines are skipped and lines
// starting with '#' are headers; "# name: ..." sets the level name.
func ParseText(id, text string) (*Level, error) {
	name := id
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			key, value, ok := strings.Cut(strings.TrimSpace(strings.TrimPrefix(trimmed, "#")), ":")
			if ok && strings.TrimSpace(key) == "name" {
				name = strings.TrimSpace(value)
			}
			continue
		}
		rows = append(rows, trimmed)
	}
	return Parse(id, name, rows)
}

func tokenize(rows []string) [][]string {
	var grid [][]string
	for _, row := range rows {
		tokens := strings.Fields(row)
		if len(tokens) == 0 {
			continue
		}
		grid = append(grid, tokens)
	}
	return grid
}
