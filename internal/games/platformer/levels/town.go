package levels

import (
	"fmt"
	"strings"
)

// TownTileKind classifies a town cell.
type TownTileKind int

const (
	TownGrass TownTileKind = iota
	TownWater
	TownPath
	TownDecoration
	TownBuilding
	TownShopDoor
	TownDoor
)

// TownTile is one non-empty town cell.
type TownTile struct {
	Kind TownTileKind
	Code string
	Pos  GridPos
}

// Blocking reports whether the town hero collides with the tile.
// The hero keeps to the paths: grass, water and building walls block.
func (t TownTile) Blocking() bool {
	switch t.Kind {
	case TownGrass, TownWater, TownBuilding:
		return true
	default:
		return false
	}
}

// Town is a parsed hub map.
type Town struct {
	ID    string
	Cols  int
	Rows  int
	Hero  GridPos
	Tiles []TownTile
}

// PixelWidth returns the town width in world pixels.
func (t *Town) PixelWidth() float64 { return float64(t.Cols * TileSize) }

// PixelHeight returns the town height in world pixels.
func (t *Town) PixelHeight() float64 { return float64(t.Rows * TileSize) }

// ParseTown builds a Town from grid rows. Tokens:
//
//	.            empty
//	P            hero spawn (exactly one)
//	D            town door back to the levels (at least one)
//	g            grass
//	w<xx>        water, xx is the edge variant (tl, tm, ..., br)
//	p<xx>        dirt path
//	b1 b2 b3     bushes
//	r<x>         building part; rD is the shop door
func ParseTown(id string, rows []string) (*Town, error) {
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

	town := &Town{ID: id, Cols: cols, Rows: len(grid)}
	heroFound, doorFound := false, false
	for r, tokens := range grid {
		for c, tok := range tokens {
			pos := GridPos{Col: c, Row: r}
			var kind TownTileKind
			switch {
			case tok == ".":
				continue
			case tok == "P":
				if heroFound {
					return nil, &MalformedLevelError{Level: id, Row: r + 1, Col: c + 1, Reason: "second hero token"}
				}
				heroFound = true
				town.Hero = pos
				continue
			case tok == "D":
				kind = TownDoor
				doorFound = true
			case tok == "g":
				kind = TownGrass
			case tok == "rD":
				kind = TownShopDoor
			case strings.HasPrefix(tok, "w"):
				kind = TownWater
			case strings.HasPrefix(tok, "p"):
				kind = TownPath
			case len(tok) == 2 && tok[0] == 'b' && tok[1] >= '1' && tok[1] <= '3':
				kind = TownDecoration
			case len(tok) == 2 && tok[0] == 'r':
				kind = TownBuilding
			default:
				return nil, &MalformedLevelError{Level: id, Row: r + 1, Col: c + 1, Reason: fmt.Sprintf("unknown town token %q", tok)}
			}
			town.Tiles = append(town.Tiles, TownTile{Kind: kind, Code: tok, Pos: pos})
		}
	}

	if !heroFound {
		return nil, &MalformedLevelError{Level: id, Reason: "no hero token"}
	}
	if !doorFound {
		return nil, &MalformedLevelError{Level: id, Reason: "no town door"}
	}
	return town, nil
}
