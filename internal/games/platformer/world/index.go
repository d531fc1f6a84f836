package world

import (
	"sort"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

const (
	tagTerrain = "terrain"
	tagProbe   = "probe"
)

// terrainIndex is the broad phase for terrain queries. Tiles are bucketed
// into a resolv space with one cell per grid tile; a single probe object is
// moved around to gather candidates, which are then tested exactly.
type terrainIndex struct {
	space *resolv.Space
	probe *resolv.Object
	tiles []*Terrain
}

func newTerrainIndex(width, height float64, tileSize int, tiles []*Terrain) *terrainIndex {
	// one spare cell on each axis so bodies hanging off the edge still query
	space := resolv.NewSpace(int(width)+tileSize, int(height)+tileSize, tileSize, tileSize)
	for _, t := range tiles {
		obj := resolv.NewObject(t.Pos.X, t.Pos.Y, t.W, t.H, tagTerrain)
		obj.Data = t
		space.Add(obj)
	}
	probe := resolv.NewObject(0, 0, 1, 1, tagProbe)
	space.Add(probe)
	return &terrainIndex{space: space, probe: probe, tiles: tiles}
}

// query returns the terrain tiles whose boxes strictly overlap r, in grid order.
func (ix *terrainIndex) query(r core.Rect) []*Terrain {
	// resolv takes the last cell from X+W-1, so a sub-pixel overlap with the
	// next cell would be missed without the extra pixel.
	ix.probe.X, ix.probe.Y = r.X, r.Y
	ix.probe.W, ix.probe.H = r.W+1, r.H+1
	ix.probe.Update()

	c := ix.probe.Check(0, 0, tagTerrain)
	if c == nil {
		return nil
	}
	var hits []*Terrain
	for _, obj := range c.Objects {
		t, ok := obj.Data.(*Terrain)
		if !ok || !t.Rect().Intersects(r) {
			continue
		}
		hits = append(hits, t)
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].order < hits[j].order })
	return hits
}
