package arena

import (
	"fmt"
	"io/fs"

	"github.com/lafriks/go-tiled"
)

// Load parses a TMX court file. It takes an fs.FS so callers can pass
// embed.FS or os.DirFS. Solid tiles come from the "court-tiles" layer; spawn
// points from a "Spawns" object group with a "side" property of "left" or
// "right". Missing spawns fall back to the built-in court positions.
func Load(fsys fs.FS, tmxPath string) (*Arena, error) {
	courtMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	a := &Arena{
		Width:  float64(courtMap.Width * courtMap.TileWidth),
		Height: float64(courtMap.Height * courtMap.TileHeight),
	}

	tileW := float64(courtMap.TileWidth)
	tileH := float64(courtMap.TileHeight)
	for _, layer := range courtMap.Layers {
		if layer.Name != "court-tiles" {
			continue
		}
		for y := 0; y < courtMap.Height; y++ {
			for x := 0; x < courtMap.Width; x++ {
				tile := layer.Tiles[y*courtMap.Width+x]
				if tile.IsNil() {
					continue
				}
				a.Solids = append(a.Solids, Rect{
					X: float64(x) * tileW,
					Y: float64(y) * tileH,
					W: tileW,
					H: tileH,
				})
			}
		}
		break
	}

	def := Default()
	a.LeftSpawn = Point{X: a.Width * 0.2, Y: def.LeftSpawn.Y}
	a.RightSpawn = Point{X: a.Width * 0.8, Y: def.RightSpawn.Y}

	for _, og := range courtMap.ObjectGroups {
		if og.Name != "Spawns" {
			continue
		}
		for _, o := range og.Objects {
			switch o.Properties.GetString("side") {
			case "left":
				a.LeftSpawn = Point{X: o.X, Y: o.Y}
			case "right":
				a.RightSpawn = Point{X: o.X, Y: o.Y}
			}
		}
	}

	return a, nil
}
