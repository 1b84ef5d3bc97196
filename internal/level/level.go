// Package level loads Tiled maps into planar physics spaces.
//
// A map describes ground as polylines, polygons or rectangles in an object
// group named "Ground" and spawn points in an object group named "Spawn".
// Ground objects may carry a "layer" (int) and "friction" (float) property;
// spawn objects may carry a "yaw" (float, degrees). Rectangles in an object
// group named "Targets" become shooting targets; their "z" and "depth"
// properties place them off the map plane and "layer" defaults to 6. The
// map property "pixels_per_unit" scales pixels to world units.
package level

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"

	"github.com/Faultbox/fpsmove/internal/locomotion"
	"github.com/Faultbox/fpsmove/internal/physics/picking"
	"github.com/Faultbox/fpsmove/internal/physics/planar"
	"github.com/Faultbox/fpsmove/pkg/math"
)

const (
	groundGroup = "Ground"
	spawnGroup  = "Spawn"
	targetGroup = "Targets"
)

// ErrNoGround is returned when a map defines no ground geometry.
var ErrNoGround = errors.New("level: map has no ground")

// Spawn is a named start position.
type Spawn struct {
	Name     string
	Position math.Vec3
	Yaw      float32
}

// Level is the static geometry of a map in world units.
type Level struct {
	Name     string
	Width    float32
	Height   float32
	Segments []planar.Segment
	Spawns   []Spawn
	Targets  []picking.Target
}

// Load parses the TMX file at name inside fsys.
func Load(fsys fs.FS, name string) (*Level, error) {
	m, err := tiled.LoadFile(name, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", name, err)
	}

	ppu := float32(1)
	if m.Properties != nil {
		if v := float32(m.Properties.GetFloat("pixels_per_unit")); v > 0 {
			ppu = v
		}
	}
	heightPx := float32(m.Height * m.TileHeight)
	toWorld := func(x, y float64) math.Vec2 {
		return math.Vec2{X: float32(x) / ppu, Y: (heightPx - float32(y)) / ppu}
	}

	lvl := &Level{
		Name:   strings.TrimSuffix(path.Base(name), path.Ext(name)),
		Width:  float32(m.Width*m.TileWidth) / ppu,
		Height: heightPx / ppu,
	}

	for _, og := range m.ObjectGroups {
		switch og.Name {
		case groundGroup:
			for _, o := range og.Objects {
				lvl.Segments = append(lvl.Segments, groundSegments(o, toWorld)...)
			}
		case spawnGroup:
			for _, o := range og.Objects {
				p := toWorld(o.X, o.Y)
				lvl.Spawns = append(lvl.Spawns, Spawn{
					Name:     o.Name,
					Position: math.Vec3{X: p.X, Y: p.Y},
					Yaw:      float32(o.Properties.GetFloat("yaw")),
				})
			}
		case targetGroup:
			for _, o := range og.Objects {
				if o.Width <= 0 || o.Height <= 0 {
					continue
				}
				lvl.Targets = append(lvl.Targets, target(o, toWorld))
			}
		}
	}

	if len(lvl.Segments) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoGround)
	}
	sort.SliceStable(lvl.Spawns, func(i, j int) bool {
		return lvl.Spawns[i].Position.X < lvl.Spawns[j].Position.X
	})
	return lvl, nil
}

func groundSegments(o *tiled.Object, toWorld func(x, y float64) math.Vec2) []planar.Segment {
	layer := locomotion.Layer(uint(max(o.Properties.GetInt("layer"), 0)))
	friction := float32(o.Properties.GetFloat("friction"))

	var chains [][]math.Vec2
	var closed []bool
	for _, pl := range o.PolyLines {
		chains = append(chains, points(o, pl.Points, toWorld))
		closed = append(closed, false)
	}
	for _, pg := range o.Polygons {
		chains = append(chains, points(o, pg.Points, toWorld))
		closed = append(closed, true)
	}
	if len(chains) == 0 && o.Width > 0 && o.Height > 0 {
		chains = append(chains, []math.Vec2{
			toWorld(o.X, o.Y),
			toWorld(o.X+o.Width, o.Y),
			toWorld(o.X+o.Width, o.Y+o.Height),
			toWorld(o.X, o.Y+o.Height),
		})
		closed = append(closed, true)
	}

	var segs []planar.Segment
	for i, chain := range chains {
		n := len(chain)
		edges := n - 1
		if closed[i] && n > 2 {
			edges = n
		}
		for e := 0; e < edges; e++ {
			segs = append(segs, planar.Segment{
				A:        chain[e],
				B:        chain[(e+1)%n],
				Layer:    layer,
				Friction: friction,
			})
		}
	}
	return segs
}

func target(o *tiled.Object, toWorld func(x, y float64) math.Vec2) picking.Target {
	a := toWorld(o.X, o.Y)
	b := toWorld(o.X+o.Width, o.Y+o.Height)
	z := float32(o.Properties.GetFloat("z"))
	depth := float32(o.Properties.GetFloat("depth"))
	if depth <= 0 {
		depth = 1
	}
	layer := picking.DefaultTargetLayer
	if n := o.Properties.GetInt("layer"); n > 0 {
		layer = locomotion.Layer(uint(n))
	}
	return picking.Target{
		Name:  o.Name,
		Box:   picking.NewAABB(math.Vec3{X: a.X, Y: a.Y, Z: z - depth/2}, math.Vec3{X: b.X, Y: b.Y, Z: z + depth/2}),
		Layer: layer,
	}
}

func points(o *tiled.Object, pts *tiled.Points, toWorld func(x, y float64) math.Vec2) []math.Vec2 {
	if pts == nil {
		return nil
	}
	out := make([]math.Vec2, 0, len(*pts))
	for _, p := range *pts {
		out = append(out, toWorld(o.X+p.X, o.Y+p.Y))
	}
	return out
}

// SpawnPoint returns the spawn point with the given name, or the first one
// when name is empty.
func (l *Level) SpawnPoint(name string) (Spawn, bool) {
	for _, s := range l.Spawns {
		if name == "" || s.Name == name {
			return s, true
		}
	}
	return Spawn{}, false
}

// Build creates a physics space holding the level geometry.
func (l *Level) Build(gravity math.Vec3) *planar.Space {
	space := planar.NewSpace(gravity)
	for _, seg := range l.Segments {
		space.AddSegment(seg)
	}
	return space
}
