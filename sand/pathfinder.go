package sand

import "github.com/kamstrup/intmap"

// PathRegion is the result of one flood fill: cells in breadth-first visitation order.
type PathRegion struct {
	Cells    []Point
	Color    RGB
	Spanning bool
}

// neighbourOrder fixes the BFS expansion order; the removal animation depends on it.
var neighbourOrder = [8]Point{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// PathFinder searches for same-color regions that touch both side walls.
type PathFinder struct {
	Tolerance int
}

// Search flood-fills from (x, y) over 8-connected grains whose base color matches the
// seed's within Tolerance. An empty seed yields an empty region.
func (f PathFinder) Search(g *Grid, x, y int) PathRegion {
	seed, ok := g.ColorAt(x, y)
	if !ok {
		return PathRegion{}
	}

	region := PathRegion{Color: seed}
	seen := intmap.New[int, struct{}](64)
	seen.Put(y*g.Width()+x, struct{}{})

	queue := []Point{{x, y}}
	for head := 0; head < len(queue); head++ {
		p := queue[head]
		region.Cells = append(region.Cells, p)
		if p.X == g.Width()-1 {
			region.Spanning = true
		}

		for _, d := range neighbourOrder {
			nx, ny := p.X+d.X, p.Y+d.Y
			if !g.InBounds(nx, ny) {
				continue
			}
			key := ny*g.Width() + nx
			if _, visited := seen.Get(key); visited {
				continue
			}
			c, ok := g.ColorAt(nx, ny)
			if !ok || !ColorsMatch(seed, c, f.Tolerance) {
				continue
			}
			seen.Put(key, struct{}{})
			queue = append(queue, Point{nx, ny})
		}
	}

	return region
}

// Detect scans the left wall top to bottom and returns the first spanning region.
// Seeds that an earlier search in the same pass already reached under the same color
// bucket are skipped.
func (f PathFinder) Detect(g *Grid) (PathRegion, bool) {
	explored := intmap.New[int, struct{}](256)
	cells := g.Width() * g.Height()

	for y := 0; y < g.Height(); y++ {
		c, ok := g.ColorAt(0, y)
		if !ok {
			continue
		}
		bucket := int(colorBucket(c))
		// keyed by bucket and cell so a separate region of the same bucket is still searched
		if _, done := explored.Get(bucket*cells + y*g.Width()); done {
			continue
		}

		region := f.Search(g, 0, y)
		if region.Spanning {
			return region, true
		}
		for _, p := range region.Cells {
			explored.Put(bucket*cells+p.Y*g.Width()+p.X, struct{}{})
		}
	}

	return PathRegion{}, false
}
