package sand

// CollisionOracle answers placement questions for pieces at block resolution against a
// grain grid that is Scale times finer.
type CollisionOracle struct {
	Grid  *Grid
	Scale int
}

// BlocksWide is the field width in blocks.
func (o CollisionOracle) BlocksWide() int { return o.Grid.Width() / o.Scale }

// BlocksHigh is the field height in blocks.
func (o CollisionOracle) BlocksHigh() int { return o.Grid.Height() / o.Scale }

// Test reports whether p moved by (dx, dy) blocks would be blocked. A block is blocked
// when it leaves the field sideways or through the floor, or when any grain lies inside
// its Scale×Scale footprint. Blocks above the top edge are never blocked.
func (o CollisionOracle) Test(p Piece, dx, dy int) bool {
	wide, high := o.BlocksWide(), o.BlocksHigh()
	for row, line := range p.Cells {
		for col, filled := range line {
			if !filled {
				continue
			}
			bx, by := p.X+col+dx, p.Y+row+dy
			if bx < 0 || bx >= wide || by >= high {
				return true
			}
			if by < 0 {
				continue
			}
			if o.footprintOccupied(bx, by) {
				return true
			}
		}
	}
	return false
}

func (o CollisionOracle) footprintOccupied(bx, by int) bool {
	x0, y0 := bx*o.Scale, by*o.Scale
	for y := y0; y < y0+o.Scale; y++ {
		for x := x0; x < x0+o.Scale; x++ {
			if o.Grid.Occupied(x, y) {
				return true
			}
		}
	}
	return false
}

// GhostRow returns the block row p would land on if dropped straight down.
func (o CollisionOracle) GhostRow(p Piece) int {
	offset := 0
	for !o.Test(p, 0, offset+1) {
		offset++
	}
	return p.Y + offset
}
