package layout

// Region is a rectangle on screen.
type Region struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
	W uint32 `json:"w"`
	H uint32 `json:"h"`
}

// SplitAtWidth cuts r vertically, returning a left part w pixels wide
// and the remainder.
func (r Region) SplitAtWidth(w uint32) (Region, Region) {
	if w > r.W {
		w = r.W
	}
	return Region{r.X, r.Y, w, r.H},
		Region{r.X + w, r.Y, r.W - w, r.H}
}

// SplitAtHeight cuts r horizontally, returning a top part h pixels
// high and the remainder.
func (r Region) SplitAtHeight(h uint32) (Region, Region) {
	if h > r.H {
		h = r.H
	}
	return Region{r.X, r.Y, r.W, h},
		Region{r.X, r.Y + h, r.W, r.H - h}
}

// EvenRows splits r into n stacked rows. The last row takes the
// leftover pixels.
func (r Region) EvenRows(n int) []Region {
	if n <= 0 {
		return nil
	}
	rows := make([]Region, n)
	h := r.H / uint32(n)
	for i := range rows {
		rows[i] = Region{r.X, r.Y + uint32(i)*h, r.W, h}
	}
	rows[n-1].H = r.H - uint32(n-1)*h
	return rows
}

// EvenColumns splits r into n side by side columns. The last column
// takes the leftover pixels.
func (r Region) EvenColumns(n int) []Region {
	if n <= 0 {
		return nil
	}
	cols := make([]Region, n)
	w := r.W / uint32(n)
	for i := range cols {
		cols[i] = Region{r.X + uint32(i)*w, r.Y, w, r.H}
	}
	cols[n-1].W = r.W - uint32(n-1)*w
	return cols
}

// Shrink removes px pixels from every side of r, never going below an
// empty region.
func (r Region) Shrink(px uint32) Region {
	if 2*px >= r.W || 2*px >= r.H {
		return Region{r.X + r.W/2, r.Y + r.H/2, 0, 0}
	}
	return Region{r.X + px, r.Y + px, r.W - 2*px, r.H - 2*px}
}
