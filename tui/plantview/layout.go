package plantview

import "github.com/grovetools/plantview/pkg/dashboard"

// Block geometry. A block is a bordered box holding the module name and
// its status.
const (
	blockInner  = 20
	blockWidth  = blockInner + 4
	blockHeight = 4
	blockGap    = 1

	headerLines = 2
	footerLines = 2
)

// rect is a block's position in board coordinates (line 0 is the first
// board line, before scrolling).
type rect struct {
	id   string
	x, y int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+blockWidth && y >= r.y && y < r.y+blockHeight
}

// section is one category: a header line followed by rows of blocks.
type section struct {
	category string
	y        int
	rows     [][]dashboard.Block
}

type boardLayout struct {
	sections []section
	rects    []rect
	height   int
}

// layoutBoard groups blocks by category, in first-seen order, and wraps
// each group into rows that fit width.
func layoutBoard(blocks []dashboard.Block, width int) boardLayout {
	perRow := (width + blockGap) / (blockWidth + blockGap)
	if perRow < 1 {
		perRow = 1
	}

	var order []string
	groups := make(map[string][]dashboard.Block)
	for _, b := range blocks {
		if _, ok := groups[b.Category]; !ok {
			order = append(order, b.Category)
		}
		groups[b.Category] = append(groups[b.Category], b)
	}

	var l boardLayout
	y := 0
	for i, cat := range order {
		if i > 0 {
			y++ // blank line between categories
		}
		s := section{category: cat, y: y}
		y++

		members := groups[cat]
		for start := 0; start < len(members); start += perRow {
			end := min(start+perRow, len(members))
			row := members[start:end]
			s.rows = append(s.rows, row)
			for col, b := range row {
				l.rects = append(l.rects, rect{id: b.ID, x: col * (blockWidth + blockGap), y: y})
			}
			y += blockHeight
		}
		l.sections = append(l.sections, s)
	}
	l.height = y
	return l
}

// hit returns the block under board position (x, y).
func (l boardLayout) hit(x, y int) (rect, bool) {
	for _, r := range l.rects {
		if r.contains(x, y) {
			return r, true
		}
	}
	return rect{}, false
}

// find returns the position of block id and its index in navigation order.
func (l boardLayout) find(id string) (rect, int, bool) {
	for i, r := range l.rects {
		if r.id == id {
			return r, i, true
		}
	}
	return rect{}, -1, false
}

// neighbor returns the block reached from index i moving by (dx, dy):
// dx steps through navigation order, dy jumps to the closest block on the
// previous or next row.
func (l boardLayout) neighbor(i, dx, dy int) (rect, bool) {
	if len(l.rects) == 0 {
		return rect{}, false
	}
	if i < 0 || i >= len(l.rects) {
		return l.rects[0], true
	}
	cur := l.rects[i]

	if dx != 0 {
		j := i + dx
		if j < 0 || j >= len(l.rects) {
			return cur, true
		}
		return l.rects[j], true
	}

	targetY := -1
	for _, r := range l.rects {
		if dy < 0 && r.y < cur.y && r.y > targetY {
			targetY = r.y
		}
		if dy > 0 && r.y > cur.y && (targetY < 0 || r.y < targetY) {
			targetY = r.y
		}
	}
	if targetY < 0 {
		return cur, true
	}

	best, bestDist := cur, -1
	for _, r := range l.rects {
		if r.y != targetY {
			continue
		}
		d := r.x - cur.x
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = r, d
		}
	}
	return best, true
}
