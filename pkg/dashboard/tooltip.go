package dashboard

import "github.com/grovetools/plantview/pkg/plant"

// TooltipOffset is how far the tooltip sits from the pointer, in cells.
var TooltipOffset = struct{ X, Y int }{X: 2, Y: 1}

// Tooltip is the hover detail panel.
type Tooltip struct {
	Visible bool
	BlockID string
	Name    string
	Status  string
	Details []plant.Detail
	X, Y    int
}

// Hover shows the tooltip for blockID with the pointer at (x, y). When the
// block or its record is unknown the tooltip is hidden and cleared.
func (c *Controller) Hover(blockID string, x, y int) Tooltip {
	c.mu.Lock()
	defer c.mu.Unlock()

	blk, ok := c.board.get(blockID)
	if !ok {
		c.tooltip = Tooltip{}
		return c.tooltip
	}
	rec, ok := c.data.Lookup(blk.Category, blk.Name)
	if !ok {
		c.tooltip = Tooltip{}
		return c.tooltip
	}

	c.tooltip = Tooltip{
		Visible: true,
		BlockID: blockID,
		Name:    blk.Name,
		Status:  rec.Status,
		Details: rec.Details(),
		X:       x + TooltipOffset.X,
		Y:       y + TooltipOffset.Y,
	}
	return c.tooltip
}

// Leave hides the tooltip.
func (c *Controller) Leave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tooltip.Visible = false
}

// Tooltip returns the current tooltip state.
func (c *Controller) Tooltip() Tooltip {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tooltip
}
