package dashboard

import (
	"github.com/grovetools/plantview/pkg/plant"
	"github.com/grovetools/plantview/pkg/plantapi"
)

// MenuItem is one context-menu entry.
type MenuItem struct {
	Action string
	Label  string
}

// Menu is the context menu state.
type Menu struct {
	Visible  bool
	BlockID  string
	Category string
	Items    []MenuItem
	X, Y     int
}

type menuEntry struct {
	hidden bool
	items  []MenuItem
}

var (
	itemStart    = MenuItem{Action: plantapi.ActionStart, Label: "Start Module"}
	itemStop     = MenuItem{Action: plantapi.ActionStop, Label: "Stop Module"}
	itemLowPower = MenuItem{Action: plantapi.ActionLowPowerMode, Label: "Low Power Mode"}
)

// menuTable maps a category to its menu. Categories not listed get a
// visible, empty menu.
var menuTable = map[string]menuEntry{
	plant.CategoryOperation:     {items: []MenuItem{itemStart, itemStop, itemLowPower}},
	plant.CategorySafety:        {items: []MenuItem{itemStart, itemStop}},
	plant.CategoryEnvironmental: {hidden: true},
}

// MenuFor returns the items offered for a category and whether a menu is
// shown at all.
func MenuFor(category string) ([]MenuItem, bool) {
	entry := menuTable[category]
	if entry.hidden {
		return nil, false
	}
	return append([]MenuItem(nil), entry.items...), true
}

// OpenMenu handles a right-click on blockID at (x, y). The block becomes
// the selection even when its category has no menu.
func (c *Controller) OpenMenu(blockID string, x, y int) Menu {
	c.mu.Lock()
	defer c.mu.Unlock()

	blk, ok := c.board.get(blockID)
	if !ok {
		c.menu = Menu{}
		return c.menu
	}
	c.selection = Selection{ModuleID: blk.ID, Category: blk.Category}

	items, show := MenuFor(blk.Category)
	if !show {
		c.menu = Menu{}
		return c.menu
	}

	c.menu = Menu{
		Visible:  true,
		BlockID:  blk.ID,
		Category: blk.Category,
		Items:    items,
		X:        x,
		Y:        y,
	}
	c.logger.WithField("module", blk.ID).Debug("Context menu opened")
	return c.menu
}

// DismissMenu hides the menu, as a click anywhere else does.
func (c *Controller) DismissMenu() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.menu.Visible = false
}

// Menu returns the current menu state.
func (c *Controller) Menu() Menu {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.menu
}

// MenuItemAt returns the visible menu's item at index.
func (c *Controller) MenuItemAt(index int) (MenuItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.menu.Visible || index < 0 || index >= len(c.menu.Items) {
		return MenuItem{}, false
	}
	return c.menu.Items[index], true
}
