package dashboard

import (
	"testing"

	"github.com/grovetools/plantview/pkg/plant"
	"github.com/grovetools/plantview/pkg/plantapi/plantapitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuFor(t *testing.T) {
	items, ok := MenuFor(plant.CategoryOperation)
	require.True(t, ok)
	assert.Equal(t, []MenuItem{
		{Action: "start", Label: "Start Module"},
		{Action: "stop", Label: "Stop Module"},
		{Action: "low_power_mode", Label: "Low Power Mode"},
	}, items)

	items, ok = MenuFor(plant.CategorySafety)
	require.True(t, ok)
	assert.Equal(t, []MenuItem{
		{Action: "start", Label: "Start Module"},
		{Action: "stop", Label: "Stop Module"},
	}, items)

	items, ok = MenuFor(plant.CategoryEnvironmental)
	assert.False(t, ok)
	assert.Empty(t, items)

	items, ok = MenuFor("Maintenance Module")
	assert.True(t, ok)
	assert.Empty(t, items)
}

func TestOpenMenuRecordsSelection(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	menu := ctrl.OpenMenu("reactor_1", 12, 3)
	assert.True(t, menu.Visible)
	assert.Len(t, menu.Items, 3)
	assert.Equal(t, 12, menu.X)
	assert.Equal(t, 3, menu.Y)
	assert.Equal(t, Selection{ModuleID: "reactor_1", Category: plant.CategoryOperation}, ctrl.Selection())

	// A later right-click overwrites the selection.
	menu = ctrl.OpenMenu("safety_gen_1", 0, 0)
	assert.Len(t, menu.Items, 2)
	assert.Equal(t, "safety_gen_1", ctrl.Selection().ModuleID)
}

func TestEnvironmentalMenuIsHiddenAndCleared(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	require.True(t, ctrl.OpenMenu("reactor_1", 5, 5).Visible)

	menu := ctrl.OpenMenu("waste_treatment_plant", 5, 5)
	assert.False(t, menu.Visible)
	assert.Empty(t, menu.Items)
	assert.Equal(t, Menu{}, ctrl.Menu())

	// Selection still follows the right-click.
	assert.Equal(t, "waste_treatment_plant", ctrl.Selection().ModuleID)

	_, ok := ctrl.MenuItemAt(0)
	assert.False(t, ok)
}

func TestUnknownCategoryShowsEmptyMenu(t *testing.T) {
	data := plant.NewDataset().Set("Maintenance Module", "Crane", plant.NewRecord("Online"))
	ctrl := New(plantapitest.NewFake(data), data)

	menu := ctrl.OpenMenu("crane", 1, 1)
	assert.True(t, menu.Visible)
	assert.Empty(t, menu.Items)
}

func TestDismissMenu(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	ctrl.OpenMenu("turbine_1", 0, 0)
	ctrl.DismissMenu()
	assert.False(t, ctrl.Menu().Visible)

	_, ok := ctrl.MenuItemAt(0)
	assert.False(t, ok)
}

func TestMenuItemAt(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	ctrl.OpenMenu("reactor_1", 0, 0)

	item, ok := ctrl.MenuItemAt(2)
	require.True(t, ok)
	assert.Equal(t, "low_power_mode", item.Action)

	_, ok = ctrl.MenuItemAt(3)
	assert.False(t, ok)
	_, ok = ctrl.MenuItemAt(-1)
	assert.False(t, ok)
}
