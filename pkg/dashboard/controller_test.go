package dashboard

import (
	"testing"

	"github.com/grovetools/plantview/pkg/plant"
	"github.com/grovetools/plantview/pkg/plantapi/plantapitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) (*Controller, *plantapitest.Fake, *NoticeLog) {
	t.Helper()
	fake := plantapitest.NewFake(plantapitest.SampleDataset())
	notices := &NoticeLog{}
	return New(fake, plantapitest.SampleDataset(), WithNotifier(notices)), fake, notices
}

func TestBoardBuiltFromInitialDataset(t *testing.T) {
	ctrl, _, _ := newTestController(t)

	blocks := ctrl.Blocks()
	require.Len(t, blocks, 5)
	assert.Equal(t, Block{ID: "reactor_1", Category: plant.CategoryOperation, Name: "Reactor 1", Status: "online"}, blocks[0])
	assert.Equal(t, "standby", blocks[1].Status)
	assert.Equal(t, "waste_treatment_plant", blocks[4].ID)
	assert.Equal(t, "operational", blocks[4].Status)

	_, ok := ctrl.Block("nope")
	assert.False(t, ok)
	assert.True(t, ctrl.Selection().Empty())
}

func TestNewWithoutInitialDataset(t *testing.T) {
	ctrl := New(plantapitest.NewFake(nil), nil)
	assert.Empty(t, ctrl.Blocks())
	assert.Nil(t, ctrl.Dataset())

	tip := ctrl.Hover("reactor_1", 0, 0)
	assert.False(t, tip.Visible)
}

func TestDuplicateModuleIDsKeepFirst(t *testing.T) {
	data := plant.NewDataset().
		Set("A", "Pump 1", plant.NewRecord("Online")).
		Set("B", "pump 1", plant.NewRecord("Offline"))

	ctrl := New(plantapitest.NewFake(data), data)
	blocks := ctrl.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, "A", blocks[0].Category)
}
