package dashboard

import "github.com/grovetools/plantview/pkg/plant"

// Block is one module tile on the board.
type Block struct {
	ID       string
	Category string
	Name     string
	// Status is the lower-cased status attribute shown on the tile.
	Status string
}

// board keeps blocks in display order with an id index. Ids are derived
// from module names; when two modules share one, the first keeps it.
type board struct {
	blocks []*Block
	byID   map[string]*Block
}

func newBoard() *board {
	return &board{byID: map[string]*Block{}}
}

func (b *board) get(id string) (*Block, bool) {
	blk, ok := b.byID[id]
	return blk, ok
}

// sync appends a block for every module of data not yet on the board.
// Existing blocks are left alone.
func (b *board) sync(data *plant.Dataset) {
	for _, mod := range data.All() {
		id := plant.ModuleID(mod.Name)
		if _, exists := b.byID[id]; exists {
			continue
		}
		blk := &Block{
			ID:       id,
			Category: mod.Category,
			Name:     mod.Name,
			Status:   plant.NormalizeStatus(mod.Record.Status),
		}
		b.blocks = append(b.blocks, blk)
		b.byID[id] = blk
	}
}

func (b *board) snapshot() []Block {
	out := make([]Block, len(b.blocks))
	for i, blk := range b.blocks {
		out[i] = *blk
	}
	return out
}
