// Package plant models the module dataset reported by the plant server: an
// ordered mapping of category to module name to module record.
package plant

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Well-known module categories.
const (
	CategoryOperation     = "Operation Module"
	CategorySafety        = "Safety Module"
	CategoryEnvironmental = "Environmental & Compliance Module"
)

// Dataset is the full module dataset. A nil *Dataset is valid and empty.
type Dataset struct {
	categories *orderedmap.OrderedMap[string, *Category]
}

// Category holds the modules of a single category in server order.
type Category struct {
	Name    string
	modules *orderedmap.OrderedMap[string, *Record]
}

// Module is a flattened view of one dataset entry.
type Module struct {
	Category string
	Name     string
	Record   *Record
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{categories: orderedmap.New[string, *Category]()}
}

// Set stores a record under category and name, creating the category if needed.
func (d *Dataset) Set(category, name string, rec *Record) *Dataset {
	if d.categories == nil {
		d.categories = orderedmap.New[string, *Category]()
	}
	cat, ok := d.categories.Get(category)
	if !ok {
		cat = &Category{Name: category, modules: orderedmap.New[string, *Record]()}
		d.categories.Set(category, cat)
	}
	cat.modules.Set(name, rec)
	return d
}

// Lookup returns the record for a module. It reports a miss for unknown
// categories or names and never panics.
func (d *Dataset) Lookup(category, name string) (*Record, bool) {
	if d == nil || d.categories == nil {
		return nil, false
	}
	cat, ok := d.categories.Get(category)
	if !ok || cat == nil || cat.modules == nil {
		return nil, false
	}
	rec, ok := cat.modules.Get(name)
	if !ok || rec == nil {
		return nil, false
	}
	return rec, true
}

// Categories returns the category names in server order.
func (d *Dataset) Categories() []string {
	if d == nil || d.categories == nil {
		return nil
	}
	names := make([]string, 0, d.categories.Len())
	for pair := d.categories.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Modules returns the module names of a category in server order.
func (d *Dataset) Modules(category string) []string {
	if d == nil || d.categories == nil {
		return nil
	}
	cat, ok := d.categories.Get(category)
	if !ok || cat.modules == nil {
		return nil
	}
	names := make([]string, 0, cat.modules.Len())
	for pair := cat.modules.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// All returns every module in category order, then module order.
func (d *Dataset) All() []Module {
	var modules []Module
	for _, category := range d.Categories() {
		for _, name := range d.Modules(category) {
			rec, _ := d.Lookup(category, name)
			modules = append(modules, Module{Category: category, Name: name, Record: rec})
		}
	}
	return modules
}

// Len returns the total number of modules.
func (d *Dataset) Len() int {
	n := 0
	for _, category := range d.Categories() {
		n += len(d.Modules(category))
	}
	return n
}

// UnmarshalJSON decodes a category -> module -> record object, keeping key
// order. Null categories and null records are dropped, so they read as
// lookup misses.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	raw := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, raw); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}

	d.categories = orderedmap.New[string, *Category]()
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		if isNull(pair.Value) {
			continue
		}
		cat := &Category{Name: pair.Key}
		if err := json.Unmarshal(pair.Value, cat); err != nil {
			return fmt.Errorf("dataset: category %q: %w", pair.Key, err)
		}
		d.categories.Set(pair.Key, cat)
	}
	return nil
}

// MarshalJSON encodes the dataset in the same shape the server sends.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	if d == nil || d.categories == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d.categories)
}

// UnmarshalJSON decodes a module name -> record object.
func (c *Category) UnmarshalJSON(data []byte) error {
	raw := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(data, raw); err != nil {
		return err
	}

	c.modules = orderedmap.New[string, *Record]()
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		if isNull(pair.Value) {
			continue
		}
		rec := &Record{}
		if err := json.Unmarshal(pair.Value, rec); err != nil {
			return fmt.Errorf("module %q: %w", pair.Key, err)
		}
		c.modules.Set(pair.Key, rec)
	}
	return nil
}

// MarshalJSON encodes the category's modules.
func (c *Category) MarshalJSON() ([]byte, error) {
	if c.modules == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c.modules)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
