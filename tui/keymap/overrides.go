package keymap

import (
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/grovetools/plantview/config"
)

var bindingType = reflect.TypeOf(key.Binding{})

// ApplyOverrides replaces the keys of key.Binding fields in km (a pointer
// to a struct) with the ones configured under their snake_case name.
// Embedded structs are walked too. The help description of an overridden
// binding is kept. It returns the override names that matched no field,
// sorted, so callers can warn about typos.
//
//	km := KeyMap{OpenMenu: key.NewBinding(...), ...}
//	ApplyOverrides(&km, overrides) // overrides["open_menu"] -> km.OpenMenu
func ApplyOverrides(km interface{}, overrides config.KeybindingConfig) []string {
	if len(overrides) == 0 {
		return nil
	}

	v := reflect.ValueOf(km)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil
	}

	used := make(map[string]bool, len(overrides))
	applyOverrides(v.Elem(), overrides, used)

	var unknown []string
	for name := range overrides {
		if !used[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func applyOverrides(v reflect.Value, overrides config.KeybindingConfig, used map[string]bool) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		sf := t.Field(i)
		if !field.CanSet() {
			continue
		}
		if sf.Anonymous && field.Kind() == reflect.Struct {
			applyOverrides(field, overrides, used)
			continue
		}
		if sf.Type != bindingType {
			continue
		}

		name := camelToSnake(sf.Name)
		keys, ok := overrides[name]
		if !ok {
			continue
		}
		used[name] = true
		if len(keys) == 0 {
			continue
		}

		desc := field.Interface().(key.Binding).Help().Desc
		field.Set(reflect.ValueOf(key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), desc),
		)))
	}
}

// camelToSnake converts a CamelCase field name to snake_case.
// Examples: OpenMenu -> open_menu, PageUp -> page_up
func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
