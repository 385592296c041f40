package config

// mergeMaps deep-merges override onto base and returns the result. Nested
// maps are merged key by key; any other value in override replaces the base
// value. Neither input is modified.
func mergeMaps(base, override map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		overrideMap, ok := v.(map[string]interface{})
		if !ok {
			out[k] = v
			continue
		}
		baseMap, ok := out[k].(map[string]interface{})
		if !ok {
			out[k] = mergeMaps(nil, overrideMap)
			continue
		}
		out[k] = mergeMaps(baseMap, overrideMap)
	}
	return out
}
