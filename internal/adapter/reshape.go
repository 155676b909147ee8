package adapter

// ReshapeConfig builds the configuration view handed to an adapter
// constructor. Adapters read their own settings from top-level keys, so the
// full tree is flattened for the selected provider:
//
//   - every top-level key except "adapters" carries over unchanged
//   - adapters.<identifier>.config is re-inserted under a top-level key
//     named after the identifier
//   - adapters.<identifier>.authentication is re-inserted under top-level
//     "authentication"
//   - the identifier itself is recorded under top-level "adapter"
//
// Missing sub-trees are skipped rather than inserted empty. The input tree
// is never mutated.
func ReshapeConfig(tree map[string]any, identifier string) map[string]any {
	reshaped := make(map[string]any, len(tree)+2)

	for key, value := range tree {
		if key == "adapters" {
			continue
		}
		reshaped[key] = value
	}

	provider := providerSubtree(tree, identifier)
	if cfg, ok := provider["config"]; ok {
		reshaped[identifier] = cfg
	}
	if auth, ok := provider["authentication"]; ok {
		reshaped["authentication"] = auth
	}
	reshaped["adapter"] = identifier

	return reshaped
}

// providerSubtree returns the adapters.<identifier> map, or nil when either
// level is missing or not a map.
func providerSubtree(tree map[string]any, identifier string) map[string]any {
	adapters, ok := tree["adapters"].(map[string]any)
	if !ok {
		return nil
	}
	provider, _ := adapters[identifier].(map[string]any)
	return provider
}
