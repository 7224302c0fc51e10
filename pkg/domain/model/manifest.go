package model

// Manifest is a read-only snapshot of Cargo.toml. Patches are appended to
// the file as text and never merged into the snapshot.
type Manifest struct {
	doc map[string]any
}

// NewManifest wraps a decoded Cargo.toml document
func NewManifest(doc map[string]any) *Manifest {
	if doc == nil {
		doc = map[string]any{}
	}
	return &Manifest{doc: doc}
}

// HasPatch reports whether the manifest already overrides the package named
// name for the given origin.
func (m *Manifest) HasPatch(name string, origin Origin) bool {
	patch, ok := m.doc["patch"].(map[string]any)
	if !ok {
		return false
	}
	if _, ok := patch[name]; ok {
		return true
	}

	switch o := origin.(type) {
	case GitOrigin:
		return hasKey(patch, o.URL, name)
	case RegistryOrigin:
		return hasKey(patch, o.RegistryID, name)
	case PathOrigin:
		return false
	default:
		return false
	}
}

func hasKey(patch map[string]any, group, name string) bool {
	table, ok := patch[group].(map[string]any)
	if !ok {
		return false
	}
	_, ok = table[name]
	return ok
}
