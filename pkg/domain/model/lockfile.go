package model

// Lockfile represents the parts of Cargo.lock used for patching
type Lockfile struct {
	Version  int             `toml:"version"`
	Packages []LockedPackage `toml:"package"`
}

// LockedPackage is one resolved [[package]] entry of Cargo.lock
type LockedPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	// Source is empty for packages resolved from a local path
	Source string `toml:"source,omitempty"`
}

// Find returns the first locked package with the given name. Cargo.lock can
// hold several versions of one crate; the first entry wins.
func (l *Lockfile) Find(name string) (*LockedPackage, bool) {
	for i := range l.Packages {
		if l.Packages[i].Name == name {
			return &l.Packages[i], true
		}
	}
	return nil, false
}

// Origin classifies where the package was resolved from
func (p *LockedPackage) Origin() (Origin, error) {
	return ParseOrigin(p.Source)
}
