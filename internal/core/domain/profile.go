package domain

// ltoKey is excluded because it only affects final linking, not the
// compiled library crates.
const ltoKey = "lto"

// Profile is the [profile.release] table of the project manifest.
type Profile map[string]any

// NewProfile copies table without the lto key. It returns nil when nothing remains.
func NewProfile(table map[string]any) Profile {
	p := make(Profile, len(table))
	for k, v := range table {
		if k == ltoKey {
			continue
		}
		p[k] = v
	}
	if len(p) == 0 {
		return nil
	}
	return p
}

// IsEmpty reports whether the profile contributes nothing.
func (p Profile) IsEmpty() bool {
	return len(p) == 0
}
