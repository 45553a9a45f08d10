package domain

import (
	"slices"
	"strings"
)

// Flags is an ordered list of rustc flags.
type Flags []string

// linkArgPrefixes introduce codegen options that only reach the linker.
var linkArgPrefixes = []string{"link-arg=", "link-args="}

// Hashable returns the tokens that identify the compiled sysroot. A "-C"
// followed by a link-arg option is dropped together with its argument.
func (f Flags) Hashable() []string {
	out := make([]string, 0, len(f))
	for i := 0; i < len(f); i++ {
		if f[i] == "-C" && i+1 < len(f) && isLinkArg(f[i+1]) {
			i++
			continue
		}
		out = append(out, f[i])
	}
	return out
}

// WithSysroot returns the flags joined for use in RUSTFLAGS, followed by
// --sysroot root unless the flags already name a sysroot.
func (f Flags) WithSysroot(root string) string {
	parts := make([]string, 0, len(f)+2)
	parts = append(parts, f...)
	if !slices.Contains(parts, "--sysroot") {
		parts = append(parts, "--sysroot", root)
	}
	return strings.Join(parts, " ")
}

func isLinkArg(tok string) bool {
	for _, p := range linkArgPrefixes {
		if strings.HasPrefix(tok, p) {
			return true
		}
	}
	return false
}
