package ports

import "go.trai.ch/kiln/internal/core/domain"

// KeyHasher computes the cache key of a sysroot.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type KeyHasher interface {
	// ComputeCacheKey digests every input that affects the compiled sysroot.
	// Equal inputs yield equal keys within one build of kiln.
	ComputeCacheKey(
		mode domain.CompilationMode,
		flags domain.Flags,
		profile domain.Profile,
		commit string,
		cfg domain.Config,
	) (domain.CacheKey, error)
}
