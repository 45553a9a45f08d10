package fs

import (
	"encoding/binary"
	"io"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.KeyHasher = (*Hasher)(nil)

// Hasher computes sysroot cache keys with xxhash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrDescriptorReadFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrDescriptorReadFailed.Error()), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeCacheKey digests, in order: the hashable flags, the target identity,
// the profile, the compiler commit and the config fields that change what is
// compiled.
func (h *Hasher) ComputeCacheKey(
	mode domain.CompilationMode,
	flags domain.Flags,
	profile domain.Profile,
	commit string,
	cfg domain.Config,
) (domain.CacheKey, error) {
	hasher := xxhash.New()

	for _, tok := range flags.Hashable() {
		writeField(hasher, tok)
	}
	_, _ = hasher.Write([]byte{0}) // Section separator

	if err := h.hashMode(mode, hasher); err != nil {
		return 0, err
	}

	// Callers may pass a raw [profile.release] table.
	profile = domain.NewProfile(profile)
	if !profile.IsEmpty() {
		data, err := toml.Marshal(map[string]any(profile))
		if err != nil {
			return 0, zerr.Wrap(err, domain.ErrKeyComputationFailed.Error())
		}
		_, _ = hasher.Write(data)
		_, _ = hasher.Write([]byte{0})
	}

	if commit != "" {
		writeField(hasher, commit)
	}

	// SysrootPath only decides where the sysroot lives.
	writeField(hasher, "memcpy="+strconv.FormatBool(cfg.Memcpy))
	writeField(hasher, "panic_immediate_abort="+strconv.FormatBool(cfg.PanicImmediateAbort))

	return domain.CacheKey(hasher.Sum64()), nil
}

// hashMode hashes the triple and, for custom targets, the descriptor content
// rather than its location.
func (h *Hasher) hashMode(mode domain.CompilationMode, hasher *xxhash.Digest) error {
	switch m := mode.(type) {
	case domain.Native:
		writeField(hasher, "native")
		writeField(hasher, m.Host)
	case domain.Cross:
		writeField(hasher, "cross")
		writeField(hasher, m.Target.Triple())
		if m.Target.IsCustom() {
			sum, err := h.ComputeFileHash(m.Target.Descriptor())
			if err != nil {
				return err
			}
			if err := binary.Write(hasher, binary.LittleEndian, sum); err != nil {
				return zerr.Wrap(err, "failed to write hash to digest")
			}
		}
	default:
		panic("fs: unknown compilation mode")
	}
	_, _ = hasher.Write([]byte{0})
	return nil
}

func writeField(hasher *xxhash.Digest, s string) {
	_, _ = hasher.WriteString(s)
	_, _ = hasher.Write([]byte{0}) // Separator
}
