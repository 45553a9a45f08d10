package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
)

const commit = "3f5fd8dd41153bc5fdca9427e9e05be2c767ba23"

var thumb = domain.Cross{Target: domain.BuiltinTarget("thumbv7em-none-eabi")}

func key(t *testing.T, mode domain.CompilationMode, flags domain.Flags, profile domain.Profile, cfg domain.Config) domain.CacheKey {
	t.Helper()
	k, err := fs.NewHasher().ComputeCacheKey(mode, flags, profile, commit, cfg)
	require.NoError(t, err)
	return k
}

func TestComputeCacheKey_Deterministic(t *testing.T) {
	cfg := domain.DefaultConfig()
	profile := domain.NewProfile(map[string]any{"opt-level": "s", "debug": true, "codegen-units": int64(1)})

	first := key(t, thumb, domain.Flags{"-C", "opt-level=s"}, profile, cfg)
	for range 10 {
		assert.Equal(t, first, key(t, thumb, domain.Flags{"-C", "opt-level=s"}, profile, cfg))
	}
}

func TestComputeCacheKey_LinkArgsIgnored(t *testing.T) {
	cfg := domain.Config{Memcpy: false}
	base := key(t, thumb, nil, nil, cfg)

	assert.Equal(t, base, key(t, thumb, domain.Flags{"-C", "link-arg=/foo"}, nil, cfg))
	assert.Equal(t, base, key(t, thumb, domain.Flags{"-C", "link-arg=/bar"}, nil, cfg))
	assert.Equal(t, base, key(t, thumb, domain.Flags{"-C", "link-args=-Tlink.x -Map=out.map"}, nil, cfg))

	assert.NotEqual(t, base, key(t, thumb, domain.Flags{"-C", "opt-level=s"}, nil, cfg))
}

func TestComputeCacheKey_FlagDifferences(t *testing.T) {
	cfg := domain.DefaultConfig()
	variants := []domain.Flags{
		nil,
		{"-C", "opt-level=s"},
		{"-C", "opt-level=z"},
		{"-C", "target-cpu=cortex-m4"},
		{"--cfg", "foo"},
		{"-C", "opt-level=s", "-C", "target-cpu=cortex-m4"},
		{"-C", "target-cpu=cortex-m4", "-C", "opt-level=s"},
		{"-Copt-level=s"},
	}

	seen := map[domain.CacheKey]int{}
	for i, flags := range variants {
		k := key(t, thumb, flags, nil, cfg)
		prev, dup := seen[k]
		assert.False(t, dup, "variant %d collides with variant %d", i, prev)
		seen[k] = i
	}
}

func TestComputeCacheKey_Profile(t *testing.T) {
	cfg := domain.DefaultConfig()
	absent := key(t, thumb, nil, nil, cfg)

	t.Run("lto only is the same as absent", func(t *testing.T) {
		assert.Equal(t, absent, key(t, thumb, nil, domain.NewProfile(map[string]any{"lto": true}), cfg))
		assert.Equal(t, absent, key(t, thumb, nil, domain.Profile{}, cfg))
		assert.Equal(t, absent, key(t, thumb, nil, domain.Profile{"lto": true}, cfg))
	})

	t.Run("lto does not matter", func(t *testing.T) {
		a := key(t, thumb, nil, domain.NewProfile(map[string]any{"opt-level": "s", "lto": true}), cfg)
		b := key(t, thumb, nil, domain.NewProfile(map[string]any{"opt-level": "s", "lto": "fat"}), cfg)
		c := key(t, thumb, nil, domain.NewProfile(map[string]any{"opt-level": "s"}), cfg)
		raw := key(t, thumb, nil, domain.Profile{"opt-level": "s", "lto": "thin"}, cfg)
		assert.Equal(t, a, b)
		assert.Equal(t, a, c)
		assert.Equal(t, a, raw)
	})

	t.Run("other keys matter", func(t *testing.T) {
		s := key(t, thumb, nil, domain.NewProfile(map[string]any{"opt-level": "s"}), cfg)
		z := key(t, thumb, nil, domain.NewProfile(map[string]any{"opt-level": "z"}), cfg)
		assert.NotEqual(t, absent, s)
		assert.NotEqual(t, s, z)
	})
}

func TestComputeCacheKey_Target(t *testing.T) {
	cfg := domain.DefaultConfig()

	native := key(t, domain.Native{Host: "thumbv7em-none-eabi"}, nil, nil, cfg)
	assert.NotEqual(t, key(t, thumb, nil, nil, cfg), native)
	assert.NotEqual(t,
		key(t, thumb, nil, nil, cfg),
		key(t, domain.Cross{Target: domain.BuiltinTarget("thumbv6m-none-eabi")}, nil, nil, cfg))
}

func TestComputeCacheKey_CustomTargetContent(t *testing.T) {
	cfg := domain.DefaultConfig()
	descriptor := []byte(`{"llvm-target": "x86_64-unknown-none", "arch": "x86_64"}`)

	dirA, dirB := t.TempDir(), t.TempDir()
	a := filepath.Join(dirA, "kernel.json")
	b := filepath.Join(dirB, "kernel.json")
	require.NoError(t, os.WriteFile(a, descriptor, 0o644))
	require.NoError(t, os.WriteFile(b, descriptor, 0o644))

	atA := key(t, domain.Cross{Target: domain.CustomTarget(a, a)}, nil, nil, cfg)
	atB := key(t, domain.Cross{Target: domain.CustomTarget("kernel.json", b)}, nil, nil, cfg)
	assert.Equal(t, atA, atB, "moving the descriptor must not change the key")

	require.NoError(t, os.WriteFile(b, []byte(`{"llvm-target": "x86_64-unknown-none", "arch": "x86_64", "disable-redzone": true}`), 0o644))
	changed := key(t, domain.Cross{Target: domain.CustomTarget("kernel.json", b)}, nil, nil, cfg)
	assert.NotEqual(t, atA, changed)
}

func TestComputeCacheKey_MissingDescriptor(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.json")
	_, err := fs.NewHasher().ComputeCacheKey(
		domain.Cross{Target: domain.CustomTarget(missing, missing)}, nil, nil, commit, domain.DefaultConfig())
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to read target descriptor")
}

func TestComputeCacheKey_CommitAndConfig(t *testing.T) {
	h := fs.NewHasher()
	cfg := domain.DefaultConfig()

	base, err := h.ComputeCacheKey(thumb, nil, nil, commit, cfg)
	require.NoError(t, err)

	other, err := h.ComputeCacheKey(thumb, nil, nil, "0000000000000000000000000000000000000000", cfg)
	require.NoError(t, err)
	assert.NotEqual(t, base, other)

	unknown, err := h.ComputeCacheKey(thumb, nil, nil, "", cfg)
	require.NoError(t, err)
	assert.NotEqual(t, base, unknown)

	noMemcpy := cfg
	noMemcpy.Memcpy = false
	k, err := h.ComputeCacheKey(thumb, nil, nil, commit, noMemcpy)
	require.NoError(t, err)
	assert.NotEqual(t, base, k)

	abort := cfg
	abort.PanicImmediateAbort = true
	k, err = h.ComputeCacheKey(thumb, nil, nil, commit, abort)
	require.NoError(t, err)
	assert.NotEqual(t, base, k)

	moved := cfg
	moved.SysrootPath = "build/sysroot"
	k, err = h.ComputeCacheKey(thumb, nil, nil, commit, moved)
	require.NoError(t, err)
	assert.Equal(t, base, k, "the sysroot location does not change what is compiled")
}
