package domain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestFlags_Hashable(t *testing.T) {
	tests := []struct {
		name  string
		flags domain.Flags
		want  []string
	}{
		{
			name:  "empty",
			flags: nil,
			want:  []string{},
		},
		{
			name:  "link-arg dropped with introducer",
			flags: domain.Flags{"-C", "link-arg=/foo"},
			want:  []string{},
		},
		{
			name:  "link-args dropped with introducer",
			flags: domain.Flags{"-C", "opt-level=s", "-C", "link-args=-Tlink.x -nostartfiles"},
			want:  []string{"-C", "opt-level=s"},
		},
		{
			name:  "other codegen options kept",
			flags: domain.Flags{"-C", "opt-level=s"},
			want:  []string{"-C", "opt-level=s"},
		},
		{
			name:  "trailing introducer kept",
			flags: domain.Flags{"--cfg", "foo", "-C"},
			want:  []string{"--cfg", "foo", "-C"},
		},
		{
			name:  "link-arg without introducer kept",
			flags: domain.Flags{"-Clink-arg=/foo"},
			want:  []string{"-Clink-arg=/foo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.flags.Hashable())
		})
	}
}

func TestFlags_WithSysroot(t *testing.T) {
	assert.Equal(t, "--sysroot /s", domain.Flags(nil).WithSysroot("/s"))
	assert.Equal(t, "-C opt-level=s --sysroot /s", domain.Flags{"-C", "opt-level=s"}.WithSysroot("/s"))
	assert.Equal(t, "--sysroot /mine", domain.Flags{"--sysroot", "/mine"}.WithSysroot("/s"))
}

func TestNewProfile(t *testing.T) {
	assert.Nil(t, domain.NewProfile(nil))
	assert.Nil(t, domain.NewProfile(map[string]any{"lto": true}))
	assert.True(t, domain.NewProfile(map[string]any{"lto": "fat"}).IsEmpty())

	table := map[string]any{"lto": true, "opt-level": "s"}
	p := domain.NewProfile(table)
	assert.Equal(t, domain.Profile{"opt-level": "s"}, p)
	assert.Contains(t, table, "lto", "input table must not be modified")
}

func TestTarget(t *testing.T) {
	builtin := domain.BuiltinTarget("thumbv7em-none-eabi")
	assert.Equal(t, "thumbv7em-none-eabi", builtin.Triple())
	assert.Equal(t, "thumbv7em-none-eabi", builtin.Orig())
	assert.False(t, builtin.IsCustom())
	assert.Empty(t, builtin.Descriptor())

	custom := domain.CustomTarget("targets/x86_64-kernel.json", "/work/targets/x86_64-kernel.json")
	assert.Equal(t, "x86_64-kernel", custom.Triple())
	assert.Equal(t, "targets/x86_64-kernel.json", custom.Orig())
	assert.True(t, custom.IsCustom())
	assert.Equal(t, "/work/targets/x86_64-kernel.json", custom.Descriptor())
}

func TestCompilationMode(t *testing.T) {
	cross := domain.Cross{Target: domain.CustomTarget("kernel", "/t/kernel.json")}
	native := domain.Native{Host: "x86_64-unknown-linux-gnu"}

	assert.Equal(t, "kernel", cross.Triple())
	assert.Equal(t, "kernel", domain.OrigTriple(cross))
	assert.False(t, domain.IsNative(cross))

	assert.Equal(t, "x86_64-unknown-linux-gnu", native.Triple())
	assert.Equal(t, "x86_64-unknown-linux-gnu", domain.OrigTriple(native))
	assert.True(t, domain.IsNative(native))
}

func TestParseChannel(t *testing.T) {
	assert.Equal(t, domain.ChannelNightly, domain.ParseChannel("1.82.0-nightly"))
	assert.Equal(t, domain.ChannelBeta, domain.ParseChannel("1.81.0-beta.3"))
	assert.Equal(t, domain.ChannelDev, domain.ParseChannel("1.82.0-dev"))
	assert.Equal(t, domain.ChannelStable, domain.ParseChannel("1.80.1"))
}

func TestSysrootCrates(t *testing.T) {
	crates := domain.SysrootCrates(domain.DefaultConfig())
	names := make([]string, 0, len(crates))
	for _, c := range crates {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"core", "compiler_builtins", "alloc"}, names)
	assert.Equal(t, []string{"mem", "core"}, crates[1].Features)
	assert.Empty(t, crates[0].Features)

	crates = domain.SysrootCrates(domain.Config{PanicImmediateAbort: true})
	assert.Equal(t, []string{"panic_immediate_abort"}, crates[0].Features)
	assert.Equal(t, []string{"core"}, crates[1].Features)
}

func TestCacheKey_String(t *testing.T) {
	assert.Equal(t, "00000000000000ff", domain.CacheKey(255).String())
}

func TestEntryDir(t *testing.T) {
	want := filepath.Join("/s", "lib", "rustlib", "thumbv6m-none-eabi")
	assert.Equal(t, want, domain.EntryDir("/s", "thumbv6m-none-eabi"))
}

func TestResolveFlags(t *testing.T) {
	cfg := &domain.CargoConfig{
		BuildRustflags:  domain.Flags{"-C", "opt-level=z"},
		TargetRustflags: map[string]domain.Flags{"thumbv7em-none-eabi": {"-C", "link-arg=-Tlink.x"}},
	}

	t.Run("target section", func(t *testing.T) {
		unsetEnv(t, domain.EnvRustFlags)
		assert.Equal(t, domain.Flags{"-C", "link-arg=-Tlink.x"}, domain.ResolveFlags(cfg, "thumbv7em-none-eabi"))
	})

	t.Run("build section", func(t *testing.T) {
		unsetEnv(t, domain.EnvRustFlags)
		assert.Equal(t, domain.Flags{"-C", "opt-level=z"}, domain.ResolveFlags(cfg, "riscv32imac-unknown-none-elf"))
	})

	t.Run("no config", func(t *testing.T) {
		unsetEnv(t, domain.EnvRustFlags)
		assert.Nil(t, domain.ResolveFlags(nil, "riscv32imac-unknown-none-elf"))
	})

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv(domain.EnvRustFlags, "-C  opt-level=s ")
		assert.Equal(t, domain.Flags{"-C", "opt-level=s"}, domain.ResolveFlags(cfg, "thumbv7em-none-eabi"))
	})
}

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	_ = os.Unsetenv(key)
}
