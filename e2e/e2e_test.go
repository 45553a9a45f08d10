//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

const host = "x86_64-unknown-linux-gnu"

var kilnBinary string

// fakeRustc answers the queries kiln makes. FAKE_RUSTC_RELEASE overrides the
// reported release.
const fakeRustc = `#!/bin/sh
case "$*" in
  "-vV")
    echo "rustc ${FAKE_RUSTC_RELEASE:-1.82.0-nightly} (0123456789 2024-08-01)"
    echo "binary: rustc"
    echo "commit-hash: 0123456789abcdef"
    echo "host: ` + host + `"
    echo "release: ${FAKE_RUSTC_RELEASE:-1.82.0-nightly}"
    ;;
  "--print sysroot") echo "$FAKE_TOOLCHAIN" ;;
  "--print target-list") printf 'aarch64-unknown-none\nthumbv7em-none-eabihf\n` + host + `\n' ;;
  *) echo "unexpected rustc call: $*" >&2; exit 1 ;;
esac
`

// fakeCargo drops an rlib for every sysroot crate it is asked to build and
// echoes everything else. FAKE_CARGO_EXIT sets the exit status of the latter.
const fakeCargo = `#!/bin/sh
if [ "$1" = "rustc" ]; then
  crate=""
  target=""
  while [ $# -gt 0 ]; do
    case "$1" in
      -p) crate="$2"; shift ;;
      --target) target="$2"; shift ;;
      --) break ;;
    esac
    shift
  done
  deps="$CARGO_TARGET_DIR/$target/release/deps"
  mkdir -p "$deps"
  echo "fake rlib" > "$deps/lib$crate.rlib"
  exit 0
fi
echo "cargo $*"
echo "RUSTFLAGS=$RUSTFLAGS"
exit "${FAKE_CARGO_EXIT:-0}"
`

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "kiln-e2e-*")
	if err != nil {
		panic(err)
	}

	kilnBinary = filepath.Join(tmpDir, "kiln")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", kilnBinary, "./cmd/kiln")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build kiln binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "")

	binDir := filepath.Dir(kilnBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	toolchain, err := fakeToolchain(env.WorkDir)
	if err != nil {
		return err
	}
	env.Setenv("FAKE_TOOLCHAIN", toolchain)

	tools := filepath.Join(env.WorkDir, ".tools")
	if err := os.MkdirAll(tools, 0o750); err != nil {
		return err
	}
	for name, script := range map[string]string{"rustc": fakeRustc, "cargo": fakeCargo} {
		path := filepath.Join(tools, name)
		//nolint:gosec // test executable
		if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
			return err
		}
	}
	env.Setenv("RUSTC", filepath.Join(tools, "rustc"))
	env.Setenv("CARGO", filepath.Join(tools, "cargo"))

	return nil
}

// fakeToolchain lays out a toolchain sysroot with library sources and a
// host entry to mirror.
func fakeToolchain(workDir string) (string, error) {
	root := filepath.Join(workDir, ".toolchain")
	rustlib := filepath.Join(root, "lib", "rustlib")
	src := filepath.Join(rustlib, "src", "rust")

	dirs := []string{
		filepath.Join(src, "library"),
		filepath.Join(rustlib, host, "lib"),
		filepath.Join(rustlib, host, "bin"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o750); err != nil {
			return "", err
		}
	}

	files := []struct{ path, content string }{
		{filepath.Join(src, "Cargo.lock"), "# lock\n"},
		{filepath.Join(rustlib, host, "lib", "libstd.rlib"), "host std\n"},
		{filepath.Join(rustlib, host, "bin", "rust-lld"), "host linker\n"},
	}
	for _, f := range files {
		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil { //nolint:gosec // test fixture
			return "", err
		}
	}
	return root, nil
}
