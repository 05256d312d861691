// Package platform answers which architecture and OS family a target triple
// compiles for.
package platform

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrUnknownTarget is returned when a target triple cannot be classified.
var ErrUnknownTarget = errors.New("unknown target")

const (
	FamilyUnix    = "unix"
	FamilyWindows = "windows"
	FamilyWasm    = "wasm"
)

// Cfg holds the attributes of a target triple, named after the
// corresponding rustc cfg keys.
type Cfg struct {
	Arch   string // target_arch, e.g. "x86_64", "arm", "wasm32"
	OS     string // target_os, e.g. "linux", "windows", "none"
	Family string // target_family; empty for bare-metal targets
}

// IsWasm reports whether the target architecture is WebAssembly.
func (c Cfg) IsWasm() bool {
	return c.Arch == "wasm32" || c.Arch == "wasm64"
}

// IsWindows reports whether the target belongs to the Windows family.
func (c Cfg) IsWindows() bool {
	return c.Family == FamilyWindows
}

// Resolver looks up the attributes of a target triple.
type Resolver interface {
	Lookup(ctx context.Context, triple string) (Cfg, error)
}

// Triples classifies target triples from their components without invoking
// any toolchain.
type Triples struct{}

// NewTriples creates a new Triples resolver.
func NewTriples() *Triples {
	return &Triples{}
}

func (Triples) Lookup(_ context.Context, triple string) (Cfg, error) {
	parts := strings.Split(triple, "-")
	if len(parts) < 2 || parts[0] == "" {
		return Cfg{}, fmt.Errorf("%w: %q is not a target triple", ErrUnknownTarget, triple)
	}

	arch, ok := normalizeArch(parts[0])
	if !ok {
		return Cfg{}, fmt.Errorf("%w: unrecognized architecture %q in %q", ErrUnknownTarget, parts[0], triple)
	}

	osName := targetOS(parts[1:])
	return Cfg{Arch: arch, OS: osName, Family: family(arch, osName)}, nil
}

func normalizeArch(arch string) (string, bool) {
	switch {
	case arch == "x86_64" || arch == "x86_64h":
		return "x86_64", true
	case arch == "i386" || arch == "i586" || arch == "i686":
		return "x86", true
	case arch == "aarch64" || arch == "arm64" || arch == "arm64e" || arch == "aarch64_be":
		return "aarch64", true
	case strings.HasPrefix(arch, "thumb") || strings.HasPrefix(arch, "arm"):
		return "arm", true
	case arch == "wasm32" || arch == "wasm64":
		return arch, true
	case strings.HasPrefix(arch, "riscv64"):
		return "riscv64", true
	case strings.HasPrefix(arch, "riscv32"):
		return "riscv32", true
	case arch == "mips" || arch == "mipsel" || strings.HasPrefix(arch, "mipsisa32"):
		return "mips", true
	case arch == "mips64" || arch == "mips64el" || strings.HasPrefix(arch, "mipsisa64"):
		return "mips64", true
	case arch == "powerpc":
		return "powerpc", true
	case arch == "powerpc64" || arch == "powerpc64le":
		return "powerpc64", true
	case arch == "s390x", arch == "sparc", arch == "sparc64", arch == "avr",
		arch == "msp430", arch == "hexagon", arch == "bpfel", arch == "bpfeb",
		arch == "loongarch64", arch == "m68k", arch == "csky", arch == "xtensa":
		return arch, true
	case arch == "sparcv9":
		return "sparc64", true
	case arch == "nvptx64":
		return "nvptx64", true
	}
	return "", false
}

var knownOS = []string{
	"linux", "windows", "darwin", "ios", "tvos", "watchos", "visionos",
	"freebsd", "netbsd", "openbsd", "dragonfly", "solaris", "illumos",
	"fuchsia", "redox", "haiku", "hermit", "wasi", "emscripten", "uefi",
	"cuda", "aix", "hurd", "vxworks", "nto", "horizon", "espidf", "l4re",
	"none",
}

// targetOS picks the operating system out of the vendor/os/env components.
func targetOS(components []string) string {
	for _, c := range components {
		if strings.HasPrefix(c, "android") {
			return "android"
		}
	}
	for _, c := range components {
		for _, os := range knownOS {
			if strings.HasPrefix(c, os) {
				if os == "darwin" {
					return "macos"
				}
				return os
			}
		}
	}
	return "unknown"
}

func family(arch, os string) string {
	switch {
	case os == "windows":
		return FamilyWindows
	case arch == "wasm32" || arch == "wasm64":
		return FamilyWasm
	case os == "none" || os == "unknown" || os == "uefi" || os == "cuda":
		return ""
	}
	return FamilyUnix
}

// HostTriple returns the target triple of the machine this binary runs on,
// derived from the Go runtime. It is a best effort guess for the common
// platforms.
func HostTriple() string {
	arch := map[string]string{
		"amd64":   "x86_64",
		"386":     "i686",
		"arm64":   "aarch64",
		"arm":     "armv7",
		"riscv64": "riscv64gc",
		"ppc64le": "powerpc64le",
		"s390x":   "s390x",
		"loong64": "loongarch64",
	}[runtime.GOARCH]
	if arch == "" {
		arch = runtime.GOARCH
	}

	switch runtime.GOOS {
	case "windows":
		return arch + "-pc-windows-msvc"
	case "darwin":
		return arch + "-apple-darwin"
	case "linux":
		if arch == "armv7" {
			return "armv7-unknown-linux-gnueabihf"
		}
		return arch + "-unknown-linux-gnu"
	default:
		return arch + "-unknown-" + runtime.GOOS
	}
}
