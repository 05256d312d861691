package platform

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Rustc asks the Rust compiler for the cfg values of a target triple by
// running `rustc --print cfg --target <triple>`.
type Rustc struct {
	// Command is the compiler executable; "rustc" when empty.
	Command string
}

// NewRustc creates a Rustc resolver that runs the given compiler.
func NewRustc(command string) *Rustc {
	return &Rustc{Command: command}
}

func (r *Rustc) Lookup(ctx context.Context, triple string) (Cfg, error) {
	command := r.Command
	if command == "" {
		command = "rustc"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, command, "--print", "cfg", "--target", triple)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return Cfg{}, fmt.Errorf("%w: %s: %s", ErrUnknownTarget, triple, strings.TrimSpace(stderr.String()))
		}
		return Cfg{}, fmt.Errorf("failed to run %s: %w", command, err)
	}

	cfg := ParseCfg(stdout.Bytes())
	if cfg.Arch == "" {
		return Cfg{}, fmt.Errorf("%w: %s: no target_arch in %s output", ErrUnknownTarget, triple, command)
	}
	return cfg, nil
}

// ParseCfg reads the output of `rustc --print cfg`. Lines look like
// `target_arch="x86_64"` or bare flags such as `unix`. A target may list
// several families; windows takes precedence, otherwise the first is kept.
func ParseCfg(output []byte) Cfg {
	var cfg Cfg
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "target_arch":
			cfg.Arch = value
		case "target_os":
			cfg.OS = value
		case "target_family":
			if cfg.Family == "" || value == FamilyWindows {
				cfg.Family = value
			}
		}
	}
	return cfg
}
