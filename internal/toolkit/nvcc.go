package toolkit

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// CommandRunner runs an external command and returns its combined output.
// It exists so probes can be exercised in tests without the real binaries.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Compiler probes the toolkit compiler (nvcc) behind the active link.
type Compiler struct {
	// Path is the nvcc binary to invoke.
	Path string

	run CommandRunner
}

// NewCompiler returns a Compiler for the given nvcc path.
func NewCompiler(path string) *Compiler {
	return &Compiler{Path: path, run: runCommand}
}

// NewCompilerWithRunner returns a Compiler that invokes nvcc through run.
func NewCompilerWithRunner(path string, run CommandRunner) *Compiler {
	return &Compiler{Path: path, run: run}
}

// CompilerVersion is the parsed result of `nvcc --version`.
type CompilerVersion struct {
	// Release is the major.minor toolkit release, e.g. "12.1".
	Release string
	// Raw is the full output of the version command.
	Raw string
}

// nvcc prints e.g. "Cuda compilation tools, release 12.1, V12.1.105".
var nvccReleaseRe = regexp.MustCompile(`release (\d+\.\d+)`)

// Version runs `nvcc --version` and parses the release number out of the
// output. The raw output is returned even when parsing fails, so callers
// can still show it to the user.
func (c *Compiler) Version(ctx context.Context) (*CompilerVersion, error) {
	out, err := c.run(ctx, c.Path, "--version")
	if err != nil {
		return nil, fmt.Errorf("running %s --version: %w", c.Path, err)
	}

	v := &CompilerVersion{Raw: strings.TrimRight(string(out), "\n")}
	if m := nvccReleaseRe.FindStringSubmatch(v.Raw); len(m) == 2 {
		v.Release = m[1]
	}
	return v, nil
}
