package toolkit

import (
	"context"
	"fmt"
	"strings"
)

// nvidia-smi lives outside the toolkit install, so its path is not derived
// from the layout.
const nvidiaSMI = "nvidia-smi"

// DriverVersion reports the installed NVIDIA driver version by querying
// nvidia-smi. Machines with multiple GPUs run a single driver; the first
// reported line wins.
func DriverVersion(ctx context.Context, run CommandRunner) (string, error) {
	if run == nil {
		run = runCommand
	}
	out, err := run(ctx, nvidiaSMI, "--query-gpu=driver_version", "--format=csv,noheader")
	if err != nil {
		return "", fmt.Errorf("querying driver version: %w", err)
	}

	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("nvidia-smi reported no driver version")
	}
	return line, nil
}
