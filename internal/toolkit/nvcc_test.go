package toolkit

import (
	"context"
	"errors"
	"testing"
)

const sampleNvccOutput = `nvcc: NVIDIA (R) Cuda compiler driver
Copyright (c) 2005-2023 NVIDIA Corporation
Built on Tue_Feb__7_19:32:13_PST_2023
Cuda compilation tools, release 12.1, V12.1.66
Build cuda_12.1.r12.1/compiler.32415258_0
`

func TestCompilerVersion(t *testing.T) {
	run := func(ctx context.Context, name string, args ...string) ([]byte, error) {
		if name != "/usr/local/cuda/bin/nvcc" {
			t.Errorf("unexpected command %q", name)
		}
		if len(args) != 1 || args[0] != "--version" {
			t.Errorf("unexpected args %v", args)
		}
		return []byte(sampleNvccOutput), nil
	}

	c := NewCompilerWithRunner("/usr/local/cuda/bin/nvcc", run)
	cv, err := c.Version(context.Background())
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if cv.Release != "12.1" {
		t.Errorf("Release = %q, want %q", cv.Release, "12.1")
	}
	if cv.Raw == "" {
		t.Error("Raw output should be preserved")
	}
}

func TestCompilerVersionUnparseable(t *testing.T) {
	run := func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("something unexpected"), nil
	}

	c := NewCompilerWithRunner("nvcc", run)
	cv, err := c.Version(context.Background())
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if cv.Release != "" {
		t.Errorf("Release = %q, want empty for unparseable output", cv.Release)
	}
	if cv.Raw != "something unexpected" {
		t.Errorf("Raw = %q", cv.Raw)
	}
}

func TestCompilerVersionCommandFails(t *testing.T) {
	run := func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("no such file or directory")
	}

	c := NewCompilerWithRunner("/usr/local/cuda/bin/nvcc", run)
	if _, err := c.Version(context.Background()); err == nil {
		t.Fatal("expected an error when nvcc cannot run")
	}
}

func TestDriverVersion(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{"single gpu", "535.54.03\n", "535.54.03", false},
		{"multiple gpus", "535.54.03\n535.54.03\n", "535.54.03", false},
		{"padded", "  570.26  \n", "570.26", false},
		{"empty", "\n", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := func(ctx context.Context, name string, args ...string) ([]byte, error) {
				return []byte(tt.output), nil
			}
			got, err := DriverVersion(context.Background(), run)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DriverVersion failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("DriverVersion = %q, want %q", got, tt.want)
			}
		})
	}
}
