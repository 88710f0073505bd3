package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const somaOnlyHCL = `
cell "Simple Cell" {
  section "soma" {
    start        = [0, 0, 0]
    start_radius = 5

    segment "somaSeg" {
      id     = 0
      end    = [0, 10, 0]
      radius = 5
      groups = ["soma_group"]
    }
  }
}
`

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_GeneratesTemplate(t *testing.T) {
	t.Parallel()

	cellDir := t.TempDir()
	outDir := t.TempDir()
	cellPath := filepath.Join(cellDir, "cell.hcl")
	require.NoError(t, os.WriteFile(cellPath, []byte(somaOnlyHCL), 0600))

	args := []string{"-out", outDir, "-log-level", "error", cellPath}
	out := &bytes.Buffer{}

	err := run(out, args)
	require.NoError(t, err)

	hocPath := filepath.Join(outDir, "SimpleCell.hoc")
	require.Contains(t, out.String(), hocPath)

	content, err := os.ReadFile(hocPath)
	require.NoError(t, err)
	require.Contains(t, string(content), "begintemplate SimpleCell")
}

func TestRun_BadCellFile(t *testing.T) {
	t.Parallel()

	cellDir := t.TempDir()
	cellPath := filepath.Join(cellDir, "cell.hcl")
	require.NoError(t, os.WriteFile(cellPath, []byte(`cell "broken" {`), 0600))

	args := []string{"-log-level", "error", cellPath}
	out := &bytes.Buffer{}

	err := run(out, args)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse")
}
