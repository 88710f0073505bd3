package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmorph/hocgen/internal/hclcell"
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

func TestAppRun(t *testing.T) {
	cellDir := t.TempDir()
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cellDir, "cell.hcl"), []byte(somaOnlyHCL), 0o644))

	config, err := NewConfig(Config{
		CellPath:       cellDir,
		OutDir:         outDir,
		LogLevel:       "error",
		MaxProcLines:   100,
		Comments:       true,
		SegIDFunctions: true,
	})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	a := NewApp(out, logs, config, hclcell.NewLoader())

	require.NoError(t, a.Run(context.Background()))

	hocPath := filepath.Join(outDir, "SimpleCell.hoc")
	assert.Contains(t, out.String(), hocPath)

	content, err := os.ReadFile(hocPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "begintemplate SimpleCell")
	assert.Contains(t, string(content), "endtemplate SimpleCell")
}

func TestAppRunLoadFailure(t *testing.T) {
	config, err := NewConfig(Config{
		CellPath:     t.TempDir(), // exists but holds no cell files
		LogLevel:     "error",
		MaxProcLines: 100,
	})
	require.NoError(t, err)

	a := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, config, hclcell.NewLoader())
	err = a.Run(context.Background())
	assert.ErrorContains(t, err, "failed to load cell descriptions")
}
