package hclcell

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/nmorph/hocgen/internal/ctxlog"
	"github.com/nmorph/hocgen/internal/fsutil"
	"github.com/nmorph/hocgen/internal/morph"
)

// Loader reads cell descriptions from .hcl files.
type Loader struct{}

// NewLoader creates a new HCL cell loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under path (a file or a directory) and
// returns the fully translated, validated cells in declaration order.
func (l *Loader) Load(ctx context.Context, path string) ([]*morph.Cell, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("discovering cell files under %s: %w", path, err)
	}
	logger.Debug("Discovered cell description files.", "count", len(files))
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl cell descriptions found under %s", path)
	}

	parser := hclparse.NewParser()
	var cells []*morph.Cell

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse cell file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode cell file %s: %w", file, diags)
		}

		for _, block := range root.Cells {
			cell, err := l.translateCell(ctx, block, parser.Sources())
			if err != nil {
				return nil, fmt.Errorf("in cell %q (%s): %w", block.Name, file, err)
			}
			cells = append(cells, cell)
		}
	}

	logger.Debug("Cell loading complete.", "cells", len(cells))
	return cells, nil
}
