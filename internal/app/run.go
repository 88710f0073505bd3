package app

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/nmorph/hocgen/internal/ctxlog"
	"github.com/nmorph/hocgen/internal/hoc"
)

// Run executes the full pipeline: load every cell description, compile each
// into a hoc template and report the written paths.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	cells, err := a.loader.Load(ctx, a.config.CellPath)
	if err != nil {
		return fmt.Errorf("failed to load cell descriptions: %w", err)
	}
	a.logger.Info("Cell descriptions loaded.", "count", len(cells))

	opts := hoc.DefaultOptions()
	opts.MaxProcLines = a.config.MaxProcLines
	opts.Comments = a.config.Comments
	opts.SegIDFunctions = a.config.SegIDFunctions

	success := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)

	for _, cell := range cells {
		a.logger.Debug("Generating hoc template.", "cell", cell.Name)
		path, diags, err := hoc.GenerateFile(cell, a.config.OutDir, opts)
		if err != nil {
			return fmt.Errorf("generation failed for cell %q: %w", cell.Name, err)
		}
		for _, w := range diags.Warnings() {
			a.logger.Warn(w)
			warn.Fprintf(a.outW, "warning: %s\n", w)
		}
		a.logger.Info("Generated hoc template.", "cell", cell.Name, "path", path)
		success.Fprintf(a.outW, "Generated %s\n", path)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
