package hoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmorph/hocgen/internal/morph"
)

// newTestGenerator wires a generator the way a Generate call would.
func newTestGenerator(cell *morph.Cell, opts Options) *Generator {
	return &Generator{cell: cell, opts: opts.withDefaults(), diags: newDiagnostics()}
}

// somaDendCell is a cylindrical soma (10 long, radius 5) with a one-segment
// dendrite attached at the given fraction along the soma segment.
func somaDendCell(t *testing.T, fractAlong float64) *morph.Cell {
	t.Helper()
	c := morph.NewCell("cell")

	soma := c.AddSection(morph.Section{Name: "soma", Start: morph.Point{X: 0, Y: 0, Z: 0}, StartRadius: 5, Nseg: 1})
	somaRef := c.AddSegment(morph.Segment{
		ID: 0, Name: "somaSeg", Section: soma, Parent: morph.NoSegment,
		End: morph.Point{X: 0, Y: 10, Z: 0}, Radius: 5, Groups: []string{morph.SomaGroup},
	})

	dend := c.AddSection(morph.Section{Name: "dend", Start: morph.Point{X: 0, Y: 10, Z: 0}, StartRadius: 2, Nseg: 1})
	c.AddSegment(morph.Segment{
		ID: 1, Name: "dendSeg", Section: dend, Parent: somaRef, FractionAlong: fractAlong,
		End: morph.Point{X: 0, Y: 40, Z: 0}, Radius: 2, Groups: []string{"dendrite_group"},
	})
	return c
}

func TestCreateSections(t *testing.T) {
	t.Run("plain sections", func(t *testing.T) {
		g := newTestGenerator(somaDendCell(t, 1), DefaultOptions())
		out := g.createSections()

		assert.Equal(t, "create soma\npublic soma\ncreate dend\npublic dend\n\n", out)
	})

	t.Run("array names are folded", func(t *testing.T) {
		c := morph.NewCell("cell")
		c.AddSection(morph.Section{Name: "soma"})
		c.AddSection(morph.Section{Name: "dend[0]"})
		c.AddSection(morph.Section{Name: "dend[1]"})
		c.AddSection(morph.Section{Name: "dend[3]"})
		g := newTestGenerator(c, DefaultOptions())

		out := g.createSections()
		assert.Contains(t, out, "create soma\npublic soma\n")
		assert.Contains(t, out, "create dend[4]\npublic dend\n")
		assert.Equal(t, 1, strings.Count(out, "create dend"))
	})
}

func TestConnectLines(t *testing.T) {
	t.Run("cross-section attachment", func(t *testing.T) {
		g := newTestGenerator(somaDendCell(t, 0.5), DefaultOptions())
		lines := g.connectLines()

		require.Len(t, lines, 1)
		assert.Equal(t, "    connect dend(0), soma(0.5)", lines[0])
	})

	t.Run("fraction just under one snaps to one", func(t *testing.T) {
		g := newTestGenerator(somaDendCell(t, 0.9995), DefaultOptions())
		lines := g.connectLines()

		require.Len(t, lines, 1)
		assert.Equal(t, "    connect dend(0), soma(1)", lines[0])
	})

	t.Run("fraction below the snap threshold is kept verbatim", func(t *testing.T) {
		g := newTestGenerator(somaDendCell(t, 0.998), DefaultOptions())
		lines := g.connectLines()

		require.Len(t, lines, 1)
		assert.Equal(t, "    connect dend(0), soma(0.998)", lines[0])
	})

	t.Run("same-section segments produce no connect", func(t *testing.T) {
		c := morph.NewCell("cell")
		sec := c.AddSection(morph.Section{Name: "soma"})
		r := c.AddSegment(morph.Segment{ID: 0, Section: sec, Parent: morph.NoSegment, End: morph.Point{Y: 10}, Radius: 5, Groups: []string{morph.SomaGroup}})
		c.AddSegment(morph.Segment{ID: 1, Section: sec, Parent: r, FractionAlong: 1, End: morph.Point{Y: 20}, Radius: 5, Groups: []string{morph.SomaGroup}})
		g := newTestGenerator(c, DefaultOptions())

		assert.Empty(t, g.connectLines())
	})
}

func TestShapeLines(t *testing.T) {
	opts := DefaultOptions()
	opts.Comments = false

	t.Run("cylindrical soma gets both endpoints at once", func(t *testing.T) {
		g := newTestGenerator(somaDendCell(t, 1), opts)
		lines := g.shapeLines()

		require.Len(t, lines, 2)
		assert.Equal(t, "    soma {pt3dclear() pt3dadd(0, 0, 0, 10) pt3dadd(0, 10, 0, 10)}", lines[0])
		assert.Equal(t, "    dend {pt3dclear() pt3dadd(0, 10, 0, 4) pt3dadd(0, 40, 0, 4)}", lines[1])
	})

	t.Run("spherical soma becomes a cylinder around the centre", func(t *testing.T) {
		c := morph.NewCell("cell")
		sec := c.AddSection(morph.Section{Name: "soma", StartRadius: 4})
		c.AddSegment(morph.Segment{
			ID: 0, Section: sec, Parent: morph.NoSegment, Shape: morph.Spherical,
			End: morph.Point{X: 0, Y: 0, Z: 0}, Radius: 4, Groups: []string{morph.SomaGroup},
		})
		g := newTestGenerator(c, opts)
		lines := g.shapeLines()

		require.Len(t, lines, 1)
		assert.Equal(t, "    soma {pt3dclear() pt3dadd(0, -4, 0, 8) pt3dadd(0, 4, 0, 8)}", lines[0])
	})

	t.Run("comments interleave when enabled", func(t *testing.T) {
		g := newTestGenerator(somaDendCell(t, 1), DefaultOptions())
		lines := g.shapeLines()

		require.Len(t, lines, 4)
		assert.Equal(t, "\n//  Looking at segment number 0: somaSeg", lines[0])
		assert.Equal(t, "\n//  Looking at segment number 1: dendSeg", lines[2])
	})

	t.Run("later segments extend without clearing", func(t *testing.T) {
		c := morph.NewCell("cell")
		soma := c.AddSection(morph.Section{Name: "soma", StartRadius: 5})
		somaRef := c.AddSegment(morph.Segment{ID: 0, Section: soma, Parent: morph.NoSegment, End: morph.Point{Y: 10}, Radius: 5, Groups: []string{morph.SomaGroup}})
		dend := c.AddSection(morph.Section{Name: "dend", Start: morph.Point{Y: 10}, StartRadius: 2})
		d0 := c.AddSegment(morph.Segment{ID: 1, Section: dend, Parent: somaRef, FractionAlong: 1, End: morph.Point{Y: 20}, Radius: 2})
		c.AddSegment(morph.Segment{ID: 2, Section: dend, Parent: d0, FractionAlong: 1, End: morph.Point{Y: 30}, Radius: 1})
		g := newTestGenerator(c, opts)
		lines := g.shapeLines()

		require.Len(t, lines, 3)
		assert.Equal(t, "    dend {pt3dclear() pt3dadd(0, 10, 0, 4) pt3dadd(0, 20, 0, 4)}", lines[1])
		assert.Equal(t, "    dend {pt3dadd(0, 30, 0, 2)}", lines[2])
	})
}
