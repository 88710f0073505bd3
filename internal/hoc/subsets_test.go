package hoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmorph/hocgen/internal/morph"
)

func TestSubsetLines(t *testing.T) {
	g := newTestGenerator(somaDendCell(t, 1), DefaultOptions())
	lines := g.subsetLines()

	require.Equal(t, Lines{
		"    soma_group = new SectionList()\n",
		"    soma soma_group.append()",
		"",
		"    dendrite_group = new SectionList()\n",
		"    dend dendrite_group.append()",
		"",
		"    soma all.append()",
		"    dend all.append()",
	}, lines)
}

func TestProcSubsets(t *testing.T) {
	g := newTestGenerator(somaDendCell(t, 1), DefaultOptions())
	out := g.procSubsets()

	assert.Contains(t, out, "proc subsets() { local i\n")
	assert.Contains(t, out, "//  The group all is assumed never to change\n    all = new SectionList()\n")

	t.Run("every section joins all", func(t *testing.T) {
		assert.Contains(t, out, "    soma all.append()")
		assert.Contains(t, out, "    dend all.append()")
	})
}

func TestProcGeom(t *testing.T) {
	g := newTestGenerator(somaDendCell(t, 1), DefaultOptions())
	assert.Equal(t, "proc geom() {\n}\n\n", g.procGeom())
}

func TestNsegLines(t *testing.T) {
	t.Run("only sections with nseg above one are listed", func(t *testing.T) {
		c := morph.NewCell("cell")
		soma := c.AddSection(morph.Section{Name: "soma", StartRadius: 5, Nseg: 1})
		somaRef := c.AddSegment(morph.Segment{ID: 0, Section: soma, Parent: morph.NoSegment, End: morph.Point{Y: 10}, Radius: 5, Groups: []string{morph.SomaGroup}})
		dend := c.AddSection(morph.Section{Name: "dend", Start: morph.Point{Y: 10}, StartRadius: 2, Nseg: 7})
		c.AddSegment(morph.Segment{ID: 1, Section: dend, Parent: somaRef, FractionAlong: 1, End: morph.Point{Y: 40}, Radius: 2})

		opts := DefaultOptions()
		opts.Comments = false
		g := newTestGenerator(c, opts)

		assert.Equal(t, Lines{"    dend nseg = 7"}, g.nsegLines())
	})

	t.Run("comment leads when enabled", func(t *testing.T) {
		g := newTestGenerator(somaDendCell(t, 1), DefaultOptions())
		lines := g.nsegLines()
		require.NotEmpty(t, lines)
		assert.Equal(t, "    // All sections not mentioned here have nseg = 1\n", lines[0])
	})
}
