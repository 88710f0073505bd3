package hoc

import (
	"strings"

	"github.com/nmorph/hocgen/internal/morph"
)

// subsetLines partitions the sections into their named collections. Append
// order follows the cell's natural section ordering, not group-definition
// order, so regeneration from an unchanged model is reproducible.
func (g *Generator) subsetLines() Lines {
	var lines Lines

	for _, group := range g.cell.GroupNames() {
		if group == morph.AllGroup {
			continue
		}
		lines.Add("    %s = new SectionList()\n", group)
		for _, ref := range g.cell.ExplicitSegments() {
			seg := &g.cell.Segments[ref]
			if seg.FirstOfSection && seg.InGroup(group) {
				lines.Add("    %s %s.append()", SectionName(g.cell.Sections[seg.Section].Name), group)
			}
		}
		lines.Add("")
	}

	// Every section joins "all", unconditionally.
	for _, ref := range g.cell.ExplicitSegments() {
		seg := &g.cell.Segments[ref]
		if seg.FirstOfSection {
			lines.Add("    %s all.append()", SectionName(g.cell.Sections[seg.Section].Name))
		}
	}

	return lines
}

// procSubsets renders the subsets procedure. The "all" list is created in
// the dispatcher itself so it exists before any worker appends to it.
func (g *Generator) procSubsets() string {
	var sb strings.Builder
	writeSplitProc(&sb, splitProc{
		open: "proc subsets() { local i",
		preamble: []string{
			"",
			strings.TrimSuffix(hocComment("The group all is assumed never to change"), "\n"),
			"    all = new SectionList()",
		},
		base: "subsets",
	}, g.subsetLines(), g.opts.MaxProcLines)
	return sb.String()
}

// procGeom renders the geometry procedure. All geometry is carried by the
// 3D points of basic_shape, so the body stays empty.
func (g *Generator) procGeom() string {
	return "proc geom() {\n}\n\n"
}

// nsegLines lists the sections needing more than one internal subdivision.
func (g *Generator) nsegLines() Lines {
	var lines Lines
	if g.opts.Comments {
		lines.Add("    // All sections not mentioned here have nseg = 1\n")
	}
	for _, ref := range g.cell.ExplicitSegments() {
		seg := &g.cell.Segments[ref]
		if seg.FirstOfSection && g.cell.Sections[seg.Section].Nseg != 1 {
			lines.Add("    %s nseg = %d", SectionName(g.cell.Sections[seg.Section].Name), g.cell.Sections[seg.Section].Nseg)
		}
	}
	return lines
}

// procGeomNseg renders the segment-sizing procedure, split as needed.
func (g *Generator) procGeomNseg() string {
	var sb strings.Builder
	writeSplitProc(&sb, splitProc{
		open: "proc geom_nseg() {",
		base: "geom_nseg",
	}, g.nsegLines(), g.opts.MaxProcLines)
	sb.WriteString("\n")
	return sb.String()
}
