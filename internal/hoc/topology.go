package hoc

import (
	"fmt"
	"strings"

	"github.com/nmorph/hocgen/internal/morph"
)

// createSections renders the create/public declarations for every section.
// Array-style names (dend[0], dend[1], ...) are folded into a single
// create statement sized by the greatest index seen.
func (g *Generator) createSections() string {
	var sb strings.Builder
	arrayMax := make(map[string]int)
	var arrayOrder []string

	for i := range g.cell.Sections {
		name := SectionName(g.cell.Sections[i].Name)
		open := strings.IndexByte(name, '[')
		if open > 0 && strings.HasSuffix(name, "]") {
			base := name[:open]
			var idx int
			fmt.Sscanf(name[open+1:len(name)-1], "%d", &idx)
			if prev, ok := arrayMax[base]; !ok {
				arrayMax[base] = idx
				arrayOrder = append(arrayOrder, base)
			} else if idx > prev {
				arrayMax[base] = idx
			}
			continue
		}
		sb.WriteString("create " + name + "\n")
		sb.WriteString("public " + name + "\n")
	}

	for _, base := range arrayOrder {
		sb.WriteString(fmt.Sprintf("create %s[%d]\n", base, arrayMax[base]+1))
		sb.WriteString("public " + base + "\n")
	}

	sb.WriteString("\n")
	return sb.String()
}

// connectLines produces one connect statement per explicitly modelled
// segment that opens its section and grows from a parent in a different
// section. Parent fractions above 0.999 are snapped to exactly 1 to
// suppress rounding artifacts at whole-section boundaries.
func (g *Generator) connectLines() Lines {
	var lines Lines
	for _, ref := range g.cell.ExplicitSegments() {
		seg := &g.cell.Segments[ref]
		if seg.Parent == morph.NoSegment || !seg.FirstOfSection {
			continue
		}
		parent := &g.cell.Segments[seg.Parent]
		if parent.Section == seg.Section {
			continue
		}

		fract := g.cell.FractionAlongSection(seg.Parent, seg.FractionAlong)
		if fract > 0.999 {
			fract = 1
		}

		lines.Add("    connect %s(0), %s(%s)",
			SectionName(g.cell.Sections[seg.Section].Name),
			SectionName(g.cell.Sections[parent.Section].Name),
			num(fract))
	}
	return lines
}

// procTopol renders the topology procedure, splitting connect statements as
// needed. basic_shape() is always invoked last from the dispatcher.
func (g *Generator) procTopol() string {
	var sb strings.Builder
	writeSplitProc(&sb, splitProc{
		open:   "proc topol() {",
		footer: []string{"    basic_shape()"},
		base:   "topol",
	}, g.connectLines(), g.opts.MaxProcLines)
	return sb.String()
}

// shapeLines renders the 3D point geometry per explicitly modelled segment.
// The point primitive accumulates points additively within a section, so
// pt3dclear runs exactly once per section, on its first segment.
func (g *Generator) shapeLines() Lines {
	var lines Lines
	for i, ref := range g.cell.ExplicitSegments() {
		seg := &g.cell.Segments[ref]
		secName := SectionName(g.cell.Sections[seg.Section].Name)

		if g.opts.Comments {
			lines.Add("\n%s", strings.TrimSuffix(hocComment(
				fmt.Sprintf("Looking at segment number %d: %s", i, seg.Name)), "\n"))
		}

		if seg.IsSoma() && seg.FirstOfSection {
			switch seg.Shape {
			case morph.Cylindrical:
				start := g.cell.Sections[seg.Section].Start
				lines.Add("    %s {pt3dclear() pt3dadd(%s) pt3dadd(%s)}",
					secName,
					point(start, g.cell.Sections[seg.Section].StartRadius*2),
					point(seg.End, seg.Radius*2))
			case morph.Spherical:
				// Spheres have no native point representation: approximate
				// with a short cylinder straddling the centre along y at a
				// distance of one radius.
				centre := seg.End
				start := morph.Point{X: centre.X, Y: centre.Y - seg.Radius, Z: centre.Z}
				end := morph.Point{X: centre.X, Y: centre.Y + seg.Radius, Z: centre.Z}
				lines.Add("    %s {pt3dclear() pt3dadd(%s) pt3dadd(%s)}",
					secName,
					point(start, seg.Radius*2),
					point(end, seg.Radius*2))
			}
			continue
		}

		var line strings.Builder
		line.WriteString("    " + secName + " {")
		if seg.FirstOfSection {
			line.WriteString("pt3dclear() pt3dadd(")
			line.WriteString(point(g.cell.StartPoint(ref), g.cell.StartRadius(ref)*2))
			line.WriteString(") ")
		}
		line.WriteString("pt3dadd(")
		line.WriteString(point(seg.End, seg.Radius*2))
		line.WriteString(")}")
		lines = append(lines, line.String())
	}
	return lines
}

// procBasicShape renders the point-geometry procedure, split as needed.
func (g *Generator) procBasicShape() string {
	var sb strings.Builder
	writeSplitProc(&sb, splitProc{
		open: "proc basic_shape() {",
		base: "basic_shape",
	}, g.shapeLines(), g.opts.MaxProcLines)
	return sb.String()
}
