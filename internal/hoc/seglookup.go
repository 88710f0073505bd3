package hoc

import (
	"fmt"
	"strings"
)

// segIDProcs renders the two procedures mapping abstract segment ids onto
// the generated structural elements.
func (g *Generator) segIDProcs() string {
	var sb strings.Builder

	sb.WriteString(hocComment("Accessing the section which corresponds to the given segment id"))
	sb.WriteString("proc accessSectionForSegId() {   \n\n")
	sb.WriteString("    id = $1\n")
	for i := range g.cell.Segments {
		sb.WriteString(fmt.Sprintf("    if (id == %d)  { access %s }\n",
			g.cell.Segments[i].ID, SectionName(g.cell.Sections[g.cell.Segments[i].Section].Name)))
	}
	sb.WriteString("}\n\n")

	sb.WriteString(hocComment("For getting the fraction along the section, given the fraction\n" +
		"along the segment whose id is given\n" +
		"NOTE: This function will produce incorrect results if the morphology of the cell is altered after initialisation"))
	sb.WriteString("func getFractAlongSection() {   \n\n")
	sb.WriteString("    fractionAlongSegment = $1\n")
	sb.WriteString("    id = $2\n")

	for sec := range g.cell.Sections {
		segs := g.cell.Sections[sec].Segs
		if len(segs) == 0 {
			continue
		}

		plural := ""
		if len(segs) > 1 {
			plural = "s"
		}
		sb.WriteString(fmt.Sprintf("    // Section %s has %d segment%s\n",
			SectionName(g.cell.Sections[sec].Name), len(segs), plural))

		if len(segs) == 1 {
			sb.WriteString(fmt.Sprintf("    if (id == %d)  {return fractionAlongSegment} // one seg in sec, so return immediately\n",
				g.cell.Segments[segs[0]].ID))
			continue
		}

		secLength := g.cell.SectionLength(sec)
		traversed := 0.0
		for _, ref := range segs {
			sb.WriteString(fmt.Sprintf("    if (id == %d)  { return ((%s + (fractionAlongSegment*%s))/%s) }\n",
				g.cell.Segments[ref].ID, num(traversed), num(g.cell.SegmentLength(ref)), num(secLength)))
			traversed += g.cell.SegmentLength(ref)
		}
	}

	sb.WriteString("\n    return fractionAlongSegment // assumes id not found, i.e. a one segment section...\n")
	sb.WriteString("}\n\n")

	return sb.String()
}
