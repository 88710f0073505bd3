package morph

import (
	"fmt"
	"math"
)

// ExplicitSegments returns the explicitly modelled segments in natural
// traversal order. Every generation stage iterates this list, which makes
// regeneration from an unchanged model byte-for-byte reproducible.
func (c *Cell) ExplicitSegments() []SegRef {
	var out []SegRef
	for i := range c.Segments {
		if !c.Segments[i].Inferred {
			out = append(out, i)
		}
	}
	return out
}

// StartPoint returns where a segment begins: the section's declared start
// for a first segment, the parent segment's end otherwise.
func (c *Cell) StartPoint(ref SegRef) Point {
	seg := &c.Segments[ref]
	if seg.FirstOfSection || seg.Parent == NoSegment {
		return c.Sections[seg.Section].Start
	}
	return c.Segments[seg.Parent].End
}

// StartRadius returns the radius at a segment's proximal end.
func (c *Cell) StartRadius(ref SegRef) float64 {
	seg := &c.Segments[ref]
	if seg.FirstOfSection || seg.Parent == NoSegment {
		return c.Sections[seg.Section].StartRadius
	}
	return c.Segments[seg.Parent].Radius
}

// SegmentLength returns the length of a segment. Spherical segments have no
// extent along the section and report zero.
func (c *Cell) SegmentLength(ref SegRef) float64 {
	seg := &c.Segments[ref]
	if seg.Shape == Spherical {
		return 0
	}
	start := c.StartPoint(ref)
	dx := seg.End.X - start.X
	dy := seg.End.Y - start.Y
	dz := seg.End.Z - start.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// SectionLength returns the summed length of a section's segments.
func (c *Cell) SectionLength(sec int) float64 {
	total := 0.0
	for _, ref := range c.Sections[sec].Segs {
		total += c.SegmentLength(ref)
	}
	return total
}

// FractionAlongSection converts a fraction along the given segment into the
// equivalent fraction along that segment's whole section. Zero-length
// sections (a lone spherical segment) attach children at their midpoint.
func (c *Cell) FractionAlongSection(ref SegRef, fractAlongSegment float64) float64 {
	sec := c.Segments[ref].Section
	total := c.SectionLength(sec)
	if total == 0 {
		return 0.5
	}
	traversed := 0.0
	for _, other := range c.Sections[sec].Segs {
		if other == ref {
			break
		}
		traversed += c.SegmentLength(other)
	}
	return (traversed + fractAlongSegment*c.SegmentLength(ref)) / total
}

// SectionsInGroup returns the indices of sections whose first explicitly
// modelled segment belongs to the group, in section order. AllGroup matches
// every section with an explicit first segment.
func (c *Cell) SectionsInGroup(group string) []int {
	var out []int
	for i := range c.Sections {
		if len(c.Sections[i].Segs) == 0 {
			continue
		}
		first := &c.Segments[c.Sections[i].Segs[0]]
		if first.Inferred {
			continue
		}
		if group == AllGroup || first.InGroup(group) {
			out = append(out, i)
		}
	}
	return out
}

// IsGroupSubset reports whether every section of sub is also a section of
// super.
func (c *Cell) IsGroupSubset(sub, super string) bool {
	superSecs := make(map[int]struct{})
	for _, s := range c.SectionsInGroup(super) {
		superSecs[s] = struct{}{}
	}
	for _, s := range c.SectionsInGroup(sub) {
		if _, ok := superSecs[s]; !ok {
			return false
		}
	}
	return true
}

// MechsForGroup returns the mechanism placements acting on a group, in
// declaration order.
func (c *Cell) MechsForGroup(group string) []*ChannelMechanism {
	var out []*ChannelMechanism
	for i := range c.Mechs {
		for _, g := range c.Mechs[i].Groups {
			if g == group {
				out = append(out, &c.Mechs[i].Mech)
				break
			}
		}
	}
	return out
}

// MechAssignmentCount returns the total number of mechanism-to-group
// bindings on the cell.
func (c *Cell) MechAssignmentCount() int {
	n := 0
	for i := range c.Mechs {
		n += len(c.Mechs[i].Groups)
	}
	return n
}

// FirstSomaSegment returns the first explicitly modelled segment of the
// cell body. The network-connection accessor of the generated template
// cannot be produced without one.
func (c *Cell) FirstSomaSegment() (SegRef, error) {
	for _, ref := range c.ExplicitSegments() {
		if c.Segments[ref].IsSoma() {
			return ref, nil
		}
	}
	return NoSegment, fmt.Errorf("morph: cell %q has no segment in group %q", c.Name, SomaGroup)
}

// HasSphericalSegments reports whether any segment is spherical.
func (c *Cell) HasSphericalSegments() bool {
	for i := range c.Segments {
		if c.Segments[i].Shape == Spherical {
			return true
		}
	}
	return false
}

// SegmentByID resolves a stable segment id to its arena reference.
func (c *Cell) SegmentByID(id int) (SegRef, bool) {
	for i := range c.Segments {
		if c.Segments[i].ID == id {
			return i, true
		}
	}
	return NoSegment, false
}
