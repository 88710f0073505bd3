package morph

import (
	"fmt"
	"math"
)

// AllGroup is the distinguished group containing every explicitly modelled
// segment's section. It always exists and must not appear in user models.
const AllGroup = "all"

// SomaGroup marks the cell body. Segments belonging to it get the two-point
// shape treatment in the generated script.
const SomaGroup = "soma_group"

// SegRef indexes a segment within its cell's arena.
type SegRef = int

// NoSegment is the parent reference of a root segment.
const NoSegment SegRef = -1

// Point is a position in 3D space, in micrometers.
type Point struct {
	X, Y, Z float64
}

// Shape tags the geometric form of a segment.
type Shape int

const (
	Cylindrical Shape = iota
	Spherical
)

// Section is a named structural unit owning a contiguous run of segments.
// It is the addressable element of the generated script.
type Section struct {
	Name        string
	Start       Point
	StartRadius float64
	// Nseg is the number of internal subdivisions the simulator should use.
	Nseg int

	// Segs lists the owned segments in order. The first entry is the
	// section's first segment.
	Segs []SegRef
}

// Segment is the finest-grained model unit.
type Segment struct {
	ID     int
	Name   string
	Shape  Shape
	End    Point
	Radius float64

	// Parent is the segment this one grows from, NoSegment for a root.
	Parent SegRef
	// FractionAlong is the attachment position on the parent segment, in [0,1].
	FractionAlong float64

	// Section indexes the owning section in the cell arena.
	Section int
	// FirstOfSection marks the segment that opens its section. Only such
	// segments may have a parent in a different section.
	FirstOfSection bool

	// Groups lists the named groups this segment belongs to.
	Groups []string

	// Inferred marks segments derived automatically rather than modelled
	// explicitly. Inferred segments are invisible to most generation stages.
	Inferred bool
}

// InGroup reports membership of the named group.
func (s *Segment) InGroup(group string) bool {
	for _, g := range s.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// IsSoma reports whether the segment belongs to the cell body.
func (s *Segment) IsSoma() bool {
	return s.InGroup(SomaGroup)
}

// PassiveProps are the per-group scalar membrane properties, in model units.
// NaN means "not set for this group".
type PassiveProps struct {
	SpecCapacitance float64
	SpecAxialRes    float64
}

// UnsetProps returns a PassiveProps with both values at the unset sentinel.
func UnsetProps() PassiveProps {
	return PassiveProps{SpecCapacitance: math.NaN(), SpecAxialRes: math.NaN()}
}

// Cell is the root of the model arena.
type Cell struct {
	Name string

	Sections []Section
	Segments []Segment

	// groupOrder holds every group name in first-declaration order, with
	// AllGroup always first.
	groupOrder []string

	// Props maps a group name to its scalar overrides.
	Props map[string]PassiveProps

	// Mechs lists channel mechanism placements in declaration order.
	Mechs []MechAssignment

	// ParamGroups lists parameterised groups in declaration order.
	ParamGroups []ParameterisedGroup

	// VarMechs lists variable mechanism bindings in declaration order.
	VarMechs []VariableMechanism
}

// NewCell creates an empty cell carrying only the implicit "all" group.
func NewCell(name string) *Cell {
	return &Cell{
		Name:       name,
		groupOrder: []string{AllGroup},
		Props:      make(map[string]PassiveProps),
	}
}

// AddSection appends a section record and returns its index.
func (c *Cell) AddSection(s Section) int {
	c.Sections = append(c.Sections, s)
	return len(c.Sections) - 1
}

// AddSegment appends a segment to the arena and registers it with its owning
// section. The first segment added to a section becomes its first segment.
func (c *Cell) AddSegment(s Segment) SegRef {
	if s.Section < 0 || s.Section >= len(c.Sections) {
		panic(fmt.Sprintf("morph: segment %q references unknown section %d", s.Name, s.Section))
	}
	sec := &c.Sections[s.Section]
	s.FirstOfSection = len(sec.Segs) == 0
	ref := len(c.Segments)
	c.Segments = append(c.Segments, s)
	sec.Segs = append(sec.Segs, ref)
	for _, g := range s.Groups {
		c.registerGroup(g)
	}
	return ref
}

// SetProps records the scalar overrides for a group.
func (c *Cell) SetProps(group string, p PassiveProps) {
	c.registerGroup(group)
	c.Props[group] = p
}

// AddMechAssignment appends a mechanism placement.
func (c *Cell) AddMechAssignment(a MechAssignment) {
	for _, g := range a.Groups {
		c.registerGroup(g)
	}
	c.Mechs = append(c.Mechs, a)
}

// AddParamGroup appends a parameterised group.
func (c *Cell) AddParamGroup(pg ParameterisedGroup) {
	c.registerGroup(pg.Group)
	c.ParamGroups = append(c.ParamGroups, pg)
}

// AddVarMech appends a variable mechanism binding.
func (c *Cell) AddVarMech(vm VariableMechanism) {
	c.VarMechs = append(c.VarMechs, vm)
}

func (c *Cell) registerGroup(name string) {
	for _, g := range c.groupOrder {
		if g == name {
			return
		}
	}
	c.groupOrder = append(c.groupOrder, name)
}

// GroupNames returns every group name, AllGroup first, the rest in
// first-declaration order.
func (c *Cell) GroupNames() []string {
	out := make([]string, len(c.groupOrder))
	copy(out, c.groupOrder)
	return out
}

// SpacelessName returns the cell name with spaces removed, the base name of
// the generated hoc file and template.
func (c *Cell) SpacelessName() string {
	out := make([]rune, 0, len(c.Name))
	for _, r := range c.Name {
		if r != ' ' {
			out = append(out, r)
		}
	}
	return string(out)
}
