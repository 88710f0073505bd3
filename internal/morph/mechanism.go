package morph

import (
	"fmt"

	"github.com/nmorph/hocgen/internal/units"
)

// MechKind tags the behaviour class of a mechanism. Emission branches on
// the tag; there is no type inspection anywhere in the generator.
type MechKind int

const (
	// ChannelKind is a distributed membrane conductance with a density.
	ChannelKind MechKind = iota
	// IonConcentrationKind models an ion pool; it is inserted but carries
	// no conductance density.
	IonConcentrationKind
	// PointProcessKind is instantiated as one named object per section
	// rather than inserted across a group.
	PointProcessKind
)

// String implements fmt.Stringer for diagnostics.
func (k MechKind) String() string {
	switch k {
	case ChannelKind:
		return "channel"
	case IonConcentrationKind:
		return "ion_concentration"
	case PointProcessKind:
		return "point_process"
	}
	return fmt.Sprintf("MechKind(%d)", int(k))
}

// MechParam is a named scalar parameter declared on a mechanism placement.
type MechParam struct {
	Name  string
	Value float64
}

// NonSpecificIon is the ion name used by leak-type channels that are not
// selective for a particular species.
const NonSpecificIon = "non_specific"

// IonInfo is the ion metadata a channel mechanism carries: which species it
// passes and the reversal potential declared in the mechanism's own unit
// system.
type IonInfo struct {
	Name         string
	RevPotential float64
	Units        units.System
}

// ChannelMechanism is a mechanism placement descriptor: the mechanism name
// plus the values this particular placement sets.
type ChannelMechanism struct {
	Name string
	Kind MechKind

	// Density is the maximum conductance density in model units. A negative
	// value means "leave the mechanism's built-in default untouched".
	Density float64

	// Params are extra named parameters set verbatim, in declaration order.
	// A parameter named "e" or "erev" overrides the ion reversal potential.
	Params []MechParam

	// Ion is the ion metadata, nil when the mechanism carries none.
	Ion *IonInfo
}

// Param returns the named extra parameter, or nil.
func (m *ChannelMechanism) Param(name string) *MechParam {
	for i := range m.Params {
		if m.Params[i].Name == name {
			return &m.Params[i]
		}
	}
	return nil
}

// RevPotentialOverride returns the explicit reversal-potential parameter on
// this placement ("e" preferred over "erev"), or nil.
func (m *ChannelMechanism) RevPotentialOverride() *MechParam {
	if p := m.Param("e"); p != nil {
		return p
	}
	return m.Param("erev")
}

// String renders the placement for generated-script comments.
func (m *ChannelMechanism) String() string {
	return fmt.Sprintf("%s (density: %v)", m.Name, m.Density)
}

// MechAssignment binds one mechanism placement to the groups it acts on.
type MechAssignment struct {
	Mech   ChannelMechanism
	Groups []string
}

// ParameterisedGroup equips a group with a continuous path coordinate for
// position-dependent property distributions.
type ParameterisedGroup struct {
	Name   string
	Group  string
	// Metric names the hoc iterator class evaluating the path coordinate,
	// e.g. PathLengthOverSubset.
	Metric   string
	Proximal float64
	Distal   float64
}

// NeuronObject renders the hoc constructor expression for the group's
// position iterator.
func (pg *ParameterisedGroup) NeuronObject() string {
	return fmt.Sprintf("%s(%s, %v, %v)", pg.Metric, pg.Group, pg.Proximal, pg.Distal)
}

// VariableMechanism is a mechanism whose one parameter is a function of a
// parameterised group's path variable instead of a constant.
type VariableMechanism struct {
	Name  string
	Param string
	// Expression is the distribution as a function of the normalized path
	// variable p, carried verbatim into the generated script.
	Expression string
	// ParamGroup names the ParameterisedGroup the expression runs over.
	ParamGroup string
}

// ParamGroupByName resolves a parameterised group declaration.
func (c *Cell) ParamGroupByName(name string) (*ParameterisedGroup, error) {
	for i := range c.ParamGroups {
		if c.ParamGroups[i].Name == name {
			return &c.ParamGroups[i], nil
		}
	}
	return nil, fmt.Errorf("morph: cell %q has no parameterised group %q", c.Name, name)
}
