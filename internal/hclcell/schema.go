package hclcell

import "github.com/hashicorp/hcl/v2"

// SegmentBlock represents a `segment` block inside a section.
type SegmentBlock struct {
	Name          string    `hcl:"name,label"`
	ID            int       `hcl:"id"`
	Shape         string    `hcl:"shape,optional"`
	End           []float64 `hcl:"end"`
	Radius        float64   `hcl:"radius"`
	Parent        *int      `hcl:"parent,optional"`
	FractionAlong *float64  `hcl:"fraction_along,optional"`
	Groups        []string  `hcl:"groups,optional"`
	Inferred      bool      `hcl:"inferred,optional"`
}

// SectionBlock represents a `section` block: a named structural unit with
// its declared start geometry and ordered segments.
type SectionBlock struct {
	Name        string          `hcl:"name,label"`
	Start       []float64       `hcl:"start"`
	StartRadius float64         `hcl:"start_radius"`
	Nseg        *int            `hcl:"nseg,optional"`
	Segments    []*SegmentBlock `hcl:"segment,block"`
}

// GroupPropertyBlock carries the per-group scalar membrane properties.
type GroupPropertyBlock struct {
	Group           string   `hcl:"group,label"`
	Capacitance     *float64 `hcl:"capacitance,optional"`
	AxialResistance *float64 `hcl:"axial_resistance,optional"`
}

// IonBlock is the ion metadata of a channel mechanism.
type IonBlock struct {
	Name         string  `hcl:"name"`
	RevPotential float64 `hcl:"reversal_potential"`
	Units        string  `hcl:"units,optional"`
}

// ParamBlock is one named extra parameter on a mechanism placement.
type ParamBlock struct {
	Name  string  `hcl:"name,label"`
	Value float64 `hcl:"value"`
}

// MechanismBlock represents a `mechanism` block assigning a mechanism
// placement to one or more groups.
type MechanismBlock struct {
	Name    string        `hcl:"name,label"`
	Kind    string        `hcl:"kind,optional"`
	Density float64       `hcl:"density,optional"`
	Groups  []string      `hcl:"groups"`
	Ion     *IonBlock     `hcl:"ion,block"`
	Params  []*ParamBlock `hcl:"parameter,block"`
}

// ParamGroupBlock represents a `parameterised_group` block.
type ParamGroupBlock struct {
	Name     string   `hcl:"name,label"`
	Group    string   `hcl:"group"`
	Metric   string   `hcl:"metric,optional"`
	Proximal float64  `hcl:"proximal,optional"`
	Distal   *float64 `hcl:"distal,optional"`
}

// VariableMechanismBlock binds one mechanism parameter to an expression
// over a parameterised group's path variable. The expression is retained
// unevaluated; its source text is carried verbatim into the generated
// script after validation.
type VariableMechanismBlock struct {
	Name       string         `hcl:"name,label"`
	Param      string         `hcl:"parameter"`
	ParamGroup string         `hcl:"parameterised_group"`
	Expression hcl.Expression `hcl:"expression"`
}

// CellBlock represents a top-level `cell` block.
type CellBlock struct {
	Name        string                    `hcl:"name,label"`
	Sections    []*SectionBlock           `hcl:"section,block"`
	Props       []*GroupPropertyBlock     `hcl:"group_property,block"`
	Mechs       []*MechanismBlock         `hcl:"mechanism,block"`
	ParamGroups []*ParamGroupBlock        `hcl:"parameterised_group,block"`
	VarMechs    []*VariableMechanismBlock `hcl:"variable_mechanism,block"`
}

// fileRoot decodes all top-level blocks from any file.
type fileRoot struct {
	Cells  []*CellBlock `hcl:"cell,block"`
	Remain hcl.Body     `hcl:",remain"`
}
