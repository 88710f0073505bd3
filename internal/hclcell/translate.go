package hclcell

import (
	"context"
	"fmt"
	"math"

	"github.com/nmorph/hocgen/internal/ctxlog"
	"github.com/nmorph/hocgen/internal/morph"
	"github.com/nmorph/hocgen/internal/units"
)

// defaultMetric is the hoc iterator class used when a parameterised group
// does not name one.
const defaultMetric = "PathLengthOverSubset"

// translateCell converts a decoded cell block into the arena model,
// resolving parent ids and validating the result.
func (l *Loader) translateCell(ctx context.Context, block *CellBlock, sources map[string][]byte) (*morph.Cell, error) {
	logger := ctxlog.FromContext(ctx)

	cell := morph.NewCell(block.Name)

	// Parent references arrive as stable segment ids; record them per arena
	// index and resolve after every segment exists.
	parentIDs := make(map[morph.SegRef]int)

	for _, sec := range block.Sections {
		start, err := toPoint(sec.Start)
		if err != nil {
			return nil, fmt.Errorf("section %q start: %w", sec.Name, err)
		}
		nseg := 1
		if sec.Nseg != nil {
			nseg = *sec.Nseg
		}
		secIdx := cell.AddSection(morph.Section{
			Name:        sec.Name,
			Start:       start,
			StartRadius: sec.StartRadius,
			Nseg:        nseg,
		})

		for _, seg := range sec.Segments {
			if err := checkGroupNames(seg.Groups); err != nil {
				return nil, fmt.Errorf("segment %q: %w", seg.Name, err)
			}
			shape, err := parseShape(seg.Shape)
			if err != nil {
				return nil, fmt.Errorf("segment %q: %w", seg.Name, err)
			}
			end, err := toPoint(seg.End)
			if err != nil {
				return nil, fmt.Errorf("segment %q end: %w", seg.Name, err)
			}
			fract := 1.0
			if seg.FractionAlong != nil {
				fract = *seg.FractionAlong
			}
			ref := cell.AddSegment(morph.Segment{
				ID:            seg.ID,
				Name:          seg.Name,
				Shape:         shape,
				End:           end,
				Radius:        seg.Radius,
				Parent:        morph.NoSegment,
				FractionAlong: fract,
				Section:       secIdx,
				Groups:        seg.Groups,
				Inferred:      seg.Inferred,
			})
			if seg.Parent != nil {
				parentIDs[ref] = *seg.Parent
			}
		}
	}

	for ref, parentID := range parentIDs {
		parentRef, ok := cell.SegmentByID(parentID)
		if !ok {
			return nil, fmt.Errorf("segment %q references unknown parent id %d", cell.Segments[ref].Name, parentID)
		}
		cell.Segments[ref].Parent = parentRef
	}

	for _, prop := range block.Props {
		if err := checkGroupNames([]string{prop.Group}); err != nil {
			return nil, fmt.Errorf("group_property: %w", err)
		}
		p := morph.UnsetProps()
		if prop.Capacitance != nil {
			p.SpecCapacitance = *prop.Capacitance
		}
		if prop.AxialResistance != nil {
			p.SpecAxialRes = *prop.AxialResistance
		}
		cell.SetProps(prop.Group, p)
	}

	for _, mech := range block.Mechs {
		translated, err := translateMechanism(mech)
		if err != nil {
			return nil, err
		}
		if err := checkGroupNames(mech.Groups); err != nil {
			return nil, fmt.Errorf("mechanism %q: %w", mech.Name, err)
		}
		cell.AddMechAssignment(morph.MechAssignment{Mech: *translated, Groups: mech.Groups})
	}

	for _, pg := range block.ParamGroups {
		metric := pg.Metric
		if metric == "" {
			metric = defaultMetric
		}
		distal := 1.0
		if pg.Distal != nil {
			distal = *pg.Distal
		}
		cell.AddParamGroup(morph.ParameterisedGroup{
			Name:     pg.Name,
			Group:    pg.Group,
			Metric:   metric,
			Proximal: pg.Proximal,
			Distal:   distal,
		})
	}

	for _, vm := range block.VarMechs {
		exprText, err := validateDistribution(vm.Expression, sources)
		if err != nil {
			return nil, fmt.Errorf("variable_mechanism %q: %w", vm.Name, err)
		}
		if _, err := cell.ParamGroupByName(vm.ParamGroup); err != nil {
			return nil, fmt.Errorf("variable_mechanism %q: %w", vm.Name, err)
		}
		cell.AddVarMech(morph.VariableMechanism{
			Name:       vm.Name,
			Param:      vm.Param,
			Expression: exprText,
			ParamGroup: vm.ParamGroup,
		})
	}

	if err := cell.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Translated cell.",
		"cell", cell.Name,
		"sections", len(cell.Sections),
		"segments", len(cell.Segments),
		"mechanisms", len(cell.Mechs))
	return cell, nil
}

func translateMechanism(block *MechanismBlock) (*morph.ChannelMechanism, error) {
	kind, err := parseKind(block.Kind)
	if err != nil {
		return nil, fmt.Errorf("mechanism %q: %w", block.Name, err)
	}

	mech := &morph.ChannelMechanism{
		Name:    block.Name,
		Kind:    kind,
		Density: block.Density,
	}
	for _, p := range block.Params {
		mech.Params = append(mech.Params, morph.MechParam{Name: p.Name, Value: p.Value})
	}

	if block.Ion != nil {
		tag := block.Ion.Units
		if tag == "" {
			tag = "model"
		}
		system, err := units.ParseSystem(tag)
		if err != nil {
			return nil, fmt.Errorf("mechanism %q ion %q: %w", block.Name, block.Ion.Name, err)
		}
		mech.Ion = &morph.IonInfo{
			Name:         block.Ion.Name,
			RevPotential: block.Ion.RevPotential,
			Units:        system,
		}
	}

	return mech, nil
}

func parseKind(tag string) (morph.MechKind, error) {
	switch tag {
	case "", "channel":
		return morph.ChannelKind, nil
	case "ion_concentration":
		return morph.IonConcentrationKind, nil
	case "point_process":
		return morph.PointProcessKind, nil
	}
	return 0, fmt.Errorf("unknown mechanism kind %q", tag)
}

func parseShape(tag string) (morph.Shape, error) {
	switch tag {
	case "", "cylindrical":
		return morph.Cylindrical, nil
	case "spherical":
		return morph.Spherical, nil
	}
	return 0, fmt.Errorf("unknown segment shape %q", tag)
}

// checkGroupNames rejects user redefinition of the implicit "all" group.
func checkGroupNames(groups []string) error {
	for _, g := range groups {
		if g == morph.AllGroup {
			return fmt.Errorf("the group %q is implicit and cannot be declared in the model", morph.AllGroup)
		}
	}
	return nil
}

func toPoint(coords []float64) (morph.Point, error) {
	if len(coords) != 3 {
		return morph.Point{}, fmt.Errorf("expected 3 coordinates, got %d", len(coords))
	}
	p := morph.Point{X: coords[0], Y: coords[1], Z: coords[2]}
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
		return morph.Point{}, fmt.Errorf("coordinates must be finite")
	}
	return p, nil
}
