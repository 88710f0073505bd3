package hoc

import (
	"fmt"
	"math"
	"strings"

	"github.com/nmorph/hocgen/internal/morph"
	"github.com/nmorph/hocgen/internal/units"
)

// mechIndirectionThreshold is the number of mechanism-to-group bindings
// above which the biophysics body is routed through an extra indirection
// procedure, so the umbrella procedure itself stays small even before any
// single group grows large.
const mechIndirectionThreshold = 100

// procBiophys renders the biophysics procedure: per-group passive
// properties, channel mechanism insertion and parameterization, reversal
// potential assignment, and variable-mechanism placeholders. Point-process
// object declarations are returned as part of the fragment, ahead of the
// procedure itself.
func (g *Generator) procBiophys() (string, error) {
	var ppDecls strings.Builder
	var sb strings.Builder

	sb.WriteString("proc biophys() {\n")

	for _, group := range g.cell.GroupNames() {
		props, ok := g.cell.Props[group]
		if !ok {
			continue
		}
		if !math.IsNaN(props.SpecCapacitance) {
			cm, err := g.opts.Convert(props.SpecCapacitance, units.ModelUnits, units.NeuronUnits, units.SpecificCapacitance)
			if err != nil {
				return "", fmt.Errorf("capacitance for group %q: %w", group, err)
			}
			sb.WriteString(fmt.Sprintf("    forsec %s cm = %s\n", group, num(cm)))
		}
		if !math.IsNaN(props.SpecAxialRes) {
			ra, err := g.opts.Convert(props.SpecAxialRes, units.ModelUnits, units.NeuronUnits, units.SpecificAxialResistance)
			if err != nil {
				return "", fmt.Errorf("axial resistance for group %q: %w", group, err)
			}
			sb.WriteString(fmt.Sprintf("    forsec %s Ra = %s\n", group, num(ra)))
		}
	}
	sb.WriteString("\n")

	if g.cell.MechAssignmentCount() > mechIndirectionThreshold {
		sb.WriteString("    addChanMechs()\n")
		sb.WriteString("}\n\n")
		sb.WriteString("proc addChanMechs() {\n\n")
	}

	totLines := 0
	subProcCount := 0
	carrierMemo := make(map[string][]mechCarrier)

	for _, group := range g.cell.GroupNames() {
		for _, mech := range g.cell.MechsForGroup(group) {
			block, err := g.mechBlock(group, mech, &ppDecls, carrierMemo)
			if err != nil {
				return "", err
			}

			blockLines := strings.Count(block, "\n")
			if totLines+blockLines >= g.opts.MaxProcLines {
				sb.WriteString(fmt.Sprintf("    addChanMechs_%d()  // Splitting function to prevent errors when proc too big\n", subProcCount))
				sb.WriteString("}\n\n")
				sb.WriteString(fmt.Sprintf("proc addChanMechs_%d() {\n\n", subProcCount))
				subProcCount++
				totLines = 0
			}
			totLines += blockLines

			sb.WriteString(block)
		}
	}

	// Variable mechanisms are inserted with the driven parameter zeroed;
	// the real values are assigned later by biophys_inhomo().
	for i := range g.cell.VarMechs {
		vm := &g.cell.VarMechs[i]
		pg, err := g.cell.ParamGroupByName(vm.ParamGroup)
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf("    forsec %s { \n", pg.Group))
		if g.opts.Comments {
			sb.WriteString(hocComment(fmt.Sprintf("    Variable mechanism: %s", vm.Name)))
			sb.WriteString(hocComment(fmt.Sprintf("    On parameter group: %s", pg.Name)))
			sb.WriteString(hocComment(fmt.Sprintf("    Note, %s will be set in biophys_inhomo()", vm.Param)))
		}
		sb.WriteString(fmt.Sprintf("        insert %s { %s_%s = 0 }\n", vm.Name, vm.Param, vm.Name))
		sb.WriteString("    }\n")
	}

	sb.WriteString("}\n\n")

	if ppDecls.Len() > 0 {
		return ppDecls.String() + "\n\n" + sb.String(), nil
	}
	return sb.String(), nil
}

// mechBlock renders one mechanism placement on one group. Point processes
// become one named object per section; everything else becomes a forsec
// block inserting and parameterizing the mechanism across the group.
func (g *Generator) mechBlock(group string, mech *morph.ChannelMechanism, ppDecls *strings.Builder, carrierMemo map[string][]mechCarrier) (string, error) {
	var sb strings.Builder

	if mech.Kind == morph.PointProcessKind {
		for _, sec := range g.cell.SectionsInGroup(group) {
			secName := SectionName(g.cell.Sections[sec].Name)
			objName := fmt.Sprintf("pp_%s_%s", mech.Name, secName)
			ppDecls.WriteString("public " + objName + "\n")
			ppDecls.WriteString("objref " + objName + "\n\n")
			sb.WriteString(fmt.Sprintf("    %s %s = new %s(0.5) \n", secName, objName, mech.Name))
		}
		return sb.String(), nil
	}

	sb.WriteString("    forsec " + group + " { ")

	extraParams := mechExtraParams(mech)
	if g.opts.Comments {
		if len(extraParams) == 0 {
			sb.WriteString(hocComment("    Assuming parameters other than max cond dens are set in the mod file..."))
		} else {
			sb.WriteString(hocComment(fmt.Sprintf("    Using parameters: %v", paramNames(extraParams))))
		}
	}

	sb.WriteString("        insert " + mech.Name)

	var moreParams strings.Builder
	for _, p := range extraParams {
		moreParams.WriteString(fmt.Sprintf("\n    %s_%s = %s", p.Name, mech.Name, num(p.Value)))
	}

	switch mech.Kind {
	case morph.ChannelKind:
		condDens, err := g.opts.Convert(mech.Density, units.ModelUnits, units.NeuronUnits, units.ConductanceDensity)
		if err != nil {
			return "", fmt.Errorf("conductance density for mechanism %q: %w", mech.Name, err)
		}
		if mech.Name == "pas" {
			// pas is the simulator's built-in leak; its conductance density
			// parameter is g, not gmax.
			condString := fmt.Sprintf("g_%s = %s%s", mech.Name, num(condDens), moreParams.String())
			if mech.Density < 0 {
				condString = fmt.Sprintf("    // Ignoring gmax (%s) for this channel mechanism\n", num(mech.Density))
			}
			sb.WriteString("  { " + condString + " }  ")
		} else {
			condString := fmt.Sprintf("gmax_%s = %s", mech.Name, num(condDens))
			if mech.Density < 0 {
				condString = fmt.Sprintf("\n    // Ignoring gmax (%s) for this channel mechanism\n", num(mech.Density))
			}
			sb.WriteString("  { " + condString + moreParams.String() + " }  ")
		}
	case morph.IonConcentrationKind:
		sb.WriteString("  { " + moreParams.String() + " }  ")
	}

	if mech.Ion != nil {
		if err := g.writeRevPotential(&sb, group, mech, carrierMemo); err != nil {
			return "", err
		}
	}

	sb.WriteString("\n    }\n\n")
	return sb.String(), nil
}

// writeRevPotential emits the reversal potential assignment for a
// mechanism's ion, unless a superset group carrying the same mechanism owns
// the authoritative override. The superset's assignment runs first in a
// correctly ordered script, so re-setting on a subset would silently win
// with a possibly stale value.
func (g *Generator) writeRevPotential(sb *strings.Builder, group string, mech *morph.ChannelMechanism, carrierMemo map[string][]mechCarrier) error {
	ion := mech.Ion

	if g.opts.Comments {
		sb.WriteString(hocComment(fmt.Sprintf("    Ion %s is used in this process...", ion.Name)))
	}

	raw := ion.RevPotential
	if p := mech.RevPotentialOverride(); p != nil {
		raw = p.Value
	}
	erev, err := g.opts.Convert(raw, ion.Units, units.NeuronUnits, units.Voltage)
	if err != nil {
		return fmt.Errorf("reversal potential for mechanism %q ion %q: %w", mech.Name, ion.Name, err)
	}

	suppressed := g.revPotSetElsewhere(sb, group, mech, carrierMemo)

	if ion.Name != morph.NonSpecificIon {
		if !suppressed {
			sb.WriteString(fmt.Sprintf("        e%s = %s\n", ion.Name, num(erev)))
		}
	} else if !suppressed && mech.Name == "pas" {
		sb.WriteString(fmt.Sprintf("  e_%s = %s\n", mech.Name, num(erev)))
	}

	return nil
}

// mechCarrier is one group known to carry a given mechanism, with the
// placement acting on it.
type mechCarrier struct {
	group string
	mech  *morph.ChannelMechanism
}

// carriersOf lists every (group, placement) pair carrying the named
// mechanism. The placement scan is mechanism-global, not group-local, so it
// is memoized per mechanism name within one pass.
func (g *Generator) carriersOf(name string, memo map[string][]mechCarrier) []mechCarrier {
	if v, ok := memo[name]; ok {
		return v
	}
	var out []mechCarrier
	for i := range g.cell.Mechs {
		if g.cell.Mechs[i].Mech.Name != name {
			continue
		}
		for _, grp := range g.cell.Mechs[i].Groups {
			out = append(out, mechCarrier{group: grp, mech: &g.cell.Mechs[i].Mech})
		}
	}
	memo[name] = out
	return out
}

// revPotSetElsewhere answers whether any other group carrying a mechanism
// of the same name is a structural superset of group and defines its own
// reversal potential override.
func (g *Generator) revPotSetElsewhere(sb *strings.Builder, group string, mech *morph.ChannelMechanism, carrierMemo map[string][]mechCarrier) bool {
	set := false
	for _, c := range g.carriersOf(mech.Name, carrierMemo) {
		if c.group == group {
			continue
		}
		if g.opts.Comments {
			sb.WriteString(hocComment(fmt.Sprintf("    Group %s also has %s (%s)", c.group, mech.Name, c.mech)))
		}
		if g.cell.IsGroupSubset(group, c.group) && c.mech.RevPotentialOverride() != nil {
			set = true
			if g.opts.Comments {
				sb.WriteString(hocComment(fmt.Sprintf(
					"    Reversal potential for ion set by %s which is on superset group: %s", c.mech, c.group)))
			}
		}
	}
	return set
}

// mechExtraParams returns the declared extra parameters minus the reversal
// potential override, which is handled separately.
func mechExtraParams(mech *morph.ChannelMechanism) []morph.MechParam {
	var out []morph.MechParam
	for _, p := range mech.Params {
		if p.Name == "e" || p.Name == "erev" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func paramNames(params []morph.MechParam) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = fmt.Sprintf("%s=%s", p.Name, num(p.Value))
	}
	return names
}
