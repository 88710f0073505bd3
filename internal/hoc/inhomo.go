package hoc

import (
	"fmt"
	"strings"

	"github.com/nmorph/hocgen/internal/units"
)

// procBiophysInhomo renders the position-dependent property procedures.
// Only called when the cell declares at least one parameterised group.
func (g *Generator) procBiophysInhomo() (string, error) {
	var sb strings.Builder

	for i := range g.cell.ParamGroups {
		sb.WriteString(fmt.Sprintf("objref %s \n", g.cell.ParamGroups[i].Name))
	}

	// One fixed factor converts every evaluated expression from model units
	// to the simulator's numeric units.
	convFactor, err := g.opts.Convert(1, units.ModelUnits, units.NeuronUnits, units.CurrentDensity)
	if err != nil {
		return "", fmt.Errorf("inhomogeneous conversion factor: %w", err)
	}

	var postProcs strings.Builder

	sb.WriteString("proc biophys_inhomo() { \n")
	for i := range g.cell.ParamGroups {
		pg := &g.cell.ParamGroups[i]
		sb.WriteString(fmt.Sprintf("    %s = new %s \n", pg.Name, pg.NeuronObject()))
	}
	sb.WriteString("     \n")

	// Evaluation order follows declaration order of the variable
	// mechanisms, not group or alphabetical order.
	for i := range g.cell.VarMechs {
		vm := &g.cell.VarMechs[i]
		pg, err := g.cell.ParamGroupByName(vm.ParamGroup)
		if err != nil {
			return "", err
		}
		procName := fmt.Sprintf("%s_%s_%s()", vm.Param, vm.Name, pg.Group)
		sb.WriteString("    " + procName + "\n")

		postProcs.WriteString(fmt.Sprintf("proc %s { local x, p, p0, p1\n", procName))
		postProcs.WriteString(fmt.Sprintf("    %s.update()\n", pg.Name))
		postProcs.WriteString(fmt.Sprintf("    p0 = %s.p0  p1 = %s.p1\n", pg.Name, pg.Name))
		postProcs.WriteString(fmt.Sprintf("    for %s.loop() {\n", pg.Name))
		postProcs.WriteString(fmt.Sprintf("        x = %s.x  p = %s.p\n", pg.Name, pg.Name))
		postProcs.WriteString(fmt.Sprintf("        %s_%s(x) = %s * %s // %s converts to simulator units\n",
			vm.Param, vm.Name, num(convFactor), vm.Expression, num(convFactor)))
		postProcs.WriteString("    }\n")
		postProcs.WriteString("}\n\n")
	}

	sb.WriteString("}\n\n")

	sb.WriteString("func H() { // Heaviside function, can be used to set gmax = 0 when x <100 etc.\n")
	sb.WriteString("    if ($1>=0) return 1\n")
	sb.WriteString("    return 0\n")
	sb.WriteString("}\n\n")

	sb.WriteString(postProcs.String())

	return sb.String(), nil
}
