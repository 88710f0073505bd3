package hoc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nmorph/hocgen/internal/morph"
	"github.com/nmorph/hocgen/internal/units"
)

// Version identifies the generator in the emitted file header.
const Version = "0.3.1"

// ConvertFunc is the unit converter the generator consumes. It maps a
// scalar between unit systems for a given physical quantity.
type ConvertFunc func(value float64, from, to units.System, q units.Quantity) (float64, error)

// Options controls a generation pass.
type Options struct {
	// MaxProcLines is the statement budget per generated procedure before
	// splitting kicks in. Zero selects the default of 100, the limit the
	// hoc interpreter tolerates comfortably.
	MaxProcLines int
	// Comments toggles explanatory comments in the generated script.
	Comments bool
	// SegIDFunctions toggles the segment-id lookup procedures.
	SegIDFunctions bool
	// Convert is the unit converter. Nil selects units.Convert.
	Convert ConvertFunc
}

// DefaultOptions returns the options a plain CLI run uses.
func DefaultOptions() Options {
	return Options{
		MaxProcLines:   100,
		Comments:       true,
		SegIDFunctions: true,
		Convert:        units.Convert,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxProcLines <= 0 {
		o.MaxProcLines = 100
	}
	if o.Convert == nil {
		o.Convert = units.Convert
	}
	return o
}

// Generator performs one compile pass over an immutable cell.
type Generator struct {
	cell  *morph.Cell
	opts  Options
	diags *Diagnostics
}

// Generate compiles the cell into a hoc template and writes it to w in a
// single write. On error nothing has been written, so the caller never
// receives a partial artifact.
func Generate(cell *morph.Cell, w io.Writer, opts Options) (*Diagnostics, error) {
	g := &Generator{cell: cell, opts: opts.withDefaults(), diags: newDiagnostics()}

	script, err := g.assemble()
	if err != nil {
		return g.diags, err
	}
	if _, err := io.WriteString(w, script); err != nil {
		return g.diags, fmt.Errorf("writing hoc template for cell %q: %w", cell.Name, err)
	}
	return g.diags, nil
}

// GenerateFile compiles the cell into <dir>/<SpacelessName>.hoc and returns
// the written path. A failed pass closes the file best-effort and reports
// the attempted destination; callers must not treat partial output as
// usable.
func GenerateFile(cell *morph.Cell, dir string, opts Options) (string, *Diagnostics, error) {
	path := filepath.Join(dir, cell.SpacelessName()+".hoc")

	f, err := os.Create(path)
	if err != nil {
		return "", nil, fmt.Errorf("creating hoc file %s: %w", path, err)
	}

	diags, err := Generate(cell, f, opts)
	if err != nil {
		f.Close()
		return "", diags, fmt.Errorf("writing hoc file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", diags, fmt.Errorf("flushing hoc file %s: %w", path, err)
	}
	return path, diags, nil
}

// assemble concatenates the stage fragments in the fixed template order.
func (g *Generator) assemble() (string, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(g.fileHeader())

	hasParamGroups := len(g.cell.ParamGroups) > 0

	if hasParamGroups {
		sb.WriteString("\nload_file(\"subiter.hoc\")\n")
	}

	sb.WriteString("\nbegintemplate " + g.cell.SpacelessName() + "\n\n")
	sb.WriteString(g.commonHeader())
	sb.WriteString(g.groupHeader())
	sb.WriteString(g.procInit())
	sb.WriteString(g.createSections())

	sb.WriteString(g.procTopol())
	sb.WriteString(g.procBasicShape())
	sb.WriteString(g.procSubsets())
	sb.WriteString(g.procGeom())

	biophys, err := g.procBiophys()
	if err != nil {
		return "", err
	}
	sb.WriteString(biophys)
	sb.WriteString(g.procGeomNseg())

	if hasParamGroups {
		inhomo, err := g.procBiophysInhomo()
		if err != nil {
			return "", err
		}
		sb.WriteString(inhomo)

		if len(g.cell.VarMechs) > 0 && g.cell.HasSphericalSegments() {
			g.diags.warnOnce("paramgroup-spherical",
				"cell %q uses parameterised groups but contains spherical segments; "+
					"spheres are mapped to cylinders with children attached at the 0.5 point, "+
					"so path-distance calculations will include that extra length",
				g.cell.Name)
		}
	}

	sb.WriteString(g.procPosition())

	if g.opts.SegIDFunctions {
		sb.WriteString(g.segIDProcs())
	}

	connect, err := g.procConnect2Target()
	if err != nil {
		return "", err
	}
	sb.WriteString(connect)
	sb.WriteString(g.procInfo())

	sb.WriteString("\nendtemplate " + g.cell.SpacelessName() + "\n\n")
	return sb.String(), nil
}

func (g *Generator) fileHeader() string {
	var sb strings.Builder
	sb.WriteString("//  ******************************************************\n")
	sb.WriteString("//\n")
	sb.WriteString("//     File generated by: hocgen v" + Version + "\n")
	sb.WriteString("//\n")
	sb.WriteString("//     Generally replicates hoc for Cell Type as exported from\n")
	sb.WriteString("//     NEURON's Cell Builder, together with some helper/info\n")
	sb.WriteString("//     procedures, e.g. toString(), netInfo()\n")
	sb.WriteString("//\n")
	sb.WriteString("//  ******************************************************\n")
	sb.WriteString("\n")
	return sb.String()
}

func (g *Generator) commonHeader() string {
	var sb strings.Builder
	sb.WriteString("public init, topol, basic_shape, subsets, geom, memb\n")
	sb.WriteString("public synlist, x, y, z, position, connect2target\n\n")
	sb.WriteString(hocComment("Some fields for referencing the cells"))
	sb.WriteString("public reference, type, description, name\n")
	sb.WriteString("strdef reference, type, description, name\n\n")
	sb.WriteString(hocComment("Some methods for referencing the cells"))
	sb.WriteString("public toString, netInfo\n\n")

	if g.opts.SegIDFunctions {
		sb.WriteString(hocComment("Needed to match segment ids to the generated sections"))
		sb.WriteString("public accessSectionForSegId\n")
		sb.WriteString("public getFractAlongSection\n\n")
	}

	sb.WriteString("public all\n\n")
	sb.WriteString("objref synlist\n")
	sb.WriteString("objref all\n")
	sb.WriteString("objref stringFuncs\n")
	sb.WriteString("\n")
	return sb.String()
}

// groupHeader declares the per-group collection symbols. The "all" group is
// declared in the common header.
func (g *Generator) groupHeader() string {
	var sb strings.Builder
	for _, group := range g.cell.GroupNames() {
		if group == morph.AllGroup {
			continue
		}
		sb.WriteString("public " + group + "\n")
		sb.WriteString("objref " + group + "\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

func (g *Generator) procInit() string {
	var sb strings.Builder
	sb.WriteString("proc init() {\n")
	sb.WriteString("    topol()\n")
	sb.WriteString("    subsets()\n")
	sb.WriteString("    geom()\n")
	sb.WriteString("    biophys()\n")
	sb.WriteString("    geom_nseg()\n")
	if len(g.cell.ParamGroups) > 0 {
		sb.WriteString("    biophys_inhomo()\n")
	}
	sb.WriteString("    synlist = new List()\n")
	sb.WriteString("    x = y = z = 0\n")
	sb.WriteString("    reference = $s1\n")
	sb.WriteString("    type = $s2\n")
	sb.WriteString("    description = $s3\n")
	sb.WriteString("    \n")
	sb.WriteString("    strdef indexNum\n")
	sb.WriteString("    stringFuncs = new StringFunctions()\n")
	sb.WriteString("    stringFuncs.tail(reference, \"_\", indexNum)\n")
	sb.WriteString("    while (stringFuncs.substr( indexNum, \"_\")>=0) {\n")
	sb.WriteString("        stringFuncs.tail(indexNum, \"_\", indexNum)\n")
	sb.WriteString("    }\n")
	sb.WriteString("    \n")
	sb.WriteString("    sprint(name, \"%s\", type)\n")
	sb.WriteString("}\n")
	sb.WriteString("\n")
	return sb.String()
}

// procPosition renders the whole-cell translation procedure.
func (g *Generator) procPosition() string {
	var sb strings.Builder
	sb.WriteString("proc position() { local i\n")
	sb.WriteString("    forsec all {\n")
	sb.WriteString("        for i = 0, n3d()-1 {\n")
	sb.WriteString("            pt3dchange(i, $1+x3d(i), $2+y3d(i), $3+z3d(i), diam3d(i))\n")
	sb.WriteString("        }\n")
	sb.WriteString("    }\n")
	sb.WriteString("    x = $1  y = $2  z = $3\n")
	sb.WriteString("}\n")
	sb.WriteString("\n")
	return sb.String()
}

// procConnect2Target renders the network-connection accessor. The first
// soma segment is the assumed action potential trigger; a cell without one
// cannot produce this procedure.
func (g *Generator) procConnect2Target() (string, error) {
	somaSeg, err := g.cell.FirstSomaSegment()
	if err != nil {
		return "", fmt.Errorf("connect2target: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("proc connect2target() {   //$o1 target point process, $o2 returned NetCon\n\n")
	sb.WriteString(hocComment("Overly simple assumption that the first soma segment is the trigger for the AP"))
	sb.WriteString(fmt.Sprintf("    %s $o2 = new NetCon(&v(1), $o1)\n",
		SectionName(g.cell.Sections[g.cell.Segments[somaSeg].Section].Name)))
	if g.opts.Comments {
		sb.WriteString("    print \"connect2target called on \", name\n")
	}
	sb.WriteString("}\n")
	sb.WriteString("\n")
	return sb.String(), nil
}

func (g *Generator) procInfo() string {
	var sb strings.Builder

	sb.WriteString(hocComment("Single line identification of this cell, useful when checking what cells have been created"))
	sb.WriteString("proc toString() {\n")
	sb.WriteString("    strdef info\n")
	sb.WriteString("    sprint(info, \"Cell ref: %s (%s), at: (%d, %d, %d)\", reference, name, x, y, z)\n")
	sb.WriteString("    print info\n")
	sb.WriteString("}\n")
	sb.WriteString("\n")

	sb.WriteString(hocComment("Listing of the network connections on this cell"))
	sb.WriteString("proc netInfo() {\n")
	sb.WriteString("    strdef info\n")
	sb.WriteString("    sprint(info, \"Cell reference: %s, type: %s\", reference, type)\n")
	sb.WriteString("    print \"--------  \",info\n")
	sb.WriteString("    print \"    There are \", synlist.count(), \" connections in \", synlist\n")
	sb.WriteString("    for i=0,synlist.count()-1 {\n")
	sb.WriteString("        print \"        Connection from \", synlist.o[i].precell, \" to: \", synlist.o[i].postcell\n")
	sb.WriteString("        print \"        Pre:   Weight: \", synlist.o[i].weight, \", delay: \", synlist.o[i].delay, \", threshold: \", synlist.o[i].threshold \n")
	sb.WriteString("        print \"        Post:  \", synlist.o[i].syn(), \", gmax: \", synlist.o[i].syn().gmax\n")
	sb.WriteString("        print \" \"\n")
	sb.WriteString("    }\n")
	sb.WriteString("    print \"--------  \"\n")
	sb.WriteString("    print \" \"\n")
	sb.WriteString("}\n")
	sb.WriteString("\n")
	return sb.String()
}
