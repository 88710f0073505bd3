// Package units converts scalar physical quantities between the unit
// systems involved in hoc generation. Cell descriptions use model units,
// the emitted script uses NEURON units, and channel metadata files may
// declare values in SI or physiological units.
//
// Conversion is a pure function over a fixed scale table; there is no
// package state.
package units

import "fmt"

// System tags a unit system.
type System int

const (
	// ModelUnits is the unit system of the in-memory cell description:
	// mV, F/m2, ohm m, S/m2, mA/m2.
	ModelUnits System = iota
	// NeuronUnits is what the generated hoc script must contain:
	// mV, uF/cm2, ohm cm, S/cm2, mA/cm2.
	NeuronUnits
	// SIUnits covers channel metadata declared in SI: V, F/m2, ohm m, S/m2, A/m2.
	SIUnits
	// PhysiologicalUnits covers channel metadata in physiological units:
	// mV, uF/cm2, kohm cm, mS/cm2, uA/cm2.
	PhysiologicalUnits
)

// String implements fmt.Stringer for diagnostics.
func (s System) String() string {
	switch s {
	case ModelUnits:
		return "model"
	case NeuronUnits:
		return "neuron"
	case SIUnits:
		return "si"
	case PhysiologicalUnits:
		return "physiological"
	}
	return fmt.Sprintf("System(%d)", int(s))
}

// Quantity identifies the physical kind of the value being converted.
type Quantity int

const (
	Voltage Quantity = iota
	SpecificCapacitance
	SpecificAxialResistance
	ConductanceDensity
	CurrentDensity
)

// String implements fmt.Stringer for diagnostics.
func (q Quantity) String() string {
	switch q {
	case Voltage:
		return "voltage"
	case SpecificCapacitance:
		return "specific capacitance"
	case SpecificAxialResistance:
		return "specific axial resistance"
	case ConductanceDensity:
		return "conductance density"
	case CurrentDensity:
		return "current density"
	}
	return fmt.Sprintf("Quantity(%d)", int(q))
}

// scale holds, per quantity, the factor from each system's native unit to a
// canonical base unit. Converting a to b divides a's factor by b's.
//
// Base units: V, F/m2, ohm m, S/m2, A/m2.
var scale = map[Quantity]map[System]float64{
	Voltage: {
		ModelUnits:         1e-3, // mV
		NeuronUnits:        1e-3, // mV
		SIUnits:            1,    // V
		PhysiologicalUnits: 1e-3, // mV
	},
	SpecificCapacitance: {
		ModelUnits:         1,    // F/m2
		NeuronUnits:        1e-2, // uF/cm2
		SIUnits:            1,    // F/m2
		PhysiologicalUnits: 1e-2, // uF/cm2
	},
	SpecificAxialResistance: {
		ModelUnits:         1,    // ohm m
		NeuronUnits:        1e-2, // ohm cm
		SIUnits:            1,    // ohm m
		PhysiologicalUnits: 1e1,  // kohm cm
	},
	ConductanceDensity: {
		ModelUnits:         1,    // S/m2
		NeuronUnits:        1e4,  // S/cm2
		SIUnits:            1,    // S/m2
		PhysiologicalUnits: 1e1,  // mS/cm2
	},
	CurrentDensity: {
		ModelUnits:         1e-3, // mA/m2
		NeuronUnits:        1e1,  // mA/cm2
		SIUnits:            1,    // A/m2
		PhysiologicalUnits: 1e-2, // uA/cm2
	},
}

// Convert maps value from one unit system to another for the given quantity.
// An unknown system/quantity pairing is an error, not a silent identity.
func Convert(value float64, from, to System, q Quantity) (float64, error) {
	factors, ok := scale[q]
	if !ok {
		return 0, fmt.Errorf("units: unknown quantity %v", q)
	}
	fromFactor, ok := factors[from]
	if !ok {
		return 0, fmt.Errorf("units: quantity %v has no factor for system %v", q, from)
	}
	toFactor, ok := factors[to]
	if !ok {
		return 0, fmt.Errorf("units: quantity %v has no factor for system %v", q, to)
	}
	return value * fromFactor / toFactor, nil
}

// ParseSystem resolves the textual unit-system tags used in cell
// description files.
func ParseSystem(tag string) (System, error) {
	switch tag {
	case "si":
		return SIUnits, nil
	case "physiological":
		return PhysiologicalUnits, nil
	case "model":
		return ModelUnits, nil
	}
	return 0, fmt.Errorf("units: unknown unit system tag %q", tag)
}
