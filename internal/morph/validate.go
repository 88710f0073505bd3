package morph

import "fmt"

// Validate checks the structural invariants the generator relies on. It is
// run once after loading; generation assumes a validated, immutable cell.
func (c *Cell) Validate() error {
	seenIDs := make(map[int]SegRef)
	for ref := range c.Segments {
		seg := &c.Segments[ref]

		if prev, dup := seenIDs[seg.ID]; dup {
			return fmt.Errorf("morph: segment id %d used by both %q and %q",
				seg.ID, c.Segments[prev].Name, seg.Name)
		}
		seenIDs[seg.ID] = ref

		if seg.FractionAlong < 0 || seg.FractionAlong > 1 {
			return fmt.Errorf("morph: segment %q has fraction along parent %v outside [0,1]",
				seg.Name, seg.FractionAlong)
		}

		if seg.Parent != NoSegment {
			if seg.Parent < 0 || seg.Parent >= len(c.Segments) {
				return fmt.Errorf("morph: segment %q references unknown parent index %d", seg.Name, seg.Parent)
			}
			parent := &c.Segments[seg.Parent]
			// Only a section's first segment may attach across sections.
			if !seg.FirstOfSection && parent.Section != seg.Section {
				return fmt.Errorf("morph: segment %q is not first of section %q but has parent %q in section %q",
					seg.Name, c.Sections[seg.Section].Name, parent.Name, c.Sections[parent.Section].Name)
			}
		} else if !seg.FirstOfSection {
			return fmt.Errorf("morph: segment %q has no parent but is not first of its section", seg.Name)
		}
	}

	if err := c.detectParentCycles(); err != nil {
		return err
	}

	return nil
}

// detectParentCycles runs a classic depth-first search over the parent
// references with three sets of nodes: permanent (fully visited and safe),
// temporary (currently on the recursion stack) and unvisited.
func (c *Cell) detectParentCycles() error {
	permanent := make(map[SegRef]bool)
	temporary := make(map[SegRef]bool)

	var visit func(ref SegRef) error
	visit = func(ref SegRef) error {
		if permanent[ref] {
			return nil
		}
		if temporary[ref] {
			return fmt.Errorf("morph: parent cycle detected involving segment %q", c.Segments[ref].Name)
		}

		temporary[ref] = true

		if parent := c.Segments[ref].Parent; parent != NoSegment {
			if err := visit(parent); err != nil {
				return err
			}
		}

		delete(temporary, ref)
		permanent[ref] = true
		return nil
	}

	for ref := range c.Segments {
		if !permanent[ref] {
			if err := visit(ref); err != nil {
				return err
			}
		}
	}

	return nil
}
