package hoc

import "fmt"

// Diagnostics collects non-fatal advisories raised during a generation
// pass. It is created per pass and returned alongside the artifact, so two
// concurrent compiles never share warning state.
type Diagnostics struct {
	warnings []string
	seen     map[string]bool
}

func newDiagnostics() *Diagnostics {
	return &Diagnostics{seen: make(map[string]bool)}
}

// warnOnce records a warning at most once per pass for the given key.
func (d *Diagnostics) warnOnce(key, format string, args ...any) {
	if d.seen[key] {
		return
	}
	d.seen[key] = true
	d.warnings = append(d.warnings, fmt.Sprintf(format, args...))
}

// Warnings returns the advisories collected during the pass, in order.
func (d *Diagnostics) Warnings() []string {
	return d.warnings
}
