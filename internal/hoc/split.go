package hoc

import (
	"math"
	"strconv"
	"strings"
)

// splitProc describes a procedure whose statement block may need splitting.
type splitProc struct {
	// open is the full first line, e.g. "proc topol() {".
	open string
	// preamble lines are emitted right after open, before the statement
	// block, and do not count against the line budget.
	preamble []string
	// footer lines are emitted after the statement block (or after the
	// worker calls when split), before the closing brace.
	footer []string
	// base names the generated workers: <base>_extra_<i>.
	base string
}

// workerCount returns how many worker procedures a split produces. The
// round-then-add-one formula can allocate one trailing empty worker when the
// count is an exact multiple of the threshold; downstream tooling relies on
// the stable procedure naming this produces, so it is kept as is.
func workerCount(n, maxLines int) int {
	return int(math.Round(float64(n)/float64(maxLines))) + 1
}

// writeSplitProc renders p with the given statement lines. When the count
// stays within maxLines everything is inlined in a single procedure;
// otherwise a dispatcher calls workerCount generated workers, each holding
// up to maxLines consecutive lines in original order. A worker whose slice
// runs past the end of the list is simply truncated.
func writeSplitProc(sb *strings.Builder, p splitProc, lines Lines, maxLines int) {
	sb.WriteString(p.open)
	sb.WriteString("\n")
	for _, l := range p.preamble {
		sb.WriteString(l)
		sb.WriteString("\n")
	}

	if len(lines) <= maxLines {
		for _, l := range lines {
			sb.WriteString(l)
			sb.WriteString("\n")
		}
		for _, l := range p.footer {
			sb.WriteString(l)
			sb.WriteString("\n")
		}
		sb.WriteString("}\n\n")
		return
	}

	workers := workerCount(len(lines), maxLines)
	for i := 0; i < workers; i++ {
		sb.WriteString("    " + p.base + "_extra_" + strconv.Itoa(i) + "()\n")
	}
	for _, l := range p.footer {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	for i := 0; i < workers; i++ {
		sb.WriteString("proc " + p.base + "_extra_" + strconv.Itoa(i) + "(){\n")
		start := i * maxLines
		end := start + maxLines
		if start > len(lines) {
			start = len(lines)
		}
		if end > len(lines) {
			end = len(lines)
		}
		for _, l := range lines[start:end] {
			sb.WriteString(l)
			sb.WriteString("\n")
		}
		sb.WriteString("}\n\n")
	}
}
