package hoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nmorph/hocgen/internal/morph"
)

// Lines is an ordered list of generated statement lines. Stages build Lines
// values and hand them to the splitter; statement counts come from the list
// length, never from scanning the rendered text.
type Lines []string

// Add appends one formatted line.
func (l *Lines) Add(format string, args ...any) {
	*l = append(*l, fmt.Sprintf(format, args...))
}

// num renders a scalar the way the rest of the script expects it: shortest
// exact decimal form, so a snapped 1.0 prints as "1" and 0.998 stays
// "0.998".
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// point renders the x, y, z, diam argument list of a pt3dadd call.
func point(p morph.Point, diam float64) string {
	return fmt.Sprintf("%s, %s, %s, %s", num(p.X), num(p.Y), num(p.Z), num(diam))
}

// hocComment renders text as hoc comment lines.
func hocComment(text string) string {
	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		sb.WriteString("//  ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// SectionName maps a model section name to a legal hoc identifier,
// preserving array-style suffixes like dend[3].
func SectionName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '[', r == ']':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
