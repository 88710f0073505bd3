package hoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerCount(t *testing.T) {
	testCases := []struct {
		name     string
		n        int
		max      int
		expected int
	}{
		{"just over the threshold", 101, 100, 2},
		{"well over", 250, 100, 4},
		{"exact multiple still over-allocates", 200, 100, 3},
		{"nearly double", 199, 100, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, workerCount(tc.n, tc.max))
		})
	}
}

func numberedLines(n int) Lines {
	var lines Lines
	for i := 0; i < n; i++ {
		lines.Add("    stmt_%d()", i)
	}
	return lines
}

func TestWriteSplitProc(t *testing.T) {
	proc := splitProc{
		open:   "proc topol() {",
		footer: []string{"    basic_shape()"},
		base:   "topol",
	}

	t.Run("under the budget stays inline", func(t *testing.T) {
		var sb strings.Builder
		writeSplitProc(&sb, proc, numberedLines(5), 100)
		out := sb.String()

		assert.Contains(t, out, "proc topol() {\n    stmt_0()\n")
		assert.Contains(t, out, "    stmt_4()\n    basic_shape()\n}\n")
		assert.NotContains(t, out, "_extra_")
	})

	t.Run("exactly at the budget stays inline", func(t *testing.T) {
		var sb strings.Builder
		writeSplitProc(&sb, proc, numberedLines(100), 100)
		out := sb.String()

		assert.NotContains(t, out, "_extra_")
	})

	t.Run("one past the budget splits", func(t *testing.T) {
		var sb strings.Builder
		writeSplitProc(&sb, proc, numberedLines(101), 100)
		out := sb.String()

		assert.Contains(t, out, "    topol_extra_0()\n    topol_extra_1()\n    basic_shape()")
		assert.Contains(t, out, "proc topol_extra_0(){\n    stmt_0()")
		assert.Contains(t, out, "proc topol_extra_1(){\n    stmt_100()\n}\n")
	})

	t.Run("workers hold consecutive slices in order", func(t *testing.T) {
		var sb strings.Builder
		writeSplitProc(&sb, proc, numberedLines(250), 100)
		out := sb.String()

		// round(250/100)+1 workers, called in order before the footer.
		dispatcher := out[:strings.Index(out, "}")]
		assert.Contains(t, dispatcher, "    topol_extra_0()\n    topol_extra_1()\n    topol_extra_2()\n    topol_extra_3()\n    basic_shape()")

		assert.Contains(t, out, "proc topol_extra_0(){\n    stmt_0()")
		assert.Contains(t, out, "    stmt_99()\n}\n\nproc topol_extra_1(){\n    stmt_100()")
		assert.Contains(t, out, "    stmt_249()\n}\n")

		// The over-allocated trailing worker is empty, not absent.
		assert.Contains(t, out, "proc topol_extra_3(){\n}\n")
	})

	t.Run("every input line survives the split exactly once", func(t *testing.T) {
		var sb strings.Builder
		lines := numberedLines(237)
		writeSplitProc(&sb, proc, lines, 100)
		out := sb.String()

		for _, l := range lines {
			assert.Equal(t, 1, strings.Count(out, l+"\n"), "line %q", l)
		}
	})

	t.Run("preamble is not counted against the budget", func(t *testing.T) {
		var sb strings.Builder
		writeSplitProc(&sb, splitProc{
			open:     "proc subsets() { local i",
			preamble: []string{"    all = new SectionList()"},
			base:     "subsets",
		}, numberedLines(5), 100)
		out := sb.String()

		require.Contains(t, out, "proc subsets() { local i\n    all = new SectionList()\n    stmt_0()")
	})
}
