// Package merge compares deployed documentation files against their
// boilerplate originals so status output can show what drifted.
package merge

import (
	"fmt"
	"strings"
)

// EditOp represents a single edit operation in a diff.
type EditOp int

const (
	// OpEqual means the line is unchanged.
	OpEqual EditOp = iota
	// OpInsert means a line was added.
	OpInsert
	// OpDelete means a line was removed.
	OpDelete
)

// Edit represents a single line-level edit operation.
type Edit struct {
	// Op is the edit operation type.
	Op EditOp
	// OldLine is the 0-based index in the original slice. -1 for inserts.
	OldLine int
	// NewLine is the 0-based index in the modified slice. -1 for deletes.
	NewLine int
	// Text holds the line content for insert and delete operations.
	Text string
}

// DiffLines computes the edit script between two slices of lines using
// an LCS-based diff. It returns a minimal list of insert and delete
// operations needed to transform a into b, in forward order.
func DiffLines(a, b []string) []Edit {
	m := len(a)
	n := len(b)

	// dp[i][j] = length of LCS of a[:i] and b[:j]
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			switch {
			case a[i-1] == b[j-1]:
				dp[i][j] = dp[i-1][j-1] + 1
			case dp[i-1][j] >= dp[i][j-1]:
				dp[i][j] = dp[i-1][j]
			default:
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	// Backtrack to produce the edit script.
	var edits []Edit
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			edits = append(edits, Edit{Op: OpInsert, OldLine: -1, NewLine: j - 1, Text: b[j-1]})
			j--
		default:
			edits = append(edits, Edit{Op: OpDelete, OldLine: i - 1, NewLine: -1, Text: a[i-1]})
			i--
		}
	}

	// Reverse to get forward order.
	for left, right := 0, len(edits)-1; left < right; left, right = left+1, right-1 {
		edits[left], edits[right] = edits[right], edits[left]
	}

	return edits
}

// FormatDiff renders a compact line diff between the boilerplate
// content (base) and the deployed content (current). Deleted lines are
// prefixed with "-", added lines with "+", each tagged with its 1-based
// line number. Returns an empty string when the contents are identical.
func FormatDiff(name string, base, current []byte) string {
	edits := DiffLines(splitLines(string(base)), splitLines(string(current)))
	if len(edits) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:\n", name)
	for _, e := range edits {
		switch e.Op {
		case OpDelete:
			fmt.Fprintf(&sb, "  -%d: %s\n", e.OldLine+1, e.Text)
		case OpInsert:
			fmt.Fprintf(&sb, "  +%d: %s\n", e.NewLine+1, e.Text)
		}
	}
	return sb.String()
}

// splitLines splits content into lines without keeping terminators.
// A trailing newline does not produce an extra empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
