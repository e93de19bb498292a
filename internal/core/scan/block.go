package scan

import (
	"strings"

	"eradicate/internal/core/classify"
	pstrings "eradicate/internal/platform/strings"
)

// CommentLine is a standalone comment: its physical line holds nothing but the comment
type CommentLine struct {
	Line   int
	Column int
	// Text runs from the marker to the end of the line, terminator excluded
	Text string
}

// Block is a run of comment lines on consecutive lines in the same column
type Block struct {
	Lines []CommentLine
}

// Numbers returns the block's line numbers
func (b Block) Numbers() []int {
	out := make([]int, len(b.Lines))
	for i, c := range b.Lines {
		out[i] = c.Line
	}
	return out
}

// Source joins the block into one candidate fragment: the run of # is stripped from each line,
// the whitespace every line shares is removed, and lines are joined with "\n"
func (b Block) Source() string {
	bodies := make([]string, len(b.Lines))
	for i, c := range b.Lines {
		s := strings.TrimLeft(strings.TrimLeft(c.Text, " \t\f"), "#")
		bodies[i] = strings.TrimRight(s, " \t\r\n")
	}
	common := pstrings.LeadingSpace(bodies[0])
	for _, s := range bodies[1:] {
		common = pstrings.CommonPrefix(common, pstrings.LeadingSpace(s))
	}
	for i := range bodies {
		bodies[i] = bodies[i][len(common):]
	}
	return strings.Join(bodies, "\n")
}

// breaksBlock reports whether a comment ends any block and starts none
func breaksBlock(c CommentLine) bool {
	rest, _ := classify.Strip(c.Text)
	return rest == "" || classify.IsPragma(rest)
}

// GroupBlocks groups comments on consecutive lines that share a column.
// Empty comments and tool pragmas separate blocks
func GroupBlocks(comments []CommentLine) []Block {
	return group(comments, nil)
}

// group is GroupBlocks where the lines in gap may sit between two members of a block
func group(comments []CommentLine, gap *LineSet) []Block {
	var (
		blocks []Block
		cur    []CommentLine
	)
	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, Block{Lines: cur})
			cur = nil
		}
	}
	for _, c := range comments {
		if breaksBlock(c) {
			flush()
			continue
		}
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			if prev.Column != c.Column || !bridged(prev.Line, c.Line, gap) {
				flush()
			}
		}
		cur = append(cur, c)
	}
	flush()
	return blocks
}

func bridged(from, to int, gap *LineSet) bool {
	for n := from + 1; n < to; n++ {
		if gap == nil || !gap.Has(n) {
			return false
		}
	}
	return to > from
}
