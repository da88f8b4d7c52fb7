package layout

import "reviewdiff/types"

// collapseMinLines is the minimum number of hidden lines a region must hold
// (after context trimming) before it is worth collapsing.
const collapseMinLines = 4

// region is a collapsible span of unchanged lines, expressed as offsets into
// a chunk's line slice.
type region struct {
	start int
	count int
}

// collapsibleRegions finds the unchanged runs inside a chunk that are long
// enough to hide: each maximal unchanged run keeps context lines of visible
// padding at both ends, and collapses only when at least collapseMinLines
// remain hidden. A change-free chunk therefore collapses everything but its
// first and last context lines, or nothing when it is short.
func collapsibleRegions(lines []types.Line, context int) []region {
	var regions []region

	i := 0
	for i < len(lines) {
		if lines[i].Kind != types.LineUnchanged {
			i++
			continue
		}
		start := i
		for i < len(lines) && lines[i].Kind == types.LineUnchanged {
			i++
		}
		runLen := i - start
		hidden := runLen - 2*context
		if hidden >= collapseMinLines {
			regions = append(regions, region{start: start + context, count: hidden})
		}
	}
	return regions
}
