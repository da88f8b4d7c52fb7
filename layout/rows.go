// Package layout projects chunks into side-by-side display rows: unchanged
// lines map to context rows, removed/added runs are paired left against
// right, and long unchanged regions are folded behind collapse placeholders.
// The projection is pure; expansion state is supplied by the caller on every
// call as a set of region keys.
package layout

import "reviewdiff/types"

// BuildSideBySideRows lays out chunks as side-by-side rows. contextLines is
// the visible padding kept around collapsed regions; expanded holds the
// region keys (types.RegionKey) the caller has already expanded, and may be
// nil.
func BuildSideBySideRows(chunks []*types.Chunk, contextLines int, expanded map[string]bool) []types.SideBySideRow {
	var rows []types.SideBySideRow
	for _, chunk := range chunks {
		rows = append(rows, chunkRows(chunk, contextLines, expanded)...)
	}
	return rows
}

func chunkRows(chunk *types.Chunk, contextLines int, expanded map[string]bool) []types.SideBySideRow {
	lines := chunk.Lines
	firstChanged := chunk.FirstChangedIndex()

	regionAt := make(map[int]region)
	for _, reg := range collapsibleRegions(lines, contextLines) {
		regionAt[reg.start] = reg
	}

	var rows []types.SideBySideRow
	i := 0
	for i < len(lines) {
		if reg, ok := regionAt[i]; ok && !expanded[types.RegionKey(chunk.ID, reg.start)] {
			rows = append(rows, types.SideBySideRow{
				Kind:            types.RowCollapsed,
				ChunkID:         chunk.ID,
				CollapsedCount:  reg.count,
				CollapsedOffset: reg.start,
			})
			i += reg.count
			continue
		}

		switch lines[i].Kind {
		case types.LineUnchanged:
			rows = append(rows, types.SideBySideRow{
				Kind:    types.RowContext,
				Left:    &lines[i],
				Right:   &lines[i],
				ChunkID: chunk.ID,
			})
			i++

		default:
			// A removed run followed directly by an added run pairs off
			// row-by-row; the shorter side leaves its cell empty.
			removedStart := i
			for i < len(lines) && lines[i].Kind == types.LineRemoved {
				i++
			}
			addedStart := i
			for i < len(lines) && lines[i].Kind == types.LineAdded {
				i++
			}
			removed := addedStart - removedStart
			added := i - addedStart

			pairs := removed
			if added > pairs {
				pairs = added
			}
			for p := 0; p < pairs; p++ {
				row := types.SideBySideRow{Kind: types.RowChange, ChunkID: chunk.ID}
				if p < removed {
					row.Left = &lines[removedStart+p]
					if removedStart+p == firstChanged {
						row.FirstInChunk = true
					}
				}
				if p < added {
					row.Right = &lines[addedStart+p]
					if addedStart+p == firstChanged {
						row.FirstInChunk = true
					}
				}
				rows = append(rows, row)
			}
		}
	}
	return rows
}
