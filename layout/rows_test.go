package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"reviewdiff/types"
)

// makeChunk builds a chunk from a compact shape string: 'u' is an unchanged
// line, 'r' removed, 'a' added.
func makeChunk(id, shape string) *types.Chunk {
	chunk := &types.Chunk{ID: id, OldStart: 1, NewStart: 1}
	oldNum, newNum := 1, 1
	for i, c := range shape {
		switch c {
		case 'u':
			chunk.Lines = append(chunk.Lines, types.Line{
				Kind: types.LineUnchanged, Content: "ctx", OldNumber: oldNum, NewNumber: newNum,
			})
			oldNum++
			newNum++
			chunk.OldLines++
			chunk.NewLines++
		case 'r':
			chunk.Lines = append(chunk.Lines, types.Line{
				Kind: types.LineRemoved, Content: "removed", OldNumber: oldNum,
			})
			oldNum++
			chunk.OldLines++
		case 'a':
			chunk.Lines = append(chunk.Lines, types.Line{
				Kind: types.LineAdded, Content: "added", NewNumber: newNum,
			})
			newNum++
			chunk.NewLines++
		default:
			panic("bad shape char at " + shape[i:i+1])
		}
	}
	return chunk
}

func TestRowsPairRemovedWithAdded(t *testing.T) {
	chunk := makeChunk("c0", "urraaau")
	rows := BuildSideBySideRows([]*types.Chunk{chunk}, 3, nil)

	// 1 context + 3 paired + 1 context.
	require.Len(t, rows, 5)

	require.Equal(t, types.RowContext, rows[0].Kind)
	require.Equal(t, rows[0].Left, rows[0].Right)

	for i := 1; i <= 3; i++ {
		require.Equal(t, types.RowChange, rows[i].Kind)
	}
	require.NotNil(t, rows[1].Left)
	require.NotNil(t, rows[1].Right)
	require.NotNil(t, rows[2].Left)
	require.NotNil(t, rows[2].Right)
	// The removed run is shorter: the third paired row has an empty left cell.
	require.Nil(t, rows[3].Left)
	require.NotNil(t, rows[3].Right)

	require.Equal(t, types.RowContext, rows[4].Kind)
}

func TestRowsAdditionOnly(t *testing.T) {
	chunk := makeChunk("c0", "uaau")
	rows := BuildSideBySideRows([]*types.Chunk{chunk}, 3, nil)

	require.Len(t, rows, 4)
	require.Equal(t, types.RowChange, rows[1].Kind)
	require.Nil(t, rows[1].Left)
	require.Equal(t, "added", rows[1].Right.Content)
}

func TestRowsFirstInChunkAnchor(t *testing.T) {
	cases := []struct {
		name  string
		shape string
	}{
		{"leading context", "uuura"},
		{"change at top", "rrau"},
		{"addition only", "uuaa"},
		{"two separated changes", "uruuuau"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chunk := makeChunk("c0", tc.shape)
			rows := BuildSideBySideRows([]*types.Chunk{chunk}, 3, nil)

			anchors := 0
			for _, row := range rows {
				if row.FirstInChunk {
					anchors++
					require.Equal(t, types.RowChange, row.Kind)
				}
			}
			require.Equal(t, 1, anchors, "exactly one row must anchor the chunk")

			// The anchor is the first change row.
			for _, row := range rows {
				if row.Kind == types.RowChange {
					require.True(t, row.FirstInChunk)
					break
				}
			}
		})
	}
}

func TestRowsChangeFreeChunkHasNoAnchor(t *testing.T) {
	chunk := makeChunk("c0", "uuu")
	rows := BuildSideBySideRows([]*types.Chunk{chunk}, 3, nil)
	require.Len(t, rows, 3)
	for _, row := range rows {
		require.False(t, row.FirstInChunk)
	}
}

func TestRowsCollapsePlaceholder(t *testing.T) {
	// 12 unchanged lines between two changes, context 2: the middle
	// 12-2*2 = 8 lines collapse behind one placeholder.
	shape := "ra" + "uuuuuuuuuuuu" + "ra"
	chunk := makeChunk("c0", shape)
	rows := BuildSideBySideRows([]*types.Chunk{chunk}, 2, nil)

	var placeholder *types.SideBySideRow
	for i := range rows {
		if rows[i].Kind == types.RowCollapsed {
			require.Nil(t, placeholder, "only one placeholder expected")
			placeholder = &rows[i]
		}
	}
	require.NotNil(t, placeholder)
	require.Equal(t, 8, placeholder.CollapsedCount)
	require.Equal(t, 4, placeholder.CollapsedOffset)
	require.Nil(t, placeholder.Left)
	require.Nil(t, placeholder.Right)

	// 1 paired change row + 2 visible context + placeholder + 2 visible
	// context + 1 paired change row.
	require.Len(t, rows, 7)
}

func TestRowsCollapseThreshold(t *testing.T) {
	const context = 3
	for _, runLen := range []int{8, 9, 10, 11, 12} {
		shape := "ra"
		for i := 0; i < runLen; i++ {
			shape += "u"
		}
		shape += "ra"

		chunk := makeChunk("c0", shape)
		rows := BuildSideBySideRows([]*types.Chunk{chunk}, context, nil)

		collapsed := false
		for _, row := range rows {
			if row.Kind == types.RowCollapsed {
				collapsed = true
			}
		}
		wantCollapse := runLen-2*context >= 4
		require.Equal(t, wantCollapse, collapsed, "run length %d", runLen)
	}
}

func TestRowsExpandedRegionStaysVisible(t *testing.T) {
	shape := "ra" + "uuuuuuuuuuuu" + "ra"
	chunk := makeChunk("c0", shape)

	collapsedRows := BuildSideBySideRows([]*types.Chunk{chunk}, 2, nil)
	var key string
	for _, row := range collapsedRows {
		if row.Kind == types.RowCollapsed {
			key = row.ExpansionKey()
		}
	}
	require.Equal(t, types.RegionKey("c0", 4), key)

	expandedRows := BuildSideBySideRows([]*types.Chunk{chunk}, 2, map[string]bool{key: true})
	for _, row := range expandedRows {
		require.NotEqual(t, types.RowCollapsed, row.Kind)
	}
	// One pair row per change run plus every unchanged line.
	require.Len(t, expandedRows, 14)
}

func TestRowsChangeFreeChunkCollapse(t *testing.T) {
	// Change-free chunk of 12 lines, context 3: the middle 6 collapse.
	chunk := makeChunk("c0", "uuuuuuuuuuuu")
	rows := BuildSideBySideRows([]*types.Chunk{chunk}, 3, nil)

	require.Len(t, rows, 7)
	require.Equal(t, types.RowCollapsed, rows[3].Kind)
	require.Equal(t, 6, rows[3].CollapsedCount)
	require.Equal(t, 3, rows[3].CollapsedOffset)

	// A short change-free chunk stays fully visible.
	small := makeChunk("c1", "uuuuuuu")
	rows = BuildSideBySideRows([]*types.Chunk{small}, 3, nil)
	require.Len(t, rows, 7)
	for _, row := range rows {
		require.Equal(t, types.RowContext, row.Kind)
	}
}

func TestRowsMultipleChunks(t *testing.T) {
	c0 := makeChunk("f-chunk-0", "ura")
	c1 := makeChunk("f-chunk-1", "uar")
	rows := BuildSideBySideRows([]*types.Chunk{c0, c1}, 3, nil)

	anchorsPerChunk := map[string]int{}
	for _, row := range rows {
		if row.FirstInChunk {
			anchorsPerChunk[row.ChunkID]++
		}
	}
	require.Equal(t, map[string]int{"f-chunk-0": 1, "f-chunk-1": 1}, anchorsPerChunk)
}
