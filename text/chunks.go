package text

import (
	"fmt"

	"reviewdiff/types"
)

// expandEdits turns a per-line edit script into the flat Line sequence,
// assigning running 1-indexed old/new line numbers.
func expandEdits(edits []edit[string]) []types.Line {
	lines := make([]types.Line, 0, len(edits))
	oldNum, newNum := 1, 1

	for _, e := range edits {
		switch e.kind {
		case editEqual:
			lines = append(lines, types.Line{
				Kind:      types.LineUnchanged,
				Content:   e.value,
				OldNumber: oldNum,
				NewNumber: newNum,
			})
			oldNum++
			newNum++
		case editDelete:
			lines = append(lines, types.Line{
				Kind:      types.LineRemoved,
				Content:   e.value,
				OldNumber: oldNum,
			})
			oldNum++
		case editInsert:
			lines = append(lines, types.Line{
				Kind:      types.LineAdded,
				Content:   e.value,
				NewNumber: newNum,
			})
			newNum++
		}
	}
	return lines
}

// PairWordDiffs annotates lines with word-level segments: for each maximal
// run of removed lines immediately followed by a run of added lines, the
// i-th removed line is paired with the i-th added line and both receive
// segments. Lines beyond the shorter run stay whole-line changes with no
// segments. The slice is modified in place.
func PairWordDiffs(lines []types.Line) {
	i := 0
	for i < len(lines) {
		if lines[i].Kind != types.LineRemoved {
			i++
			continue
		}

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
		if added < pairs {
			pairs = added
		}
		for p := 0; p < pairs; p++ {
			oldIdx := removedStart + p
			newIdx := addedStart + p
			oldSegs, newSegs := diffWords(lines[oldIdx].Content, lines[newIdx].Content)
			lines[oldIdx].Segments = oldSegs
			lines[newIdx].Segments = newSegs
		}
	}
}

// buildChunks groups the flat line sequence into context-padded chunks.
// A line index is in-chunk when a changed line exists within the context
// radius on either side; contiguous in-chunk indices merge into one chunk
// and everything else is dropped. A change-free file yields a single chunk
// spanning the whole file.
func buildChunks(lines []types.Line, context int, path string) []*types.Chunk {
	if len(lines) == 0 {
		return nil
	}

	changed := make([]bool, len(lines))
	anyChange := false
	for i := range lines {
		if lines[i].Kind != types.LineUnchanged {
			changed[i] = true
			anyChange = true
		}
	}

	if !anyChange {
		return []*types.Chunk{newChunk(lines, 0, len(lines), path, 0)}
	}

	inChunk := make([]bool, len(lines))
	for i := range lines {
		lo := i - context
		if lo < 0 {
			lo = 0
		}
		hi := i + context
		if hi > len(lines)-1 {
			hi = len(lines) - 1
		}
		for j := lo; j <= hi; j++ {
			if changed[j] {
				inChunk[i] = true
				break
			}
		}
	}

	var chunks []*types.Chunk
	i := 0
	for i < len(lines) {
		if !inChunk[i] {
			i++
			continue
		}
		start := i
		for i < len(lines) && inChunk[i] {
			i++
		}
		chunks = append(chunks, newChunk(lines, start, i, path, len(chunks)))
	}
	return chunks
}

// newChunk builds a chunk over lines[start:end], deriving start positions
// and side lengths from the lines themselves. A side with no lines at all
// anchors its start at the last line number seen before the chunk, matching
// unified-diff conventions for pure insertions and deletions.
func newChunk(lines []types.Line, start, end int, path string, ordinal int) *types.Chunk {
	span := lines[start:end]

	oldStart, newStart := 0, 0
	oldCount, newCount := 0, 0
	for i := range span {
		if span[i].Kind != types.LineAdded {
			if oldStart == 0 {
				oldStart = span[i].OldNumber
			}
			oldCount++
		}
		if span[i].Kind != types.LineRemoved {
			if newStart == 0 {
				newStart = span[i].NewNumber
			}
			newCount++
		}
	}
	if oldStart == 0 {
		for i := start - 1; i >= 0; i-- {
			if lines[i].OldNumber > 0 {
				oldStart = lines[i].OldNumber
				break
			}
		}
	}
	if newStart == 0 {
		for i := start - 1; i >= 0; i-- {
			if lines[i].NewNumber > 0 {
				newStart = lines[i].NewNumber
				break
			}
		}
	}

	chunkLines := make([]types.Line, len(span))
	copy(chunkLines, span)

	return &types.Chunk{
		ID:       ChunkID(path, ordinal),
		OldStart: oldStart,
		OldLines: oldCount,
		NewStart: newStart,
		NewLines: newCount,
		Lines:    chunkLines,
	}
}

// ChunkID builds the deterministic per-file chunk identifier.
func ChunkID(path string, ordinal int) string {
	return fmt.Sprintf("%s-chunk-%d", path, ordinal)
}

// countChanges tallies added and removed lines.
func countChanges(lines []types.Line) (additions, deletions int) {
	for i := range lines {
		switch lines[i].Kind {
		case types.LineAdded:
			additions++
		case types.LineRemoved:
			deletions++
		}
	}
	return additions, deletions
}
