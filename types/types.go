package types

import "strconv"

// RegionKey builds the opaque expansion key for a collapsible region:
// the owning chunk's ID followed by the region's decimal line offset.
func RegionKey(chunkID string, offset int) string {
	return chunkID + strconv.Itoa(offset)
}

// LineKind classifies a single line within a diff
type LineKind int

const (
	LineUnchanged LineKind = iota
	LineAdded
	LineRemoved
)

// String returns the string representation of a LineKind
func (k LineKind) String() string {
	switch k {
	case LineUnchanged:
		return "unchanged"
	case LineAdded:
		return "added"
	case LineRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// WordSegment is a sub-line span used for fine-grained highlighting.
// Concatenating the old-side segments (removed + unchanged) of a line
// reproduces the old line text; concatenating the new-side segments
// (added + unchanged) reproduces the new line text.
type WordSegment struct {
	Text string
	Kind LineKind
}

// Line is a single line within a chunk.
//
// Line numbers are 1-indexed; 0 means "no number on that side".
// Invariants:
//   - OldNumber > 0 iff Kind is LineRemoved or LineUnchanged
//   - NewNumber > 0 iff Kind is LineAdded or LineUnchanged
//   - Segments is nil unless the line was paired for word-level diffing
type Line struct {
	Kind      LineKind
	Content   string
	OldNumber int
	NewNumber int
	Segments  []WordSegment
}

// Chunk is a contiguous, context-padded group of lines containing at least
// one change (or, for a change-free file, the whole file).
//
// Invariants:
//   - OldLines == count of Lines with Kind != LineAdded
//   - NewLines == count of Lines with Kind != LineRemoved
//   - ID is unique within a FileDiff and stable across identical inputs
type Chunk struct {
	ID       string
	OldStart int // 1-indexed; 0 for an insertion at the top of the file
	OldLines int
	NewStart int // 1-indexed; 0 for a deletion of the whole new side
	NewLines int
	Lines    []Line
}

// FirstChangedIndex returns the index of the chunk's first non-unchanged
// line, or -1 when the chunk contains no changes.
func (c *Chunk) FirstChangedIndex() int {
	for i := range c.Lines {
		if c.Lines[i].Kind != LineUnchanged {
			return i
		}
	}
	return -1
}

// FileKind classifies a whole-file diff
type FileKind int

const (
	FileModified FileKind = iota
	FileAdded
	FileDeleted
	FileRenamed
)

// String returns the string representation of a FileKind
func (k FileKind) String() string {
	switch k {
	case FileModified:
		return "modified"
	case FileAdded:
		return "added"
	case FileDeleted:
		return "deleted"
	case FileRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// FileDiff is the structured diff for a single file. Both the computed-diff
// path and the unified-diff parsing path produce this model.
//
// Additions and Deletions equal the sums of added/removed lines over Chunks.
type FileDiff struct {
	OldPath   string
	NewPath   string
	Kind      FileKind
	Chunks    []*Chunk
	Additions int
	Deletions int
}

// RowKind discriminates the side-by-side row variants. A collapsed
// placeholder never carries line content; a change row never carries a
// collapse count.
type RowKind int

const (
	RowContext RowKind = iota
	RowChange
	RowCollapsed
)

// SideBySideRow is one rendered unit pairing an optional old-side line with
// an optional new-side line.
//
//   - RowContext: Left and Right point at the same unchanged line.
//   - RowChange: Left is a removed line or nil, Right is an added line or
//     nil; at least one side is set.
//   - RowCollapsed: Left and Right are nil; CollapsedCount unchanged lines
//     starting CollapsedOffset lines into the chunk are hidden behind this
//     placeholder. The expansion key for the region is ChunkID followed by
//     the decimal offset.
type SideBySideRow struct {
	Kind            RowKind
	Left            *Line
	Right           *Line
	ChunkID         string
	FirstInChunk    bool // true exactly on the row carrying the chunk's first changed line
	CollapsedCount  int
	CollapsedOffset int
}

// ExpansionKey returns the opaque key a caller uses to mark this placeholder
// row's region as expanded.
func (r SideBySideRow) ExpansionKey() string {
	return RegionKey(r.ChunkID, r.CollapsedOffset)
}

// Decision is the per-chunk review state. The diff model itself never
// carries decisions; they are keyed externally by Chunk.ID.
type Decision int

const (
	DecisionPending Decision = iota
	DecisionAccepted
	DecisionRejected
)

// String returns the string representation of a Decision
func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionAccepted:
		return "accepted"
	case DecisionRejected:
		return "rejected"
	default:
		return "unknown"
	}
}
