// Package text computes structured, renderable diffs between two texts:
// line-level sequence alignment, word-level sub-diffing, and contextual
// chunk construction. Everything here is pure and side-effect free; results
// for the same inputs are identical and safe to compute on any goroutine.
package text

import (
	"strings"

	"reviewdiff/types"
)

// ComputeFileDiff diffs oldText against newText and returns a single
// FileDiff. Both texts are split on "\n", so an empty string behaves as one
// empty line. name is used for both paths and for chunk IDs; it defaults to
// "file".
func ComputeFileDiff(oldText, newText, name string) *types.FileDiff {
	return ComputeFileDiffContext(oldText, newText, name, DefaultContextLines)
}

// ComputeFileDiffContext is ComputeFileDiff with an explicit context radius
// for chunk construction.
func ComputeFileDiffContext(oldText, newText, name string, context int) *types.FileDiff {
	if name == "" {
		name = "file"
	}

	oldLines := strings.Split(oldText, "\n")
	newLines := strings.Split(newText, "\n")

	lines := expandEdits(diffSequences(oldLines, newLines))
	PairWordDiffs(lines)
	additions, deletions := countChanges(lines)

	return &types.FileDiff{
		OldPath: name,
		NewPath: name,
		// A change-free result stays "modified"; callers that want to
		// special-case it can check Additions+Deletions == 0.
		Kind:      types.FileModified,
		Chunks:    buildChunks(lines, context, name),
		Additions: additions,
		Deletions: deletions,
	}
}
