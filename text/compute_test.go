package text

import (
	"testing"

	"github.com/stretchr/testify/require"

	"reviewdiff/types"
)

func TestComputeFileDiffIdentity(t *testing.T) {
	content := "line one\nline two\nline three\n"
	fd := ComputeFileDiff(content, content, "same.txt")

	require.Equal(t, 0, fd.Additions)
	require.Equal(t, 0, fd.Deletions)
	require.Equal(t, types.FileModified, fd.Kind)
	require.Equal(t, "same.txt", fd.OldPath)
	require.Equal(t, "same.txt", fd.NewPath)

	// A change-free file keeps a single chunk spanning everything.
	require.Len(t, fd.Chunks, 1)
	for _, line := range fd.Chunks[0].Lines {
		require.Equal(t, types.LineUnchanged, line.Kind)
	}
}

func TestComputeFileDiffWordLevel(t *testing.T) {
	fd := ComputeFileDiff("const foo = 1;\n", "const bar = 2;\n", "a.ts")

	require.Equal(t, 1, fd.Additions)
	require.Equal(t, 1, fd.Deletions)
	require.Equal(t, "a.ts", fd.NewPath)
	require.Len(t, fd.Chunks, 1)

	var changed int
	for _, line := range fd.Chunks[0].Lines {
		if line.Kind == types.LineUnchanged {
			continue
		}
		changed++
		require.NotEmpty(t, line.Segments, "changed line %q has no word segments", line.Content)
	}
	require.Equal(t, 2, changed)
}

func TestComputeFileDiffDefaultName(t *testing.T) {
	fd := ComputeFileDiff("a\n", "b\n", "")
	require.Equal(t, "file", fd.OldPath)
	require.Equal(t, "file", fd.NewPath)
	require.Equal(t, "file-chunk-0", fd.Chunks[0].ID)
}

func TestComputeFileDiffEmptyInputs(t *testing.T) {
	fd := ComputeFileDiff("", "", "empty.txt")
	require.Equal(t, 0, fd.Additions)
	require.Equal(t, 0, fd.Deletions)
	// An empty string behaves as a single empty line.
	require.Len(t, fd.Chunks, 1)
	require.Len(t, fd.Chunks[0].Lines, 1)

	fd = ComputeFileDiff("", "new content", "grown.txt")
	require.Equal(t, 1, fd.Additions)
	require.Equal(t, 1, fd.Deletions)
}

func TestComputeFileDiffChunkInvariants(t *testing.T) {
	oldText := "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\nk\nl\nm\nn"
	newText := "a\nB\nc\nd\ne\nf\ng\nh\ni\nj\nk\nl\nM\nn"

	fd := ComputeFileDiffContext(oldText, newText, "f.txt", 2)
	require.Len(t, fd.Chunks, 2)

	seen := map[string]bool{}
	for _, chunk := range fd.Chunks {
		require.False(t, seen[chunk.ID], "duplicate chunk id %s", chunk.ID)
		seen[chunk.ID] = true

		oldCount, newCount := 0, 0
		for _, line := range chunk.Lines {
			if line.Kind != types.LineAdded {
				oldCount++
			}
			if line.Kind != types.LineRemoved {
				newCount++
			}
		}
		require.Equal(t, oldCount, chunk.OldLines)
		require.Equal(t, newCount, chunk.NewLines)
	}

	require.Equal(t, 2, fd.Additions)
	require.Equal(t, 2, fd.Deletions)
}
