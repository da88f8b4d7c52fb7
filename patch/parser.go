// Package patch parses unified-diff text (git-style or bare) into the same
// FileDiff model the computed-diff path produces. The parser is fault
// tolerant: malformed headers or hunks are skipped and parsing resumes at
// the next recognizable marker; a completely unusable input yields an empty
// list, never an error.
package patch

import (
	"strconv"
	"strings"

	"reviewdiff/logger"
	"reviewdiff/text"
	"reviewdiff/types"
)

// devNull is the sentinel path git uses for the missing side of an added or
// deleted file. It never appears as a literal path in output.
const devNull = "/dev/null"

// parserState tracks where in the diff grammar the scanner currently is.
type parserState int

const (
	stateAwaitingFileHeader parserState = iota
	stateInFileHeader
	stateAwaitingHunk
	stateInHunkBody
)

// pendingFile accumulates one file entry while its header and hunks are
// being scanned.
type pendingFile struct {
	oldPath string
	newPath string
	oldNull bool
	newNull bool
	renamed bool
	binary  bool
	hunks   []*pendingHunk
}

// pendingHunk accumulates one hunk body. oldLeft/newLeft count down the
// lengths announced by the hunk header; oldNext/newNext are the running
// 1-indexed line numbers.
type pendingHunk struct {
	oldStart int
	newStart int
	oldLeft  int
	newLeft  int
	oldNext  int
	newNext  int
	lines    []types.Line
}

type parser struct {
	state parserState
	file  *pendingFile
	hunk  *pendingHunk
	files []*types.FileDiff
}

// Parse parses unified-diff text into FileDiffs in file-appearance order.
//
// It accepts git-style diffs (with `diff --git` headers, /dev/null sides,
// rename markers, and binary-file markers) as well as bare unified diffs
// whose paths come only from the ---/+++ lines or an Index: header. When the
// input yields no file at all but contains +/- lines, a single implicit file
// covering the whole input is synthesized so a pasted snippet without
// headers still renders.
func Parse(diffText string) []*types.FileDiff {
	p := &parser{state: stateAwaitingFileHeader}

	for _, line := range strings.Split(diffText, "\n") {
		p.scanLine(line)
	}
	p.finishFile()

	if len(p.files) == 0 {
		if f := synthesizeBareDiff(diffText); f != nil {
			return []*types.FileDiff{f}
		}
	}
	return p.files
}

func (p *parser) scanLine(line string) {
	if p.state == stateInHunkBody {
		if p.hunkBodyLine(line) {
			return
		}
		// Not a body line: the hunk is over, reclassify as a marker.
		p.finishHunk()
	}

	switch {
	case strings.HasPrefix(line, "diff --git "):
		p.finishFile()
		p.file = &pendingFile{}
		p.state = stateInFileHeader
		oldP, newP, ok := splitGitHeaderPaths(strings.TrimPrefix(line, "diff --git "))
		if ok {
			p.setOldPath(oldP)
			p.setNewPath(newP)
		}

	case strings.HasPrefix(line, "--- "):
		// In a bare multi-file diff this header is also the file separator:
		// a pending file whose body is complete ends here.
		if p.file != nil && (len(p.file.hunks) > 0 || p.state == stateAwaitingHunk) {
			p.finishFile()
		}
		p.ensureFile()
		p.setOldPath(headerPath(line[4:]))
		p.state = stateInFileHeader

	case strings.HasPrefix(line, "+++ "):
		p.ensureFile()
		p.setNewPath(headerPath(line[4:]))
		p.state = stateAwaitingHunk

	case strings.HasPrefix(line, "rename from "):
		p.ensureFile()
		p.file.renamed = true
		if p.file.oldPath == "" {
			p.file.oldPath = strings.TrimPrefix(line, "rename from ")
		}

	case strings.HasPrefix(line, "rename to "):
		p.ensureFile()
		p.file.renamed = true
		if p.file.newPath == "" {
			p.file.newPath = strings.TrimPrefix(line, "rename to ")
		}

	case strings.HasPrefix(line, "Binary files ") && strings.HasSuffix(line, " differ"):
		p.ensureFile()
		p.file.binary = true

	case strings.HasPrefix(line, "Index: "):
		// Best-effort header-section scan for svn-style diffs. Each Index:
		// line opens a new file section, so close out any pending one.
		p.finishFile()
		p.ensureFile()
		path := strings.TrimSpace(strings.TrimPrefix(line, "Index: "))
		if p.file.oldPath == "" && p.file.newPath == "" && path != "" {
			p.file.oldPath = path
			p.file.newPath = path
		}

	case strings.HasPrefix(line, "@@"):
		hdr, ok := parseHunkHeader(line)
		if !ok {
			// Tolerated: skip the malformed header and resume at the next
			// recognizable line.
			logger.Debug("patch: skipping malformed hunk header %q", line)
			return
		}
		p.ensureFile()
		p.hunk = hdr
		p.file.hunks = append(p.file.hunks, hdr)
		p.state = stateInHunkBody

	default:
		// Header-section noise (index lines, mode changes, similarity
		// scores) carries no line content and is ignored.
	}
}

// hunkBodyLine consumes one line of the current hunk body. It reports false
// when the line does not belong to the body, which ends the hunk.
func (p *parser) hunkBodyLine(line string) bool {
	h := p.hunk
	if h.oldLeft <= 0 && h.newLeft <= 0 {
		return false
	}

	switch {
	case strings.HasPrefix(line, `\`):
		// "\ No newline at end of file" contributes no line.
		return true

	case strings.HasPrefix(line, "+"):
		h.lines = append(h.lines, types.Line{
			Kind:      types.LineAdded,
			Content:   line[1:],
			NewNumber: h.newNext,
		})
		h.newNext++
		h.newLeft--
		return true

	case strings.HasPrefix(line, "-"):
		h.lines = append(h.lines, types.Line{
			Kind:      types.LineRemoved,
			Content:   line[1:],
			OldNumber: h.oldNext,
		})
		h.oldNext++
		h.oldLeft--
		return true

	case line == "" || strings.HasPrefix(line, " "):
		content := line
		if content != "" {
			content = content[1:]
		}
		h.lines = append(h.lines, types.Line{
			Kind:      types.LineUnchanged,
			Content:   content,
			OldNumber: h.oldNext,
			NewNumber: h.newNext,
		})
		h.oldNext++
		h.newNext++
		h.oldLeft--
		h.newLeft--
		return true
	}
	return false
}

func (p *parser) finishHunk() {
	p.hunk = nil
	p.state = stateAwaitingHunk
}

// finishFile converts the accumulated pending file into a FileDiff and
// appends it. Entries with no paths and no content are discarded.
func (p *parser) finishFile() {
	f := p.file
	p.file = nil
	p.hunk = nil
	p.state = stateAwaitingFileHeader
	if f == nil {
		return
	}
	if f.oldPath == "" && f.newPath == "" && len(f.hunks) == 0 && !f.binary {
		return
	}

	kind := types.FileModified
	switch {
	case f.oldNull:
		kind = types.FileAdded
		f.oldPath = f.newPath
	case f.newNull:
		kind = types.FileDeleted
		f.newPath = f.oldPath
	case f.renamed:
		kind = types.FileRenamed
	}
	if f.oldPath == "" {
		f.oldPath = f.newPath
	}
	if f.newPath == "" {
		f.newPath = f.oldPath
	}

	fd := &types.FileDiff{
		OldPath: f.oldPath,
		NewPath: f.newPath,
		Kind:    kind,
	}
	for _, h := range f.hunks {
		text.PairWordDiffs(h.lines)
		chunk := &types.Chunk{
			ID:       text.ChunkID(fd.NewPath, len(fd.Chunks)),
			OldStart: h.oldStart,
			NewStart: h.newStart,
			Lines:    h.lines,
		}
		for i := range h.lines {
			switch h.lines[i].Kind {
			case types.LineAdded:
				chunk.NewLines++
				fd.Additions++
			case types.LineRemoved:
				chunk.OldLines++
				fd.Deletions++
			default:
				chunk.OldLines++
				chunk.NewLines++
			}
		}
		fd.Chunks = append(fd.Chunks, chunk)
	}

	p.files = append(p.files, fd)
}

func (p *parser) ensureFile() {
	if p.file == nil {
		p.file = &pendingFile{}
		p.state = stateInFileHeader
	}
}

func (p *parser) setOldPath(path string) {
	if path == devNull {
		p.file.oldNull = true
		return
	}
	if path != "" {
		p.file.oldPath = path
	}
}

func (p *parser) setNewPath(path string) {
	if path == devNull {
		p.file.newNull = true
		return
	}
	if path != "" {
		p.file.newPath = path
	}
}

// headerPath extracts the path from a ---/+++ header payload: timestamps
// after a tab are dropped and a/ or b/ prefixes are stripped. /dev/null is
// passed through as the sentinel.
func headerPath(s string) string {
	if i := strings.IndexByte(s, '\t'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	if s == devNull {
		return s
	}
	return stripRevisionPrefix(s)
}

func stripRevisionPrefix(path string) string {
	if strings.HasPrefix(path, "a/") || strings.HasPrefix(path, "b/") {
		return path[2:]
	}
	return path
}

// splitGitHeaderPaths splits the `a/<old> b/<new>` payload of a diff --git
// line. Paths containing " b/" defeat the split; the ---/+++ lines are the
// fallback in that case.
func splitGitHeaderPaths(s string) (oldPath, newPath string, ok bool) {
	if !strings.HasPrefix(s, "a/") {
		return "", "", false
	}
	i := strings.Index(s, " b/")
	if i < 0 {
		return "", "", false
	}
	return s[2:i], s[i+3:], true
}

// parseHunkHeader parses `@@ -<start>[,<len>] +<start>[,<len>] @@`. Omitted
// lengths default to 1. It reports false for anything that does not match,
// letter-for-letter, that grammar.
func parseHunkHeader(line string) (*pendingHunk, bool) {
	rest, ok := strings.CutPrefix(line, "@@ -")
	if !ok {
		return nil, false
	}
	oldStart, oldLen, rest, ok := parseRange(rest)
	if !ok {
		return nil, false
	}
	rest, ok = strings.CutPrefix(rest, " +")
	if !ok {
		return nil, false
	}
	newStart, newLen, rest, ok := parseRange(rest)
	if !ok {
		return nil, false
	}
	if !strings.HasPrefix(rest, " @@") {
		return nil, false
	}
	return &pendingHunk{
		oldStart: oldStart,
		newStart: newStart,
		oldLeft:  oldLen,
		newLeft:  newLen,
		oldNext:  oldStart,
		newNext:  newStart,
	}, true
}

// parseRange parses `<digits>[,<digits>]`, defaulting the length to 1.
func parseRange(s string) (start, length int, rest string, ok bool) {
	start, s, ok = cutInt(s)
	if !ok {
		return 0, 0, s, false
	}
	length = 1
	if after, found := strings.CutPrefix(s, ","); found {
		length, s, ok = cutInt(after)
		if !ok {
			return 0, 0, s, false
		}
	}
	return start, length, s, true
}

// cutInt consumes a leading run of ASCII digits.
func cutInt(s string) (int, string, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, false
	}
	return n, s[i:], true
}

// synthesizeBareDiff handles input with no recognizable file structure at
// all: if any line starts with + or -, the whole input becomes one implicit
// file with a single chunk starting at old/new line 1.
func synthesizeBareDiff(diffText string) *types.FileDiff {
	hasMarker := false
	for _, line := range strings.Split(diffText, "\n") {
		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") {
			hasMarker = true
			break
		}
	}
	if !hasMarker {
		return nil
	}

	fd := &types.FileDiff{
		OldPath: "file",
		NewPath: "file",
		Kind:    types.FileModified,
	}
	chunk := &types.Chunk{
		ID:       text.ChunkID(fd.NewPath, 0),
		OldStart: 1,
		NewStart: 1,
	}
	oldNext, newNext := 1, 1
	for _, line := range strings.Split(diffText, "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			chunk.Lines = append(chunk.Lines, types.Line{
				Kind:      types.LineAdded,
				Content:   line[1:],
				NewNumber: newNext,
			})
			newNext++
			chunk.NewLines++
			fd.Additions++
		case strings.HasPrefix(line, "-"):
			chunk.Lines = append(chunk.Lines, types.Line{
				Kind:      types.LineRemoved,
				Content:   line[1:],
				OldNumber: oldNext,
			})
			oldNext++
			chunk.OldLines++
			fd.Deletions++
		default:
			content := strings.TrimPrefix(line, " ")
			chunk.Lines = append(chunk.Lines, types.Line{
				Kind:      types.LineUnchanged,
				Content:   content,
				OldNumber: oldNext,
				NewNumber: newNext,
			})
			oldNext++
			newNext++
			chunk.OldLines++
			chunk.NewLines++
		}
	}
	text.PairWordDiffs(chunk.Lines)
	fd.Chunks = []*types.Chunk{chunk}
	return fd
}
