package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"reviewdiff/layout"
	"reviewdiff/types"
)

// paneWidth is the content width of each side-by-side pane, excluding the
// line-number gutter.
const paneWidth = 72

var (
	styleAdded     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleRemoved   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleDim       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleHighlight = lipgloss.NewStyle().Reverse(true)
)

// renderFileDiff writes one file's diff to w, side-by-side or unified
// depending on config.
func renderFileDiff(w io.Writer, fd *types.FileDiff, cfg Config) {
	header := fmt.Sprintf("%s (%s)", displayPath(fd), fd.Kind)
	fmt.Fprintf(w, "%s  %s %s\n", header,
		color.GreenString("+%d", fd.Additions),
		color.RedString("-%d", fd.Deletions))

	if len(fd.Chunks) == 0 {
		fmt.Fprintln(w, styleDim.Render("  (no content)"))
		return
	}

	if cfg.SideBySide {
		renderSideBySide(w, fd.Chunks, cfg)
	} else {
		renderUnified(w, fd.Chunks)
	}
}

func displayPath(fd *types.FileDiff) string {
	if fd.OldPath != fd.NewPath {
		return fd.OldPath + " -> " + fd.NewPath
	}
	return fd.NewPath
}

// renderSideBySide draws paired panes. Collapsed regions render as a single
// placeholder row; expansion is not interactive here, so the expanded set is
// empty unless collapsing is disabled outright.
func renderSideBySide(w io.Writer, chunks []*types.Chunk, cfg Config) {
	context := cfg.ContextLines
	if !cfg.Collapse {
		// An all-expanded key set would do the same; a huge context radius
		// simply never produces a collapsible region.
		context = 1 << 30
	}

	rows := layout.BuildSideBySideRows(chunks, context, nil)
	lastChunk := ""
	for _, row := range rows {
		if row.ChunkID != lastChunk && lastChunk != "" {
			fmt.Fprintln(w, styleDim.Render(strings.Repeat("╌", 2*paneWidth+13)))
		}
		lastChunk = row.ChunkID

		switch row.Kind {
		case types.RowCollapsed:
			fmt.Fprintln(w, styleDim.Render(fmt.Sprintf("        ┄ %d unchanged lines ┄", row.CollapsedCount)))
		default:
			left := renderCell(row.Left, false)
			right := renderCell(row.Right, true)
			marker := " "
			if row.FirstInChunk {
				marker = "▎"
			}
			fmt.Fprintf(w, "%s%s │ %s\n", marker, left, right)
		}
	}
}

// renderCell formats one pane cell: a 4-column line number gutter plus the
// content padded to paneWidth, with word segments highlighted.
func renderCell(line *types.Line, newSide bool) string {
	if line == nil {
		return styleDim.Render(fmt.Sprintf("%4s %s", "", runewidth.FillRight("", paneWidth)))
	}

	num := line.OldNumber
	if newSide {
		num = line.NewNumber
	}

	content := runewidth.Truncate(line.Content, paneWidth, "…")
	pad := runewidth.FillRight("", paneWidth-runewidth.StringWidth(content))

	var body string
	switch line.Kind {
	case types.LineAdded:
		body = renderSegments(line, styleAdded, content) + pad
	case types.LineRemoved:
		body = renderSegments(line, styleRemoved, content) + pad
	default:
		body = content + pad
	}
	return fmt.Sprintf("%4d %s", num, body)
}

// renderSegments styles a changed line, reverse-highlighting the changed
// word segments when the line was paired for word-level diffing. Truncation
// defeats segment boundaries, so segments are only used while they fit.
func renderSegments(line *types.Line, base lipgloss.Style, truncated string) string {
	if line.Segments == nil || truncated != line.Content {
		return base.Render(truncated)
	}
	var b strings.Builder
	for _, seg := range line.Segments {
		if seg.Kind == types.LineUnchanged {
			b.WriteString(base.Render(seg.Text))
		} else {
			b.WriteString(styleHighlight.Inherit(base).Render(seg.Text))
		}
	}
	return b.String()
}

// renderUnified draws classic +/- output with hunk headers.
func renderUnified(w io.Writer, chunks []*types.Chunk) {
	for _, chunk := range chunks {
		fmt.Fprintln(w, color.CyanString("@@ -%d,%d +%d,%d @@", chunk.OldStart, chunk.OldLines, chunk.NewStart, chunk.NewLines))
		for i := range chunk.Lines {
			line := &chunk.Lines[i]
			switch line.Kind {
			case types.LineAdded:
				fmt.Fprintln(w, color.GreenString("+%s", line.Content))
			case types.LineRemoved:
				fmt.Fprintln(w, color.RedString("-%s", line.Content))
			default:
				fmt.Fprintf(w, " %s\n", line.Content)
			}
		}
	}
}
