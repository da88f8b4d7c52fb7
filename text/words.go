package text

import (
	"unicode"

	"reviewdiff/types"
)

// charClass buckets a rune for tokenization: whitespace, word characters
// (letters, digits, underscore), and everything else.
type charClass int

const (
	classSpace charClass = iota
	classWord
	classOther
)

func classify(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	default:
		return classOther
	}
}

// tokenizeWords splits a line into maximal runs of same-class characters.
// Concatenating the tokens reproduces the line exactly.
func tokenizeWords(line string) []string {
	var tokens []string
	var start int
	var cur charClass

	for i, r := range line {
		c := classify(r)
		if i == 0 {
			cur = c
			continue
		}
		if c != cur {
			tokens = append(tokens, line[start:i])
			start = i
			cur = c
		}
	}
	if line != "" {
		tokens = append(tokens, line[start:])
	}
	return tokens
}

// diffWords diffs two lines at word granularity and projects the edit script
// into two parallel segment lists: the old side carries removed and
// unchanged segments in order, the new side added and unchanged ones.
// Adjacent same-kind segments are merged.
func diffWords(oldLine, newLine string) (oldSegs, newSegs []types.WordSegment) {
	edits := diffSequences(tokenizeWords(oldLine), tokenizeWords(newLine))

	for _, e := range edits {
		switch e.kind {
		case editEqual:
			oldSegs = appendSegment(oldSegs, types.LineUnchanged, e.value)
			newSegs = appendSegment(newSegs, types.LineUnchanged, e.value)
		case editDelete:
			oldSegs = appendSegment(oldSegs, types.LineRemoved, e.value)
		case editInsert:
			newSegs = appendSegment(newSegs, types.LineAdded, e.value)
		}
	}
	return oldSegs, newSegs
}

// appendSegment adds text with the given kind, merging into the previous
// segment when the kind matches.
func appendSegment(segs []types.WordSegment, kind types.LineKind, text string) []types.WordSegment {
	if n := len(segs); n > 0 && segs[n-1].Kind == kind {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, types.WordSegment{Text: text, Kind: kind})
}
