package repository

import (
	"errors"
	"strings"
)

// ErrUnrecognisedLayout is returned for worksheets whose first row is neither
// a known header nor part of a headerless [author, poem] sheet.
var ErrUnrecognisedLayout = errors.New("unrecognised submissions layout")

type layoutKind int

const (
	layoutEmpty layoutKind = iota
	layoutCanonical
	layoutHeader
	layoutHeaderless
)

// submissionLayout describes how a worksheet's rows map onto submissions.
// Data starts at rows[first]; a row at index i has identity i+shift, so a
// headerless sheet keeps its identities once the header is inserted.
type submissionLayout struct {
	kind   layoutKind
	header header
	first  int
	shift  int
	extra  []int
}

var headerlessColumns = header{ColAuthor: 0, ColPoem: 1}

func detectSubmissionLayout(rows [][]string) (submissionLayout, error) {
	if len(rows) == 0 {
		return submissionLayout{kind: layoutEmpty, first: 1}, nil
	}
	if isCanonical(rows[0], SubmissionColumns) {
		return submissionLayout{
			kind:   layoutCanonical,
			header: parseHeader(rows[0], SubmissionColumns, submissionAliases),
			first:  1,
		}, nil
	}

	h := parseHeader(rows[0], SubmissionColumns, submissionAliases)
	if isRecognisedHeader(rows[0], h) {
		return submissionLayout{kind: layoutHeader, header: h, first: 1, extra: unmappedColumns(rows[0], h)}, nil
	}
	if len(h) == 0 && isHeaderless(rows) {
		return submissionLayout{kind: layoutHeaderless, header: headerlessColumns, first: 0, shift: 1}, nil
	}
	return submissionLayout{}, ErrUnrecognisedLayout
}

// isRecognisedHeader accepts a row as a header only when it names the poem
// column and most of its non-blank cells are known column names.
func isRecognisedHeader(cells []string, h header) bool {
	if _, ok := h[ColPoem]; !ok {
		return false
	}
	known, filled := 0, 0
	for _, cell := range cells {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		filled++
		if resolveColumn(cell, SubmissionColumns, submissionAliases) != "" {
			known++
		}
	}
	return known*2 >= filled
}

// isHeaderless reports whether every row fits the two-column [author, poem] shape.
func isHeaderless(rows [][]string) bool {
	for _, row := range rows {
		for i := 2; i < len(row); i++ {
			if strings.TrimSpace(row[i]) != "" {
				return false
			}
		}
	}
	return true
}

func unmappedColumns(cells []string, h header) []int {
	used := make(map[int]struct{}, len(h))
	for _, i := range h {
		used[i] = struct{}{}
	}
	var extra []int
	for i, cell := range cells {
		if _, ok := used[i]; ok || strings.TrimSpace(cell) == "" {
			continue
		}
		extra = append(extra, i)
	}
	return extra
}

// rewrite returns rows in the canonical layout. Blank rows stay blank and
// unmapped header columns are carried after the canonical ones.
func (l submissionLayout) rewrite(rows [][]string) [][]string {
	headerRow := append([]string(nil), SubmissionColumns...)
	for _, i := range l.extra {
		headerRow = append(headerRow, rows[0][i])
	}

	out := make([][]string, 0, len(rows)+l.shift)
	out = append(out, headerRow)
	for i := l.first; i < len(rows); i++ {
		if isBlankRow(rows[i]) {
			out = append(out, make([]string, len(headerRow)))
			continue
		}
		sub := decodeSubmission(l.header, rows[i], i+l.shift)
		encoded := encodeSubmission(&sub)
		for _, col := range l.extra {
			value := ""
			if col < len(rows[i]) {
				value = rows[i][col]
			}
			encoded = append(encoded, value)
		}
		out = append(out, encoded)
	}
	return out
}
