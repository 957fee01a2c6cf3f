package service

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/noah-isme/reflective-room/internal/models"
)

// PosterLayout fixes the text capacity of one poster canvas. Widths are
// measured in runes, not glyph metrics, so unusually wide glyphs can still
// overflow the canvas.
type PosterLayout struct {
	LineCapacity int
	WrapWidth    int
	TitleWidth   int
}

// DefaultPosterLayout matches the square share poster.
var DefaultPosterLayout = PosterLayout{LineCapacity: 11, WrapWidth: 30, TitleWidth: 40}

// PosterInput is the text placed on a poster.
type PosterInput struct {
	Poem   string
	Title  string
	Byline string
}

// Paginate word-wraps the poem and splits it into pages of at most
// LineCapacity lines. It always returns at least one page. The title is
// carried on the first page and the byline on the last.
func Paginate(in PosterInput, layout PosterLayout) []models.PosterPage {
	capacity := max(layout.LineCapacity, 1)
	lines := WrapPoem(in.Poem, layout.WrapWidth)

	pageCount := max((len(lines)+capacity-1)/capacity, 1)
	pages := make([]models.PosterPage, pageCount)
	for i := range pages {
		start := min(i*capacity, len(lines))
		end := min(start+capacity, len(lines))
		pageLines := make([]string, end-start)
		copy(pageLines, lines[start:end])
		pages[i] = models.PosterPage{Index: i, Lines: pageLines}
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		pages[0].Title = WrapLine(title, max(layout.TitleWidth, layout.WrapWidth))
	}
	if byline := strings.TrimSpace(in.Byline); byline != "" {
		pages[len(pages)-1].Byline = byline
	}
	return pages
}

// WrapPoem splits poem text into display lines. Author line breaks are kept,
// blank lines survive as empty display lines, and a blank poem has no lines.
func WrapPoem(poem string, width int) []string {
	if strings.TrimSpace(poem) == "" {
		return []string{}
	}
	poem = strings.ReplaceAll(poem, "\r\n", "\n")
	poem = strings.ReplaceAll(poem, "\r", "\n")
	poem = strings.TrimRight(poem, "\n")

	var lines []string
	for _, physical := range strings.Split(poem, "\n") {
		lines = append(lines, WrapLine(physical, width)...)
	}
	return lines
}

// WrapLine wraps one physical line at width runes without ever splitting a
// word. Runs of whitespace collapse to one space. A word longer than width
// sits alone on its line. A blank line wraps to a single empty line.
func WrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}
	if width <= 1 {
		return words
	}
	return strings.Split(wordwrap.WrapString(strings.Join(words, " "), uint(width)), "\n")
}
