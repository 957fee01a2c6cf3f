package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/noah-isme/reflective-room/internal/models"
)

// PosterPageSize is the edge length of the square poster canvas in millimetres.
const PosterPageSize = 200.0

const (
	posterMargin     = 20.0
	posterTitleSize  = 20.0
	posterBodySize   = 14.0
	posterBylineSize = 11.0
	posterLineHeight = 9.0
)

// PosterPDF renders paginated poster pages into a PDF with one square page each.
type PosterPDF struct {
	Font string
}

// NewPosterPDF constructs a poster renderer using a core font.
func NewPosterPDF() *PosterPDF {
	return &PosterPDF{Font: "Helvetica"}
}

// Render draws every page. The title appears on the pages that carry one and
// the byline is right-aligned at the foot of its page.
func (r *PosterPDF) Render(pages []models.PosterPage) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("poster requires at least one page")
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: PosterPageSize, Ht: PosterPageSize},
	})
	pdf.SetMargins(posterMargin, posterMargin, posterMargin)
	pdf.SetAutoPageBreak(false, posterMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	width := PosterPageSize - 2*posterMargin

	for _, page := range pages {
		pdf.AddPage()
		if len(page.Title) > 0 {
			pdf.SetFont(r.Font, "B", posterTitleSize)
			for _, line := range page.Title {
				pdf.CellFormat(width, posterLineHeight+2, tr(line), "", 1, "C", false, 0, "")
			}
			pdf.Ln(4)
		}

		pdf.SetFont(r.Font, "", posterBodySize)
		for _, line := range page.Lines {
			pdf.CellFormat(width, posterLineHeight, tr(line), "", 1, "L", false, 0, "")
		}

		if page.Byline != "" {
			pdf.SetFont(r.Font, "I", posterBylineSize)
			pdf.SetXY(posterMargin, PosterPageSize-posterMargin-posterLineHeight)
			pdf.CellFormat(width, posterLineHeight, tr("- "+page.Byline), "", 1, "R", false, 0, "")
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render poster pdf: %w", err)
	}
	return buf.Bytes(), nil
}
