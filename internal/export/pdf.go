// Package export renders picture libraries to printable documents.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"

	"TraceBoard/internal/state"

	"github.com/jung-kurt/gofpdf"
)

var ErrNoPictures = errors.New("no pictures to export")

const (
	marginMM = 20.0
	sideMM   = 170.0 // drawing square on an A4 portrait page
)

// unit is the normalized canvas pictures are drawn in.
var unit = state.Rect{Max: state.Point{X: 1, Y: 1}}

// PicturesPDF writes one A4 page per picture to path.
func PicturesPDF(path string, pictures []state.Picture) error {
	if len(pictures) == 0 {
		return ErrNoPictures
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePDF(f, pictures); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WritePDF renders pictures to w. Pictures that reach outside the unit
// canvas are shrunk to fit the page.
func WritePDF(w io.Writer, pictures []state.Picture) error {
	if len(pictures) == 0 {
		return ErrNoPictures
	}

	p := gofpdf.New("P", "mm", "A4", "")
	p.SetTitle("TraceBoard pictures", true)
	p.SetFont("Helvetica", "", 10)
	p.SetDrawColor(0, 0, 0)
	p.SetLineWidth(1.5)
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	for i, pic := range pictures {
		p.AddPage()
		p.SetTextColor(120, 120, 120)
		p.Text(marginMM, marginMM-6, fmt.Sprintf("%d / %d  (%d strokes)", i+1, len(pictures), len(pic.Lines)))

		frame := unit
		if b, ok := pic.Bounds(); ok {
			frame = frame.Union(b)
		}
		scale := sideMM / max(frame.Width(), frame.Height())
		at := func(pt state.Point) (float64, float64) {
			return marginMM + (pt.X-frame.Min.X)*scale, marginMM + (pt.Y-frame.Min.Y)*scale
		}

		for _, line := range pic.Lines {
			for j := 1; j < len(line); j++ {
				x1, y1 := at(line[j-1])
				x2, y2 := at(line[j])
				p.Line(x1, y1, x2, y2)
			}
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}
