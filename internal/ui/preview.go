package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"TraceBoard/internal/state"
)

const previewSize = 100

// preview is a tappable thumbnail of a library picture.
type preview struct {
	widget.BaseWidget
	picture  state.Picture
	selected bool
	OnTapped func()
}

func newPreview(pic state.Picture, selected bool, tapped func()) *preview {
	p := &preview{picture: pic, selected: selected, OnTapped: tapped}
	p.ExtendBaseWidget(p)
	return p
}

func (p *preview) Tapped(*fyne.PointEvent) {
	if p.OnTapped != nil {
		p.OnTapped()
	}
}

func (p *preview) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.White)
	border.SetMinSize(fyne.NewSize(previewSize, previewSize))
	border.StrokeWidth = 1
	border.StrokeColor = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 255}
	if p.selected {
		border.StrokeColor = color.NRGBA{R: 0xff, G: 0x55, B: 0x55, A: 255}
	}

	var objects []fyne.CanvasObject
	for _, line := range p.picture.Lines {
		objects = appendLine(objects, line, doneColor, previewSize)
	}
	for _, o := range objects {
		o.(*canvas.Line).StrokeWidth = 2
	}
	strokes := container.NewWithoutLayout(objects...)
	return widget.NewSimpleRenderer(container.NewStack(border, strokes))
}
