package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"TraceBoard/internal/export"
	"TraceBoard/internal/state"
)

// SaveDialog asks for a file and writes the library to it as JSON.
func (b *Board) SaveDialog() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, b.win)
			return
		}
		if writer == nil {
			return // cancelled
		}
		b.saveTo(writer)
	}, b.win)
	d.SetFileName("pictures.json")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func (b *Board) saveTo(writer fyne.URIWriteCloser) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("Error closing writer: %v", err)
		}
	}()

	pictures := b.lib.Pictures()
	if err := state.Encode(writer, pictures); err != nil {
		log.Printf("SaveToFile: Error writing %s: %v", writer.URI(), err)
		b.SetStatus("Error writing file")
		return
	}
	b.SetStatus(fmt.Sprintf("Saved %d pictures", len(pictures)))
}

// LoadDialog replaces the library with the pictures of a JSON file.
func (b *Board) LoadDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, b.win)
			return
		}
		if reader == nil {
			return
		}
		b.loadFrom(reader)
	}, b.win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func (b *Board) loadFrom(reader fyne.URIReadCloser) {
	defer func() {
		if err := reader.Close(); err != nil {
			log.Printf("Error closing reader: %v", err)
		}
	}()

	pictures, err := state.Decode(reader)
	if err != nil {
		log.Printf("LoadFromFile: %s: %v", reader.URI(), err)
		b.SetStatus("Error parsing file - invalid format")
		dialog.ShowError(err, b.win)
		return
	}
	b.lib.Set(pictures)
	b.SetStatus(fmt.Sprintf("Loaded %d pictures", len(pictures)))
}

// ExportDialog writes the library as a printable PDF.
func (b *Board) ExportDialog() {
	pictures := b.lib.Pictures()
	if len(pictures) == 0 {
		dialog.ShowError(export.ErrNoPictures, b.win)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, b.win)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()
		if err := export.WritePDF(writer, pictures); err != nil {
			log.Printf("Export: %v", err)
			dialog.ShowError(err, b.win)
			return
		}
		b.SetStatus(fmt.Sprintf("Exported %d pictures to %s", len(pictures), writer.URI().Name()))
	}, b.win)
	d.SetFileName("pictures.pdf")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	d.Show()
}
