package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"TraceBoard/internal/state"
)

func TestWritePDF(t *testing.T) {
	pictures := []state.Picture{
		{Lines: []state.Line{{{X: 0, Y: 0}, {X: 1, Y: 1}}}},
		{Lines: []state.Line{{{X: -1, Y: 0.5}, {X: 2, Y: 0.5}}, {{X: 0.5, Y: 0.5}}}},
	}
	var buf bytes.Buffer
	if err := WritePDF(&buf, pictures); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output does not look like a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestWritePDFEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, nil); !errors.Is(err, ErrNoPictures) {
		t.Fatalf("err=%v", err)
	}
}

func TestPicturesPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	err := PicturesPDF(path, []state.Picture{{Lines: []state.Line{{{X: 0.2, Y: 0.2}, {X: 0.8, Y: 0.2}}}}})
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("empty pdf")
	}
}
