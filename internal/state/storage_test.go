package state

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	pictures := []Picture{
		{ID: "p1", Lines: []Line{{{0.1, 0.2}, {0.30000000000000004, 1e-9}}}},
		{ID: "p2", Lines: []Line{{{0, 0}}, {}}},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, pictures); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "p1" || len(got[1].Lines) != 2 {
		t.Fatalf("got=%+v", got)
	}
	if got[0].Lines[0][1] != pictures[0].Lines[0][1] {
		t.Fatalf("precision lost: %v", got[0].Lines[0][1])
	}
}

func TestDecodeFormat(t *testing.T) {
	in := `[{"lines":[[{"x":0.5,"y":0.25},{"x":1,"y":0}]]}]`
	got, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Lines[0][0] != (Point{0.5, 0.25}) {
		t.Fatalf("got=%+v", got)
	}

	if _, err := Decode(strings.NewReader(`{"lines":`)); err == nil {
		t.Fatal("expected error for truncated input")
	}

	empty, err := Decode(strings.NewReader(`null`))
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("null input: %v %v", empty, err)
	}
}

func TestDecodeRejectsNonFinite(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(`[{"lines":[[{"x":1e400,"y":0}]]}]`)
	_, err := Decode(&buf)
	if err == nil {
		t.Fatal("expected an error")
	}
	// encoding/json rejects out-of-range numbers itself; either way the
	// picture set is not accepted.
	if !strings.Contains(err.Error(), "decoding pictures") && !errors.Is(err, ErrBadCoordinate) {
		t.Fatalf("err=%v", err)
	}
}

func TestSaveLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "pictures.json")

	got, err := LoadFile(path)
	if err != nil || len(got) != 0 {
		t.Fatalf("missing file: %v %v", got, err)
	}

	pictures := []Picture{{ID: "x", Lines: []Line{{{0, 0}, {0.5, 0.5}}}}}
	if err := SaveFile(path, pictures); err != nil {
		t.Fatal(err)
	}
	got, err = LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "x" || got[0].Lines[0][1] != (Point{0.5, 0.5}) {
		t.Fatalf("got=%+v", got)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}

	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestPictureBounds(t *testing.T) {
	if _, ok := (Picture{}).Bounds(); ok {
		t.Fatal("empty picture has bounds")
	}
	p := Picture{Lines: []Line{{{2, 3}, {4, -1}}, {{-5, 0}}}}
	r, ok := p.Bounds()
	if !ok || r.Min != (Point{-5, -1}) || r.Max != (Point{4, 3}) {
		t.Fatalf("bounds=%+v", r)
	}
	if r.Width() != 9 || r.Height() != 4 {
		t.Fatalf("size=%vx%v", r.Width(), r.Height())
	}
}
