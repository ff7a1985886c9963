package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
)

var ErrBadCoordinate = errors.New("coordinate is not a finite number")

// Encode writes pictures as indented JSON.
func Encode(w io.Writer, pictures []Picture) error {
	if pictures == nil {
		pictures = []Picture{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(pictures)
}

// Decode reads pictures written by Encode.
func Decode(r io.Reader) ([]Picture, error) {
	var pictures []Picture
	if err := json.NewDecoder(r).Decode(&pictures); err != nil {
		return nil, fmt.Errorf("decoding pictures: %w", err)
	}
	for i, p := range pictures {
		for j, line := range p.Lines {
			for k, pt := range line {
				if !finite(pt.X) || !finite(pt.Y) {
					return nil, fmt.Errorf("picture %d line %d point %d: %w", i, j, k, ErrBadCoordinate)
				}
			}
		}
	}
	if pictures == nil {
		pictures = []Picture{}
	}
	return pictures, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// SaveFile writes pictures to path, replacing it atomically.
func SaveFile(path string, pictures []Picture) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".pictures-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, pictures); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	log.Printf("[STORAGE] Saved %d pictures to %s", len(pictures), path)
	return nil
}

// LoadFile reads pictures from path. A missing file is an empty library.
func LoadFile(path string) ([]Picture, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("[STORAGE] %s does not exist, starting with no pictures", path)
		return []Picture{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pictures, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("[STORAGE] Loaded %d pictures from %s", len(pictures), path)
	return pictures, nil
}
