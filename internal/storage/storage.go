package storage

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/OCharnyshevich/heightfield/internal/heightmap"
)

// Storage writes rendered maps under one output directory.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage rooted at dir, creating it as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	return &Storage{dir: dir, log: log}, nil
}

// Dir returns the output directory.
func (s *Storage) Dir() string {
	return s.dir
}

// SaveMap writes <name>.json with the map data and <name>.png with a
// grayscale preview, both atomically. With upscale, approx previews are
// drawn at block resolution.
func (s *Storage) SaveMap(name string, m *heightmap.Map, upscale bool) error {
	jsonPath := filepath.Join(s.dir, name+".json")
	if err := s.atomicWriteJSON(jsonPath, MapDataFromMap(m)); err != nil {
		return fmt.Errorf("save map %s: %w", name, err)
	}

	var img image.Image = m.Image()
	if upscale {
		img = m.BlockImage()
	}
	pngPath := filepath.Join(s.dir, name+".png")
	if err := s.atomicWritePNG(pngPath, img); err != nil {
		return fmt.Errorf("save map %s: %w", name, err)
	}

	s.log.Info("saved map", "id", m.ID, "json", jsonPath, "png", pngPath)
	return nil
}

// LoadMap reads <name>.json back into a map.
func (s *Storage) LoadMap(name string) (*heightmap.Map, error) {
	path := filepath.Join(s.dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map %s: %w", name, err)
	}

	var md MapData
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("parse map %s: %w", name, err)
	}
	m, err := md.Map()
	if err != nil {
		return nil, fmt.Errorf("decode map %s: %w", name, err)
	}
	return m, nil
}

// atomicWriteJSON marshals v to JSON and writes it atomically using a temp file + rename.
func (s *Storage) atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// atomicWritePNG encodes img as PNG through a temp file + rename.
func (s *Storage) atomicWritePNG(path string, img image.Image) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
