// Package asset resolves project-relative files and reads texture metadata
package asset

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
)

var (
	ErrEmptyPath = errors.New("empty asset path")
	ErrNotFound  = errors.New("asset not found")
	ErrDecode    = errors.New("asset decode failed")
)

// Texture is a loaded image reference. Only its size matters to the scene;
// renderers may reopen Path for pixels.
type Texture struct {
	Path   string
	Width  int
	Height int
}

// Size returns the texture dimensions as floats
func (t Texture) Size() (float64, float64) {
	return float64(t.Width), float64(t.Height)
}

// Loader loads textures by project-relative path
type Loader interface {
	LoadTexture(rel string) (Texture, error)
}

// Opener opens raw project files such as sounds
type Opener interface {
	Open(rel string) (io.ReadCloser, error)
}

// FileLoader serves assets from a project directory
type FileLoader struct {
	Root string

	mu    sync.RWMutex
	cache map[string]Texture
}

// NewFileLoader creates a loader rooted at dir
func NewFileLoader(dir string) *FileLoader {
	return &FileLoader{
		Root:  dir,
		cache: make(map[string]Texture),
	}
}

// Resolve joins rel onto the project root
func (l *FileLoader) Resolve(rel string) (string, error) {
	if rel == "" {
		return "", ErrEmptyPath
	}
	return filepath.Join(l.Root, rel), nil
}

// Open opens a project file for reading
func (l *FileLoader) Open(rel string) (io.ReadCloser, error) {
	path, err := l.Resolve(rel)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, rel, err)
	}
	return f, nil
}

// LoadTexture reads the image header of rel. Results are cached per path.
func (l *FileLoader) LoadTexture(rel string) (Texture, error) {
	l.mu.RLock()
	if tex, ok := l.cache[rel]; ok {
		l.mu.RUnlock()
		return tex, nil
	}
	l.mu.RUnlock()

	r, err := l.Open(rel)
	if err != nil {
		return Texture{}, err
	}
	defer r.Close()

	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return Texture{}, fmt.Errorf("%w: %s: %v", ErrDecode, rel, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return Texture{}, fmt.Errorf("%w: %s: empty image", ErrDecode, rel)
	}

	path, _ := l.Resolve(rel)
	tex := Texture{Path: path, Width: cfg.Width, Height: cfg.Height}

	l.mu.Lock()
	l.cache[rel] = tex
	l.mu.Unlock()
	return tex, nil
}

// Forget drops cached entries so changed files are re-read on the next build
func (l *FileLoader) Forget() {
	l.mu.Lock()
	l.cache = make(map[string]Texture)
	l.mu.Unlock()
}
