// internal/browser/fonts/registry.go
package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrFontNotFound is returned when no file or built-in exists for a family.
var ErrFontNotFound = errors.New("font not found")

// builtinFonts are the Go fonts bundled with x/image.
var builtinFonts = map[string][]byte{
	"Go":         goregular.TTF,
	"Go Regular": goregular.TTF,
	"Go Bold":    gobold.TTF,
	"Go Mono":    gomono.TTF,
}

// BuiltinFallbackFamily names the built-in used in place of a missing
// default family.
const BuiltinFallbackFamily = "Go Regular"

// Registry holds every font resolved for a document, keyed by family.
// Once populated it is only read.
type Registry struct {
	mu    sync.RWMutex
	fonts map[string]*Font
}

func NewRegistry() *Registry {
	return &Registry{fonts: make(map[string]*Font)}
}

// Add registers f under family, replacing any previous entry.
func (r *Registry) Add(family string, f *Font) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fonts[family] = f
}

// Font returns the font registered for family.
func (r *Registry) Font(family string) (*Font, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.fonts[family]
	return f, ok
}

// Metrics implements Source.
func (r *Registry) Metrics(family string) (Metrics, bool) {
	f, ok := r.Font(family)
	if !ok {
		return nil, false
	}
	return f, true
}

// Families lists the registered families in sorted order.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.fonts))
	for n := range r.fonts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Loader reads <Dir>/<family>.ttf files.
type Loader struct {
	Dir string
}

// Load reads and parses the file for family. A missing file wraps
// ErrFontNotFound.
func (l Loader) Load(family string) (*Font, error) {
	path := filepath.Join(l.Dir, family+".ttf")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFontNotFound, path)
		}
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}
	return ParseFont(family, data)
}

// LoadBuiltin parses one of the bundled Go fonts.
func LoadBuiltin(family string) (*Font, error) {
	data, ok := builtinFonts[family]
	if !ok {
		return nil, fmt.Errorf("%w: no built-in font %q", ErrFontNotFound, family)
	}
	return ParseFont(family, data)
}
