// Package fonts locates and parses the font used to draw the guide.
//
// Fonts are tried in order from an explicit candidate list. A candidate may
// be a path, or a bare file name that is looked up in the platform font
// directories. When no candidate can be loaded the Go Regular face compiled
// into the binary is used, so rendering never fails for lack of a font.
package fonts

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	rgerrors "github.com/matzehuels/radioguide/pkg/errors"
)

// EmbeddedName is the Name of the built-in fallback font.
const EmbeddedName = "Go Regular (embedded)"

// DefaultCandidates is the default fallback chain: macOS
// Helvetica, Liberation Sans on Linux, Arial on Windows.
var DefaultCandidates = []string{
	"/System/Library/Fonts/Helvetica.ttc",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"arial.ttf",
}

// Font is a parsed font with a per-size face cache. It is safe for
// concurrent use.
type Font struct {
	Name string // candidate that was loaded, or EmbeddedName
	Path string // resolved file path, empty for the embedded font

	sfnt  *opentype.Font
	mu    sync.Mutex
	faces map[int]font.Face
}

// Embedded returns the built-in Go Regular font.
func Embedded() *Font {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(err) // embedded font is known to parse
	}
	return newFont(EmbeddedName, "", f)
}

// Load returns the first candidate that resolves and parses. Failed
// candidates are reported through skip, which may be nil. With no usable
// candidate, Load returns the embedded font.
func Load(candidates []string, skip func(name string, err error)) *Font {
	for _, name := range candidates {
		f, err := LoadFile(name)
		if err == nil {
			return f
		}
		if skip != nil {
			skip(name, err)
		}
	}
	return Embedded()
}

// LoadFile resolves and parses a single font. TrueType collections (.ttc)
// yield their first font.
func LoadFile(name string) (*Font, error) {
	path, err := Resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rgerrors.WrapIO(err, "read font %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, rgerrors.Wrap(rgerrors.ErrCodeFontUnavailable, err, "parse font %s", path)
	}
	return newFont(name, path, f), nil
}

// Resolve maps a candidate to a readable file. Existing paths are returned
// as is; otherwise the base name is searched in the system font directories.
func Resolve(name string) (string, error) {
	if name == "" {
		return "", rgerrors.New(rgerrors.ErrCodeFontUnavailable, "empty font name")
	}
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	path, err := findfont.Find(filepath.Base(name))
	if err != nil {
		return "", rgerrors.Wrap(rgerrors.ErrCodeFontUnavailable, err, "font %s not found", name)
	}
	return path, nil
}

// Parse parses a single font or the first font of a collection.
func Parse(data []byte) (*opentype.Font, error) {
	f, err := opentype.Parse(data)
	if err == nil {
		return f, nil
	}
	c, cerr := opentype.ParseCollection(data)
	if cerr != nil {
		return nil, err
	}
	if c.NumFonts() == 0 {
		return nil, rgerrors.New(rgerrors.ErrCodeFontUnavailable, "empty font collection")
	}
	return c.Font(0)
}

func newFont(name, path string, f *opentype.Font) *Font {
	return &Font{Name: name, Path: path, sfnt: f, faces: make(map[int]font.Face)}
}

// IsEmbedded reports whether f is the built-in fallback.
func (f *Font) IsEmbedded() bool {
	return f.Path == "" && strings.HasPrefix(f.Name, "Go Regular")
}

// Face returns a face at sizePx pixels per em (72 DPI, so points equal
// pixels). Faces are cached per size.
func (f *Font) Face(sizePx int) (font.Face, error) {
	sizePx = max(sizePx, 1)

	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[sizePx]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, rgerrors.Wrap(rgerrors.ErrCodeFontUnavailable, err, "create %dpx face for %s", sizePx, f.Name)
	}
	f.faces[sizePx] = face
	return face, nil
}
