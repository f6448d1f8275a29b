package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/athora/prefabs"
	"golang.org/x/image/font/basicfont"
)

// Face is the text face every label is drawn with. Larger sizes scale it.
var Face text.Face = text.NewGoXFace(basicfont.Face7x13)

// FaceHeight is the pixel height of Face at scale 1.
const FaceHeight = 13

// Textures resolves texture names to images. Names without a PNG in the
// override directory become solid swatches of their configured colour.
type Textures struct {
	images   map[string]*ebiten.Image
	fallback *ebiten.Image
}

// NewTextures builds every texture in spec. dir may be empty.
func NewTextures(spec prefabs.TexturesSpec, dir string) (*Textures, error) {
	t := &Textures{images: make(map[string]*ebiten.Image, len(spec.Colors))}

	var fb color.Color = color.NRGBA{R: 0xff, B: 0xff, A: 0xff}
	if spec.Fallback != nil && spec.Fallback.Color != nil {
		fb = spec.Fallback.Color
	}
	t.fallback = swatch(fb)

	for name, c := range spec.Colors {
		if dir != "" {
			img, err := LoadImage(filepath.Join(dir, name+".png"))
			if err == nil {
				t.images[name] = img
				continue
			}
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("texture %q: %w", name, err)
			}
		}
		t.images[name] = swatch(c.Color)
	}
	return t, nil
}

// Get returns the named texture, or the fallback swatch.
func (t *Textures) Get(name string) *ebiten.Image {
	if t == nil {
		return nil
	}
	if img, ok := t.images[name]; ok {
		return img
	}
	return t.fallback
}

// Has reports whether name was configured.
func (t *Textures) Has(name string) bool {
	_, ok := t.images[name]
	return ok
}

// LoadImage decodes an image file from disk.
func LoadImage(path string) (*ebiten.Image, error) {
	b, err := os.ReadFile(cleanAssetPath(path))
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func swatch(c color.Color) *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	if c != nil {
		img.Fill(c)
	}
	return img
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	return filepath.FromSlash(strings.TrimSpace(path))
}
