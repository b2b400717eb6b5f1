package imagepkg

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/opentype"
)

// Weight selects a typeface from a font set.
type Weight int

const (
	Bold Weight = iota
	Medium
)

func (w Weight) String() string {
	switch w {
	case Bold:
		return "bold"
	case Medium:
		return "medium"
	}
	return fmt.Sprintf("weight(%d)", int(w))
}

// FontSpec is a weight at a pixel size.
type FontSpec struct {
	Weight Weight
	Size   float64
}

// Measurer reports the advance width in pixels of text set in spec.
type Measurer interface {
	Measure(text string, spec FontSpec) float64
}

// Fonts holds parsed typefaces. Parsed fonts are read-only and may be shared;
// faces are created per render since they are not safe for concurrent use.
type Fonts struct {
	bold   *opentype.Font
	medium *opentype.Font
}

var (
	defaultFontsOnce sync.Once
	defaultFonts     *Fonts
	defaultFontsErr  error
)

// DefaultFonts returns the embedded Go fonts, parsed once.
func DefaultFonts() (*Fonts, error) {
	defaultFontsOnce.Do(func() {
		defaultFonts, defaultFontsErr = ParseFonts(gobold.TTF, gomedium.TTF)
	})
	return defaultFonts, defaultFontsErr
}

// ParseFonts builds a font set from bold and medium OpenType data.
func ParseFonts(boldTTF, mediumTTF []byte) (*Fonts, error) {
	bold, err := opentype.Parse(boldTTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	medium, err := opentype.Parse(mediumTTF)
	if err != nil {
		return nil, fmt.Errorf("parse medium font: %w", err)
	}
	return &Fonts{bold: bold, medium: medium}, nil
}

// NewFace creates a face for spec. The caller owns it.
func (f *Fonts) NewFace(spec FontSpec) (font.Face, error) {
	tf := f.bold
	if spec.Weight == Medium {
		tf = f.medium
	}
	face, err := opentype.NewFace(tf, &opentype.FaceOptions{
		Size:    spec.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s face at %.0fpx: %w", spec.Weight, spec.Size, err)
	}
	return face, nil
}

// faceSet is the per-render set of faces. It measures with the same faces
// it draws with.
type faceSet struct {
	fonts *Fonts
	faces map[FontSpec]font.Face
}

func newFaceSet(fonts *Fonts) *faceSet {
	return &faceSet{fonts: fonts, faces: make(map[FontSpec]font.Face)}
}

func (s *faceSet) face(spec FontSpec) (font.Face, error) {
	if face, ok := s.faces[spec]; ok {
		return face, nil
	}
	face, err := s.fonts.NewFace(spec)
	if err != nil {
		return nil, err
	}
	s.faces[spec] = face
	return face, nil
}

// Measure returns 0 for specs whose face cannot be created; callers create
// the face up front and report that error.
func (s *faceSet) Measure(text string, spec FontSpec) float64 {
	face, err := s.face(spec)
	if err != nil {
		return 0
	}
	return float64(font.MeasureString(face, text)) / 64
}

func (s *faceSet) Close() {
	for spec, face := range s.faces {
		face.Close()
		delete(s.faces, spec)
	}
}
