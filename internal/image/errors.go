package imagepkg

import "fmt"

// Stage names the pipeline step an error was raised in.
type Stage string

const (
	StageDecode     Stage = "decode"
	StageSurface    Stage = "surface"
	StageBackground Stage = "background"
	StageTypeset    Stage = "typeset"
	StageEncode     Stage = "encode"
)

// DecodeError reports source bytes that could not be read as a raster image.
// The pipeline does not run when it is returned.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: source image: %v", StageDecode, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RenderSurfaceError reports a canvas (or a drawing resource such as a font
// face) that could not be set up for the requested dimensions.
type RenderSurfaceError struct {
	Stage  Stage
	Width  int
	Height int
	Err    error
}

func (e *RenderSurfaceError) Error() string {
	return fmt.Sprintf("%s: canvas %dx%d: %v", e.Stage, e.Width, e.Height, e.Err)
}

func (e *RenderSurfaceError) Unwrap() error { return e.Err }

// EncodeError reports a finished canvas that could not be serialized.
// All drawing stages have completed when it is returned.
type EncodeError struct {
	Width  int
	Height int
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%s: canvas %dx%d: %v", StageEncode, e.Width, e.Height, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
