package render

import "fmt"

// ProgramBuildError reports a shader compile or link failure. It is
// fatal for the session on the current device: initialization aborts
// and the surrounding UI falls back to its 2D view.
type ProgramBuildError struct {
	Err error
}

func (e *ProgramBuildError) Error() string {
	return fmt.Sprintf("render: building program: %v", e.Err)
}

func (e *ProgramBuildError) Unwrap() error {
	return e.Err
}

// TextureAllocationError reports a failed atlas texture allocation,
// typically an oversized atlas on the current device.
type TextureAllocationError struct {
	Width  int
	Height int
	Code   uint32
}

func (e *TextureAllocationError) Error() string {
	return fmt.Sprintf("render: allocating %dx%d atlas texture: GL error 0x%x",
		e.Width, e.Height, e.Code)
}
