package render

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/carelight/volview/internal/engine/shader"
	"github.com/carelight/volview/internal/volume"
	"github.com/carelight/volview/pkg/math"
)

// Renderer owns the GPU side of the pipeline: the ray-marching program,
// the bounding-cube geometry, and the atlas texture. All methods must
// run on the thread holding the GL context.
type Renderer struct {
	log *zap.Logger

	program uint32

	// Bounding cube, built once and reused for every volume.
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32

	atlasTexture uint32
	atlasDepth   float32

	// Uniform locations, resolved at link time.
	locModelView    int32
	locProjection   int32
	locAtlas        int32
	locDepth        int32
	locMode         int32
	locColorMap     int32
	locOpacity      int32
	locThreshold    int32
	locWindowCenter int32
	locWindowWidth  int32
	locStepSize     int32
}

// NewRenderer compiles the program and builds the cube geometry.
// Requires a current GL context. A compile or link failure is returned
// as a ProgramBuildError and leaves no resources behind.
func NewRenderer(log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{log: log}

	program, err := shader.CompileProgram(volumeVertexShader, volumeFragmentShader)
	if err != nil {
		return nil, &ProgramBuildError{Err: err}
	}
	r.program = program

	r.locModelView = shader.Uniform(program, "uModelView")
	r.locProjection = shader.Uniform(program, "uProjection")
	r.locAtlas = shader.Uniform(program, "uAtlas")
	r.locDepth = shader.Uniform(program, "uDepth")
	r.locMode = shader.Uniform(program, "uMode")
	r.locColorMap = shader.Uniform(program, "uColorMap")
	r.locOpacity = shader.Uniform(program, "uOpacity")
	r.locThreshold = shader.Uniform(program, "uThreshold")
	r.locWindowCenter = shader.Uniform(program, "uWindowCenter")
	r.locWindowWidth = shader.Uniform(program, "uWindowWidth")
	r.locStepSize = shader.Uniform(program, "uStepSize")

	r.buildCube()

	log.Info("ray-march program ready", zap.Uint32("program", program))
	return r, nil
}

// buildCube uploads the unit-cube bounding geometry: 8 vertices,
// 12 triangles via 36 indices. This is the ray-marching domain in
// [-1,1]^3 object space.
func (r *Renderer) buildCube() {
	vertices := []float32{
		-1, -1, -1,
		1, -1, -1,
		1, 1, -1,
		-1, 1, -1,
		-1, -1, 1,
		1, -1, 1,
		1, 1, 1,
		-1, 1, 1,
	}
	indices := []uint32{
		// back (z = -1)
		0, 2, 1, 0, 3, 2,
		// front (z = +1)
		4, 5, 6, 4, 6, 7,
		// left (x = -1)
		0, 4, 7, 0, 7, 3,
		// right (x = +1)
		1, 6, 5, 1, 2, 6,
		// bottom (y = -1)
		0, 1, 5, 0, 5, 4,
		// top (y = +1)
		3, 6, 2, 3, 7, 6,
	}
	r.indexCount = int32(len(indices))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)

	gl.BindVertexArray(0)
}

// UploadAtlas replaces the atlas texture with a freshly packed volume.
// Bilinear filtering, edge-clamped so out-of-volume samples do not wrap
// into a neighboring slice band.
func (r *Renderer) UploadAtlas(a *volume.Atlas) error {
	if r.atlasTexture != 0 {
		gl.DeleteTextures(1, &r.atlasTexture)
		r.atlasTexture = 0
	}

	gl.GenTextures(1, &r.atlasTexture)
	gl.BindTexture(gl.TEXTURE_2D, r.atlasTexture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(a.Width), int32(a.Height),
		0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(a.Pixels))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &r.atlasTexture)
		r.atlasTexture = 0
		return &TextureAllocationError{Width: a.Width, Height: a.Height, Code: code}
	}

	r.atlasDepth = float32(a.Depth)
	r.log.Debug("atlas uploaded",
		zap.Int("width", a.Width),
		zap.Int("height", a.Height),
		zap.Int("depth", a.Depth),
	)
	return nil
}

// HasVolume reports whether an atlas has been uploaded.
func (r *Renderer) HasVolume() bool {
	return r.atlasTexture != 0
}

// Draw renders one frame with the supplied camera matrices, settings,
// and march step size. Uniforms are pushed once per call.
func (r *Renderer) Draw(modelView, projection math.Mat4, s Settings, stepSize float32) {
	if r.atlasTexture == 0 {
		return
	}

	gl.UseProgram(r.program)

	gl.UniformMatrix4fv(r.locModelView, 1, false, modelView.Ptr())
	gl.UniformMatrix4fv(r.locProjection, 1, false, projection.Ptr())

	mode := int32(0)
	if !s.compositesVolumetrically() {
		mode = 1
	}
	gl.Uniform1i(r.locMode, mode)
	gl.Uniform1i(r.locColorMap, int32(s.ColorMap))
	gl.Uniform1f(r.locOpacity, s.Opacity)
	gl.Uniform1f(r.locThreshold, s.Threshold)
	gl.Uniform1f(r.locWindowCenter, s.WindowCenter)
	gl.Uniform1f(r.locWindowWidth, s.WindowWidth)
	gl.Uniform1f(r.locStepSize, stepSize)
	gl.Uniform1f(r.locDepth, r.atlasDepth)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlasTexture)
	gl.Uniform1i(r.locAtlas, 0)

	// Back faces are culled so each pixel shades once, with the
	// front-surface entry point.
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	gl.Disable(gl.CULL_FACE)
}

// Release frees every GL resource the renderer owns. GPU objects are
// not garbage collected; this must run on teardown and before a study
// swap drops the last reference.
func (r *Renderer) Release() {
	if r.atlasTexture != 0 {
		gl.DeleteTextures(1, &r.atlasTexture)
		r.atlasTexture = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
	r.log.Debug("renderer resources released")
}
