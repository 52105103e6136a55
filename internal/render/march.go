package render

import (
	"github.com/carelight/volview/internal/volume"
	"github.com/carelight/volview/pkg/math"
)

// March bounds. The composite path exits early once accumulated alpha
// saturates; the caps bound the worst case.
const (
	maxCompositeSteps = 512
	maxMIPSteps       = 256
	alphaCutoff       = 0.95
)

// This file is the CPU twin of the fragment shader in shaders.go: the
// same atlas addressing, windowing, color mapping, and compositing
// arithmetic, expressed in Go. It keeps the shader's algorithm
// testable and is the reference the GLSL is written against.

// sampler returns the normalized intensity at an object-space position
// p in [-1,1]^3. Out-of-volume positions sample as zero.
type sampler func(p math.Vec3) float32

// atlasSampler samples the packed atlas the way the shader does:
// normalize to [0,1]^3, select the depth band by floor(z*depth), fetch
// within the band.
func atlasSampler(a *volume.Atlas) sampler {
	sliceWidth := a.Width / a.Depth
	return func(p math.Vec3) float32 {
		qx := p.X*0.5 + 0.5
		qy := p.Y*0.5 + 0.5
		qz := p.Z*0.5 + 0.5
		if qx < 0 || qx > 1 || qy < 0 || qy > 1 || qz < 0 || qz > 1 {
			return 0
		}

		z := int(qz * float32(a.Depth))
		if z >= a.Depth {
			z = a.Depth - 1
		}
		x := int(qx * float32(sliceWidth))
		if x >= sliceWidth {
			x = sliceWidth - 1
		}
		y := int(qy * float32(a.Height))
		if y >= a.Height {
			y = a.Height - 1
		}

		return float32(a.At(x, y, z)) / 255
	}
}

// windowedIntensity applies the intensity window:
// clamp((v - (center - width/2)) / width, 0, 1).
func windowedIntensity(v, center, width float32) float32 {
	return clamp01((v - (center - width/2)) / width)
}

// colorize maps a windowed intensity through the selected color map.
func colorize(m ColorMap, t float32) [3]float32 {
	switch m {
	case MapHot:
		return [3]float32{t, 0.5 * t, 0}
	case MapCool:
		return [3]float32{0, 0.5 * t, t}
	case MapBone:
		return [3]float32{0.8 * t, 0.9 * t, t}
	default:
		return [3]float32{t, t, t}
	}
}

// accum is a front-to-back compositing accumulator. The (1 - A) factor
// keeps alpha monotonically non-decreasing and capped at 1.
type accum struct {
	R, G, B, A float32
}

func (a *accum) add(rgb [3]float32, alpha float32) {
	remain := 1 - a.A
	a.R += rgb[0] * alpha * remain
	a.G += rgb[1] * alpha * remain
	a.B += rgb[2] * alpha * remain
	a.A += alpha * remain
}

// sampleAlpha is the per-sample opacity rule: fully transparent below
// the threshold, the global opacity above it.
func sampleAlpha(t float32, s Settings) float32 {
	if t > s.Threshold {
		return s.Opacity
	}
	return 0
}

// marchComposite walks a ray front-to-back from the cube entry point.
// The ray direction is the normalized entry position itself, matching
// the shader's deliberate short-range approximation.
func marchComposite(sample sampler, entry math.Vec3, step float32, s Settings) accum {
	dir := entry.Normalize()
	pos := entry

	var acc accum
	for i := 0; i < maxCompositeSteps; i++ {
		t := windowedIntensity(sample(pos), s.WindowCenter, s.WindowWidth)
		acc.add(colorize(s.ColorMap, t), sampleAlpha(t, s))
		if acc.A >= alphaCutoff {
			break
		}
		pos = pos.Add(dir.Scale(step))
		if outsideCube(pos) {
			break
		}
	}
	return acc
}

// marchMIP walks a ray tracking the maximum windowed intensity, then
// color-maps that maximum once.
func marchMIP(sample sampler, entry math.Vec3, step float32, s Settings) [3]float32 {
	dir := entry.Normalize()
	pos := entry

	var best float32
	for i := 0; i < maxMIPSteps; i++ {
		t := windowedIntensity(sample(pos), s.WindowCenter, s.WindowWidth)
		if t > best {
			best = t
		}
		pos = pos.Add(dir.Scale(step))
		if outsideCube(pos) {
			break
		}
	}
	return colorize(s.ColorMap, best)
}

func outsideCube(p math.Vec3) bool {
	return p.X < -1 || p.X > 1 || p.Y < -1 || p.Y > 1 || p.Z < -1 || p.Z > 1
}
