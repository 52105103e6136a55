package math

import (
	"math"
	"testing"
)

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestMulComposesTranslations(t *testing.T) {
	m := Translate(1, 2, 3).Mul(Translate(4, 5, 6))
	p := m.TransformPoint([3]float32{0, 0, 0})

	if p != [3]float32{5, 7, 9} {
		t.Errorf("composed translation: got %v, want (5, 7, 9)", p)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	p := [3]float32{1, 0, 0}
	result := m.TransformPoint(p)

	// After a 90 degree Y rotation, (1,0,0) lands near (0,0,-1)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateX90(t *testing.T) {
	m := RotateX(float32(math.Pi / 2))
	p := [3]float32{0, 1, 0}
	result := m.TransformPoint(p)

	// (0,1,0) rotates to (0,0,1)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]-1) > 0.001 {
		t.Errorf("RotateX 90: got %v, want (0, 0, 1)", result)
	}
}

func TestPerspectiveMapsNearFar(t *testing.T) {
	proj := Perspective(float32(math.Pi/4), 1.0, 0.1, 100)

	near := proj.TransformPoint([3]float32{0, 0, -0.1})
	far := proj.TransformPoint([3]float32{0, 0, -100})

	if abs(near[2]+1) > 0.001 {
		t.Errorf("near plane should map to z=-1, got %f", near[2])
	}
	if abs(far[2]-1) > 0.001 {
		t.Errorf("far plane should map to z=1, got %f", far[2])
	}
}

func TestMulOrder(t *testing.T) {
	// Translate-then-rotate is not rotate-then-translate
	rot := RotateZ(float32(math.Pi / 2))
	a := Translate(1, 0, 0).Mul(rot) // rotate first, then translate
	b := rot.Mul(Translate(1, 0, 0)) // translate first, then rotate

	pa := a.TransformPoint([3]float32{1, 0, 0}) // (0,1,0) -> (1,1,0)
	pb := b.TransformPoint([3]float32{1, 0, 0}) // (2,0,0) -> (0,2,0)

	if abs(pa[0]-1) > 0.001 || abs(pa[1]-1) > 0.001 {
		t.Errorf("T*R: got %v, want (1, 1, 0)", pa)
	}
	if abs(pb[0]) > 0.001 || abs(pb[1]-2) > 0.001 {
		t.Errorf("R*T: got %v, want (0, 2, 0)", pb)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalize()
	if abs(n.Length()-1) > 0.0001 {
		t.Errorf("normalized length: got %f, want 1", n.Length())
	}

	zero := Vec3{}
	if zero.Normalize() != (Vec3{}) {
		t.Error("normalizing zero vector should return zero")
	}
}

func TestVec3Ops(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if a.Add(b) != (Vec3{5, 7, 9}) {
		t.Errorf("Add: got %v", a.Add(b))
	}
	if b.Sub(a) != (Vec3{3, 3, 3}) {
		t.Errorf("Sub: got %v", b.Sub(a))
	}
	if a.Scale(2) != (Vec3{2, 4, 6}) {
		t.Errorf("Scale: got %v", a.Scale(2))
	}
	if a.Dot(b) != 32 {
		t.Errorf("Dot: got %f, want 32", a.Dot(b))
	}
}
