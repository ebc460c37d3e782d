package graphics_test

import (
	"testing"

	"softrast/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// vecNear compares by distance; mathgl's threshold helpers fall back to
// epsilon squared when one side is exactly zero.
func vecNear(a, b mgl32.Vec3, tol float32) bool { return a.Sub(b).Len() < tol }

func floatNear(a, b, tol float32) bool { return mgl32.Abs(a-b) < tol }

const tolerance = 1e-4

func TestTransformMutatorsKeepMatrixCurrent(t *testing.T) {
	tr := graphics.NewTransform()
	p := mgl32.Vec3{1, 2, 3}

	if got := tr.TransformPoint(p); !vecNear(got, p, tolerance) {
		t.Fatalf("Identity transform moved %v to %v", p, got)
	}

	tr.SetPosition(mgl32.Vec3{10, 0, 0})
	if got := tr.TransformPoint(p); !vecNear(got, mgl32.Vec3{11, 2, 3}, tolerance) {
		t.Errorf("After SetPosition expected {11 2 3}, got %v", got)
	}

	tr.SetScale(2)
	if got := tr.TransformPoint(p); !vecNear(got, mgl32.Vec3{12, 4, 6}, tolerance) {
		t.Errorf("After SetScale expected {12 4 6}, got %v", got)
	}

	tr.SetRotation(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1}))
	// (1,0,0) -> scale (2,0,0) -> rotate 90° about Z (0,2,0) -> translate.
	if got := tr.TransformPoint(mgl32.Vec3{1, 0, 0}); !vecNear(got, mgl32.Vec3{10, 2, 0}, tolerance) {
		t.Errorf("After SetRotation expected {10 2 0}, got %v", got)
	}

	tr.Translate(mgl32.Vec3{0, 0, 5})
	if got := tr.Matrix().Col(3).Vec3(); !vecNear(got, mgl32.Vec3{10, 0, 5}, tolerance) {
		t.Errorf("Matrix translation column = %v, want {10 0 5}", got)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	tr := graphics.NewTransform()
	tr.SetPosition(mgl32.Vec3{100, -50, 25})
	tr.SetScale(3)

	n := mgl32.Vec3{0, 0, 1}
	if got := tr.TransformDirection(n); !vecNear(got, n, tolerance) {
		t.Errorf("Expected %v unchanged, got %v", n, got)
	}

	tr.Rotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	if got := tr.TransformDirection(n); !vecNear(got, mgl32.Vec3{1, 0, 0}, tolerance) {
		t.Errorf("Expected {1 0 0} after rotation, got %v", got)
	}
}

func TestTransformZeroQuaternion(t *testing.T) {
	tr := graphics.NewTransform()
	tr.SetRotation(mgl32.Quat{})
	if tr.Rotation() != mgl32.QuatIdent() {
		t.Errorf("Expected identity rotation, got %v", tr.Rotation())
	}
}

func TestCameraProjectsCenter(t *testing.T) {
	cam := graphics.NewPerspectiveCamera(mgl32.Vec3{0, 0, 10}, 800, 600)
	got := cam.Project(mgl32.Vec3{0, 0, 0}, nil)
	if !floatNear(got[0], 400, tolerance) || !floatNear(got[1], 300, tolerance) {
		t.Errorf("Expected origin at viewport centre, got %v", got)
	}
	if got[2] <= 0 || got[2] >= 1 {
		t.Errorf("Expected depth in (0, 1), got %f", got[2])
	}
}

func TestCameraDepthOrdering(t *testing.T) {
	cam := graphics.NewPerspectiveCamera(mgl32.Vec3{0, 0, 10}, 800, 600)
	near := cam.ProjectPoint(mgl32.Vec3{0, 0, 5}, nil)
	far := cam.ProjectPoint(mgl32.Vec3{0, 0, -5}, nil)
	if !(near[2] < far[2]) {
		t.Errorf("Expected nearer point to have smaller depth: near=%f far=%f", near[2], far[2])
	}

	n, f := cam.ClipPlanes()
	atNear := cam.ProjectPoint(mgl32.Vec3{0, 0, 10 - n}, nil)
	atFar := cam.ProjectPoint(mgl32.Vec3{0, 0, 10 - f}, nil)
	if !floatNear(atNear[2], 0, tolerance) || !floatNear(atFar[2], 1, tolerance) {
		t.Errorf("Expected depth 0 at near and 1 at far, got %f and %f", atNear[2], atFar[2])
	}
}

func TestCameraBehindPointHasNegativeDepth(t *testing.T) {
	cam := graphics.NewPerspectiveCamera(mgl32.Vec3{0, 0, 10}, 800, 600)
	for _, z := range []float32{10, 11, 50, 1000} {
		got := cam.ProjectPoint(mgl32.Vec3{0.5, 0.5, z}, nil)
		if got[2] > 0 {
			t.Errorf("Point at z=%f behind camera got positive depth %f", z, got[2])
		}
	}
}

func TestCameraUsesObjectTransform(t *testing.T) {
	cam := graphics.NewPerspectiveCamera(mgl32.Vec3{0, 0, 10}, 800, 600)
	tr := graphics.NewTransform()
	tr.SetPosition(mgl32.Vec3{1, 0, 0})

	moved := cam.Project(mgl32.Vec3{}, tr)
	// x is mirrored on screen: world +X lands left of centre.
	if moved[0] >= 400 {
		t.Errorf("Expected translated point left of centre, got x=%f", moved[0])
	}
	up := cam.Project(mgl32.Vec3{0, 1, 0}, nil)
	if up[1] >= 300 {
		t.Errorf("Expected +Y above centre (smaller row), got y=%f", up[1])
	}
}

func TestCameraSetViewportRegeneratesProjection(t *testing.T) {
	cam := graphics.NewPerspectiveCamera(mgl32.Vec3{0, 0, 10}, 800, 600)
	before := cam.ProjectionMatrix()
	cam.SetViewport(400, 400)
	after := cam.ProjectionMatrix()
	if before == after {
		t.Fatalf("Projection matrix not regenerated after SetViewport")
	}
	if !floatNear(cam.Aspect(), 1, tolerance) {
		t.Errorf("Expected aspect 1, got %f", cam.Aspect())
	}
	got := cam.Project(mgl32.Vec3{}, nil)
	if !floatNear(got[0], 200, tolerance) || !floatNear(got[1], 200, tolerance) {
		t.Errorf("Expected centre {200 200}, got %v", got)
	}

	cam.SetFOV(mgl32.DegToRad(60))
	if cam.ProjectionMatrix() == after {
		t.Errorf("Projection matrix not regenerated after SetFOV")
	}
}

func TestCameraSetClipPlanesRegeneratesProjection(t *testing.T) {
	cam := graphics.NewPerspectiveCamera(mgl32.Vec3{0, 0, 10}, 800, 600)
	before := cam.ProjectionMatrix()

	cam.SetClipPlanes(1, 50)
	if n, f := cam.ClipPlanes(); n != 1 || f != 50 {
		t.Fatalf("Expected planes 1 and 50, got %v and %v", n, f)
	}
	if cam.ProjectionMatrix() == before {
		t.Fatalf("Projection matrix not regenerated after SetClipPlanes")
	}
	atNear := cam.ProjectPoint(mgl32.Vec3{0, 0, 9}, nil)
	atFar := cam.ProjectPoint(mgl32.Vec3{0, 0, -40}, nil)
	if !floatNear(atNear[2], 0, tolerance) || !floatNear(atFar[2], 1, tolerance) {
		t.Errorf("Expected depth 0 at near and 1 at far, got %f and %f", atNear[2], atFar[2])
	}

	after := cam.ProjectionMatrix()
	for _, planes := range [][2]float32{{0, 10}, {-1, 10}, {5, 5}, {5, 2}} {
		cam.SetClipPlanes(planes[0], planes[1])
		if cam.ProjectionMatrix() != after {
			t.Errorf("Invalid planes %v changed the projection", planes)
		}
	}
}

func TestNewDirectionalLightNormalizes(t *testing.T) {
	l := graphics.NewDirectionalLight(mgl32.Vec3{0, -3, 4}, 0.8)
	if !floatNear(l.Direction.Len(), 1, tolerance) {
		t.Errorf("Expected unit direction, got %v", l.Direction)
	}
}
