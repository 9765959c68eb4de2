package debug

import (
	"os"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/terraskel"
)

// ViewConfig describes the camera for a Snapshot call.
type ViewConfig struct {
	Eye, Center, Up fauxgl.Vector
	Fovy            float64
	Near, Far       float64
}

// DefaultView returns a camera looking at the origin from a distance
// proportional to radius, suitable for framing a whole globe.
func DefaultView(radius float64) ViewConfig {
	return ViewConfig{
		Eye:    fauxgl.V(radius*2.5, radius*1.5, radius*2.5),
		Center: fauxgl.V(0, 0, 0),
		Up:     fauxgl.V(0, 1, 0),
		Fovy:   30,
		Near:   radius * 0.1,
		Far:    radius * 10,
	}
}

// Snapshot rasterizes every leaf triangle currently in sk and writes a
// shaded, antialiased PNG to outputname. It round-trips through a
// temporary STL file and fauxgl.LoadSTL, the same mesh-load step
// render/form3_test.go uses, rather than building a fauxgl mesh
// directly.
func Snapshot(sk *terraskel.Skeleton, view ViewConfig, width, height int, outputname string) error {
	const scale = 2 // supersampling factor

	tmp, err := os.CreateTemp("", "terraskel-snapshot-*.stl")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := WriteSTL(tmp, sk); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	mesh, err := fauxgl.LoadSTL(tmpName)
	if err != nil {
		return err
	}
	mesh.BiUnitCube()

	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#1B1F23"))

	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(view.Eye, view.Center, view.Up).Perspective(view.Fovy, aspect, view.Near, view.Far)
	light := fauxgl.V(-0.75, 1, 0.25).Normalize()

	shader := fauxgl.NewPhongShader(matrix, light, view.Eye)
	shader.ObjectColor = fauxgl.HexColor("#6FA8DC")
	context.Shader = shader
	context.DrawMesh(mesh)

	image := context.Image()
	image = resize.Resize(uint(width), uint(height), image, resize.Bilinear)
	return fauxgl.SavePNG(outputname, image)
}
