package raster

import (
	"image"
	"math"

	"asset-preview/internal/mathutil"
	"asset-preview/internal/obj"
)

// Camera orients the preview view. Angles are in degrees; the model is
// auto-centered and scaled to fit the frame after rotation.
type Camera struct {
	Yaw   float64
	Pitch float64
}

// DefaultCamera gives a three-quarter view, slightly from above.
func DefaultCamera() Camera {
	return Camera{Yaw: 30, Pitch: -20}
}

// RenderModel renders a decoded triangle list to an NRGBA image of
// size×supersample per side. The model is not mutated; an empty model
// yields a fully transparent image of the base size.
func RenderModel(model *obj.Model, tex *image.NRGBA, cam Camera, size, supersample int) *image.NRGBA {
	if model.TriangleCount() == 0 {
		return image.NewNRGBA(image.Rect(0, 0, size, size))
	}

	R := mathutil.Mat3Mul(
		mathutil.RotX(mathutil.Deg2Rad(cam.Pitch)),
		mathutil.RotY(mathutil.Deg2Rad(cam.Yaw)),
	)

	renderSize := size * supersample

	// Rotate all vertices once, tracking the bounding box.
	rotated := make([]mathutil.Vec3, len(model.Vertices))
	allMin := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	allMax := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i, v := range model.Vertices {
		tv := R.MulVec3(mathutil.Vec3{
			float64(v.Position[0]),
			float64(v.Position[1]),
			float64(v.Position[2]),
		})
		rotated[i] = tv
		for k := 0; k < 3; k++ {
			if tv[k] < allMin[k] {
				allMin[k] = tv[k]
			}
			if tv[k] > allMax[k] {
				allMax[k] = tv[k]
			}
		}
	}

	center := allMin.Add(allMax).Scale(0.5)
	span := math.Max(allMax[0]-allMin[0], allMax[1]-allMin[1])
	if span < 0.001 {
		span = 0.001
	}

	margin := 16 * supersample
	if 2*margin >= renderSize {
		margin = renderSize / 4
	}
	scale := float64(renderSize-2*margin) / span
	half := float64(renderSize) / 2

	fb := NewFrameBuffer(renderSize, renderSize)
	lc := DefaultLightConfig()

	// Default color when the model carries no texture (average when it does)
	var defR, defG, defB, defA uint8 = 160, 160, 170, 255
	if tex != nil {
		defR, defG, defB, defA = averageColor(tex)
	}

	for t := 0; t < len(model.Vertices); t += 3 {
		var tri [3]ProjectedVertex
		var normal mathutil.Vec3
		for i := 0; i < 3; i++ {
			v := model.Vertices[t+i]
			tv := rotated[t+i]
			tri[i] = ProjectedVertex{
				X: (tv[0]-center[0])*scale + half,
				Y: half - (tv[1]-center[1])*scale, // image Y grows downward
				Z: tv[2],
				U: float64(v.TexCoord[0]),
				V: float64(v.TexCoord[1]),
			}
			normal = normal.Add(R.MulVec3(mathutil.Vec3{
				float64(v.Normal[0]),
				float64(v.Normal[1]),
				float64(v.Normal[2]),
			}))
		}

		n := normal.Normalize()
		if n.Len() < 0.5 {
			// Degenerate vertex normals — fall back to the face plane.
			e1 := mathutil.Vec3{tri[1].X - tri[0].X, tri[1].Y - tri[0].Y, tri[1].Z - tri[0].Z}
			e2 := mathutil.Vec3{tri[2].X - tri[0].X, tri[2].Y - tri[0].Y, tri[2].Z - tri[0].Z}
			n = e1.Cross(e2).Normalize()
		}
		shade := lc.ComputeShade(n)

		RasterizeTriangle(fb, tri, tex, defR, defG, defB, defA, shade, &lc)
	}

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	copy(img.Pix, fb.Color)
	return img
}

func averageColor(tex *image.NRGBA) (uint8, uint8, uint8, uint8) {
	b := tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 160, 160, 170, 255
	}

	var sumR, sumG, sumB float64
	stride := tex.Stride
	for y := 0; y < h; y++ {
		off := y * stride
		for x := 0; x < w; x++ {
			i := off + x*4
			sumR += float64(tex.Pix[i])
			sumG += float64(tex.Pix[i+1])
			sumB += float64(tex.Pix[i+2])
		}
	}
	n := float64(w * h)
	return uint8(sumR/n + 0.5), uint8(sumG/n + 0.5), uint8(sumB/n + 0.5), 255
}
