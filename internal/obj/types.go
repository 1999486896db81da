package obj

import "asset-preview/internal/mtl"

// Vertex is one resolved triangle vertex. Position carries a
// homogeneous w fixed at 1 for the renderer's vertex layout.
// Attribute values are copied out of the source pools, so vertices
// shared between faces in the source are duplicated here.
type Vertex struct {
	Position [4]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// Model is the decoder output: a flat triangle list (every consecutive
// triple of Vertices is one triangle) plus the referenced material.
// Immutable after Load returns.
type Model struct {
	Vertices []Vertex
	Material mtl.Material
}

// TriangleCount returns the number of triangles in the flat list.
func (m *Model) TriangleCount() int {
	return len(m.Vertices) / 3
}
