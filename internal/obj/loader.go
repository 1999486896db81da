package obj

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"asset-preview/internal/mtl"
)

// Load error kinds, matchable with errors.Is.
var (
	ErrMissingFile          = errors.New("obj: cannot open file")
	ErrMalformedFace        = errors.New("obj: malformed face token")
	ErrIndexOutOfRange      = errors.New("obj: face index out of range")
	ErrUnsupportedFaceArity = errors.New("obj: face is not a triangle")
)

// Load reads dir/filename as a Wavefront OBJ file and returns a flat
// triangle list ready for a vertex buffer upload.
//
// Source geometry is converted for a left-handed renderer with a
// top-left texture origin: position and normal X are negated, the V
// texture coordinate becomes 1−v, and each triangle's vertices are
// emitted in reverse order to restore front-face winding.
//
// Faces may reference only attribute entries that appeared earlier in
// the file; indices are 1-based. Only triangular faces are supported.
// Unrecognized directives are skipped.
func Load(dir, filename string) (*Model, error) {
	f, err := os.Open(dir + "/" + filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", ErrMissingFile, dir, filename, err)
	}
	defer f.Close()

	var (
		model     Model
		positions [][4]float32
		texcoords [][2]float32
		normals   [][3]float32
	)

	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			x := floatField(fields, 1)
			y := floatField(fields, 2)
			z := floatField(fields, 3)
			positions = append(positions, [4]float32{-x, y, z, 1})
		case "vt":
			u := floatField(fields, 1)
			v := floatField(fields, 2)
			texcoords = append(texcoords, [2]float32{u, 1 - v})
		case "vn":
			x := floatField(fields, 1)
			y := floatField(fields, 2)
			z := floatField(fields, 3)
			normals = append(normals, [3]float32{-x, y, z})
		case "f":
			if len(fields) != 4 {
				return nil, fmt.Errorf("%w: %d vertices at line %d", ErrUnsupportedFaceArity, len(fields)-1, line)
			}
			var tri [3]Vertex
			for i, tok := range fields[1:4] {
				v, err := resolveVertex(tok, positions, texcoords, normals)
				if err != nil {
					return nil, fmt.Errorf("%w (line %d)", err, line)
				}
				tri[i] = v
			}
			// Reversed emit flips the winding to match the X negation.
			model.Vertices = append(model.Vertices, tri[2], tri[1], tri[0])
		case "mtllib":
			if len(fields) < 2 {
				continue
			}
			mat, err := mtl.Load(dir, fields[1])
			if err != nil {
				return nil, err
			}
			model.Material = mat
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("obj: read %s/%s: %w", dir, filename, err)
	}

	return &model, nil
}

// resolveVertex turns one "pos/uv/norm" composite token into a Vertex
// by copying the referenced entries out of the attribute pools.
func resolveVertex(tok string, positions [][4]float32, texcoords [][2]float32, normals [][3]float32) (Vertex, error) {
	parts := strings.Split(tok, "/")
	if len(parts) != 3 {
		return Vertex{}, fmt.Errorf("%w: %q", ErrMalformedFace, tok)
	}

	var idx [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Vertex{}, fmt.Errorf("%w: %q", ErrMalformedFace, tok)
		}
		idx[i] = n
	}

	if idx[0] < 1 || idx[0] > len(positions) {
		return Vertex{}, fmt.Errorf("%w: position %d of %d", ErrIndexOutOfRange, idx[0], len(positions))
	}
	if idx[1] < 1 || idx[1] > len(texcoords) {
		return Vertex{}, fmt.Errorf("%w: texcoord %d of %d", ErrIndexOutOfRange, idx[1], len(texcoords))
	}
	if idx[2] < 1 || idx[2] > len(normals) {
		return Vertex{}, fmt.Errorf("%w: normal %d of %d", ErrIndexOutOfRange, idx[2], len(normals))
	}

	return Vertex{
		Position: positions[idx[0]-1],
		TexCoord: texcoords[idx[1]-1],
		Normal:   normals[idx[2]-1],
	}, nil
}

// floatField parses fields[i] as a float32. Absent or unparsable
// components read as zero.
func floatField(fields []string, i int) float32 {
	if i >= len(fields) {
		return 0
	}
	v, err := strconv.ParseFloat(fields[i], 32)
	if err != nil {
		return 0
	}
	return float32(v)
}
