// Package mtl decodes Wavefront material library files. Only the
// diffuse texture reference (map_Kd) is extracted; every other
// directive is ignored.
package mtl

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrMissingFile reports an unopenable material library.
var ErrMissingFile = errors.New("mtl: cannot open file")

// Material holds the resolved diffuse texture path for a mesh.
// TexturePath is empty when the library declares no map_Kd.
type Material struct {
	TexturePath string
}

// Load scans dir/filename for a map_Kd directive and returns the
// directory-joined texture path. The first map_Kd wins; later ones are
// ignored. A library without one yields an empty Material, not an error.
func Load(dir, filename string) (Material, error) {
	f, err := os.Open(dir + "/" + filename)
	if err != nil {
		return Material{}, fmt.Errorf("%w: %s/%s: %v", ErrMissingFile, dir, filename, err)
	}
	defer f.Close()

	var mat Material
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || fields[0] != "map_Kd" {
			continue
		}
		if mat.TexturePath == "" {
			// Joined with "/" to match the mesh-relative path
			// convention; not OS-normalized.
			mat.TexturePath = dir + "/" + fields[1]
		}
	}
	if err := sc.Err(); err != nil {
		return Material{}, fmt.Errorf("mtl: read %s/%s: %w", dir, filename, err)
	}
	return mat, nil
}
