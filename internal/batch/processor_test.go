package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"asset-preview/internal/raster"
	"asset-preview/internal/texture"

	"github.com/stretchr/testify/require"
)

const planeOBJ = `mtllib plane.mtl
v -1 0 -1
v 1 0 -1
v 1 0 1
v -1 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 1 0
f 1/1/1 2/2/1 3/3/1
f 1/1/1 3/3/1 4/4/1
`

func writeModelTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	sub := filepath.Join(dir, "plane")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "plane.obj"), []byte(planeOBJ), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "plane.mtl"), []byte("newmtl surface\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.obj"), []byte("f 1/1/1 1/1/1 1/1/1\n"), 0644))
	return dir
}

func TestFindModels(t *testing.T) {
	dir := writeModelTree(t)

	jobs, err := FindModels(dir)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	names := []string{jobs[0].Name, jobs[1].Name}
	require.Contains(t, names, "plane")
	require.Contains(t, names, "broken")
}

func TestRunRendersAndReportsFailures(t *testing.T) {
	modelDir := writeModelTree(t)
	outDir := t.TempDir()

	jobs, err := FindModels(modelDir)
	require.NoError(t, err)

	results := Run(Config{
		ModelDir:    modelDir,
		OutputDir:   outDir,
		TexResolver: texture.NewCache(),
		Camera:      raster.DefaultCamera(),
		RenderSize:  32,
		Supersample: 1,
		Workers:     2,
	}, jobs)

	require.Len(t, results, len(jobs))

	byName := map[string]Result{}
	for _, r := range results {
		byName[r.Name] = r
	}

	require.True(t, byName["plane"].Success)
	require.FileExists(t, filepath.Join(outDir, "plane.webp"))

	// The broken model references attributes that never appear.
	require.False(t, byName["broken"].Success)
	require.NotEmpty(t, byName["broken"].Error)
	require.NoFileExists(t, filepath.Join(outDir, "broken.webp"))
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	jobs := []Job{{Name: "plane", File: "plane/plane.obj"}}

	require.NoError(t, WriteManifest(path, jobs))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []ManifestEntry
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "plane.webp", entries[0].Image)
}
