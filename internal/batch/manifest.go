package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one model in the output manifest.
type ManifestEntry struct {
	Name      string `json:"name"`
	ModelFile string `json:"model_file"`
	Image     string `json:"image"`
}

// WriteManifest writes manifest.json to the output directory.
func WriteManifest(path string, jobs []Job) error {
	entries := make([]ManifestEntry, len(jobs))
	for i, j := range jobs {
		entries[i] = ManifestEntry{
			Name:      j.Name,
			ModelFile: j.File,
			Image:     j.Name + ".webp",
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
