package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"custintel/internal/artifact"
	"custintel/internal/common/fsutil"
	"custintel/pkg/types"
)

// LoadDir lists the *.json artifact files in dir, sorted by name.
// ID is the file name and Path the absolute file path. Domain is set for the
// file names a resolver reads and left empty for anything else.
func LoadDir(dir string) ([]types.ArtifactFile, error) {
	abs, err := fsutil.AbsDir(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	files := []types.ArtifactFile{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".json") {
			continue
		}
		f := types.ArtifactFile{ID: name, Path: filepath.Join(abs, name)}
		if info, err := e.Info(); err == nil {
			f.SizeBytes = info.Size()
		}
		if d, ok := artifact.DomainForFile(name); ok {
			f.Domain = string(d)
		}
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
	return files, nil
}
