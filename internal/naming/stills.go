package naming

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListStills returns the *.jpg files directly inside dir, sorted by
// filename. Frame order is recovered purely from the zero-padded names, so
// past 10,000 frames (five-digit indices) lexical order stops matching
// numeric order.
func ListStills(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".jpg") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
