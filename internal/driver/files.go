package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var sourceExts = map[string]bool{".js": true, ".mjs": true}

// IsSource reports whether path looks like a JavaScript source file.
func IsSource(path string) bool {
	return sourceExts[strings.ToLower(filepath.Ext(path))]
}

// skipDir: зависимости и скрытые каталоги (.git, .cache) не проверяем.
func skipDir(name string) bool {
	return name == "node_modules" || (len(name) > 1 && strings.HasPrefix(name, "."))
}

// ListSources returns the sorted, de-duplicated source files under roots.
// A root naming a file is taken as is, whatever its extension.
func ListSources(roots []string, filter *SourceFilter) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if seen[path] || filter.Excluded(path) {
			return
		}
		seen[path] = true
		files = append(files, path)
	}
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if IsSource(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// baseDirFor выбирает каталог, относительно которого печатаются пути.
func baseDirFor(roots []string) string {
	if len(roots) == 1 {
		if info, err := os.Stat(roots[0]); err == nil && info.IsDir() {
			return roots[0]
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
