package dev

import "path/filepath"

// CollectWatchPaths returns the document root plus extra paths, resolved
// against baseDir, cleaned and without duplicates.
func CollectWatchPaths(baseDir, root string, extra []string) []string {
	paths := append([]string{root}, extra...)

	unique := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		clean := filepath.Clean(resolvePath(baseDir, p))
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		unique = append(unique, clean)
	}
	return unique
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, p)
}
