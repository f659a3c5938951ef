package main

import (
	"fmt"
	"sort"

	"github.com/rowjay/bell-schedule/internal/compress"
	"github.com/rowjay/bell-schedule/internal/version"
)

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func compressionFromPath(path string) string {
	return compress.FromPath(path)
}

func versionString() string {
	return fmt.Sprintf("bells %s (commit %s, built %s)", version.Version, version.Commit, version.Date)
}
