package logging

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// rotate removes the oldest log files in dir when the number of files exceeds maxFiles.
// Only files named FilePrefix*.log are considered.
func rotate(dir string, maxFiles int) error {
	if maxFiles <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var logFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, FilePrefix) && strings.HasSuffix(name, ".log") {
			logFiles = append(logFiles, filepath.Join(dir, name))
		}
	}
	if len(logFiles) <= maxFiles {
		return nil
	}
	modTime := make(map[string]int64, len(logFiles))
	for _, path := range logFiles {
		if info, err := os.Stat(path); err == nil {
			modTime[path] = info.ModTime().UnixNano()
		}
	}
	// Oldest first; names break ties since they embed the start time.
	sort.Slice(logFiles, func(i, j int) bool {
		a, b := modTime[logFiles[i]], modTime[logFiles[j]]
		if a != b {
			return a < b
		}
		return logFiles[i] < logFiles[j]
	})
	for _, path := range logFiles[:len(logFiles)-maxFiles] {
		_ = os.Remove(path)
	}
	return nil
}
