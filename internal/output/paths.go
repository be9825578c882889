package output

import (
	"path/filepath"
	"strings"
)

// EnsureExtension appends ext to path unless path already ends with it
// (case-insensitive).
func EnsureExtension(path, ext string) string {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	return path + ext
}

// TopicFilename derives the batch file name for a topic:
// "referat_" + topic with spaces replaced by underscores + ext.
// Path separators are replaced too so the file stays in the output directory.
func TopicFilename(topic, ext string) string {
	name := strings.TrimSpace(topic)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	return EnsureExtension("referat_"+name, ext)
}
