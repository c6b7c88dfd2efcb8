// Package platform provides filesystem helpers for the Speechlab tools:
// input media validation, output directory resolution, and deterministic
// output file naming.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultDirPermissions is applied when creating output directories.
const DefaultDirPermissions = 0755

// truncatedIDLength is the number of leading characters kept from an
// identifying string when full-identifier naming is not requested.
const truncatedIDLength = 5

// mediaContentTypes is the fixed allow-list of recognized media file
// extensions and their MIME types. Files outside this list are rejected
// before any network call.
var mediaContentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
}

// IsMediaFile reports whether the path has a recognized media extension.
func IsMediaFile(path string) bool {
	_, ok := mediaContentTypes[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ContentTypeFor returns the MIME type for the path's extension, or
// "application/octet-stream" if the extension is not in the allow-list.
func ContentTypeFor(path string) string {
	if ct, ok := mediaContentTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ValidationError reports a rejected input path or output directory.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Path)
}

// ResolveInputFile validates a media file path for upload.
//
// Relative paths are resolved against basePath; when basePath is empty
// the path must be absolute. The file must exist, be a regular file, and
// carry a recognized media extension.
func ResolveInputFile(path, basePath string) (string, error) {
	if path == "" {
		return "", &ValidationError{Path: path, Message: "file path is required"}
	}
	if !filepath.IsAbs(path) {
		if basePath == "" {
			return "", &ValidationError{Path: path, Message: "file path must be absolute if no base path is configured"}
		}
		path = filepath.Join(expandHome(basePath), path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", &ValidationError{Path: path, Message: "file does not exist"}
	}
	if info.IsDir() {
		return "", &ValidationError{Path: path, Message: "path is not a file"}
	}
	if !IsMediaFile(path) {
		return "", &ValidationError{Path: path, Message: "file is not a recognized media file"}
	}
	return path, nil
}

// ResolveOutputDir resolves and prepares the directory downloaded files
// are written to.
//
// An empty outputDir resolves to the user's Desktop folder. Relative
// paths are joined to basePath when one is configured. The directory is
// created if absent and probed for writability; an unwritable directory
// fails fast before any download happens.
func ResolveOutputDir(outputDir, basePath string) (string, error) {
	var resolved string
	switch {
	case outputDir == "":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		resolved = filepath.Join(home, "Desktop")
	case !filepath.IsAbs(outputDir) && basePath != "":
		resolved = filepath.Join(expandHome(basePath), outputDir)
	default:
		resolved = expandHome(outputDir)
	}

	if err := os.MkdirAll(resolved, DefaultDirPermissions); err != nil {
		return "", &ValidationError{Path: resolved, Message: "directory is not writeable"}
	}
	if err := probeWriteable(resolved); err != nil {
		return "", &ValidationError{Path: resolved, Message: "directory is not writeable"}
	}
	return resolved, nil
}

// probeWriteable verifies the directory accepts new files by creating and
// removing a temporary file.
func probeWriteable(dir string) error {
	f, err := os.CreateTemp(dir, ".speechlab-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// OutputFileName builds a deterministic output file name of the form
// <tool>_<id>_<timestamp>.<extension>.
//
// The id is the first five characters of text unless fullID is set, in
// which case the whole text is used. Spaces are replaced with
// underscores either way.
func OutputFileName(tool, text, extension string, fullID bool) string {
	id := text
	if !fullID && len(id) > truncatedIDLength {
		id = id[:truncatedIDLength]
	}
	id = strings.ReplaceAll(id, " ", "_")
	stamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s.%s", tool, id, stamp, extension)
}

// expandHome expands a leading "~" to the user's home directory. Paths
// without the prefix are returned unchanged.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
