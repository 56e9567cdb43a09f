// Package recording locates the video/telemetry file pair inside a
// recording folder.
package recording

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrMissingInput reports a folder without a required recording file.
	ErrMissingInput = errors.New("missing recording input")
	// ErrAmbiguousInput reports several candidates for one input role.
	ErrAmbiguousInput = errors.New("ambiguous recording input")
)

// Pair holds the resolved input files for one recording folder.
type Pair struct {
	VideoPath    string
	MetadataPath string
}

// Resolve expects exactly one video (.mp4 or .ts) and exactly one .json
// document directly inside folder. Extensions match case-insensitively.
// Subdirectories are not descended into and dotfiles are ignored; macOS
// sidecar copies would otherwise shadow the real video.
func Resolve(folder string) (Pair, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return Pair{}, fmt.Errorf("read recording folder: %w", err)
	}

	var videos, metadata []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".mp4", ".ts":
			videos = append(videos, name)
		case ".json":
			metadata = append(metadata, name)
		}
	}

	video, err := exactlyOne(folder, "video (.mp4/.ts)", videos)
	if err != nil {
		return Pair{}, err
	}
	meta, err := exactlyOne(folder, "telemetry (.json)", metadata)
	if err != nil {
		return Pair{}, err
	}
	return Pair{
		VideoPath:    filepath.Join(folder, video),
		MetadataPath: filepath.Join(folder, meta),
	}, nil
}

func exactlyOne(folder, role string, names []string) (string, error) {
	switch len(names) {
	case 0:
		return "", fmt.Errorf("%w: no %s in %s", ErrMissingInput, role, folder)
	case 1:
		return names[0], nil
	default:
		return "", fmt.Errorf("%w: %d %s candidates in %s (%s)",
			ErrAmbiguousInput, len(names), role, folder, strings.Join(names, ", "))
	}
}
