package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
)

// audioExtensions maps the extensions exposed as tracks to their MIME type.
var audioExtensions = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
	".aac":  "audio/aac",
}

// IsAudio reports whether name carries a supported audio extension.
// The match is case-insensitive.
func IsAudio(name string) bool {
	_, ok := audioExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// ContentType returns the MIME type for an audio file name, or "" when the
// extension is not supported.
func ContentType(name string) string {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}

// Scanner lists playlists below a media root. It keeps no state besides the
// root: every call reads the filesystem again.
type Scanner struct {
	root string
}

// NewScanner creates a scanner over root.
func NewScanner(root string) *Scanner {
	return &Scanner{root: root}
}

// Root returns the media root directory.
func (s *Scanner) Root() string {
	return s.root
}

// Playlists is ListPlaylists on the scanner root.
func (s *Scanner) Playlists() ([]domain.Playlist, error) {
	return ListPlaylists(s.root)
}

// Resolve is ResolveTrack on the scanner root.
func (s *Scanner) Resolve(rel string) (string, error) {
	return ResolveTrack(s.root, rel)
}

// ListPlaylists returns one playlist per immediate subdirectory of root, each
// holding the audio files found directly inside it. A missing root is created
// and yields no playlists. Playlists and songs are sorted by name.
func ListPlaylists(root string) ([]domain.Playlist, error) {
	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create media root: %v", domain.ErrStorage, err)
		}
		return []domain.Playlist{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read media root: %v", domain.ErrStorage, err)
	}

	playlists := make([]domain.Playlist, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		songs, err := listTracks(filepath.Join(root, entry.Name()), entry.Name())
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, domain.Playlist{
			Name:  entry.Name(),
			Songs: songs,
		})
	}
	return playlists, nil
}

func listTracks(dir, playlist string) ([]domain.Track, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read playlist %s: %v", domain.ErrStorage, playlist, err)
	}

	tracks := make([]domain.Track, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsAudio(entry.Name()) {
			continue
		}
		name := entry.Name()
		tracks = append(tracks, domain.Track{
			Title:        strings.TrimSuffix(name, filepath.Ext(name)),
			Filename:     name,
			RelativePath: playlist + "/" + name,
		})
	}
	return tracks, nil
}

// ResolveTrack maps a relative track path to a regular file inside root.
// Anything that escapes root (including through symlinks), does not exist,
// or is a directory is reported as domain.ErrNotFound.
func ResolveTrack(root, rel string) (string, error) {
	notFound := fmt.Errorf("%w: track %q", domain.ErrNotFound, rel)

	if rel == "" || strings.ContainsRune(rel, 0) {
		return "", notFound
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", notFound
	}

	candidate := filepath.Join(absRoot, filepath.FromSlash(rel))
	if !within(absRoot, candidate) {
		return "", notFound
	}

	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", notFound
	}
	realPath, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return "", notFound
	}
	if !within(realRoot, realPath) {
		return "", notFound
	}

	info, err := os.Stat(realPath)
	if err != nil || !info.Mode().IsRegular() {
		return "", notFound
	}
	return realPath, nil
}

// within reports whether path is root or lies below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
