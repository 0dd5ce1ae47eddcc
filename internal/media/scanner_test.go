package media

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/homedeck/internal/domain"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
}

func TestListPlaylistsFiltersAudioCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Rock", "a.mp3"))
	touch(t, filepath.Join(root, "Rock", "b.txt"))
	touch(t, filepath.Join(root, "Rock", "c.FLAC"))

	playlists, err := ListPlaylists(root)
	require.NoError(t, err)
	require.Len(t, playlists, 1)

	rock := playlists[0]
	assert.Equal(t, "Rock", rock.Name)
	require.Len(t, rock.Songs, 2)
	assert.Equal(t, "a", rock.Songs[0].Title)
	assert.Equal(t, "a.mp3", rock.Songs[0].Filename)
	assert.Equal(t, "Rock/a.mp3", rock.Songs[0].RelativePath)
	assert.Equal(t, "c", rock.Songs[1].Title)
	assert.Equal(t, "Rock/c.FLAC", rock.Songs[1].RelativePath)
	assert.Zero(t, rock.Songs[1].Duration)
}

func TestListPlaylistsStripsRealExtension(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"one.m4a", "two.flac", "three.ogg", "four.wav", "five.aac"} {
		touch(t, filepath.Join(root, "Mix", name))
	}

	playlists, err := ListPlaylists(root)
	require.NoError(t, err)
	require.Len(t, playlists, 1)

	titles := make([]string, 0, len(playlists[0].Songs))
	for _, s := range playlists[0].Songs {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"five", "four", "one", "three", "two"}, titles)
}

func TestListPlaylistsIsSortedAndNonRecursive(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Zen", "z.mp3"))
	touch(t, filepath.Join(root, "Ambient", "deep", "nested.mp3"))
	touch(t, filepath.Join(root, "Ambient", "top.mp3"))
	touch(t, filepath.Join(root, "loose.mp3"))

	playlists, err := ListPlaylists(root)
	require.NoError(t, err)
	require.Len(t, playlists, 2)

	assert.Equal(t, "Ambient", playlists[0].Name)
	require.Len(t, playlists[0].Songs, 1)
	assert.Equal(t, "top", playlists[0].Songs[0].Title)
	assert.Equal(t, "Zen", playlists[1].Name)
}

func TestListPlaylistsCreatesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "music")

	playlists, err := ListPlaylists(root)
	require.NoError(t, err)
	assert.NotNil(t, playlists)
	assert.Empty(t, playlists)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListPlaylistsEmptyDirectoryHasNoSongs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "Empty"), 0o755))

	playlists, err := ListPlaylists(root)
	require.NoError(t, err)
	require.Len(t, playlists, 1)
	assert.NotNil(t, playlists[0].Songs)
	assert.Empty(t, playlists[0].Songs)
}

func TestResolveTrack(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Rock", "a.mp3"))
	require.NoError(t, os.Mkdir(filepath.Join(root, "Jazz"), 0o755))

	outside := filepath.Join(t.TempDir(), "secret.mp3")
	touch(t, outside)

	tests := []struct {
		name    string
		rel     string
		wantErr bool
	}{
		{"existing track", "Rock/a.mp3", false},
		{"missing track", "Rock/missing.mp3", true},
		{"parent traversal", "../../etc/passwd", true},
		{"traversal inside path", "Rock/../../secret.mp3", true},
		{"absolute path", outside, true},
		{"directory", "Jazz", true},
		{"root itself", ".", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := ResolveTrack(root, tt.rel)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrNotFound))
				assert.Empty(t, path)
				return
			}
			require.NoError(t, err)
			realRoot, err := filepath.EvalSymlinks(root)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(realRoot, "Rock", "a.mp3"), path)
		})
	}
}

func TestResolveTrackRejectsSymlinkEscape(t *testing.T) {
	root := t.TempDir()
	outsideDir := t.TempDir()
	touch(t, filepath.Join(outsideDir, "leak.mp3"))

	if err := os.Symlink(outsideDir, filepath.Join(root, "Linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	_, err := ResolveTrack(root, "Linked/leak.mp3")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIsAudio(t *testing.T) {
	assert.True(t, IsAudio("song.MP3"))
	assert.True(t, IsAudio("song.Ogg"))
	assert.False(t, IsAudio("cover.jpg"))
	assert.False(t, IsAudio("mp3"))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "audio/flac", ContentType("Rock/c.FLAC"))
	assert.Equal(t, "audio/mpeg", ContentType("a.mp3"))
	assert.Equal(t, "", ContentType("b.txt"))
}
