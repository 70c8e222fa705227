package images

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecocart.dev/ecocart/api/pkg/logger"
)

// 1x1 transparent PNG.
var pngPixel, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	s.now = func() time.Time { return time.UnixMilli(1718000000000) }
	return s
}

func TestDataURI(t *testing.T) {
	t.Run("declared type is kept", func(t *testing.T) {
		uri := DataURI("image/jpeg", []byte("abc"))
		assert.Equal(t, "data:image/jpeg;base64,YWJj", uri)
	})

	t.Run("generic type is sniffed", func(t *testing.T) {
		uri := DataURI("application/octet-stream", pngPixel)
		assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"), uri)
	})

	t.Run("parameters are dropped", func(t *testing.T) {
		uri := DataURI("image/svg+xml; charset=utf-8", []byte("<svg/>"))
		assert.True(t, strings.HasPrefix(uri, "data:image/svg+xml;base64,"), uri)
	})
}

func TestStoreSaveAndRemove(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Save(DirComments, &Upload{Field: "image", Filename: "Photo.PNG", Content: bytes.NewReader(pngPixel)})
	require.NoError(t, err)
	assert.Equal(t, "/images/comments/1718000000000-image.png", ref)

	stored, err := os.ReadFile(filepath.Join(s.Root(), DirComments, "1718000000000-image.png"))
	require.NoError(t, err)
	assert.Equal(t, pngPixel, stored)

	require.NoError(t, s.Remove(ref))
	_, err = os.Stat(filepath.Join(s.Root(), DirComments, "1718000000000-image.png"))
	assert.True(t, os.IsNotExist(err))

	// already gone
	assert.NoError(t, s.Remove(ref))
}

func TestStoreSaveSameMillisecond(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Save(DirComments, &Upload{Field: "image", Filename: "a.png", Content: bytes.NewReader(pngPixel)})
	require.NoError(t, err)
	second, err := s.Save(DirComments, &Upload{Field: "image", Filename: "b.png", Content: bytes.NewReader(pngPixel)})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "/images/comments/1718000000001-image.png", second)
}

func TestStoreSaveRequiresImage(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save(DirProfiles, &Upload{Field: "profileImage", Filename: "notes.txt", Content: strings.NewReader("hello there")})
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = s.Save(DirProfiles, &Upload{Field: "profileImage", Filename: "empty.png", Content: bytes.NewReader(nil)})
	assert.ErrorIs(t, err, ErrEmptyImage)

	ref, err := s.Save(DirProfiles, &Upload{Field: "profileImage", Filename: "me.png", Content: bytes.NewReader(pngPixel)})
	require.NoError(t, err)
	assert.Equal(t, "/images/profiles/1718000000000-profileImage.png", ref)
}

func TestStoreSaveRejectsMarkupUploads(t *testing.T) {
	s := newTestStore(t)

	uploads := map[string]string{
		"x.html":  "<!DOCTYPE html><html><script>alert(1)</script></html>",
		"x.svg":   `<svg xmlns="http://www.w3.org/2000/svg" onload="alert(1)"/>`,
		"pic.png": "<html><body>not a picture</body></html>",
	}
	for name, body := range uploads {
		_, err := s.Save(DirComments, &Upload{Field: "image", Filename: name, Content: strings.NewReader(body)})
		assert.ErrorIs(t, err, ErrNotImage, name)
	}

	entries, err := os.ReadDir(filepath.Join(s.Root(), DirComments))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStoreSaveExtensionFollowsContent(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Save(DirComments, &Upload{Field: "image", Filename: "payload.html", Content: bytes.NewReader(pngPixel)})
	require.NoError(t, err)
	assert.Equal(t, "/images/comments/1718000000000-image.png", ref)
}

func TestImageExt(t *testing.T) {
	ext, ok := ImageExt(pngPixel)
	assert.True(t, ok)
	assert.Equal(t, ".png", ext)

	_, ok = ImageExt([]byte("plain text"))
	assert.False(t, ok)
}

func TestStoreRemoveRejectsForeignRefs(t *testing.T) {
	s := newTestStore(t)

	assert.ErrorIs(t, s.Remove("/etc/passwd"), ErrBadRef)
	assert.ErrorIs(t, s.Remove("/images/"), ErrBadRef)
	assert.ErrorIs(t, s.Remove("/images/comments/.."), ErrBadRef)
}

type recordingRemover struct {
	mu      sync.Mutex
	removed []string
}

func (r *recordingRemover) Remove(ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, ref)
	return nil
}

func TestCleanerDrainsOnClose(t *testing.T) {
	rec := &recordingRemover{}
	c := NewCleaner(rec, logger.Discard(), 1)

	refs := []string{"/images/comments/1.png", "/images/comments/2.png", "/images/comments/3.png", ""}
	for _, ref := range refs {
		c.Enqueue(ref)
	}
	c.Close()

	assert.ElementsMatch(t, refs[:3], rec.removed)

	// after close work still happens, inline
	c.Enqueue("/images/comments/4.png")
	assert.Contains(t, rec.removed, "/images/comments/4.png")
	c.Close()
}

func TestCleanerWithStoreIgnoresMissingFiles(t *testing.T) {
	s := newTestStore(t)
	ref, err := s.Save(DirComments, &Upload{Field: "image", Filename: "a.png", Content: bytes.NewReader(pngPixel)})
	require.NoError(t, err)

	c := NewCleaner(s, logger.Discard(), 4)
	c.Enqueue(ref)
	c.Enqueue(ref)
	c.Enqueue("/images/comments/never-existed.png")
	c.Close()

	_, err = os.Stat(filepath.Join(s.Root(), DirComments, "1718000000000-image.png"))
	assert.True(t, os.IsNotExist(err))
}
