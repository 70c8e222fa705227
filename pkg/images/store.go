package images

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	DirComments = "comments"
	DirProfiles = "profiles"

	// URLPrefix is where the router mounts the images directory.
	URLPrefix = "/images/"
)

var (
	ErrNotImage   = errors.New("uploaded file is not an image")
	ErrBadRef     = errors.New("image reference is outside the images directory")
	ErrEmptyImage = errors.New("uploaded file is empty")
)

// Upload is an uploaded file handed from the HTTP layer to a service.
type Upload struct {
	Field    string
	Filename string
	Size     int64
	Content  io.Reader
}

// Store keeps uploaded review and profile images on disk and addresses them
// by their public URL path.
type Store struct {
	root string
	now  func() time.Time
}

func NewStore(root string) (*Store, error) {
	for _, dir := range []string{DirComments, DirProfiles} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create images dir %s: %w", dir, err)
		}
	}
	return &Store{root: root, now: time.Now}, nil
}

func (s *Store) Root() string { return s.root }

// Save writes the upload to <root>/<dir>/<unixMillis>-<field><ext> and
// returns its reference, e.g. /images/comments/1718000000000-image.png.
// The content is sniffed: anything but a raster image is rejected, and ext
// follows the detected type, never the client's file name.
func (s *Store) Save(dir string, up *Upload) (string, error) {
	content := bufio.NewReaderSize(up.Content, 512)
	head, err := content.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(head) == 0 {
		return "", ErrEmptyImage
	}
	ext, ok := ImageExt(head)
	if !ok {
		return "", ErrNotImage
	}

	f, name, err := s.create(dir, up.Field, ext)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(filepath.Join(s.root, dir, name))
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(filepath.Join(s.root, dir, name))
		return "", fmt.Errorf("close upload: %w", err)
	}

	return URLPrefix + dir + "/" + url.PathEscape(name), nil
}

// create opens a new file exclusively, stepping the timestamp forward when
// two uploads land in the same millisecond.
func (s *Store) create(dir, field, ext string) (*os.File, string, error) {
	ts := s.now().UnixMilli()
	for attempt := 0; attempt < 100; attempt++ {
		name := fmt.Sprintf("%d-%s%s", ts+int64(attempt), field, ext)
		f, err := os.OpenFile(filepath.Join(s.root, dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, name, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("create upload file: %w", err)
		}
	}
	return nil, "", fmt.Errorf("create upload file: no free name in %s", dir)
}

// Remove deletes the file behind a reference. A file that is already gone is
// not an error.
func (s *Store) Remove(ref string) error {
	p, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) resolve(ref string) (string, error) {
	rel, ok := strings.CutPrefix(ref, URLPrefix)
	if !ok {
		return "", ErrBadRef
	}
	unescaped, err := url.PathUnescape(rel)
	if err != nil {
		return "", ErrBadRef
	}
	clean := path.Clean("/" + unescaped)[1:]
	if clean == "" || clean == "." || strings.HasPrefix(clean, "..") {
		return "", ErrBadRef
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}
