package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"
)

// StaticStore serves the front end's static assets (stylesheet, scripts)
// from an afero filesystem, the OS directory in production and an
// in-memory one in tests.
type StaticStore struct {
	fs afero.Fs
}

// NewStaticStore creates a StaticStore over fs.
func NewStaticStore(fs afero.Fs) *StaticStore {
	return &StaticStore{fs: fs}
}

// NewOSStaticStore serves the files below dir.
func NewOSStaticStore(dir string) *StaticStore {
	return NewStaticStore(afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), dir)))
}

// NewEmbeddedStaticStore serves the files of an embedded (or any io/fs)
// filesystem.
func NewEmbeddedStaticStore(fsys fs.FS) *StaticStore {
	return NewStaticStore(afero.FromIOFS{FS: fsys})
}

// DirExists reports whether dir is a directory on the OS filesystem.
func DirExists(dir string) bool {
	ok, err := afero.DirExists(afero.NewOsFs(), dir)
	return err == nil && ok
}

// Get opens an asset for reading.
func (s *StaticStore) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.fs.OpenFile(clean(name), os.O_RDONLY, 0)
}

// Exists reports whether name is a servable file.
func (s *StaticStore) Exists(name string) bool {
	info, err := s.fs.Stat(clean(name))
	return err == nil && !info.IsDir()
}

// Handler serves the asset named by the route's wildcard. Directories are
// never listed.
func (s *StaticStore) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		name := clean(c.Param("*"))
		if name == "" {
			return echo.ErrNotFound
		}

		f, err := s.fs.Open(name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err) {
				return echo.ErrNotFound
			}
			return err
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return err
		}
		if info.IsDir() {
			return echo.ErrNotFound
		}

		c.Response().Header().Set("Cache-Control", "public, max-age=3600")
		http.ServeContent(c.Response(), c.Request(), info.Name(), info.ModTime(), f)
		return nil
	}
}

// clean resolves name against the store root and returns it unrooted, the
// form both io/fs and afero filesystems accept.
func clean(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}
