// Package worldcontent downloads and reads the manifest content Bungie
// publishes next to the platform: the sqlite world database and the per
// entity type JSON component files.
package worldcontent

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/lieuweberg/bungie-go"
	"github.com/lieuweberg/bungie-go/logger"
	"github.com/pkg/errors"
)

// ErrNoContent is returned when the manifest lists nothing for a locale.
var ErrNoContent = errors.New("manifest lists no content")

// Download fetches the world database the manifest lists for locale, unzips
// it into dir and returns the path of the database file. An existing file of
// the same name is replaced.
func Download(ctx context.Context, c *bungie.Client, m *bungie.Manifest, locale, dir string) (string, error) {
	spam := c.Spamless()

	contentPath, ok := m.WorldContentPath(locale)
	if !ok {
		return "", errors.Wrapf(ErrNoContent, "world database for locale %q", locale)
	}

	spam.InfoIfNoSpam(logger.OriginWorldContent, "Downloading world content database", "locale", locale, "version", m.Version)
	dbPath, err := download(ctx, c, contentPath, dir)
	if err != nil {
		spam.ErrorIfNoSpam(logger.OriginWorldContent, "Couldn't download the world content database", "locale", locale, "error", err)
		return "", err
	}
	spam.Resolve(logger.OriginWorldContent)
	spam.InfoIfNoSpam(logger.OriginWorldContent, "World content database downloaded and unzipped", "path", dbPath)

	return dbPath, nil
}

func download(ctx context.Context, c *bungie.Client, contentPath, dir string) (string, error) {
	body, err := c.Download(ctx, contentPath)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "worldcontent-*.zip")
	if err != nil {
		body.Close()
		return "", errors.Wrap(err, "creating temporary archive")
	}
	defer os.Remove(tmp.Name())

	_, err = io.Copy(tmp, body)
	body.Close()
	if err != nil {
		tmp.Close()
		return "", errors.Wrap(err, "writing temporary archive")
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrap(err, "writing temporary archive")
	}

	z, err := zip.OpenReader(tmp.Name())
	if err != nil {
		return "", errors.Wrap(err, "opening world content archive")
	}
	defer z.Close()

	if len(z.File) != 1 {
		return "", errors.Errorf("world content archive holds %d files, expected exactly one", len(z.File))
	}
	f := z.File[0]

	// Entry names are not trusted to stay inside dir.
	name := filepath.Base(filepath.Clean("/" + f.Name))
	if name == "/" || name == "." {
		return "", errors.Errorf("world content archive entry has no usable name: %q", f.Name)
	}
	dst := filepath.Join(dir, name)
	if err := extract(f, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func extract(f *zip.File, dst string) error {
	src, err := f.Open()
	if err != nil {
		return errors.Wrapf(err, "opening %s in archive", f.Name)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "creating world content database")
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return errors.Wrap(err, "writing world content database")
	}
	return errors.Wrap(out.Close(), "writing world content database")
}
