package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrBadURL = errors.New("url is not managed by this store")

// Store holds product imagery: upload yields a public URL, delete takes
// that URL back.
type Store interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// DiskStore writes files under Dir and serves them below BaseURL.
type DiskStore struct {
	Dir     string
	BaseURL string
}

var _ Store = (*DiskStore)(nil)

func (d *DiskStore) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	f, err := os.Create(filepath.Join(d.Dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return d.BaseURL + "/" + name, nil
}

func (d *DiskStore) Delete(ctx context.Context, url string) error {
	name, ok := strings.CutPrefix(url, d.BaseURL+"/")
	if !ok || name == "" || strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("%w: %s", ErrBadURL, url)
	}
	err := os.Remove(filepath.Join(d.Dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
