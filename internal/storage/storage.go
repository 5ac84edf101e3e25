// Package storage is the blob-store collaborator: save bytes under a path,
// get back a locator, resolve the locator to a retrievable URL.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Storage interface {
	Save(path string, content io.Reader) (string, error)
	URL(locator string) string
}

// Disk stores blobs under a root directory; locators are paths relative to
// the root, served under baseURL + "/files/".
type Disk struct {
	root    string
	baseURL string
}

func NewDisk(root, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Disk{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (d *Disk) Save(path string, content io.Reader) (string, error) {
	clean := filepath.Clean("/" + path)
	full := filepath.Join(d.root, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, content); err != nil {
		return "", err
	}
	return strings.TrimPrefix(clean, "/"), nil
}

func (d *Disk) URL(locator string) string {
	return d.baseURL + "/files/" + locator
}

// Root is the directory served for download.
func (d *Disk) Root() string { return d.root }
