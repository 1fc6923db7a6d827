// Package source hands out read-only byte regions of disc images and writes
// edited images back out.
package source

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jchantrell/discedit/internal/binrw"
)

// Image is an open image file. Its bytes are memory mapped where the platform
// supports it, so opening a large image costs nothing until regions of it are
// read.
type Image struct {
	path   string
	f      *os.File
	data   []byte
	mapped bool
}

// Open opens path read-only
func Open(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat image: %w", err)
	}
	if info.Size() > maxSize {
		f.Close()
		return nil, fmt.Errorf("image %s is %d bytes, larger than the supported %d", path, info.Size(), int64(maxSize))
	}

	img := &Image{path: path, f: f}
	if info.Size() > 0 {
		img.data, img.mapped, err = mapFile(f, int(info.Size()))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("mapping image: %w", err)
		}
	}
	slog.Debug("Opened image", "path", path, "size", info.Size(), "mapped", img.mapped)
	return img, nil
}

// Path returns the path the image was opened from
func (img *Image) Path() string {
	return img.path
}

// Len returns the image size in bytes
func (img *Image) Len() int64 {
	return int64(len(img.data))
}

// Bytes returns the whole image. The slice must not be modified and is
// invalid after Close.
func (img *Image) Bytes() []byte {
	return img.data
}

// Reader returns a Reader over the whole image
func (img *Image) Reader() binrw.Reader {
	return binrw.NewReader(img.data)
}

// Region returns a Reader over n bytes starting at off. A negative n extends
// the region to the end of the image.
func (img *Image) Region(off, n int64) (binrw.Reader, error) {
	r := img.Reader()
	if err := r.Advance(int(off)); err != nil {
		return binrw.Reader{}, fmt.Errorf("region offset %d: %w", off, err)
	}
	if n < 0 {
		return r, nil
	}
	if err := r.Truncate(int(n)); err != nil {
		return binrw.Reader{}, fmt.Errorf("region length %d at %d: %w", n, off, err)
	}
	return r, nil
}

// Section returns a streaming handle over n bytes starting at off, read
// through the file rather than the mapping
func (img *Image) Section(off, n int64) (binrw.SectionWithRead, error) {
	if off < 0 || n < 0 || off > img.Len() || n > img.Len()-off {
		return binrw.SectionWithRead{}, &binrw.BoundsError{Op: "section", Want: int(off + n), Have: len(img.data)}
	}
	return binrw.SectionWithRead{R: img.f, Off: off, N: n}, nil
}

// Close unmaps and closes the image
func (img *Image) Close() error {
	var err error
	if img.data != nil {
		err = unmapFile(img.data, img.mapped)
		img.data = nil
	}
	if cerr := img.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Save writes the given parts to path in order. The output goes to a
// temporary file in the same directory that replaces path only once fully
// written, so path may be the image the parts were read from.
func Save(path string, parts ...binrw.Writable) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("creating directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	var total int64
	for i, p := range parts {
		n, err := binrw.WriteChecked(tmp, p)
		total += n
		if err != nil {
			tmp.Close()
			return total, fmt.Errorf("writing part %d: %w", i, err)
		}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return total, fmt.Errorf("syncing output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return total, fmt.Errorf("closing output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return total, fmt.Errorf("replacing %s: %w", path, err)
	}
	slog.Debug("Saved image", "path", path, "size", total)
	return total, nil
}
