// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"runtime"
	"sync"

	"github.com/pierrec/lz4"
)

// NewBuilder creates a new Builder. Do not fill the Index in
// the header, it will be overwritten anyway.
func NewBuilder(header Header) (*Builder, error) {
	temp, err := ioutil.TempDir("", "karBuilder")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTempFail, err)
	}
	builder := &Builder{
		tempDir: temp,
		header:  header,
		names:   make(map[string]struct{}),
	}
	runtime.SetFinalizer(builder, func(builder *Builder) {
		os.RemoveAll(builder.tempDir)
	})
	return builder, nil
}

type tempFile struct {
	// Name is the name of the entry in the archive
	Name string

	// TempPath is where the compressed data waits for WriteTo
	TempPath string

	Size       int64
	Compressed int64
}

// Builder is the high level builder for the archive format.
// Archives are versioned and cannot be appended to, Builder
// is the way to create an archive. Every Add compresses into a
// temporary directory, WriteTo then bundles the files together.
type Builder struct {
	tempDir string
	header  Header

	mutex sync.Mutex
	names map[string]struct{}
	files []tempFile
}

// Add compresses everything read from r into the builder under name.
// Blocks until lz4 finishes compression. Is safe to use concurrently
// in different goroutines.
func (b *Builder) Add(name string, r io.Reader) error {
	b.mutex.Lock()
	if _, ok := b.names[name]; ok {
		b.mutex.Unlock()
		return fmt.Errorf("%s: %w", name, ErrDuplicate)
	}
	b.names[name] = struct{}{}
	b.mutex.Unlock()

	entry, err := b.compress(name, r)
	if err != nil {
		b.mutex.Lock()
		delete(b.names, name)
		b.mutex.Unlock()
		return err
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.files = append(b.files, entry)
	return nil
}

func (b *Builder) compress(name string, r io.Reader) (tempFile, error) {
	f, err := ioutil.TempFile(b.tempDir, "entry")
	if err != nil {
		return tempFile{}, fmt.Errorf("%w: %v", ErrTempFail, err)
	}
	defer f.Close()

	writer := lz4.NewWriter(f)
	written, err := io.Copy(writer, r)
	if err != nil {
		return tempFile{}, err
	}
	if err := writer.Close(); err != nil {
		return tempFile{}, err
	}
	info, err := f.Stat()
	if err != nil {
		return tempFile{}, fmt.Errorf("%w: %v", ErrTempFail, err)
	}
	return tempFile{
		Name:       name,
		TempPath:   f.Name(),
		Size:       written,
		Compressed: info.Size(),
	}, nil
}

// Len returns the number of entries added so far.
func (b *Builder) Len() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return len(b.files)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteTo bundles and writes all of the files added to the Builder
// into a kar archive that is ready to use. The Builder can be written
// out more than once.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	header := b.header
	header.Index = make([]IndexEntry, 0, len(b.files))
	var offset int64
	for _, v := range b.files {
		header.Index = append(header.Index, IndexEntry{
			Name:           v.Name,
			Offset:         offset,
			Size:           v.Size,
			CompressedSize: v.Compressed,
		})
		offset += v.Compressed
	}

	rawHeader, err := gobEncode(header)
	if err != nil {
		return 0, err
	}

	cw := &countingWriter{w: w}
	if _, err := cw.Write(magic[:]); err != nil {
		return cw.n, err
	}
	if _, err := cw.Write(int64ToBinary(int64(len(rawHeader)))); err != nil {
		return cw.n, err
	}
	if _, err := cw.Write(rawHeader); err != nil {
		return cw.n, err
	}

	for _, v := range b.files {
		if err := copyFile(cw, v.TempPath); err != nil {
			return cw.n, err
		}
	}
	return cw.n, nil
}

func copyFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTempFail, err)
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// Close removes the temporary files of the builder.
func (b *Builder) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.files = nil
	b.names = make(map[string]struct{})
	runtime.SetFinalizer(b, nil)
	return os.RemoveAll(b.tempDir)
}
