// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4"
)

// maxPrealloc caps the buffer ReadAll reserves up front.
const maxPrealloc = 64 << 20

// Open opens the kar archive from r. It will also check
// if the file is actually a kar archive, will return an error
// when file incorrect.
func Open(r io.ReaderAt) (*Archive, error) {
	prefix := make([]byte, MagicLength+HeaderSizeNumberLength)
	if _, err := r.ReadAt(prefix, 0); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrFileFormat
		}
		return nil, err
	}
	if !bytes.Equal(prefix[:MagicLength], magic[:]) {
		return nil, ErrFileFormat
	}

	headerSize, err := binaryToint64(prefix[MagicLength:])
	if err != nil || headerSize <= 0 {
		return nil, ErrFileFormat
	}
	size, sized := readerSize(r)
	if sized && headerSize > size-int64(len(prefix)) {
		return nil, ErrFileFormat
	}

	// grows with the bytes actually present, never with the claimed size
	var headerBytes bytes.Buffer
	if _, err := io.Copy(&headerBytes, io.NewSectionReader(r, int64(len(prefix)), headerSize)); err != nil {
		return nil, err
	}
	if int64(headerBytes.Len()) < headerSize {
		return nil, ErrFileFormat
	}

	var header Header
	if err := gobDecode(&header, headerBytes.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileFormat, err)
	}

	ar := &Archive{
		reader:    r,
		header:    header,
		dataStart: int64(len(prefix)) + headerSize,
		entries:   make(map[string]int, len(header.Index)),
	}
	for idx, e := range header.Index {
		if e.Offset < 0 || e.Size < 0 || e.CompressedSize < 0 ||
			(sized && e.CompressedSize > size-ar.dataStart-e.Offset) {
			return nil, fmt.Errorf("entry %s: %w", e.Name, ErrFileFormat)
		}
		ar.entries[e.Name] = idx
	}
	return ar, nil
}

// readerSize finds the length of r when it can tell.
func readerSize(r io.ReaderAt) (int64, bool) {
	switch s := r.(type) {
	case interface{ Size() int64 }:
		return s.Size(), true
	case interface{ Len() int }:
		return int64(s.Len()), true
	case interface{ Stat() (os.FileInfo, error) }:
		info, err := s.Stat()
		if err != nil {
			return 0, false
		}
		return info.Size(), true
	}
	return 0, false
}

// Archive provides concurrent io for a kar file, and can provide
// an io.Reader for each file separately to perform actions on.
type Archive struct {
	reader    io.ReaderAt
	header    Header
	dataStart int64
	entries   map[string]int
}

// Header returns the archive header, index included.
func (a *Archive) Header() Header {
	header := a.header
	header.Index = a.Index()
	return header
}

// Index lists every entry in the order it was written.
func (a *Archive) Index() []IndexEntry {
	return append([]IndexEntry(nil), a.header.Index...)
}

// Entry looks up the index entry for name.
func (a *Archive) Entry(name string) (IndexEntry, bool) {
	idx, ok := a.entries[name]
	if !ok {
		return IndexEntry{}, false
	}
	return a.header.Index[idx], true
}

// ReadAll returns the entire contents of a file with a given name.
// An entry that does not decompress to its indexed size is reported
// as ErrFileFormat.
func (a *Archive) ReadAll(name string) ([]byte, error) {
	f, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if f.Size() <= maxPrealloc {
		buf.Grow(int(f.Size()))
	}
	n, err := io.Copy(&buf, io.LimitReader(f, f.Size()+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if n != f.Size() {
		return nil, fmt.Errorf("%s: %d bytes instead of %d: %w", name, n, f.Size(), ErrFileFormat)
	}
	return buf.Bytes(), nil
}

// Open returns a Reader for a file in the Archive
func (a *Archive) Open(name string) (*Reader, error) {
	entry, ok := a.Entry(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	section := io.NewSectionReader(a.reader, a.dataStart+entry.Offset, entry.CompressedSize)
	return &Reader{
		Reader: lz4.NewReader(section),
		entry:  entry,
	}, nil
}

// Reader is a reader for a single file in an Archive.
// Abstracts away the location that needs to be known.
// Read returns already decompressed data.
type Reader struct {
	io.Reader

	entry IndexEntry
}

// Name returns the entry name.
func (r *Reader) Name() string { return r.entry.Name }

// Size returns the decompressed size of the entry.
func (r *Reader) Size() int64 { return r.entry.Size }
