// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package kar reads and writes kar archives, a container for streaming
// GPU payloads such as texture pixels, vertex data and shader sources.
// Entries are lz4 compressed one by one and the index sits in front of
// them, so an archive can be memory mapped and any entry decompressed in
// place without touching the others. An Archive is safe for concurrent use.
//
// Layout: the magic "KAR\x00", the header size as a little endian int64,
// the gob encoded Header and then the compressed entries back to back.
// Entry offsets are relative to the end of the header.
package kar

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
)

// package errors
var (
	ErrFileFormat = errors.New("corrupted or not a kar archive")
	ErrTempFail   = errors.New("temporary folder or file operation failed")
	ErrNotFound   = errors.New("no such entry in archive")
	ErrDuplicate  = errors.New("entry already added")
)

// Sizes relevant to the header of file
const (
	MagicLength            = 4
	HeaderSizeNumberLength = 8
)

var magic = [MagicLength]byte{'K', 'A', 'R', '\x00'}

// IndexEntry is info for one file in the file index.
type IndexEntry struct {
	Name           string
	Offset         int64
	Size           int64
	CompressedSize int64
}

// Header is the file header for kar files.
type Header struct {
	Author      string
	DateCreated int64
	Version     int64
	Index       []IndexEntry
}

func int64ToBinary(num int64) []byte {
	bts := make([]byte, HeaderSizeNumberLength)
	binary.LittleEndian.PutUint64(bts, uint64(num))
	return bts
}

func binaryToint64(bts []byte) (int64, error) {
	if len(bts) < HeaderSizeNumberLength {
		return 0, ErrFileFormat
	}
	return int64(binary.LittleEndian.Uint64(bts)), nil
}

func gobEncode(data interface{}) ([]byte, error) {
	var encoded bytes.Buffer
	enc := gob.NewEncoder(&encoded)
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	return encoded.Bytes(), nil
}

func gobDecode(obj interface{}, bts []byte) error {
	dec := gob.NewDecoder(bytes.NewBuffer(bts))
	return dec.Decode(obj)
}
