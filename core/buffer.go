// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/devblok/glowl/device"
)

const bufferKind = "buffer"

// NewBufferObject creates a buffer for the given target, allocates size
// bytes of storage and uploads data to its start. A zero size allocates
// exactly len(data) bytes.
func NewBufferObject(ctx *Context, id string, target uint32, data []byte, size int, usage uint32) (*BufferObject, error) {
	if size == 0 {
		size = len(data)
	}
	if size < len(data) {
		return nil, ErrOutOfRange
	}

	d := ctx.driver
	b := &BufferObject{
		ctx:    ctx,
		id:     id,
		target: target,
		usage:  usage,
		size:   size,
	}
	b.name = d.CreateBuffer()
	ctx.acquired(bufferKind, id, b.name)

	b.specify(size, data)
	ctx.label(device.BUFFER, b.name, id)

	if err := ctx.Check("BufferObject.New", bufferKind, id); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

// NewShaderStorageBuffer creates a dynamic shader storage buffer of
// size bytes initialised from data.
func NewShaderStorageBuffer(ctx *Context, id string, size int, data []byte) (*BufferObject, error) {
	return NewBufferObject(ctx, id, device.SHADER_STORAGE_BUFFER, data, size, device.DYNAMIC_DRAW)
}

// BufferObject owns a single driver buffer.
type BufferObject struct {
	ctx *Context

	id     string
	name   uint32
	target uint32
	usage  uint32
	size   int
}

// ID implements Resource
func (b *BufferObject) ID() string { return b.id }

// Name implements Resource
func (b *BufferObject) Name() uint32 { return b.name }

// Target returns the binding point used by Bind.
func (b *BufferObject) Target() uint32 { return b.target }

// Usage returns the usage hint the store was allocated with.
func (b *BufferObject) Usage() uint32 { return b.usage }

// Size returns the size of the data store in bytes.
func (b *BufferObject) Size() int { return b.size }

// BufferSubData uploads data at offset into the existing store.
func (b *BufferObject) BufferSubData(data []byte, offset int) error {
	if b.name == 0 {
		return ErrReleased
	}
	if offset < 0 || offset+len(data) > b.size {
		return ErrOutOfRange
	}
	b.ctx.driver.NamedBufferSubData(b.name, offset, data)
	return b.ctx.Check("BufferObject.BufferSubData", bufferKind, b.id)
}

// Reload re-specifies the data store with a new size and contents.
// The handle stays the same. A zero size allocates len(data) bytes.
func (b *BufferObject) Reload(data []byte, size int) error {
	if b.name == 0 {
		return ErrReleased
	}
	if size == 0 {
		size = len(data)
	}
	if size < len(data) {
		return ErrOutOfRange
	}
	b.size = size
	b.specify(size, data)
	return b.ctx.Check("BufferObject.Reload", bufferKind, b.id)
}

// specify allocates size bytes and uploads data to the start of the store.
// The driver reads size bytes from the data pointer, shorter data goes
// through a separate sub data upload.
func (b *BufferObject) specify(size int, data []byte) {
	d := b.ctx.driver
	if len(data) == size {
		d.NamedBufferData(b.name, size, data, b.usage)
		return
	}
	d.NamedBufferData(b.name, size, nil, b.usage)
	if len(data) > 0 {
		d.NamedBufferSubData(b.name, 0, data)
	}
}

// Read copies len(dst) bytes starting at offset back from the store.
func (b *BufferObject) Read(offset int, dst []byte) error {
	if b.name == 0 {
		return ErrReleased
	}
	if offset < 0 || offset+len(dst) > b.size {
		return ErrOutOfRange
	}
	b.ctx.driver.GetNamedBufferSubData(b.name, offset, dst)
	return b.ctx.Check("BufferObject.Read", bufferKind, b.id)
}

// Bind binds the buffer to its target.
func (b *BufferObject) Bind() {
	b.ctx.driver.BindBuffer(b.target, b.name)
}

// Unbind clears the target binding point.
func (b *BufferObject) Unbind() {
	b.ctx.driver.BindBuffer(b.target, 0)
}

// BindBase binds the buffer to an indexed binding point of its target.
func (b *BufferObject) BindBase(index uint32) {
	b.ctx.driver.BindBufferBase(b.target, index, b.name)
}

// UnbindBase clears an indexed binding point of the buffer's target.
func (b *BufferObject) UnbindBase(index uint32) {
	b.ctx.driver.BindBufferBase(b.target, index, 0)
}

// BindAs binds the buffer to an indexed binding point of another target.
func (b *BufferObject) BindAs(target, index uint32) {
	b.ctx.driver.BindBufferBase(target, index, b.name)
}

// BindRange binds size bytes starting at offset to an indexed binding point.
func (b *BufferObject) BindRange(index uint32, offset, size int) error {
	if b.name == 0 {
		return ErrReleased
	}
	if offset < 0 || size <= 0 || offset+size > b.size {
		return ErrOutOfRange
	}
	b.ctx.driver.BindBufferRange(b.target, index, b.name, offset, size)
	return b.ctx.Check("BufferObject.BindRange", bufferKind, b.id)
}

// Map maps the whole store with the given MAP_* access bits.
func (b *BufferObject) Map(access uint32) ([]byte, error) {
	return b.MapRange(0, b.size, access)
}

// MapRange maps length bytes starting at offset. The returned slice is
// only valid until Unmap.
func (b *BufferObject) MapRange(offset, length int, access uint32) ([]byte, error) {
	if b.name == 0 {
		return nil, ErrReleased
	}
	if offset < 0 || length <= 0 || offset+length > b.size {
		return nil, ErrOutOfRange
	}
	mem := b.ctx.driver.MapNamedBufferRange(b.name, offset, length, access)
	if mem == nil {
		// clear the flag raised by the failed map
		b.ctx.Check("BufferObject.Map", bufferKind, b.id)
		return nil, ErrMapFailed
	}
	return mem, nil
}

// Unmap releases a mapping created by Map or MapRange.
func (b *BufferObject) Unmap() error {
	if b.name == 0 {
		return ErrReleased
	}
	if !b.ctx.driver.UnmapNamedBuffer(b.name) {
		b.ctx.Check("BufferObject.Unmap", bufferKind, b.id)
		return ErrMapFailed
	}
	return nil
}

// Release deletes the buffer.
func (b *BufferObject) Release() {
	if b.name == 0 {
		return
	}
	b.ctx.driver.DeleteBuffer(b.name)
	b.ctx.released(bufferKind, b.id, b.name)
	b.name = 0
}

// CopyBuffer copies size bytes between two buffers on the server side.
func CopyBuffer(src, dst *BufferObject, readOffset, writeOffset, size int) error {
	if src.name == 0 || dst.name == 0 {
		return ErrReleased
	}
	if readOffset < 0 || writeOffset < 0 || size < 0 ||
		readOffset+size > src.size || writeOffset+size > dst.size {
		return ErrOutOfRange
	}
	dst.ctx.driver.CopyNamedBufferSubData(src.name, dst.name, readOffset, writeOffset, size)
	return dst.ctx.Check("BufferObject.Copy", bufferKind, dst.id)
}
