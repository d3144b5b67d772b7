// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package devicetest

import "github.com/devblok/glowl/device"

// CreateBuffer implements device.Driver
func (d *Driver) CreateBuffer() uint32 {
	o := d.create(KindBuffer, 0)
	d.record("CreateBuffer", o.Name)
	return o.Name
}

// DeleteBuffer implements device.Driver
func (d *Driver) DeleteBuffer(buffer uint32) {
	d.record("DeleteBuffer", buffer)
	d.delete(KindBuffer, buffer)
}

// BindBuffer implements device.Driver
func (d *Driver) BindBuffer(target, buffer uint32) {
	d.record("BindBuffer", target, buffer)
	if buffer != 0 && d.lookup(KindBuffer, buffer) == nil {
		return
	}
	d.bind(target, -1, buffer)
}

// BindBufferBase implements device.Driver
func (d *Driver) BindBufferBase(target, index, buffer uint32) {
	d.record("BindBufferBase", target, index, buffer)
	if buffer != 0 && d.lookup(KindBuffer, buffer) == nil {
		return
	}
	d.bind(target, int32(index), buffer)
	d.bind(target, -1, buffer)
}

// BindBufferRange implements device.Driver
func (d *Driver) BindBufferRange(target, index, buffer uint32, offset, size int) {
	d.record("BindBufferRange", target, index, buffer, offset, size)
	o := d.lookup(KindBuffer, buffer)
	if o == nil {
		return
	}
	if offset < 0 || size <= 0 || offset+size > len(o.Data) {
		d.setError(device.INVALID_VALUE)
		return
	}
	d.bind(target, int32(index), buffer)
	d.bind(target, -1, buffer)
}

// NamedBufferData implements device.Driver
func (d *Driver) NamedBufferData(buffer uint32, size int, data []byte, usage uint32) {
	d.record("NamedBufferData", buffer, size, len(data), usage)
	o := d.lookup(KindBuffer, buffer)
	if o == nil {
		return
	}
	// a non-empty data is read for exactly size bytes
	if size < 0 || (len(data) > 0 && len(data) != size) {
		d.setError(device.INVALID_VALUE)
		return
	}
	o.Data = make([]byte, size)
	copy(o.Data, data)
	o.Usage = usage
	o.Mapped = false
}

// NamedBufferSubData implements device.Driver
func (d *Driver) NamedBufferSubData(buffer uint32, offset int, data []byte) {
	d.record("NamedBufferSubData", buffer, offset, len(data))
	o := d.lookup(KindBuffer, buffer)
	if o == nil {
		return
	}
	if offset < 0 || offset+len(data) > len(o.Data) {
		d.setError(device.INVALID_VALUE)
		return
	}
	copy(o.Data[offset:], data)
}

// GetNamedBufferSubData implements device.Driver
func (d *Driver) GetNamedBufferSubData(buffer uint32, offset int, data []byte) {
	d.record("GetNamedBufferSubData", buffer, offset, len(data))
	o := d.lookup(KindBuffer, buffer)
	if o == nil {
		return
	}
	if offset < 0 || offset+len(data) > len(o.Data) {
		d.setError(device.INVALID_VALUE)
		return
	}
	copy(data, o.Data[offset:])
}

// CopyNamedBufferSubData implements device.Driver
func (d *Driver) CopyNamedBufferSubData(readBuffer, writeBuffer uint32, readOffset, writeOffset, size int) {
	d.record("CopyNamedBufferSubData", readBuffer, writeBuffer, readOffset, writeOffset, size)
	src := d.lookup(KindBuffer, readBuffer)
	dst := d.lookup(KindBuffer, writeBuffer)
	if src == nil || dst == nil {
		return
	}
	if readOffset < 0 || writeOffset < 0 || size < 0 ||
		readOffset+size > len(src.Data) || writeOffset+size > len(dst.Data) {
		d.setError(device.INVALID_VALUE)
		return
	}
	copy(dst.Data[writeOffset:writeOffset+size], src.Data[readOffset:readOffset+size])
}

// MapNamedBufferRange implements device.Driver
func (d *Driver) MapNamedBufferRange(buffer uint32, offset, length int, access uint32) []byte {
	d.record("MapNamedBufferRange", buffer, offset, length, access)
	o := d.lookup(KindBuffer, buffer)
	if o == nil {
		return nil
	}
	if d.FailMap || o.Mapped {
		d.setError(device.INVALID_OPERATION)
		return nil
	}
	if offset < 0 || length <= 0 || offset+length > len(o.Data) {
		d.setError(device.INVALID_VALUE)
		return nil
	}
	o.Mapped = true
	return o.Data[offset : offset+length]
}

// UnmapNamedBuffer implements device.Driver
func (d *Driver) UnmapNamedBuffer(buffer uint32) bool {
	d.record("UnmapNamedBuffer", buffer)
	o := d.lookup(KindBuffer, buffer)
	if o == nil {
		return false
	}
	if !o.Mapped {
		d.setError(device.INVALID_OPERATION)
		return false
	}
	o.Mapped = false
	return true
}
