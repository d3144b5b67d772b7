// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package devicetest

import "github.com/devblok/glowl/device"

// vertexArrayBinding is the binding key used for the bound vertex array.
const vertexArrayBinding = device.VERTEX_ARRAY

// BoundVertexArray returns the currently bound vertex array.
func (d *Driver) BoundVertexArray() uint32 {
	return d.Bound(vertexArrayBinding)
}

// CreateVertexArray implements device.Driver
func (d *Driver) CreateVertexArray() uint32 {
	o := d.create(KindVertexArray, 0)
	d.record("CreateVertexArray", o.Name)
	return o.Name
}

// DeleteVertexArray implements device.Driver
func (d *Driver) DeleteVertexArray(array uint32) {
	d.record("DeleteVertexArray", array)
	d.delete(KindVertexArray, array)
}

// BindVertexArray implements device.Driver
func (d *Driver) BindVertexArray(array uint32) {
	d.record("BindVertexArray", array)
	if array != 0 && d.lookup(KindVertexArray, array) == nil {
		return
	}
	d.bind(vertexArrayBinding, -1, array)
}

// VertexArrayVertexBuffer implements device.Driver
func (d *Driver) VertexArrayVertexBuffer(array, bindingIndex, buffer uint32, offset int, stride int32) {
	d.record("VertexArrayVertexBuffer", array, bindingIndex, buffer, offset, stride)
	va := d.lookup(KindVertexArray, array)
	if va == nil {
		return
	}
	if buffer != 0 && d.lookup(KindBuffer, buffer) == nil {
		return
	}
	va.VertexBuffers[bindingIndex] = buffer
}

// VertexArrayElementBuffer implements device.Driver
func (d *Driver) VertexArrayElementBuffer(array, buffer uint32) {
	d.record("VertexArrayElementBuffer", array, buffer)
	va := d.lookup(KindVertexArray, array)
	if va == nil {
		return
	}
	if buffer != 0 && d.lookup(KindBuffer, buffer) == nil {
		return
	}
	va.ElementBuffer = buffer
}

// EnableVertexArrayAttrib implements device.Driver
func (d *Driver) EnableVertexArrayAttrib(array, index uint32) {
	d.record("EnableVertexArrayAttrib", array, index)
	if va := d.lookup(KindVertexArray, array); va != nil {
		va.EnabledAttribs[index] = true
	}
}

// DisableVertexArrayAttrib implements device.Driver
func (d *Driver) DisableVertexArrayAttrib(array, index uint32) {
	d.record("DisableVertexArrayAttrib", array, index)
	if va := d.lookup(KindVertexArray, array); va != nil {
		delete(va.EnabledAttribs, index)
	}
}

// VertexArrayAttribFormat implements device.Driver
func (d *Driver) VertexArrayAttribFormat(array, index uint32, size int32, xtype uint32, normalized bool, relativeOffset uint32) {
	d.record("VertexArrayAttribFormat", array, index, size, xtype, normalized, relativeOffset)
	if d.lookup(KindVertexArray, array) == nil {
		return
	}
	if size < 1 || size > 4 {
		d.setError(device.INVALID_VALUE)
	}
}

// VertexArrayAttribBinding implements device.Driver
func (d *Driver) VertexArrayAttribBinding(array, index, bindingIndex uint32) {
	d.record("VertexArrayAttribBinding", array, index, bindingIndex)
	d.lookup(KindVertexArray, array)
}

// DrawElementsInstanced implements device.Driver
func (d *Driver) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32) {
	d.record("DrawElementsInstanced", mode, count, xtype, offset, instances)
	va := d.lookup(KindVertexArray, d.BoundVertexArray())
	if va == nil {
		return
	}
	if va.ElementBuffer == 0 {
		d.setError(device.INVALID_OPERATION)
		return
	}
	d.Draws = append(d.Draws, Draw{
		Mode:        mode,
		Count:       count,
		Type:        xtype,
		Offset:      offset,
		Instances:   instances,
		VertexArray: va.Name,
		Program:     d.Program,
	})
}

// DrawArraysInstanced implements device.Driver
func (d *Driver) DrawArraysInstanced(mode uint32, first, count, instances int32) {
	d.record("DrawArraysInstanced", mode, first, count, instances)
	va := d.lookup(KindVertexArray, d.BoundVertexArray())
	if va == nil {
		return
	}
	d.Draws = append(d.Draws, Draw{
		Mode:        mode,
		First:       first,
		Count:       count,
		Instances:   instances,
		VertexArray: va.Name,
		Program:     d.Program,
	})
}
