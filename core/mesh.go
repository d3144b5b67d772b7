// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"

	"github.com/devblok/glowl/device"
)

const meshKind = "mesh"

// VertexAttribute describes one attribute inside a vertex buffer.
type VertexAttribute struct {
	// Size is the number of components, 1 to 4.
	Size       int32
	Type       uint32
	Normalized bool
	// Offset is relative to the start of a vertex.
	Offset uint32
}

// VertexLayout describes the vertices of a single vertex buffer.
type VertexLayout struct {
	Stride     int32
	Attributes []VertexAttribute
}

// NewMesh creates a vertex array with one vertex buffer per layout and an
// optional index buffer. Attribute locations are numbered across all
// layouts in order.
func NewMesh(ctx *Context, id string, vertexData [][]byte, indexData []byte, layouts []VertexLayout,
	indexType, usage, primitive uint32) (*Mesh, error) {
	if len(vertexData) != len(layouts) {
		return nil, fmt.Errorf("%d vertex buffers for %d layouts: %w", len(vertexData), len(layouts), ErrLayoutMismatch)
	}

	m := &Mesh{
		ctx:       ctx,
		id:        id,
		layouts:   append([]VertexLayout(nil), layouts...),
		indexType: indexType,
		usage:     usage,
		primitive: primitive,
	}
	m.name = ctx.driver.CreateVertexArray()
	ctx.acquired(meshKind, id, m.name)
	ctx.label(device.VERTEX_ARRAY, m.name, id)

	if err := m.load("Mesh.New", vertexData, indexData); err != nil {
		m.Release()
		return nil, err
	}
	return m, nil
}

// Mesh owns a vertex array together with its vertex and index buffers.
type Mesh struct {
	ctx *Context

	id   string
	name uint32

	vbos []*BufferObject
	ibo  *BufferObject

	layouts   []VertexLayout
	indexType uint32
	usage     uint32
	primitive uint32

	vertexCount int32
	indexCount  int32
}

// ID implements Resource
func (m *Mesh) ID() string { return m.id }

// Name implements Resource
func (m *Mesh) Name() uint32 { return m.name }

// VertexBuffer returns the vertex buffer for a layout index.
func (m *Mesh) VertexBuffer(index int) *BufferObject {
	if index < 0 || index >= len(m.vbos) {
		return nil
	}
	return m.vbos[index]
}

// IndexBuffer returns the index buffer, nil for non-indexed meshes.
func (m *Mesh) IndexBuffer() *BufferObject { return m.ibo }

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int { return int(m.indexCount) }

// VertexCount returns the number of vertices in the first vertex buffer.
func (m *Mesh) VertexCount() int { return int(m.vertexCount) }

// Primitive returns the primitive type used by Draw.
func (m *Mesh) Primitive() uint32 { return m.primitive }

func indexSize(xtype uint32) int {
	switch xtype {
	case device.UNSIGNED_BYTE:
		return 1
	case device.UNSIGNED_SHORT:
		return 2
	}
	return 4
}

func (m *Mesh) load(op string, vertexData [][]byte, indexData []byte) error {
	d := m.ctx.driver

	var location uint32
	for idx, layout := range m.layouts {
		vbo, err := NewBufferObject(m.ctx, fmt.Sprintf("%s:vbo%d", m.id, idx), device.ARRAY_BUFFER, vertexData[idx], 0, m.usage)
		if err != nil {
			return err
		}
		m.vbos = append(m.vbos, vbo)
		d.VertexArrayVertexBuffer(m.name, uint32(idx), vbo.name, 0, layout.Stride)

		for _, attr := range layout.Attributes {
			d.EnableVertexArrayAttrib(m.name, location)
			d.VertexArrayAttribFormat(m.name, location, attr.Size, attr.Type, attr.Normalized, attr.Offset)
			d.VertexArrayAttribBinding(m.name, location, uint32(idx))
			location++
		}
	}
	if err := m.ctx.Check(op, meshKind, m.id); err != nil {
		return err
	}

	if len(m.layouts) > 0 && m.layouts[0].Stride > 0 {
		m.vertexCount = int32(len(vertexData[0]) / int(m.layouts[0].Stride))
	}

	if indexData != nil {
		ibo, err := NewBufferObject(m.ctx, m.id+":ibo", device.ELEMENT_ARRAY_BUFFER, indexData, 0, m.usage)
		if err != nil {
			return err
		}
		m.ibo = ibo
		m.indexCount = int32(len(indexData) / indexSize(m.indexType))
		d.VertexArrayElementBuffer(m.name, ibo.name)
	}

	return m.ctx.Check(op, meshKind, m.id)
}

// BufferVertexSubData uploads data into the vertex buffer of a layout.
func (m *Mesh) BufferVertexSubData(index int, data []byte, offset int) error {
	vbo := m.VertexBuffer(index)
	if vbo == nil {
		return ErrOutOfRange
	}
	return vbo.BufferSubData(data, offset)
}

// BufferIndexSubData uploads data into the index buffer.
func (m *Mesh) BufferIndexSubData(data []byte, offset int) error {
	if m.ibo == nil {
		return ErrNoAttachment
	}
	return m.ibo.BufferSubData(data, offset)
}

// Reload replaces every buffer with new data. The vertex array is kept.
func (m *Mesh) Reload(vertexData [][]byte, indexData []byte, layouts []VertexLayout, indexType, usage, primitive uint32) error {
	if m.name == 0 {
		return ErrReleased
	}
	if len(vertexData) != len(layouts) {
		return fmt.Errorf("%d vertex buffers for %d layouts: %w", len(vertexData), len(layouts), ErrLayoutMismatch)
	}

	d := m.ctx.driver
	for idx := range m.vbos {
		d.VertexArrayVertexBuffer(m.name, uint32(idx), 0, 0, 0)
	}
	if m.ibo != nil {
		d.VertexArrayElementBuffer(m.name, 0)
	}
	m.releaseBuffers()
	for location := uint32(0); location < m.attributeCount(); location++ {
		d.DisableVertexArrayAttrib(m.name, location)
	}

	m.layouts = append(m.layouts[:0], layouts...)
	m.indexType = indexType
	m.usage = usage
	m.primitive = primitive
	m.vertexCount = 0
	m.indexCount = 0
	return m.load("Mesh.Reload", vertexData, indexData)
}

func (m *Mesh) attributeCount() uint32 {
	var count uint32
	for _, layout := range m.layouts {
		count += uint32(len(layout.Attributes))
	}
	return count
}

// Bind binds the vertex array.
func (m *Mesh) Bind() {
	m.ctx.driver.BindVertexArray(m.name)
}

// Unbind clears the vertex array binding.
func (m *Mesh) Unbind() {
	m.ctx.driver.BindVertexArray(0)
}

// Draw binds the vertex array and issues an instanced draw, indexed when
// the mesh has an index buffer.
func (m *Mesh) Draw(instances int) error {
	if m.name == 0 {
		return ErrReleased
	}
	if instances < 1 {
		instances = 1
	}
	d := m.ctx.driver
	d.BindVertexArray(m.name)
	if m.ibo != nil {
		d.DrawElementsInstanced(m.primitive, m.indexCount, m.indexType, 0, int32(instances))
	} else {
		d.DrawArraysInstanced(m.primitive, 0, m.vertexCount, int32(instances))
	}
	d.BindVertexArray(0)
	return m.ctx.Check("Mesh.Draw", meshKind, m.id)
}

func (m *Mesh) releaseBuffers() {
	for _, vbo := range m.vbos {
		vbo.Release()
	}
	m.vbos = nil
	if m.ibo != nil {
		m.ibo.Release()
		m.ibo = nil
	}
}

// Release deletes the buffers and the vertex array.
func (m *Mesh) Release() {
	if m.name == 0 {
		return
	}
	m.releaseBuffers()
	m.ctx.driver.DeleteVertexArray(m.name)
	m.ctx.released(meshKind, m.id, m.name)
	m.name = 0
}
