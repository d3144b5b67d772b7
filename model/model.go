// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package model holds CPU side meshes and the transforms used to place
// them, ready to be uploaded as core.Mesh objects.
package model

import (
	"sync"
	"unsafe"

	"github.com/devblok/glowl/core"
	"github.com/devblok/glowl/device"
	glm "github.com/go-gl/mathgl/mgl32"
)

// Vertex is a model vertex
type Vertex struct {
	Pos    glm.Vec3
	Normal glm.Vec3
	UV     glm.Vec2
}

// VertexLayout returns the interleaved layout of Vertex, with position,
// normal and texture coordinates at locations 0, 1 and 2.
func VertexLayout() core.VertexLayout {
	return core.VertexLayout{
		Stride: int32(unsafe.Sizeof(Vertex{})),
		Attributes: []core.VertexAttribute{
			{Size: 3, Type: device.FLOAT, Offset: uint32(unsafe.Offsetof(Vertex{}.Pos))},
			{Size: 3, Type: device.FLOAT, Offset: uint32(unsafe.Offsetof(Vertex{}.Normal))},
			{Size: 2, Type: device.FLOAT, Offset: uint32(unsafe.Offsetof(Vertex{}.UV))},
		},
	}
}

// Model is an indexed triangle list
type Model struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

// VertexData returns the vertices as raw bytes
func (m *Model) VertexData() []byte {
	return core.Bytes(m.Vertices)
}

// IndexData returns the indices as raw bytes
func (m *Model) IndexData() []byte {
	return core.Bytes(m.Indices)
}

// Upload creates a mesh holding the model's vertices and indices.
func (m *Model) Upload(ctx *core.Context, id string, usage uint32) (*core.Mesh, error) {
	return core.NewMesh(ctx, id, [][]byte{m.VertexData()}, m.IndexData(),
		[]core.VertexLayout{VertexLayout()}, device.UNSIGNED_INT, usage, device.TRIANGLES)
}

// Bounds returns the axis aligned bounding box of the vertices.
func (m *Model) Bounds() (min, max glm.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	min, max = m.Vertices[0].Pos, m.Vertices[0].Pos
	for _, v := range m.Vertices[1:] {
		for axis := 0; axis < 3; axis++ {
			if v.Pos[axis] < min[axis] {
				min[axis] = v.Pos[axis]
			}
			if v.Pos[axis] > max[axis] {
				max[axis] = v.Pos[axis]
			}
		}
	}
	return
}

// Uniform defines a model-view-projection object
type Uniform struct {
	Model      glm.Mat4
	View       glm.Mat4
	Projection glm.Mat4
}

// MVP returns the combined transform
func (u Uniform) MVP() glm.Mat4 {
	return u.Projection.Mul4(u.View).Mul4(u.Model)
}

// NewTransform returns an identity transform
func NewTransform() *Transform {
	return &Transform{
		position: glm.Ident4(),
		rotation: glm.Ident4(),
	}
}

// Transform places a model in the world. It may be updated from one
// goroutine while the render thread reads it.
type Transform struct {
	mutex    sync.RWMutex
	position glm.Mat4
	rotation glm.Mat4
}

// SetPosition sets the translation matrix
func (t *Transform) SetPosition(pos glm.Mat4) {
	t.mutex.Lock()
	t.position = pos
	t.mutex.Unlock()
}

// Position returns the translation matrix
func (t *Transform) Position() glm.Mat4 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.position
}

// SetRotation sets the rotation matrix
func (t *Transform) SetRotation(rot glm.Mat4) {
	t.mutex.Lock()
	t.rotation = rot
	t.mutex.Unlock()
}

// Rotation returns the rotation matrix
func (t *Transform) Rotation() glm.Mat4 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.rotation
}

// Matrix returns the model matrix, rotation applied first.
func (t *Transform) Matrix() glm.Mat4 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.position.Mul4(t.rotation)
}
