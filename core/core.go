// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core wraps OpenGL objects (buffers, textures, framebuffers,
// meshes and programs) in types that own exactly one driver handle.
// A wrapper acquires its handle when constructed and frees it on Release.
//
// Every call goes to the Driver held by the Context the wrapper was
// created with. The context must be current on the calling thread,
// this is not checked.
package core

// Releasable defines any memory-occupying item that can be freed.
type Releasable interface {

	// Release frees the driver handle held by the implementing structure.
	// Calling it more than once has no effect.
	Release()
}

// Resource describes a driver object that can be uniquely identified.
type Resource interface {
	Releasable

	// ID returns the identifier given to the resource at construction.
	ID() string

	// Name returns the driver handle, zero once released.
	Name() uint32
}

// ShaderType represents the pipeline stage a shader is compiled for
type ShaderType int

// Identifies shader objects with their types
const (
	VertexShaderType ShaderType = iota
	FragmentShaderType
	GeometryShaderType
	TessControlShaderType
	TessEvaluationShaderType
	ComputeShaderType
	UnknownShaderType
)
