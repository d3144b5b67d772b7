// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package device describes the native OpenGL function surface that the
// resource wrappers call into, and provides the go-gl backed implementation.
package device

// Driver is the set of OpenGL entry points used by the wrappers.
// Every method maps to exactly one driver call, apart from the
// convenience conversions between Go slices and driver pointers.
// A Driver is bound to the context that was current when it was
// created and must only be used from the thread owning that context.
type Driver interface {
	// GetError returns and clears the oldest recorded error flag.
	GetError() uint32
	GetInteger(pname uint32) int32
	GetString(name uint32) string
	GetStringi(name, index uint32) string
	Viewport(x, y, width, height int32)
	ObjectLabel(identifier, name uint32, label string)

	CreateBuffer() uint32
	DeleteBuffer(buffer uint32)
	BindBuffer(target, buffer uint32)
	BindBufferBase(target, index, buffer uint32)
	BindBufferRange(target, index, buffer uint32, offset, size int)
	// NamedBufferData reads exactly size bytes from data, data must be
	// nil or that long.
	NamedBufferData(buffer uint32, size int, data []byte, usage uint32)
	NamedBufferSubData(buffer uint32, offset int, data []byte)
	GetNamedBufferSubData(buffer uint32, offset int, data []byte)
	CopyNamedBufferSubData(readBuffer, writeBuffer uint32, readOffset, writeOffset, size int)
	// MapNamedBufferRange returns nil when the driver could not map the range.
	MapNamedBufferRange(buffer uint32, offset, length int, access uint32) []byte
	UnmapNamedBuffer(buffer uint32) bool

	CreateTexture(target uint32) uint32
	DeleteTexture(texture uint32)
	BindTexture(target, texture uint32)
	BindTextureUnit(unit, texture uint32)
	BindImageTexture(unit, texture uint32, level int32, layered bool, layer int32, access, format uint32)
	TextureParameteri(texture, pname uint32, param int32)
	TextureParameterf(texture, pname uint32, param float32)
	TextureStorage1D(texture uint32, levels int32, internalFormat uint32, width int32)
	TextureStorage2D(texture uint32, levels int32, internalFormat uint32, width, height int32)
	TextureStorage3D(texture uint32, levels int32, internalFormat uint32, width, height, depth int32)
	TextureSubImage1D(texture uint32, level, xoffset, width int32, format, xtype uint32, pixels []byte)
	TextureSubImage2D(texture uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels []byte)
	TextureSubImage3D(texture uint32, level, xoffset, yoffset, zoffset, width, height, depth int32, format, xtype uint32, pixels []byte)
	GenerateTextureMipmap(texture uint32)
	ClearTexImage(texture uint32, level int32, format, xtype uint32, data []byte)
	GetTextureImage(texture uint32, level int32, format, xtype uint32, pixels []byte)
	CopyTexSubImage2D(target uint32, level, xoffset, yoffset, x, y, width, height int32)
	GetTextureHandle(texture uint32) uint64
	MakeTextureHandleResident(handle uint64)
	MakeTextureHandleNonResident(handle uint64)

	CreateFramebuffer() uint32
	DeleteFramebuffer(framebuffer uint32)
	BindFramebuffer(target, framebuffer uint32)
	NamedFramebufferTexture(framebuffer, attachment, texture uint32, level int32)
	NamedFramebufferDrawBuffers(framebuffer uint32, buffers []uint32)
	NamedFramebufferReadBuffer(framebuffer, mode uint32)
	CheckNamedFramebufferStatus(framebuffer, target uint32) uint32
	BlitNamedFramebuffer(readFramebuffer, drawFramebuffer uint32, srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32)

	CreateVertexArray() uint32
	DeleteVertexArray(array uint32)
	BindVertexArray(array uint32)
	VertexArrayVertexBuffer(array, bindingIndex, buffer uint32, offset int, stride int32)
	VertexArrayElementBuffer(array, buffer uint32)
	EnableVertexArrayAttrib(array, index uint32)
	DisableVertexArrayAttrib(array, index uint32)
	VertexArrayAttribFormat(array, index uint32, size int32, xtype uint32, normalized bool, relativeOffset uint32)
	VertexArrayAttribBinding(array, index, bindingIndex uint32)
	DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32)
	DrawArraysInstanced(mode uint32, first, count, instances int32)

	CreateShader(xtype uint32) uint32
	DeleteShader(shader uint32)
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderi(shader, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	CreateProgram() uint32
	DeleteProgram(program uint32)
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgrami(program, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	ProgramUniform1i(program uint32, location, v int32)
	ProgramUniform1f(program uint32, location int32, v float32)
	ProgramUniformfv(program uint32, location int32, components int, v []float32)
	ProgramUniformMatrix4fv(program uint32, location int32, m [16]float32)
	DispatchCompute(x, y, z uint32)
}
