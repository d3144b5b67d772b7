// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"errors"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// NewGLDriver loads the OpenGL 4.5 core entry points for the context
// that is current on the calling thread.
func NewGLDriver() (Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.New("gl.Init(): " + err.Error())
	}
	return GL{}, nil
}

// GL implements Driver on top of go-gl.
type GL struct{}

func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}

// GetError implements interface
func (GL) GetError() uint32 { return gl.GetError() }

// GetInteger implements interface
func (GL) GetInteger(pname uint32) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}

// GetString implements interface
func (GL) GetString(name uint32) string {
	s := gl.GetString(name)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

// GetStringi implements interface
func (GL) GetStringi(name, index uint32) string {
	s := gl.GetStringi(name, index)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

// Viewport implements interface
func (GL) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

// ObjectLabel implements interface
func (GL) ObjectLabel(identifier, name uint32, label string) {
	if label == "" {
		return
	}
	bytes := []byte(label)
	gl.ObjectLabel(identifier, name, int32(len(bytes)), &bytes[0])
}

// CreateBuffer implements interface
func (GL) CreateBuffer() uint32 {
	var b uint32
	gl.CreateBuffers(1, &b)
	return b
}

// DeleteBuffer implements interface
func (GL) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

// BindBuffer implements interface
func (GL) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

// BindBufferBase implements interface
func (GL) BindBufferBase(target, index, buffer uint32) { gl.BindBufferBase(target, index, buffer) }

// BindBufferRange implements interface
func (GL) BindBufferRange(target, index, buffer uint32, offset, size int) {
	gl.BindBufferRange(target, index, buffer, offset, size)
}

// NamedBufferData implements interface
func (GL) NamedBufferData(buffer uint32, size int, data []byte, usage uint32) {
	gl.NamedBufferData(buffer, size, ptr(data), usage)
}

// NamedBufferSubData implements interface
func (GL) NamedBufferSubData(buffer uint32, offset int, data []byte) {
	gl.NamedBufferSubData(buffer, offset, len(data), ptr(data))
}

// GetNamedBufferSubData implements interface
func (GL) GetNamedBufferSubData(buffer uint32, offset int, data []byte) {
	gl.GetNamedBufferSubData(buffer, offset, len(data), ptr(data))
}

// CopyNamedBufferSubData implements interface
func (GL) CopyNamedBufferSubData(readBuffer, writeBuffer uint32, readOffset, writeOffset, size int) {
	gl.CopyNamedBufferSubData(readBuffer, writeBuffer, readOffset, writeOffset, size)
}

// MapNamedBufferRange implements interface
func (GL) MapNamedBufferRange(buffer uint32, offset, length int, access uint32) []byte {
	p := gl.MapNamedBufferRange(buffer, offset, length, access)
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), length)
}

// UnmapNamedBuffer implements interface
func (GL) UnmapNamedBuffer(buffer uint32) bool { return gl.UnmapNamedBuffer(buffer) }

// CreateTexture implements interface
func (GL) CreateTexture(target uint32) uint32 {
	var t uint32
	gl.CreateTextures(target, 1, &t)
	return t
}

// DeleteTexture implements interface
func (GL) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

// BindTexture implements interface
func (GL) BindTexture(target, texture uint32) { gl.BindTexture(target, texture) }

// BindTextureUnit implements interface
func (GL) BindTextureUnit(unit, texture uint32) { gl.BindTextureUnit(unit, texture) }

// BindImageTexture implements interface
func (GL) BindImageTexture(unit, texture uint32, level int32, layered bool, layer int32, access, format uint32) {
	gl.BindImageTexture(unit, texture, level, layered, layer, access, format)
}

// TextureParameteri implements interface
func (GL) TextureParameteri(texture, pname uint32, param int32) {
	gl.TextureParameteri(texture, pname, param)
}

// TextureParameterf implements interface
func (GL) TextureParameterf(texture, pname uint32, param float32) {
	gl.TextureParameterf(texture, pname, param)
}

// TextureStorage1D implements interface
func (GL) TextureStorage1D(texture uint32, levels int32, internalFormat uint32, width int32) {
	gl.TextureStorage1D(texture, levels, internalFormat, width)
}

// TextureStorage2D implements interface
func (GL) TextureStorage2D(texture uint32, levels int32, internalFormat uint32, width, height int32) {
	gl.TextureStorage2D(texture, levels, internalFormat, width, height)
}

// TextureStorage3D implements interface
func (GL) TextureStorage3D(texture uint32, levels int32, internalFormat uint32, width, height, depth int32) {
	gl.TextureStorage3D(texture, levels, internalFormat, width, height, depth)
}

// TextureSubImage1D implements interface
func (GL) TextureSubImage1D(texture uint32, level, xoffset, width int32, format, xtype uint32, pixels []byte) {
	gl.TextureSubImage1D(texture, level, xoffset, width, format, xtype, ptr(pixels))
}

// TextureSubImage2D implements interface
func (GL) TextureSubImage2D(texture uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels []byte) {
	gl.TextureSubImage2D(texture, level, xoffset, yoffset, width, height, format, xtype, ptr(pixels))
}

// TextureSubImage3D implements interface
func (GL) TextureSubImage3D(texture uint32, level, xoffset, yoffset, zoffset, width, height, depth int32, format, xtype uint32, pixels []byte) {
	gl.TextureSubImage3D(texture, level, xoffset, yoffset, zoffset, width, height, depth, format, xtype, ptr(pixels))
}

// GenerateTextureMipmap implements interface
func (GL) GenerateTextureMipmap(texture uint32) { gl.GenerateTextureMipmap(texture) }

// ClearTexImage implements interface
func (GL) ClearTexImage(texture uint32, level int32, format, xtype uint32, data []byte) {
	gl.ClearTexImage(texture, level, format, xtype, ptr(data))
}

// GetTextureImage implements interface
func (GL) GetTextureImage(texture uint32, level int32, format, xtype uint32, pixels []byte) {
	gl.GetTextureImage(texture, level, format, xtype, int32(len(pixels)), ptr(pixels))
}

// CopyTexSubImage2D implements interface
func (GL) CopyTexSubImage2D(target uint32, level, xoffset, yoffset, x, y, width, height int32) {
	gl.CopyTexSubImage2D(target, level, xoffset, yoffset, x, y, width, height)
}

// GetTextureHandle implements interface
func (GL) GetTextureHandle(texture uint32) uint64 { return gl.GetTextureHandleARB(texture) }

// MakeTextureHandleResident implements interface
func (GL) MakeTextureHandleResident(handle uint64) { gl.MakeTextureHandleResidentARB(handle) }

// MakeTextureHandleNonResident implements interface
func (GL) MakeTextureHandleNonResident(handle uint64) { gl.MakeTextureHandleNonResidentARB(handle) }

// CreateFramebuffer implements interface
func (GL) CreateFramebuffer() uint32 {
	var fb uint32
	gl.CreateFramebuffers(1, &fb)
	return fb
}

// DeleteFramebuffer implements interface
func (GL) DeleteFramebuffer(framebuffer uint32) { gl.DeleteFramebuffers(1, &framebuffer) }

// BindFramebuffer implements interface
func (GL) BindFramebuffer(target, framebuffer uint32) { gl.BindFramebuffer(target, framebuffer) }

// NamedFramebufferTexture implements interface
func (GL) NamedFramebufferTexture(framebuffer, attachment, texture uint32, level int32) {
	gl.NamedFramebufferTexture(framebuffer, attachment, texture, level)
}

// NamedFramebufferDrawBuffers implements interface
func (GL) NamedFramebufferDrawBuffers(framebuffer uint32, buffers []uint32) {
	if len(buffers) == 0 {
		none := uint32(NONE)
		gl.NamedFramebufferDrawBuffers(framebuffer, 1, &none)
		return
	}
	gl.NamedFramebufferDrawBuffers(framebuffer, int32(len(buffers)), &buffers[0])
}

// NamedFramebufferReadBuffer implements interface
func (GL) NamedFramebufferReadBuffer(framebuffer, mode uint32) {
	gl.NamedFramebufferReadBuffer(framebuffer, mode)
}

// CheckNamedFramebufferStatus implements interface
func (GL) CheckNamedFramebufferStatus(framebuffer, target uint32) uint32 {
	return gl.CheckNamedFramebufferStatus(framebuffer, target)
}

// BlitNamedFramebuffer implements interface
func (GL) BlitNamedFramebuffer(readFramebuffer, drawFramebuffer uint32, srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	gl.BlitNamedFramebuffer(readFramebuffer, drawFramebuffer, srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}

// CreateVertexArray implements interface
func (GL) CreateVertexArray() uint32 {
	var va uint32
	gl.CreateVertexArrays(1, &va)
	return va
}

// DeleteVertexArray implements interface
func (GL) DeleteVertexArray(array uint32) { gl.DeleteVertexArrays(1, &array) }

// BindVertexArray implements interface
func (GL) BindVertexArray(array uint32) { gl.BindVertexArray(array) }

// VertexArrayVertexBuffer implements interface
func (GL) VertexArrayVertexBuffer(array, bindingIndex, buffer uint32, offset int, stride int32) {
	gl.VertexArrayVertexBuffer(array, bindingIndex, buffer, offset, stride)
}

// VertexArrayElementBuffer implements interface
func (GL) VertexArrayElementBuffer(array, buffer uint32) { gl.VertexArrayElementBuffer(array, buffer) }

// EnableVertexArrayAttrib implements interface
func (GL) EnableVertexArrayAttrib(array, index uint32) { gl.EnableVertexArrayAttrib(array, index) }

// DisableVertexArrayAttrib implements interface
func (GL) DisableVertexArrayAttrib(array, index uint32) { gl.DisableVertexArrayAttrib(array, index) }

// VertexArrayAttribFormat implements interface
func (GL) VertexArrayAttribFormat(array, index uint32, size int32, xtype uint32, normalized bool, relativeOffset uint32) {
	gl.VertexArrayAttribFormat(array, index, size, xtype, normalized, relativeOffset)
}

// VertexArrayAttribBinding implements interface
func (GL) VertexArrayAttribBinding(array, index, bindingIndex uint32) {
	gl.VertexArrayAttribBinding(array, index, bindingIndex)
}

// DrawElementsInstanced implements interface
func (GL) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32) {
	gl.DrawElementsInstanced(mode, count, xtype, gl.PtrOffset(offset), instances)
}

// DrawArraysInstanced implements interface
func (GL) DrawArraysInstanced(mode uint32, first, count, instances int32) {
	gl.DrawArraysInstanced(mode, first, count, instances)
}

// CreateShader implements interface
func (GL) CreateShader(xtype uint32) uint32 { return gl.CreateShader(xtype) }

// DeleteShader implements interface
func (GL) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

// ShaderSource implements interface
func (GL) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csources, nil)
}

// CompileShader implements interface
func (GL) CompileShader(shader uint32) { gl.CompileShader(shader) }

// GetShaderi implements interface
func (GL) GetShaderi(shader, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

// GetShaderInfoLog implements interface
func (d GL) GetShaderInfoLog(shader uint32) string {
	length := d.GetShaderi(shader, INFO_LOG_LENGTH)
	if length <= 0 {
		return ""
	}
	log := make([]uint8, length)
	gl.GetShaderInfoLog(shader, length, nil, &log[0])
	return strings.TrimRight(string(log), "\x00")
}

// CreateProgram implements interface
func (GL) CreateProgram() uint32 { return gl.CreateProgram() }

// DeleteProgram implements interface
func (GL) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

// AttachShader implements interface
func (GL) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

// DetachShader implements interface
func (GL) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

// LinkProgram implements interface
func (GL) LinkProgram(program uint32) { gl.LinkProgram(program) }

// GetProgrami implements interface
func (GL) GetProgrami(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

// GetProgramInfoLog implements interface
func (d GL) GetProgramInfoLog(program uint32) string {
	length := d.GetProgrami(program, INFO_LOG_LENGTH)
	if length <= 0 {
		return ""
	}
	log := make([]uint8, length)
	gl.GetProgramInfoLog(program, length, nil, &log[0])
	return strings.TrimRight(string(log), "\x00")
}

// UseProgram implements interface
func (GL) UseProgram(program uint32) { gl.UseProgram(program) }

// GetUniformLocation implements interface
func (GL) GetUniformLocation(program uint32, name string) int32 {
	cname, free := gl.Strs(name + "\x00")
	defer free()
	return gl.GetUniformLocation(program, *cname)
}

// ProgramUniform1i implements interface
func (GL) ProgramUniform1i(program uint32, location, v int32) {
	gl.ProgramUniform1i(program, location, v)
}

// ProgramUniform1f implements interface
func (GL) ProgramUniform1f(program uint32, location int32, v float32) {
	gl.ProgramUniform1f(program, location, v)
}

// ProgramUniformfv implements interface. Components selects the
// vector width, v holds one or more vectors.
func (GL) ProgramUniformfv(program uint32, location int32, components int, v []float32) {
	if len(v) == 0 || components <= 0 {
		return
	}
	count := int32(len(v) / components)
	switch components {
	case 1:
		gl.ProgramUniform1fv(program, location, count, &v[0])
	case 2:
		gl.ProgramUniform2fv(program, location, count, &v[0])
	case 3:
		gl.ProgramUniform3fv(program, location, count, &v[0])
	case 4:
		gl.ProgramUniform4fv(program, location, count, &v[0])
	}
}

// ProgramUniformMatrix4fv implements interface
func (GL) ProgramUniformMatrix4fv(program uint32, location int32, m [16]float32) {
	gl.ProgramUniformMatrix4fv(program, location, 1, false, &m[0])
}

// DispatchCompute implements interface
func (GL) DispatchCompute(x, y, z uint32) { gl.DispatchCompute(x, y, z) }
