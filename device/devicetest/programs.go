// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package devicetest

import (
	"strings"

	"github.com/devblok/glowl/device"
)

const (
	compileFailure = "0:1(1): error: syntax error, unexpected end of file"
	linkFailure    = "error: linking failed, unresolved stage inputs"
)

// CreateShader implements device.Driver
func (d *Driver) CreateShader(xtype uint32) uint32 {
	o := d.create(KindShader, 0)
	o.Type = xtype
	d.record("CreateShader", xtype, o.Name)
	return o.Name
}

// DeleteShader implements device.Driver
func (d *Driver) DeleteShader(shader uint32) {
	d.record("DeleteShader", shader)
	d.delete(KindShader, shader)
}

// ShaderSource implements device.Driver
func (d *Driver) ShaderSource(shader uint32, source string) {
	d.record("ShaderSource", shader, len(source))
	if o := d.lookup(KindShader, shader); o != nil {
		o.Source = source
	}
}

// CompileShader implements device.Driver. Compilation fails when
// FailCompile is set or the source is empty.
func (d *Driver) CompileShader(shader uint32) {
	d.record("CompileShader", shader)
	if o := d.lookup(KindShader, shader); o != nil {
		o.Compiled = !d.FailCompile && strings.TrimSpace(o.Source) != ""
	}
}

// GetShaderi implements device.Driver
func (d *Driver) GetShaderi(shader, pname uint32) int32 {
	d.record("GetShaderi", shader, pname)
	o := d.lookup(KindShader, shader)
	if o == nil {
		return 0
	}
	switch pname {
	case device.COMPILE_STATUS:
		if o.Compiled {
			return device.TRUE
		}
		return device.FALSE
	case device.INFO_LOG_LENGTH:
		if o.Compiled {
			return 0
		}
		return int32(len(compileFailure) + 1)
	}
	d.setError(device.INVALID_ENUM)
	return 0
}

// GetShaderInfoLog implements device.Driver
func (d *Driver) GetShaderInfoLog(shader uint32) string {
	d.record("GetShaderInfoLog", shader)
	o := d.lookup(KindShader, shader)
	if o == nil || o.Compiled {
		return ""
	}
	return compileFailure
}

// CreateProgram implements device.Driver
func (d *Driver) CreateProgram() uint32 {
	o := d.create(KindProgram, 0)
	d.record("CreateProgram", o.Name)
	return o.Name
}

// DeleteProgram implements device.Driver
func (d *Driver) DeleteProgram(program uint32) {
	d.record("DeleteProgram", program)
	d.delete(KindProgram, program)
	if d.Program == program {
		d.Program = 0
	}
}

// AttachShader implements device.Driver
func (d *Driver) AttachShader(program, shader uint32) {
	d.record("AttachShader", program, shader)
	p := d.lookup(KindProgram, program)
	if p == nil || d.lookup(KindShader, shader) == nil {
		return
	}
	p.Attached = append(p.Attached, shader)
}

// DetachShader implements device.Driver
func (d *Driver) DetachShader(program, shader uint32) {
	d.record("DetachShader", program, shader)
	p := d.lookup(KindProgram, program)
	if p == nil {
		return
	}
	for idx, s := range p.Attached {
		if s == shader {
			p.Attached = append(p.Attached[:idx], p.Attached[idx+1:]...)
			return
		}
	}
	d.setError(device.INVALID_OPERATION)
}

// LinkProgram implements device.Driver
func (d *Driver) LinkProgram(program uint32) {
	d.record("LinkProgram", program)
	p := d.lookup(KindProgram, program)
	if p == nil {
		return
	}
	p.Linked = !d.FailLink && len(p.Attached) > 0
	for _, s := range p.Attached {
		if o := d.Objects[s]; o == nil || !o.Compiled {
			p.Linked = false
		}
	}
}

// GetProgrami implements device.Driver
func (d *Driver) GetProgrami(program, pname uint32) int32 {
	d.record("GetProgrami", program, pname)
	p := d.lookup(KindProgram, program)
	if p == nil {
		return 0
	}
	switch pname {
	case device.LINK_STATUS:
		if p.Linked {
			return device.TRUE
		}
		return device.FALSE
	case device.INFO_LOG_LENGTH:
		if p.Linked {
			return 0
		}
		return int32(len(linkFailure) + 1)
	}
	d.setError(device.INVALID_ENUM)
	return 0
}

// GetProgramInfoLog implements device.Driver
func (d *Driver) GetProgramInfoLog(program uint32) string {
	d.record("GetProgramInfoLog", program)
	p := d.lookup(KindProgram, program)
	if p == nil || p.Linked {
		return ""
	}
	return linkFailure
}

// UseProgram implements device.Driver
func (d *Driver) UseProgram(program uint32) {
	d.record("UseProgram", program)
	if program != 0 {
		p := d.lookup(KindProgram, program)
		if p == nil {
			return
		}
		if !p.Linked {
			d.setError(device.INVALID_OPERATION)
			return
		}
	}
	d.Program = program
}

// GetUniformLocation implements device.Driver. Names are given
// increasing locations on first lookup; names prefixed with "unused"
// report -1 like uniforms optimised away by a real compiler.
func (d *Driver) GetUniformLocation(program uint32, name string) int32 {
	d.record("GetUniformLocation", program, name)
	p := d.lookup(KindProgram, program)
	if p == nil {
		return -1
	}
	if strings.HasPrefix(name, "unused") {
		return -1
	}
	if loc, ok := p.Uniforms[name]; ok {
		return loc
	}
	loc := int32(len(p.Uniforms))
	p.Uniforms[name] = loc
	return loc
}

func (d *Driver) uniform(program uint32, location int32, values []float32) {
	p := d.lookup(KindProgram, program)
	if p == nil {
		return
	}
	if location < 0 {
		return
	}
	p.Values[location] = values
}

// ProgramUniform1i implements device.Driver
func (d *Driver) ProgramUniform1i(program uint32, location, v int32) {
	d.record("ProgramUniform1i", program, location, v)
	d.uniform(program, location, []float32{float32(v)})
}

// ProgramUniform1f implements device.Driver
func (d *Driver) ProgramUniform1f(program uint32, location int32, v float32) {
	d.record("ProgramUniform1f", program, location, v)
	d.uniform(program, location, []float32{v})
}

// ProgramUniformfv implements device.Driver
func (d *Driver) ProgramUniformfv(program uint32, location int32, components int, v []float32) {
	d.record("ProgramUniformfv", program, location, components, len(v))
	d.uniform(program, location, append([]float32(nil), v...))
}

// ProgramUniformMatrix4fv implements device.Driver
func (d *Driver) ProgramUniformMatrix4fv(program uint32, location int32, m [16]float32) {
	d.record("ProgramUniformMatrix4fv", program, location)
	d.uniform(program, location, m[:])
}

// DispatchCompute implements device.Driver
func (d *Driver) DispatchCompute(x, y, z uint32) {
	d.record("DispatchCompute", x, y, z)
	if d.Program == 0 {
		d.setError(device.INVALID_OPERATION)
	}
}

// Uniform returns the last values set for a named uniform.
func (d *Driver) Uniform(program uint32, name string) []float32 {
	p := d.Objects[program]
	if p == nil {
		return nil
	}
	loc, ok := p.Uniforms[name]
	if !ok {
		return nil
	}
	return p.Values[loc]
}
