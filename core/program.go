// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"sort"

	"github.com/devblok/glowl/device"
	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

const programKind = "program"

func (s ShaderType) String() string {
	switch s {
	case VertexShaderType:
		return "vertex"
	case FragmentShaderType:
		return "fragment"
	case GeometryShaderType:
		return "geometry"
	case TessControlShaderType:
		return "tessellation control"
	case TessEvaluationShaderType:
		return "tessellation evaluation"
	case ComputeShaderType:
		return "compute"
	}
	return "unknown"
}

// GLType returns the driver enum for the stage, zero for UnknownShaderType.
func (s ShaderType) GLType() uint32 {
	switch s {
	case VertexShaderType:
		return device.VERTEX_SHADER
	case FragmentShaderType:
		return device.FRAGMENT_SHADER
	case GeometryShaderType:
		return device.GEOMETRY_SHADER
	case TessControlShaderType:
		return device.TESS_CONTROL_SHADER
	case TessEvaluationShaderType:
		return device.TESS_EVALUATION_SHADER
	case ComputeShaderType:
		return device.COMPUTE_SHADER
	}
	return 0
}

// NewProgram compiles and links a program from per stage sources.
// Shader objects are deleted once linking is done. Compile and link
// failures are returned as *ShaderError regardless of CheckErrors.
func NewProgram(ctx *Context, id string, sources map[ShaderType]string) (*Program, error) {
	p := &Program{
		ctx:      ctx,
		id:       id,
		uniforms: make(map[string]int32),
	}

	stages := make([]ShaderType, 0, len(sources))
	for stage := range sources {
		if stage.GLType() == 0 {
			return nil, &ShaderError{ID: id, Stage: stage, Log: "unsupported shader stage"}
		}
		stages = append(stages, stage)
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i] < stages[j] })

	d := ctx.driver
	p.name = d.CreateProgram()
	ctx.acquired(programKind, id, p.name)
	ctx.label(device.PROGRAM, p.name, id)

	shaders := make([]uint32, 0, len(stages))
	defer func() {
		for _, shader := range shaders {
			if p.name != 0 {
				d.DetachShader(p.name, shader)
			}
			d.DeleteShader(shader)
		}
	}()

	for _, stage := range stages {
		shader := d.CreateShader(stage.GLType())
		shaders = append(shaders, shader)
		d.ShaderSource(shader, sources[stage])
		d.CompileShader(shader)
		if d.GetShaderi(shader, device.COMPILE_STATUS) == device.FALSE {
			err := &ShaderError{ID: id, Stage: stage, Log: d.GetShaderInfoLog(shader)}
			p.Release()
			return nil, err
		}
		d.AttachShader(p.name, shader)
	}

	d.LinkProgram(p.name)
	if d.GetProgrami(p.name, device.LINK_STATUS) == device.FALSE {
		err := &ShaderError{ID: id, Stage: UnknownShaderType, Log: d.GetProgramInfoLog(p.name)}
		p.Release()
		return nil, err
	}

	if err := ctx.Check("Program.New", programKind, id); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

// Program owns a linked shader program.
type Program struct {
	ctx *Context

	id   string
	name uint32

	uniforms map[string]int32
}

// ID implements Resource
func (p *Program) ID() string { return p.id }

// Name implements Resource
func (p *Program) Name() uint32 { return p.name }

// Use makes the program current.
func (p *Program) Use() {
	p.ctx.driver.UseProgram(p.name)
}

// Unuse clears the current program.
func (p *Program) Unuse() {
	p.ctx.driver.UseProgram(0)
}

// Dispatch makes the program current and launches compute work groups.
func (p *Program) Dispatch(x, y, z uint32) error {
	if p.name == 0 {
		return ErrReleased
	}
	p.ctx.driver.UseProgram(p.name)
	p.ctx.driver.DispatchCompute(x, y, z)
	return p.ctx.Check("Program.Dispatch", programKind, p.id)
}

// UniformLocation returns the cached location of a uniform, -1 when the
// program does not use it.
func (p *Program) UniformLocation(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := p.ctx.driver.GetUniformLocation(p.name, name)
	if loc < 0 {
		p.ctx.log.WithFields(log.Fields{
			"resource": programKind,
			"id":       p.id,
			"uniform":  name,
		}).Debug("uniform not active")
	}
	p.uniforms[name] = loc
	return loc
}

// SetInt sets an int or sampler uniform. Inactive uniforms are skipped.
func (p *Program) SetInt(name string, v int32) {
	if loc := p.UniformLocation(name); loc >= 0 {
		p.ctx.driver.ProgramUniform1i(p.name, loc, v)
	}
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	if loc := p.UniformLocation(name); loc >= 0 {
		p.ctx.driver.ProgramUniform1f(p.name, loc, v)
	}
}

// SetVec2 sets a vec2 uniform.
func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	if loc := p.UniformLocation(name); loc >= 0 {
		p.ctx.driver.ProgramUniformfv(p.name, loc, 2, v[:])
	}
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	if loc := p.UniformLocation(name); loc >= 0 {
		p.ctx.driver.ProgramUniformfv(p.name, loc, 3, v[:])
	}
}

// SetVec4 sets a vec4 uniform.
func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	if loc := p.UniformLocation(name); loc >= 0 {
		p.ctx.driver.ProgramUniformfv(p.name, loc, 4, v[:])
	}
}

// SetMat4 sets a column major mat4 uniform.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.UniformLocation(name); loc >= 0 {
		p.ctx.driver.ProgramUniformMatrix4fv(p.name, loc, m)
	}
}

// Release deletes the program.
func (p *Program) Release() {
	if p.name == 0 {
		return
	}
	p.ctx.driver.DeleteProgram(p.name)
	p.ctx.released(programKind, p.id, p.name)
	p.name = 0
}
