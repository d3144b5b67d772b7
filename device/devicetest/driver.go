// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package devicetest provides an in-memory device.Driver that records
// every call and keeps enough object state to check how wrappers
// allocate, bind and release driver handles.
package devicetest

import (
	"fmt"

	"github.com/devblok/glowl/device"
)

// Kind identifies the namespace an object was created in.
type Kind int

// Object kinds tracked by the Driver
const (
	KindBuffer Kind = iota
	KindTexture
	KindFramebuffer
	KindVertexArray
	KindShader
	KindProgram
)

func (k Kind) String() string {
	switch k {
	case KindBuffer:
		return "buffer"
	case KindTexture:
		return "texture"
	case KindFramebuffer:
		return "framebuffer"
	case KindVertexArray:
		return "vertex array"
	case KindShader:
		return "shader"
	case KindProgram:
		return "program"
	}
	return "unknown"
}

// Object is the state kept for a live driver object.
type Object struct {
	Kind   Kind
	Name   uint32
	Target uint32
	Label  string

	// buffers
	Data   []byte
	Usage  uint32
	Mapped bool

	// textures
	IntParams      map[uint32]int32
	FloatParams    map[uint32]float32
	InternalFormat uint32
	Levels         int32
	Width          int32
	Height         int32
	Depth          int32
	Image          []byte
	MipmapUpdates  int
	Handle         uint64
	Resident       bool

	// framebuffers
	Attachments map[uint32]uint32
	DrawBuffers []uint32
	ReadBuffer  uint32

	// vertex arrays
	VertexBuffers  map[uint32]uint32
	ElementBuffer  uint32
	EnabledAttribs map[uint32]bool

	// shaders and programs
	Type     uint32
	Source   string
	Compiled bool
	Linked   bool
	Attached []uint32
	Uniforms map[string]int32
	Values   map[int32][]float32
}

// Call is one recorded driver call.
type Call struct {
	Name string
	Args []interface{}
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Binding identifies a binding point. Index is -1 for non-indexed points.
type Binding struct {
	Target uint32
	Index  int32
}

// Draw records a draw call.
type Draw struct {
	Mode        uint32
	First       int32
	Count       int32
	Type        uint32
	Offset      int
	Instances   int32
	VertexArray uint32
	Program     uint32
}

// Driver is a recording device.Driver.
type Driver struct {
	Objects  map[uint32]*Object
	Bindings map[Binding]uint32
	Calls    []Call
	Draws    []Draw

	// InvalidDeletes holds names deleted while not alive.
	InvalidDeletes []uint32

	Strings    map[uint32]string
	Integers   map[uint32]int32
	Extensions []string

	// Failure injection
	FailCompile       bool
	FailLink          bool
	FailMap           bool
	FramebufferStatus uint32

	Program      uint32
	ViewportRect [4]int32

	errors []uint32
	next   uint32
}

var _ device.Driver = (*Driver)(nil)

// New creates an empty recording driver.
func New() *Driver {
	return &Driver{
		Objects:  make(map[uint32]*Object),
		Bindings: make(map[Binding]uint32),
		Strings: map[uint32]string{
			device.VENDOR:                   "devicetest",
			device.RENDERER:                 "recording driver",
			device.VERSION:                  "4.5.0 devicetest",
			device.SHADING_LANGUAGE_VERSION: "4.50",
		},
		Integers: map[uint32]int32{
			device.MAX_TEXTURE_SIZE:      16384,
			device.MAX_3D_TEXTURE_SIZE:   2048,
			device.MAX_COLOR_ATTACHMENTS: 8,
		},
		Extensions: []string{"GL_ARB_bindless_texture", "GL_KHR_debug"},
	}
}

// FailNext queues an error code that the next GetError call returns.
func (d *Driver) FailNext(code uint32) {
	d.errors = append(d.errors, code)
}

// Live returns the number of live objects of the given kinds,
// or of all kinds when none are given.
func (d *Driver) Live(kinds ...Kind) int {
	count := 0
	for _, o := range d.Objects {
		if len(kinds) == 0 {
			count++
			continue
		}
		for _, k := range kinds {
			if o.Kind == k {
				count++
				break
			}
		}
	}
	return count
}

// Object returns the live object with the given name or nil.
func (d *Driver) Object(name uint32) *Object {
	return d.Objects[name]
}

// Bound returns the name bound to a non-indexed binding point.
func (d *Driver) Bound(target uint32) uint32 {
	return d.Bindings[Binding{Target: target, Index: -1}]
}

// BoundIndexed returns the name bound to an indexed binding point.
func (d *Driver) BoundIndexed(target, index uint32) uint32 {
	return d.Bindings[Binding{Target: target, Index: int32(index)}]
}

// CallCount counts recorded calls with the given name.
func (d *Driver) CallCount(name string) int {
	count := 0
	for _, c := range d.Calls {
		if c.Name == name {
			count++
		}
	}
	return count
}

// Reset forgets recorded calls and draws but keeps object state.
func (d *Driver) Reset() {
	d.Calls = nil
	d.Draws = nil
}

func (d *Driver) record(name string, args ...interface{}) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Driver) setError(code uint32) {
	d.errors = append(d.errors, code)
}

func (d *Driver) create(kind Kind, target uint32) *Object {
	d.next++
	o := &Object{
		Kind:           kind,
		Name:           d.next,
		Target:         target,
		IntParams:      make(map[uint32]int32),
		FloatParams:    make(map[uint32]float32),
		Attachments:    make(map[uint32]uint32),
		VertexBuffers:  make(map[uint32]uint32),
		EnabledAttribs: make(map[uint32]bool),
		Uniforms:       make(map[string]int32),
		Values:         make(map[int32][]float32),
	}
	d.Objects[o.Name] = o
	return o
}

func (d *Driver) lookup(kind Kind, name uint32) *Object {
	o, ok := d.Objects[name]
	if !ok || o.Kind != kind {
		d.setError(device.INVALID_OPERATION)
		return nil
	}
	return o
}

func (d *Driver) delete(kind Kind, name uint32) {
	if name == 0 {
		return
	}
	o, ok := d.Objects[name]
	if !ok || o.Kind != kind {
		d.InvalidDeletes = append(d.InvalidDeletes, name)
		return
	}
	delete(d.Objects, name)
	for b, bound := range d.Bindings {
		if bound == name {
			delete(d.Bindings, b)
		}
	}
}

func (d *Driver) bind(target uint32, index int32, name uint32) {
	key := Binding{Target: target, Index: index}
	if name == 0 {
		delete(d.Bindings, key)
		return
	}
	d.Bindings[key] = name
}

// GetError implements device.Driver
func (d *Driver) GetError() uint32 {
	d.record("GetError")
	if len(d.errors) == 0 {
		return device.NO_ERROR
	}
	code := d.errors[0]
	d.errors = d.errors[1:]
	return code
}

// GetInteger implements device.Driver
func (d *Driver) GetInteger(pname uint32) int32 {
	d.record("GetInteger", pname)
	switch pname {
	case device.DRAW_FRAMEBUFFER_BINDING:
		return int32(d.Bound(device.DRAW_FRAMEBUFFER))
	case device.READ_FRAMEBUFFER_BINDING:
		return int32(d.Bound(device.READ_FRAMEBUFFER))
	case device.NUM_EXTENSIONS:
		return int32(len(d.Extensions))
	}
	return d.Integers[pname]
}

// GetString implements device.Driver
func (d *Driver) GetString(name uint32) string {
	d.record("GetString", name)
	return d.Strings[name]
}

// GetStringi implements device.Driver
func (d *Driver) GetStringi(name, index uint32) string {
	d.record("GetStringi", name, index)
	if name != device.EXTENSIONS || int(index) >= len(d.Extensions) {
		d.setError(device.INVALID_VALUE)
		return ""
	}
	return d.Extensions[index]
}

// Viewport implements device.Driver
func (d *Driver) Viewport(x, y, width, height int32) {
	d.record("Viewport", x, y, width, height)
	d.ViewportRect = [4]int32{x, y, width, height}
}

// ObjectLabel implements device.Driver
func (d *Driver) ObjectLabel(identifier, name uint32, label string) {
	d.record("ObjectLabel", identifier, name, label)
	if o, ok := d.Objects[name]; ok {
		o.Label = label
	}
}
