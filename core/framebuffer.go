// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"

	"github.com/devblok/glowl/device"
)

const framebufferKind = "framebuffer"

// DepthStencilType selects the depth/stencil attachment of a Framebuffer.
type DepthStencilType int

// Supported depth/stencil attachments
const (
	DepthStencilNone DepthStencilType = iota
	Depth24Stencil8
	Depth32FStencil8
	Depth32F
)

func (t DepthStencilType) formats() (internalFormat, format, xtype, attachment uint32) {
	switch t {
	case Depth24Stencil8:
		return device.DEPTH24_STENCIL8, device.DEPTH_STENCIL, device.UNSIGNED_INT_24_8, device.DEPTH_STENCIL_ATTACHMENT
	case Depth32FStencil8:
		return device.DEPTH32F_STENCIL8, device.DEPTH_STENCIL, device.FLOAT_32_UNSIGNED_INT_24_8_REV, device.DEPTH_STENCIL_ATTACHMENT
	case Depth32F:
		return device.DEPTH_COMPONENT32F, device.DEPTH_COMPONENT, device.FLOAT, device.DEPTH_ATTACHMENT
	}
	return 0, 0, 0, 0
}

type colorFormat struct {
	internalFormat uint32
	format         uint32
	xtype          uint32
}

// NewFramebuffer creates a framebuffer of the given size with an optional
// depth/stencil attachment. Colour attachments are added with
// CreateColorAttachment.
func NewFramebuffer(ctx *Context, id string, width, height int, depthStencil DepthStencilType) (*Framebuffer, error) {
	f := &Framebuffer{
		ctx:          ctx,
		id:           id,
		width:        width,
		height:       height,
		depthStencil: depthStencil,
	}
	f.name = ctx.driver.CreateFramebuffer()
	ctx.acquired(framebufferKind, id, f.name)
	ctx.label(device.FRAMEBUFFER, f.name, id)

	if err := f.createDepthStencil(); err != nil {
		f.Release()
		return nil, err
	}
	if err := ctx.Check("Framebuffer.New", framebufferKind, id); err != nil {
		f.Release()
		return nil, err
	}
	return f, nil
}

// Framebuffer owns a framebuffer object and the textures attached to it.
type Framebuffer struct {
	ctx *Context

	id     string
	name   uint32
	width  int
	height int

	depthStencil DepthStencilType
	depth        *Texture2D

	formats []colorFormat
	colors  []*Texture2D
}

// ID implements Resource
func (f *Framebuffer) ID() string { return f.id }

// Name implements Resource
func (f *Framebuffer) Name() uint32 { return f.name }

// Width returns the width of all attachments.
func (f *Framebuffer) Width() int { return f.width }

// Height returns the height of all attachments.
func (f *Framebuffer) Height() int { return f.height }

// ColorAttachments returns the number of colour attachments.
func (f *Framebuffer) ColorAttachments() int { return len(f.colors) }

// ColorAttachment returns the texture at a colour attachment index.
func (f *Framebuffer) ColorAttachment(index int) (*Texture2D, error) {
	if index < 0 || index >= len(f.colors) {
		return nil, ErrNoAttachment
	}
	return f.colors[index], nil
}

// DepthStencil returns the depth/stencil texture or nil.
func (f *Framebuffer) DepthStencil() *Texture2D { return f.depth }

func attachmentLayout(internalFormat, format, xtype uint32, width, height int) TextureLayout {
	return TextureLayout{
		InternalFormat: internalFormat,
		Width:          width,
		Height:         height,
		Format:         format,
		Type:           xtype,
		Levels:         1,
		IntParameters: []IntParameter{
			{device.TEXTURE_MIN_FILTER, device.NEAREST},
			{device.TEXTURE_MAG_FILTER, device.NEAREST},
			{device.TEXTURE_WRAP_S, device.CLAMP_TO_EDGE},
			{device.TEXTURE_WRAP_T, device.CLAMP_TO_EDGE},
		},
	}
}

func (f *Framebuffer) createDepthStencil() error {
	if f.depthStencil == DepthStencilNone {
		return nil
	}
	internalFormat, format, xtype, attachment := f.depthStencil.formats()
	depth, err := NewTexture2D(f.ctx, f.id+":depth", attachmentLayout(internalFormat, format, xtype, f.width, f.height), nil)
	if err != nil {
		return err
	}
	f.depth = depth
	f.ctx.driver.NamedFramebufferTexture(f.name, attachment, depth.name, 0)
	return nil
}

func (f *Framebuffer) createColor(index int, cf colorFormat) error {
	tex, err := NewTexture2D(f.ctx, fmt.Sprintf("%s:color%d", f.id, index),
		attachmentLayout(cf.internalFormat, cf.format, cf.xtype, f.width, f.height), nil)
	if err != nil {
		return err
	}
	f.ctx.driver.NamedFramebufferTexture(f.name, device.COLOR_ATTACHMENT0+uint32(index), tex.name, 0)
	f.colors = append(f.colors, tex)
	return nil
}

func (f *Framebuffer) drawBuffers() []uint32 {
	buffers := make([]uint32, len(f.colors))
	for idx := range f.colors {
		buffers[idx] = device.COLOR_ATTACHMENT0 + uint32(idx)
	}
	return buffers
}

// CreateColorAttachment adds a colour texture at the next attachment
// point and enables it as a draw buffer.
func (f *Framebuffer) CreateColorAttachment(internalFormat, format, xtype uint32) error {
	if f.name == 0 {
		return ErrReleased
	}
	max := int(f.ctx.driver.GetInteger(device.MAX_COLOR_ATTACHMENTS))
	if max > 0 && len(f.colors) >= max {
		return ErrNoAttachment
	}
	cf := colorFormat{internalFormat, format, xtype}
	if err := f.createColor(len(f.colors), cf); err != nil {
		return err
	}
	f.formats = append(f.formats, cf)
	f.ctx.driver.NamedFramebufferDrawBuffers(f.name, f.drawBuffers())
	return f.ctx.Check("Framebuffer.CreateColorAttachment", framebufferKind, f.id)
}

// Status checks framebuffer completeness.
func (f *Framebuffer) Status() error {
	if f.name == 0 {
		return ErrReleased
	}
	status := f.ctx.driver.CheckNamedFramebufferStatus(f.name, device.FRAMEBUFFER)
	if status != device.FRAMEBUFFER_COMPLETE {
		return &FramebufferError{ID: f.id, Status: status}
	}
	return nil
}

// Bind binds the framebuffer for drawing and reading and sets the
// viewport to cover it.
func (f *Framebuffer) Bind() {
	f.ctx.driver.BindFramebuffer(device.FRAMEBUFFER, f.name)
	f.ctx.driver.Viewport(0, 0, int32(f.width), int32(f.height))
}

// BindDraw binds the framebuffer for drawing only.
func (f *Framebuffer) BindDraw() {
	f.ctx.driver.BindFramebuffer(device.DRAW_FRAMEBUFFER, f.name)
}

// BindRead binds the framebuffer for reading from a colour attachment.
func (f *Framebuffer) BindRead(index int) error {
	if index < 0 || index >= len(f.colors) {
		return ErrNoAttachment
	}
	f.ctx.driver.BindFramebuffer(device.READ_FRAMEBUFFER, f.name)
	f.ctx.driver.NamedFramebufferReadBuffer(f.name, device.COLOR_ATTACHMENT0+uint32(index))
	return nil
}

// Unbind restores the default framebuffer.
func (f *Framebuffer) Unbind() {
	f.ctx.driver.BindFramebuffer(device.FRAMEBUFFER, 0)
}

// BindColorbuffer binds a colour attachment to a texture unit.
func (f *Framebuffer) BindColorbuffer(index int, unit uint32) error {
	tex, err := f.ColorAttachment(index)
	if err != nil {
		return err
	}
	tex.BindUnit(unit)
	return nil
}

// BindDepthbuffer binds the depth/stencil attachment to a texture unit.
func (f *Framebuffer) BindDepthbuffer(unit uint32) error {
	if f.depth == nil {
		return ErrNoAttachment
	}
	f.depth.BindUnit(unit)
	return nil
}

// Blit copies the colour contents into dst, scaling to its size.
func (f *Framebuffer) Blit(dst *Framebuffer, filter uint32) {
	f.ctx.driver.BlitNamedFramebuffer(f.name, dst.name,
		0, 0, int32(f.width), int32(f.height),
		0, 0, int32(dst.width), int32(dst.height),
		device.COLOR_BUFFER_BIT, filter)
}

// BlitToDefault copies the colour contents into the default framebuffer
// of the given size.
func (f *Framebuffer) BlitToDefault(width, height int, filter uint32) {
	f.ctx.driver.BlitNamedFramebuffer(f.name, 0,
		0, 0, int32(f.width), int32(f.height),
		0, 0, int32(width), int32(height),
		device.COLOR_BUFFER_BIT, filter)
}

// Resize recreates every attachment with a new size. The framebuffer
// handle itself is kept.
func (f *Framebuffer) Resize(width, height int) error {
	if f.name == 0 {
		return ErrReleased
	}
	f.releaseAttachments()
	f.width = width
	f.height = height

	if err := f.createDepthStencil(); err != nil {
		return err
	}
	for idx, cf := range f.formats {
		if err := f.createColor(idx, cf); err != nil {
			return err
		}
	}
	f.ctx.driver.NamedFramebufferDrawBuffers(f.name, f.drawBuffers())
	return f.ctx.Check("Framebuffer.Resize", framebufferKind, f.id)
}

func (f *Framebuffer) releaseAttachments() {
	for _, tex := range f.colors {
		tex.Release()
	}
	f.colors = f.colors[:0]
	if f.depth != nil {
		f.depth.Release()
		f.depth = nil
	}
}

// Release deletes the attachments and the framebuffer.
func (f *Framebuffer) Release() {
	if f.name == 0 {
		return
	}
	f.releaseAttachments()
	f.ctx.driver.DeleteFramebuffer(f.name)
	f.ctx.released(framebufferKind, f.id, f.name)
	f.name = 0
}
