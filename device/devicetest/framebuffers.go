// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package devicetest

import "github.com/devblok/glowl/device"

// CreateFramebuffer implements device.Driver
func (d *Driver) CreateFramebuffer() uint32 {
	o := d.create(KindFramebuffer, 0)
	d.record("CreateFramebuffer", o.Name)
	return o.Name
}

// DeleteFramebuffer implements device.Driver
func (d *Driver) DeleteFramebuffer(framebuffer uint32) {
	d.record("DeleteFramebuffer", framebuffer)
	d.delete(KindFramebuffer, framebuffer)
}

// BindFramebuffer implements device.Driver
func (d *Driver) BindFramebuffer(target, framebuffer uint32) {
	d.record("BindFramebuffer", target, framebuffer)
	if framebuffer != 0 && d.lookup(KindFramebuffer, framebuffer) == nil {
		return
	}
	switch target {
	case device.FRAMEBUFFER:
		d.bind(device.DRAW_FRAMEBUFFER, -1, framebuffer)
		d.bind(device.READ_FRAMEBUFFER, -1, framebuffer)
	case device.DRAW_FRAMEBUFFER, device.READ_FRAMEBUFFER:
		d.bind(target, -1, framebuffer)
	default:
		d.setError(device.INVALID_ENUM)
	}
}

// NamedFramebufferTexture implements device.Driver
func (d *Driver) NamedFramebufferTexture(framebuffer, attachment, texture uint32, level int32) {
	d.record("NamedFramebufferTexture", framebuffer, attachment, texture, level)
	fb := d.lookup(KindFramebuffer, framebuffer)
	if fb == nil {
		return
	}
	if texture == 0 {
		delete(fb.Attachments, attachment)
		return
	}
	if d.lookup(KindTexture, texture) == nil {
		return
	}
	fb.Attachments[attachment] = texture
}

// NamedFramebufferDrawBuffers implements device.Driver
func (d *Driver) NamedFramebufferDrawBuffers(framebuffer uint32, buffers []uint32) {
	d.record("NamedFramebufferDrawBuffers", framebuffer, append([]uint32(nil), buffers...))
	if fb := d.lookup(KindFramebuffer, framebuffer); fb != nil {
		fb.DrawBuffers = append([]uint32(nil), buffers...)
	}
}

// NamedFramebufferReadBuffer implements device.Driver
func (d *Driver) NamedFramebufferReadBuffer(framebuffer, mode uint32) {
	d.record("NamedFramebufferReadBuffer", framebuffer, mode)
	if fb := d.lookup(KindFramebuffer, framebuffer); fb != nil {
		fb.ReadBuffer = mode
	}
}

// CheckNamedFramebufferStatus implements device.Driver. Unless
// FramebufferStatus overrides it, a framebuffer is complete when it has
// at least one attachment and every draw buffer refers to one.
func (d *Driver) CheckNamedFramebufferStatus(framebuffer, target uint32) uint32 {
	d.record("CheckNamedFramebufferStatus", framebuffer, target)
	if d.FramebufferStatus != 0 {
		return d.FramebufferStatus
	}
	fb := d.lookup(KindFramebuffer, framebuffer)
	if fb == nil {
		return 0
	}
	if len(fb.Attachments) == 0 {
		return device.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT
	}
	for _, buf := range fb.DrawBuffers {
		if buf == device.NONE {
			continue
		}
		if _, ok := fb.Attachments[buf]; !ok {
			return device.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER
		}
	}
	return device.FRAMEBUFFER_COMPLETE
}

// BlitNamedFramebuffer implements device.Driver
func (d *Driver) BlitNamedFramebuffer(readFramebuffer, drawFramebuffer uint32, srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	d.record("BlitNamedFramebuffer", readFramebuffer, drawFramebuffer, srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
	if readFramebuffer != 0 && d.lookup(KindFramebuffer, readFramebuffer) == nil {
		return
	}
	if drawFramebuffer != 0 && d.lookup(KindFramebuffer, drawFramebuffer) == nil {
		return
	}
}
