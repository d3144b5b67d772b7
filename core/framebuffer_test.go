// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"errors"
	"testing"

	"github.com/devblok/glowl/core"
	"github.com/devblok/glowl/device"
	"github.com/devblok/glowl/device/devicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramebufferAttachments(t *testing.T) {
	ctx, d := newContext(t)

	fb, err := core.NewFramebuffer(ctx, "gbuffer", 320, 240, core.Depth24Stencil8)
	require.NoError(t, err)

	depth := fb.DepthStencil()
	require.NotNil(t, depth)
	assert.Equal(t, uint32(device.DEPTH24_STENCIL8), depth.InternalFormat())

	require.NoError(t, fb.CreateColorAttachment(device.RGBA8, device.RGBA, device.UNSIGNED_BYTE))
	require.NoError(t, fb.CreateColorAttachment(device.RGBA32F, device.RGBA, device.FLOAT))
	assert.Equal(t, 2, fb.ColorAttachments())

	obj := d.Object(fb.Name())
	assert.Equal(t, depth.Name(), obj.Attachments[device.DEPTH_STENCIL_ATTACHMENT])
	assert.Equal(t, []uint32{device.COLOR_ATTACHMENT0, device.COLOR_ATTACHMENT0 + 1}, obj.DrawBuffers)

	normals, err := fb.ColorAttachment(1)
	require.NoError(t, err)
	assert.Equal(t, normals.Name(), obj.Attachments[device.COLOR_ATTACHMENT0+1])
	assert.Equal(t, 320, normals.Width())

	_, err = fb.ColorAttachment(2)
	assert.Equal(t, core.ErrNoAttachment, err)

	require.NoError(t, fb.Status())

	assert.Equal(t, 4, d.Live())
	fb.Release()
	fb.Release()
	assertReleased(t, ctx, d)
}

func TestFramebufferBinding(t *testing.T) {
	ctx, d := newContext(t)

	fb, err := core.NewFramebuffer(ctx, "scene", 64, 32, core.DepthStencilNone)
	require.NoError(t, err)
	defer fb.Release()
	require.NoError(t, fb.CreateColorAttachment(device.RGBA8, device.RGBA, device.UNSIGNED_BYTE))

	fb.Bind()
	assert.Equal(t, fb.Name(), d.Bound(device.DRAW_FRAMEBUFFER))
	assert.Equal(t, fb.Name(), d.Bound(device.READ_FRAMEBUFFER))
	assert.Equal(t, [4]int32{0, 0, 64, 32}, d.ViewportRect)

	fb.Unbind()
	assert.Zero(t, d.Bound(device.DRAW_FRAMEBUFFER))
	assert.Zero(t, d.Bound(device.READ_FRAMEBUFFER))

	fb.BindDraw()
	assert.Equal(t, fb.Name(), d.Bound(device.DRAW_FRAMEBUFFER))
	assert.Zero(t, d.Bound(device.READ_FRAMEBUFFER))
	fb.Unbind()

	require.NoError(t, fb.BindRead(0))
	assert.Equal(t, fb.Name(), d.Bound(device.READ_FRAMEBUFFER))
	assert.Equal(t, uint32(device.COLOR_ATTACHMENT0), d.Object(fb.Name()).ReadBuffer)
	assert.Equal(t, core.ErrNoAttachment, fb.BindRead(1))

	require.NoError(t, fb.BindColorbuffer(0, 4))
	color, _ := fb.ColorAttachment(0)
	assert.Equal(t, color.Name(), d.BoundUnit(4))
	assert.Equal(t, core.ErrNoAttachment, fb.BindDepthbuffer(5))
}

func TestFramebufferIncomplete(t *testing.T) {
	ctx, d := newContext(t)

	fb, err := core.NewFramebuffer(ctx, "empty", 16, 16, core.DepthStencilNone)
	require.NoError(t, err)
	defer fb.Release()

	err = fb.Status()
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrFramebufferIncomplete))

	var fbErr *core.FramebufferError
	require.True(t, errors.As(err, &fbErr))
	assert.Equal(t, uint32(device.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT), fbErr.Status)
	assert.Contains(t, err.Error(), "GL_FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT")

	d.FramebufferStatus = device.FRAMEBUFFER_UNSUPPORTED
	err = fb.Status()
	require.True(t, errors.As(err, &fbErr))
	assert.Equal(t, uint32(device.FRAMEBUFFER_UNSUPPORTED), fbErr.Status)
}

func TestFramebufferColorAttachmentLimit(t *testing.T) {
	ctx, d := newContext(t)
	d.Integers[device.MAX_COLOR_ATTACHMENTS] = 1

	fb, err := core.NewFramebuffer(ctx, "limited", 8, 8, core.Depth32F)
	require.NoError(t, err)
	defer fb.Release()

	require.NoError(t, fb.CreateColorAttachment(device.RGBA8, device.RGBA, device.UNSIGNED_BYTE))
	assert.Equal(t, core.ErrNoAttachment, fb.CreateColorAttachment(device.RGBA8, device.RGBA, device.UNSIGNED_BYTE))
	assert.Equal(t, 1, fb.ColorAttachments())

	require.NoError(t, fb.BindDepthbuffer(1))
	assert.Equal(t, fb.DepthStencil().Name(), d.BoundUnit(1))
	assert.Equal(t, fb.Name(), d.Object(fb.Name()).Name)
	assert.NotZero(t, d.Object(fb.Name()).Attachments[device.DEPTH_ATTACHMENT])
}

func TestFramebufferResize(t *testing.T) {
	ctx, d := newContext(t)

	fb, err := core.NewFramebuffer(ctx, "resizable", 100, 50, core.Depth32FStencil8)
	require.NoError(t, err)
	require.NoError(t, fb.CreateColorAttachment(device.RGBA8, device.RGBA, device.UNSIGNED_BYTE))
	require.NoError(t, fb.CreateColorAttachment(device.R8, device.RED, device.UNSIGNED_BYTE))

	name := fb.Name()
	oldColor, _ := fb.ColorAttachment(0)
	oldColorName := oldColor.Name()

	require.NoError(t, fb.Resize(200, 80))
	assert.Equal(t, name, fb.Name())
	assert.Equal(t, 200, fb.Width())
	assert.Equal(t, 80, fb.Height())
	assert.Nil(t, d.Object(oldColorName))

	color, err := fb.ColorAttachment(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(device.R8), color.InternalFormat())
	assert.Equal(t, int32(80), d.Object(color.Name()).Height)
	assert.Equal(t, 3, d.Live(devicetest.KindTexture))
	require.NoError(t, fb.Status())

	fb.Release()
	assert.Equal(t, core.ErrReleased, fb.Resize(1, 1))
	assertReleased(t, ctx, d)
}

func TestFramebufferBlit(t *testing.T) {
	ctx, d := newContext(t)

	src, err := core.NewFramebuffer(ctx, "hdr", 640, 360, core.DepthStencilNone)
	require.NoError(t, err)
	defer src.Release()
	dst, err := core.NewFramebuffer(ctx, "ldr", 1280, 720, core.DepthStencilNone)
	require.NoError(t, err)
	defer dst.Release()

	src.Blit(dst, device.LINEAR)
	src.BlitToDefault(800, 600, device.NEAREST)

	var blits []devicetest.Call
	for _, c := range d.Calls {
		if c.Name == "BlitNamedFramebuffer" {
			blits = append(blits, c)
		}
	}
	require.Len(t, blits, 2)
	assert.Equal(t, []interface{}{src.Name(), dst.Name(),
		int32(0), int32(0), int32(640), int32(360),
		int32(0), int32(0), int32(1280), int32(720),
		uint32(device.COLOR_BUFFER_BIT), uint32(device.LINEAR)}, blits[0].Args)
	assert.Equal(t, uint32(0), blits[1].Args[1])
	assert.Equal(t, int32(800), blits[1].Args[8])
}
