// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package devicetest_test

import (
	"testing"

	"github.com/devblok/glowl/device"
	"github.com/devblok/glowl/device/devicetest"
	"github.com/stretchr/testify/assert"
)

func TestUnknownNamesRaiseErrors(t *testing.T) {
	d := devicetest.New()

	d.BindBuffer(device.ARRAY_BUFFER, 42)
	assert.Equal(t, uint32(device.INVALID_OPERATION), d.GetError())
	assert.Equal(t, uint32(device.NO_ERROR), d.GetError())

	d.DeleteTexture(7)
	assert.Equal(t, []uint32{7}, d.InvalidDeletes)
}

func TestDeleteClearsBindings(t *testing.T) {
	d := devicetest.New()

	buffer := d.CreateBuffer()
	d.NamedBufferData(buffer, 16, nil, device.STATIC_DRAW)
	d.BindBufferBase(device.UNIFORM_BUFFER, 2, buffer)
	assert.Equal(t, buffer, d.BoundIndexed(device.UNIFORM_BUFFER, 2))
	assert.Equal(t, buffer, d.Bound(device.UNIFORM_BUFFER))

	d.DeleteBuffer(buffer)
	assert.Zero(t, d.BoundIndexed(device.UNIFORM_BUFFER, 2))
	assert.Zero(t, d.Bound(device.UNIFORM_BUFFER))
	assert.Zero(t, d.Live())
}

func TestBufferDataLengthMustMatchSize(t *testing.T) {
	d := devicetest.New()

	buffer := d.CreateBuffer()
	d.NamedBufferData(buffer, 16, []byte{1, 2}, device.STATIC_DRAW)
	assert.Equal(t, uint32(device.INVALID_VALUE), d.GetError())
	assert.Empty(t, d.Object(buffer).Data)

	d.NamedBufferData(buffer, 4, []byte{1, 2, 3, 4}, device.STATIC_DRAW)
	assert.Equal(t, uint32(device.NO_ERROR), d.GetError())
	assert.Equal(t, []byte{1, 2, 3, 4}, d.Object(buffer).Data)
}

func TestSubImageRejectsShortPixels(t *testing.T) {
	d := devicetest.New()

	tex := d.CreateTexture(device.TEXTURE_2D)
	d.TextureStorage2D(tex, 1, device.RGB8, 3, 2)
	assert.Equal(t, uint32(device.NO_ERROR), d.GetError())

	// rows of 9 bytes are padded to 12, the last row is not
	d.TextureSubImage2D(tex, 0, 0, 0, 3, 2, device.RGB, device.UNSIGNED_BYTE, make([]byte, 20))
	assert.Equal(t, uint32(device.INVALID_VALUE), d.GetError())
	assert.Empty(t, d.Object(tex).Image)

	d.TextureSubImage2D(tex, 0, 0, 0, 3, 2, device.RGB, device.UNSIGNED_BYTE, make([]byte, 21))
	assert.Equal(t, uint32(device.NO_ERROR), d.GetError())
	assert.Len(t, d.Object(tex).Image, 21)

	d.ClearTexImage(tex, 0, device.RGB, device.UNSIGNED_BYTE, []byte{1, 2})
	assert.Equal(t, uint32(device.INVALID_VALUE), d.GetError())
}

func TestImmutableTextureStorage(t *testing.T) {
	d := devicetest.New()

	tex := d.CreateTexture(device.TEXTURE_2D)
	d.TextureStorage2D(tex, 1, device.RGBA8, 4, 4)
	assert.Equal(t, uint32(device.NO_ERROR), d.GetError())

	d.TextureStorage2D(tex, 1, device.RGBA8, 8, 8)
	assert.Equal(t, uint32(device.INVALID_OPERATION), d.GetError())
	assert.Equal(t, int32(4), d.Object(tex).Width)

	d.BindTexture(device.TEXTURE_3D, tex)
	assert.Equal(t, uint32(device.INVALID_OPERATION), d.GetError())
}

func TestFramebufferBindsBothTargets(t *testing.T) {
	d := devicetest.New()

	fb := d.CreateFramebuffer()
	d.BindFramebuffer(device.FRAMEBUFFER, fb)
	assert.Equal(t, fb, d.Bound(device.DRAW_FRAMEBUFFER))
	assert.Equal(t, fb, d.Bound(device.READ_FRAMEBUFFER))
	assert.Equal(t, int32(fb), d.GetInteger(device.DRAW_FRAMEBUFFER_BINDING))

	assert.Equal(t, uint32(device.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT),
		d.CheckNamedFramebufferStatus(fb, device.FRAMEBUFFER))

	d.Reset()
	assert.Empty(t, d.Calls)
	assert.Equal(t, 1, d.Live(devicetest.KindFramebuffer))
}
