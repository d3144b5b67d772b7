// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device_test

import (
	"encoding/json"
	"testing"

	"github.com/devblok/glowl/device"
	"github.com/devblok/glowl/device/devicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	d := devicetest.New()
	d.Strings[device.VENDOR] = "  devblok \n"
	d.Extensions = append(d.Extensions, "GL_ARB_gl_spirv")

	info := device.Query(d)
	assert.Equal(t, "devblok", info.Vendor)
	assert.Equal(t, "4.50", info.ShadingLanguage)
	assert.Equal(t, 16384, info.MaxTextureSize)
	assert.Equal(t, 2048, info.Max3DTextureSize)
	assert.Equal(t, 8, info.MaxColorAttachments)
	assert.Equal(t, []string{"GL_ARB_bindless_texture", "GL_KHR_debug", "GL_ARB_gl_spirv"}, info.Extensions)
	assert.True(t, info.Bindless())
	assert.True(t, info.HasExtension("GL_KHR_debug"))
	assert.False(t, info.HasExtension("GL_NV_mesh_shader"))
	assert.Equal(t, uint32(device.NO_ERROR), d.GetError())

	raw, err := json.Marshal(info)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"renderer":"recording driver"`)
}

func TestQueryWithoutExtensions(t *testing.T) {
	d := devicetest.New()
	d.Extensions = nil

	info := device.Query(d)
	assert.Empty(t, info.Extensions)
	assert.False(t, info.Bindless())
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "GL_INVALID_OPERATION", device.ErrorString(device.INVALID_OPERATION))
	assert.Equal(t, "GL_OUT_OF_MEMORY", device.ErrorString(device.OUT_OF_MEMORY))
	assert.Equal(t, "0x1234", device.ErrorString(0x1234))
}

func TestFramebufferStatusString(t *testing.T) {
	assert.Equal(t, "GL_FRAMEBUFFER_COMPLETE", device.FramebufferStatusString(device.FRAMEBUFFER_COMPLETE))
	assert.Equal(t, "GL_FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER", device.FramebufferStatusString(device.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER))
	assert.Equal(t, "0x0001", device.FramebufferStatusString(1))
}

func TestImageSize(t *testing.T) {
	assert.Equal(t, 4, device.TexelSize(device.RGBA, device.UNSIGNED_BYTE))
	assert.Equal(t, 16, device.TexelSize(device.RGBA, device.FLOAT))
	assert.Equal(t, 8, device.TexelSize(device.DEPTH_STENCIL, device.FLOAT_32_UNSIGNED_INT_24_8_REV))
	assert.Zero(t, device.TexelSize(device.RGBA, device.UNSIGNED_INT_24_8))

	assert.Equal(t, 64*64*4, device.ImageSize(device.RGBA, device.UNSIGNED_BYTE, 64, 64, 1))
	assert.Equal(t, 12*3+9, device.ImageSize(device.RGB, device.UNSIGNED_BYTE, 3, 2, 2))
	assert.Equal(t, 5, device.ImageSize(device.RED, device.UNSIGNED_BYTE, 5, 1, 1))
	assert.Zero(t, device.ImageSize(device.RED, device.UNSIGNED_BYTE, 0, 4, 1))
	assert.Equal(t, -1, device.ImageSize(0x1234, device.UNSIGNED_BYTE, 1, 1, 1))
}
