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

func rgba8Layout(width, height int) core.TextureLayout {
	return core.TextureLayout{
		InternalFormat: device.RGBA8,
		Width:          width,
		Height:         height,
		Format:         device.RGBA,
		Type:           device.UNSIGNED_BYTE,
		Levels:         1,
		IntParameters: []core.IntParameter{
			{Name: device.TEXTURE_MIN_FILTER, Value: device.LINEAR},
			{Name: device.TEXTURE_WRAP_S, Value: device.CLAMP_TO_EDGE},
		},
		FloatParameters: []core.FloatParameter{
			{Name: device.TEXTURE_MAX_ANISOTROPY, Value: 4},
		},
	}
}

func TestMipLevels(t *testing.T) {
	for _, tc := range []struct {
		dims   []int
		levels int
	}{
		{[]int{1}, 1},
		{[]int{2}, 2},
		{[]int{256, 256}, 9},
		{[]int{640, 480}, 10},
		{[]int{1, 1024}, 11},
		{[]int{64, 32, 128}, 8},
		{[]int{0, 0}, 1},
	} {
		assert.Equal(t, tc.levels, core.MipLevels(tc.dims...), "dims %v", tc.dims)
	}
}

func TestTexture2DLifecycle(t *testing.T) {
	ctx, d := newContext(t)

	pixels := make([]byte, 4*4*4)
	for idx := range pixels {
		pixels[idx] = byte(idx)
	}

	tex, err := core.NewTexture2D(ctx, "albedo", rgba8Layout(4, 4), pixels)
	require.NoError(t, err)

	obj := d.Object(tex.Name())
	require.NotNil(t, obj)
	assert.Equal(t, uint32(device.TEXTURE_2D), obj.Target)
	assert.Equal(t, int32(1), obj.Levels)
	assert.Equal(t, int32(4), obj.Width)
	assert.Equal(t, int32(4), obj.Height)
	assert.Equal(t, uint32(device.RGBA8), obj.InternalFormat)
	assert.Equal(t, int32(device.LINEAR), obj.IntParams[device.TEXTURE_MIN_FILTER])
	assert.Equal(t, float32(4), obj.FloatParams[device.TEXTURE_MAX_ANISOTROPY])
	assert.Equal(t, pixels, obj.Image)
	assert.Zero(t, tex.Handle())

	layout := tex.Layout()
	assert.Equal(t, 4, layout.Width)
	assert.Equal(t, 4, layout.Height)
	assert.Equal(t, uint32(device.RGBA), layout.Format)

	tex.Bind()
	assert.Equal(t, tex.Name(), d.Bound(device.TEXTURE_2D))
	tex.Unbind()
	assert.Zero(t, d.Bound(device.TEXTURE_2D))

	tex.BindUnit(2)
	assert.Equal(t, tex.Name(), d.BoundUnit(2))

	tex.BindImage(1, device.READ_WRITE)
	assert.Equal(t, tex.Name(), d.BoundImage(1))

	tex.Release()
	tex.Release()
	assert.Zero(t, d.BoundUnit(2))
	assert.Equal(t, 1, d.CallCount("DeleteTexture"))
	assertReleased(t, ctx, d)
}

func TestTexture2DWithoutData(t *testing.T) {
	ctx, d := newContext(t)

	tex, err := core.NewTexture2D(ctx, "target", rgba8Layout(8, 2), nil)
	require.NoError(t, err)
	defer tex.Release()

	assert.Zero(t, d.CallCount("TextureSubImage2D"))
	assert.Equal(t, int32(8), d.Object(tex.Name()).Width)
}

func TestTexture2DGenerateMipmap(t *testing.T) {
	ctx, d := newContext(t)

	tex, err := core.NewTexture2D(ctx, "mipped", rgba8Layout(64, 16), make([]byte, 64*16*4), core.GenerateMipmap())
	require.NoError(t, err)
	defer tex.Release()

	assert.Equal(t, 7, tex.Levels())
	assert.Equal(t, int32(7), d.Object(tex.Name()).Levels)
	assert.Equal(t, 1, d.Object(tex.Name()).MipmapUpdates)

	tex.UpdateMipmaps()
	assert.Equal(t, 2, d.Object(tex.Name()).MipmapUpdates)

	layout := rgba8Layout(64, 16)
	layout.Levels = 3
	custom, err := core.NewTexture2D(ctx, "custom", layout, nil, core.GenerateMipmap(), core.CustomLevels())
	require.NoError(t, err)
	defer custom.Release()
	assert.Equal(t, 3, custom.Levels())
}

func TestTexture2DReloadReplacesHandle(t *testing.T) {
	ctx, d := newContext(t)

	tex, err := core.NewTexture2D(ctx, "albedo", rgba8Layout(2, 2), make([]byte, 16))
	require.NoError(t, err)
	first := tex.Name()

	pixels := make([]byte, 8*8*4)
	pixels[0] = 0xff
	require.NoError(t, tex.Reload(rgba8Layout(8, 8), pixels))

	assert.NotEqual(t, first, tex.Name())
	assert.Nil(t, d.Object(first))
	assert.Equal(t, 1, d.Live())
	assert.Equal(t, 1, ctx.Live())
	assert.Equal(t, 8, tex.Width())
	assert.Equal(t, pixels, d.Object(tex.Name()).Image)

	tex.Release()
	assertReleased(t, ctx, d)
}

func TestTexture2DFailedConstruction(t *testing.T) {
	ctx, d := newContext(t)

	tex, err := core.NewTexture2D(ctx, "broken", rgba8Layout(0, 4), nil)
	require.Error(t, err)
	assert.Nil(t, tex)

	var glErr *core.Error
	require.True(t, errors.As(err, &glErr))
	assert.Equal(t, uint32(device.INVALID_VALUE), glErr.Code)
	assert.Equal(t, "Texture2D.New", glErr.Op)
	assert.Equal(t, "texture", glErr.Kind)
	assertReleased(t, ctx, d)
}

func TestTexturePixelDataTooShort(t *testing.T) {
	ctx, d := newContext(t)

	tex, err := core.NewTexture2D(ctx, "short", rgba8Layout(64, 64), []byte{1, 2, 3, 4})
	assert.True(t, errors.Is(err, core.ErrOutOfRange))
	assert.Nil(t, tex)
	assert.Zero(t, d.CallCount("TextureSubImage2D"))
	assertReleased(t, ctx, d)

	volume := core.TextureLayout{
		InternalFormat: device.RGBA32F,
		Width:          2,
		Height:         2,
		Depth:          2,
		Format:         device.RGBA,
		Type:           device.FLOAT,
		Levels:         1,
	}
	_, err = core.NewTexture3D(ctx, "volume", volume, make([]byte, 2*2*2*16-1))
	assert.True(t, errors.Is(err, core.ErrOutOfRange))

	unknown := rgba8Layout(2, 2)
	unknown.Type = 0x1234
	_, err = core.NewTexture2D(ctx, "odd", unknown, make([]byte, 64))
	assert.True(t, errors.Is(err, core.ErrPixelFormat))

	tex, err = core.NewTexture2D(ctx, "kept", rgba8Layout(2, 2), make([]byte, 16))
	require.NoError(t, err)
	name := tex.Name()
	assert.True(t, errors.Is(tex.Reload(rgba8Layout(4, 4), make([]byte, 16)), core.ErrOutOfRange))
	assert.Equal(t, name, tex.Name(), "a rejected reload keeps the texture")

	assert.True(t, errors.Is(tex.Clear([]byte{1, 2}, 0), core.ErrOutOfRange))
	assert.Zero(t, d.CallCount("ClearTexImage"))

	tex.Release()
	assertReleased(t, ctx, d)
}

func TestTexture2DClearAndRead(t *testing.T) {
	ctx, _ := newContext(t)

	tex, err := core.NewTexture2D(ctx, "clear", rgba8Layout(2, 1), make([]byte, 8))
	require.NoError(t, err)
	defer tex.Release()

	require.NoError(t, tex.Clear([]byte{1, 2, 3, 4}, 0))
	out := make([]byte, 8)
	require.NoError(t, tex.Read(0, out))
	assert.Equal(t, []byte{1, 2, 3, 4, 1, 2, 3, 4}, out)

	require.NoError(t, tex.Clear(nil, 0))
	require.NoError(t, tex.Read(0, out))
	assert.Equal(t, make([]byte, 8), out)

	assert.Error(t, tex.Read(3, out))
}

func TestTexture2DCopyRestoresFramebuffers(t *testing.T) {
	ctx, d := newContext(t)

	src, err := core.NewTexture2D(ctx, "src", rgba8Layout(1, 2), []byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	dst, err := core.NewTexture2D(ctx, "dst", rgba8Layout(1, 2), nil)
	require.NoError(t, err)

	fb, err := core.NewFramebuffer(ctx, "scene", 1, 2, core.DepthStencilNone)
	require.NoError(t, err)
	fb.BindDraw()

	require.NoError(t, dst.Copy(src))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, d.Object(dst.Name()).Image)

	assert.Equal(t, fb.Name(), d.Bound(device.DRAW_FRAMEBUFFER))
	assert.Zero(t, d.Bound(device.READ_FRAMEBUFFER))
	assert.Zero(t, d.Bound(device.TEXTURE_2D))
	assert.Equal(t, 2, d.CallCount("CreateFramebuffer"))
	assert.Equal(t, 1, d.Live(devicetest.KindFramebuffer))

	fb.Release()
	src.Release()
	dst.Release()
	assertReleased(t, ctx, d)
}

func TestTextureBindless(t *testing.T) {
	ctx, d, _ := newContextWith(core.ResourceConfiguration{CheckErrors: true, BindlessTextures: true})

	tex, err := core.NewTexture2D(ctx, "bindless", rgba8Layout(2, 2), nil)
	require.NoError(t, err)
	require.NotZero(t, tex.Handle())

	require.NoError(t, tex.MakeResident())
	assert.True(t, d.Object(tex.Name()).Resident)
	require.NoError(t, tex.MakeResident())
	assert.Equal(t, 1, d.CallCount("MakeTextureHandleResident"))

	tex.MakeNonResident()
	assert.False(t, d.Object(tex.Name()).Resident)

	require.NoError(t, tex.MakeResident())
	tex.Release()
	assert.Equal(t, 2, d.CallCount("MakeTextureHandleNonResident"))
	assert.Zero(t, tex.Handle())
	assert.Equal(t, core.ErrReleased, tex.MakeResident())
	assertReleased(t, ctx, d)
}

func TestTexture1D(t *testing.T) {
	ctx, d := newContext(t)

	layout := core.TextureLayout{
		InternalFormat: device.R8,
		Width:          16,
		Format:         device.RED,
		Type:           device.UNSIGNED_BYTE,
		Levels:         1,
	}
	tex, err := core.NewTexture1D(ctx, "ramp", layout, make([]byte, 16), core.GenerateMipmap())
	require.NoError(t, err)

	assert.Equal(t, uint32(device.TEXTURE_1D), tex.Target())
	assert.Equal(t, 5, tex.Levels())
	assert.Equal(t, 16, tex.Width())
	assert.Equal(t, 1, d.CallCount("TextureSubImage1D"))

	tex.Bind()
	assert.Equal(t, tex.Name(), d.Bound(device.TEXTURE_1D))

	layout.Width = 32
	require.NoError(t, tex.Reload(layout, nil))
	assert.Equal(t, 32, tex.Layout().Width)
	assert.Equal(t, 1, d.Live())

	tex.Release()
	assertReleased(t, ctx, d)
}

func TestTexture3D(t *testing.T) {
	ctx, d := newContext(t)

	layout := core.TextureLayout{
		InternalFormat: device.RGBA32F,
		Width:          4,
		Height:         4,
		Depth:          8,
		Format:         device.RGBA,
		Type:           device.FLOAT,
		Levels:         1,
	}
	tex, err := core.NewTexture3D(ctx, "volume", layout, make([]byte, 4*4*8*16))
	require.NoError(t, err)

	obj := d.Object(tex.Name())
	assert.Equal(t, uint32(device.TEXTURE_3D), obj.Target)
	assert.Equal(t, int32(8), obj.Depth)
	assert.Equal(t, 8, tex.Depth())
	assert.Equal(t, 4, tex.Height())
	assert.Equal(t, 1, d.CallCount("TextureSubImage3D"))

	var texture core.Texture = tex
	texture.BindImage(0, device.WRITE_ONLY)
	assert.Equal(t, tex.Name(), d.BoundImage(0))

	tex.Release()
	assertReleased(t, ctx, d)
}
