// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"image"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/devblok/glowl/core"
	"github.com/gobuffalo/envy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	envy.Temp(func() {
		cfg, err := parseConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, 800, cfg.Width)
		assert.Equal(t, 600, cfg.Height)
		assert.Equal(t, "quad.dae", cfg.Model)
		assert.Equal(t, 4, cfg.Instances)
		assert.True(t, cfg.Core.Resources.CheckErrors)
		assert.False(t, cfg.Core.Resources.DebugLabels)
	})
}

func TestParseConfigEnvironmentAndFlags(t *testing.T) {
	envy.Temp(func() {
		envy.Set("GLOWL_WIDTH", "1024")
		envy.Set("GLOWL_HEIGHT", "768")
		envy.Set("GLOWL_DEBUG", "true")
		envy.Set("GLOWL_MODEL", "teapot.dae")

		cfg, err := parseConfig([]string{"-height", "512", "-instances", "0"})
		require.NoError(t, err)
		assert.Equal(t, 1024, cfg.Width)
		assert.Equal(t, 512, cfg.Height)
		assert.Equal(t, "teapot.dae", cfg.Model)
		assert.Equal(t, 1, cfg.Instances)
		assert.True(t, cfg.Core.Resources.DebugLabels)
	})
}

func TestParseConfigInvalid(t *testing.T) {
	envy.Temp(func() {
		envy.Set("GLOWL_FPS", "sixty")
		_, err := parseConfig(nil)
		assert.Error(t, err)
	})
	envy.Temp(func() {
		_, err := parseConfig([]string{"-width", "0"})
		assert.Error(t, err)
	})
}

func TestBuiltinShaders(t *testing.T) {
	sources, err := loadShaders(Assets, "", "basic")
	require.NoError(t, err)
	assert.Len(t, sources, 2)
	assert.Contains(t, sources[core.VertexShaderType], "offsets[gl_InstanceID]")

	_, err = loadShaders(Assets, "", "missing")
	assert.ErrorIs(t, err, errAssetNotFound)
}

func TestShaderDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "basic.comp"), []byte("#version 450\nvoid main() {}"), 0644))

	sources, err := loadShaders(Assets, dir, "basic")
	require.NoError(t, err)
	assert.Contains(t, sources, core.ComputeShaderType)
}

func TestLayeredSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "quad.dae"), []byte("override"), 0644))

	src := layeredSource{dirSource(dir), boxSource{Assets}}
	r, err := src.Open("quad.dae")
	require.NoError(t, err)
	data, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	r.Close()
	assert.Equal(t, "override", string(data))

	r, err = src.Open("basic.frag")
	require.NoError(t, err)
	r.Close()

	_, err = src.Open("nothing.png")
	assert.ErrorIs(t, err, errAssetNotFound)
}

func TestFitTexture(t *testing.T) {
	img := checker(64, 4)
	assert.Equal(t, img, fitTexture(img, 0))
	assert.Equal(t, img, fitTexture(img, 64))

	wide := image.NewRGBA(image.Rect(0, 0, 400, 100))
	fitted := fitTexture(wide, 200)
	assert.Equal(t, image.Rect(0, 0, 200, 50), fitted.Bounds())
}
