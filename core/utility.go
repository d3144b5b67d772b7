// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"
	"image"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	"github.com/devblok/glowl/device"
	"golang.org/x/image/draw"
)

// shaderSuffixes maps file suffixes to shader stages
var shaderSuffixes = map[string]ShaderType{
	"vert": VertexShaderType,
	"frag": FragmentShaderType,
	"geom": GeometryShaderType,
	"tesc": TessControlShaderType,
	"tese": TessEvaluationShaderType,
	"comp": ComputeShaderType,
}

// ParseShaderName splits a shader file name of the form
// <program>.<stage>[.glsl] into the program name and its stage.
// Names that do not follow the form report UnknownShaderType.
func ParseShaderName(file string) (string, ShaderType) {
	base := strings.TrimSuffix(filepath.Base(file), ".glsl")
	nodes := strings.Split(base, ".")
	if len(nodes) != 2 {
		return "", UnknownShaderType
	}
	stage, ok := shaderSuffixes[nodes[1]]
	if !ok {
		return "", UnknownShaderType
	}
	return nodes[0], stage
}

// LoadProgramSources walks a directory and groups shader sources by
// program name. Files not named after a shader stage are ignored.
func LoadProgramSources(dir string) (map[string]map[ShaderType]string, error) {
	programs := make(map[string]map[ShaderType]string)
	if err := filepath.Walk(dir, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if f.IsDir() {
			return nil
		}

		name, stage := ParseShaderName(f.Name())
		if stage == UnknownShaderType {
			return nil
		}

		source, err := ioutil.ReadFile(path)
		if err != nil {
			return err
		}
		if programs[name] == nil {
			programs[name] = make(map[ShaderType]string)
		}
		if _, ok := programs[name][stage]; ok {
			return fmt.Errorf("%s: duplicate %s shader for program %s", path, stage, name)
		}
		programs[name][stage] = string(source)
		return nil
	}); err != nil {
		return nil, err
	}
	return programs, nil
}

// Bytes reinterprets a slice of plain values as its backing bytes,
// without copying. Used to upload vertex and index data.
func Bytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*int(unsafe.Sizeof(zero)))
}

// Slice reinterprets bytes as a slice of plain values, without copying.
// Trailing bytes that do not form a whole value are dropped.
func Slice[T any](data []byte) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if len(data) < size || size == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), len(data)/size)
}

// GetPixels transforms a given image into tightly packed RGBA8 pixels
// by drawing the decoded image onto a controlled RGBA canvas
func GetPixels(img image.Image) []uint8 {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == 4*rgba.Rect.Dx() && rgba.Rect.Min == (image.Point{}) {
		return rgba.Pix
	}
	b := img.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), img, b.Min, draw.Src)
	return canvas.Pix
}

// TextureFromImage converts an image into RGBA8 pixels and a matching
// 2D layout with linear filtering and repeat wrapping.
func TextureFromImage(img image.Image) (TextureLayout, []byte) {
	b := img.Bounds()
	layout := TextureLayout{
		InternalFormat: device.RGBA8,
		Width:          b.Dx(),
		Height:         b.Dy(),
		Format:         device.RGBA,
		Type:           device.UNSIGNED_BYTE,
		Levels:         1,
		IntParameters: []IntParameter{
			{device.TEXTURE_MIN_FILTER, device.LINEAR_MIPMAP_LINEAR},
			{device.TEXTURE_MAG_FILTER, device.LINEAR},
			{device.TEXTURE_WRAP_S, device.REPEAT},
			{device.TEXTURE_WRAP_T, device.REPEAT},
		},
	}
	return layout, GetPixels(img)
}

// ScaleImage resamples an image to the given size, e.g. to fit
// MAX_TEXTURE_SIZE.
func ScaleImage(img image.Image, width, height int) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(canvas, canvas.Bounds(), img, img.Bounds(), draw.Src, nil)
	return canvas
}
