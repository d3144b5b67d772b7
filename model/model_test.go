// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package model_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"unsafe"

	"github.com/devblok/glowl/core"
	"github.com/devblok/glowl/device"
	"github.com/devblok/glowl/device/devicetest"
	"github.com/devblok/glowl/model"
	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadQuad(t *testing.T) *model.Model {
	t.Helper()
	data, err := os.ReadFile("testdata/quad.dae")
	require.NoError(t, err)
	models, err := model.ImportCollada(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, models, 1)
	return models[0]
}

func TestImportCollada(t *testing.T) {
	quad := loadQuad(t)

	assert.Equal(t, "Quad", quad.Name)
	assert.Len(t, quad.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0}, quad.Indices)

	assert.Equal(t, glm.Vec3{1, -1, 0}, quad.Vertices[1].Pos)
	assert.Equal(t, glm.Vec3{0, 0, 1}, quad.Vertices[1].Normal)
	assert.Equal(t, glm.Vec2{1, 1}, quad.Vertices[1].UV)
	assert.Equal(t, glm.Vec2{1, 0}, quad.Vertices[2].UV)

	min, max := quad.Bounds()
	assert.Equal(t, glm.Vec3{-1, -1, 0}, min)
	assert.Equal(t, glm.Vec3{1, 1, 0}, max)
}

func TestImportColladaErrors(t *testing.T) {
	data, err := os.ReadFile("testdata/quad.dae")
	require.NoError(t, err)
	doc := string(data)

	_, err = model.ImportCollada(strings.NewReader(strings.Replace(doc, `<triangles`, `<lines`, 1)))
	assert.Error(t, err)

	noGeometry := `<COLLADA><library_geometries><geometry id="g"><mesh/></geometry></library_geometries></COLLADA>`
	_, err = model.ImportCollada(strings.NewReader(noGeometry))
	assert.True(t, errors.Is(err, model.ErrNoGeometry))

	outOfRange := strings.Replace(doc, "3 0 3 0 0 0</p>", "9 0 3 0 0 0</p>", 1)
	_, err = model.ImportCollada(strings.NewReader(outOfRange))
	assert.Error(t, err)

	partial := strings.Replace(doc, "3 0 3 0 0 0</p>", "3 0 3</p>", 1)
	_, err = model.ImportCollada(strings.NewReader(partial))
	assert.Error(t, err)

	missing := strings.Replace(doc, `source="#Quad-mesh-normals"`, `source="#Quad-mesh-tangents"`, 1)
	_, err = model.ImportCollada(strings.NewReader(missing))
	assert.Error(t, err)
}

func TestImportColladaSeparateLists(t *testing.T) {
	data, err := os.ReadFile("testdata/quad.dae")
	require.NoError(t, err)
	doc := string(data)

	backNormals := `<source id="Quad-mesh-back-normals">
          <float_array id="Quad-mesh-back-normals-array" count="3">0 0 -1</float_array>
          <technique_common>
            <accessor source="#Quad-mesh-back-normals-array" count="1" stride="3"/>
          </technique_common>
        </source>
        <vertices`
	secondList := func(normals string) string {
		return `</triangles>
        <triangles material="Back-material" count="2">
          <input semantic="VERTEX" source="#Quad-mesh-vertices" offset="0"/>
          <input semantic="NORMAL" source="#` + normals + `" offset="1"/>
          <input semantic="TEXCOORD" source="#Quad-mesh-map-0" offset="2" set="0"/>
          <p>0 0 0 1 0 1 2 0 2 2 0 2 3 0 3 0 0 0</p>
        </triangles>`
	}

	twoSided := strings.Replace(doc, "<vertices", backNormals, 1)
	twoSided = strings.Replace(twoSided, "</triangles>", secondList("Quad-mesh-back-normals"), 1)
	models, err := model.ImportCollada(strings.NewReader(twoSided))
	require.NoError(t, err)
	require.Len(t, models, 1)
	quad := models[0]
	require.Len(t, quad.Vertices, 8, "equal indices into different sources stay apart")
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4}, quad.Indices)
	assert.Equal(t, glm.Vec3{0, 0, 1}, quad.Vertices[1].Normal)
	assert.Equal(t, glm.Vec3{0, 0, -1}, quad.Vertices[5].Normal)
	assert.Equal(t, quad.Vertices[1].Pos, quad.Vertices[5].Pos)

	shared := strings.Replace(doc, "</triangles>", secondList("Quad-mesh-normals"), 1)
	models, err = model.ImportCollada(strings.NewReader(shared))
	require.NoError(t, err)
	quad = models[0]
	assert.Len(t, quad.Vertices, 4, "same sources still merge across lists")
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0, 0, 1, 2, 2, 3, 0}, quad.Indices)
}

func TestVertexLayout(t *testing.T) {
	layout := model.VertexLayout()
	assert.Equal(t, int32(32), layout.Stride)
	require.Len(t, layout.Attributes, 3)
	assert.Equal(t, uint32(12), layout.Attributes[1].Offset)
	assert.Equal(t, uint32(24), layout.Attributes[2].Offset)
	assert.Equal(t, int32(unsafe.Sizeof(model.Vertex{})), layout.Stride)
}

func TestUpload(t *testing.T) {
	d := devicetest.New()
	ctx := core.NewContext(d, core.ResourceConfiguration{CheckErrors: true}, nil)

	quad := loadQuad(t)
	mesh, err := quad.Upload(ctx, "quad", device.STATIC_DRAW)
	require.NoError(t, err)

	assert.Equal(t, 6, mesh.IndexCount())
	assert.Equal(t, 4, mesh.VertexCount())
	assert.Equal(t, quad.VertexData(), d.Object(mesh.VertexBuffer(0).Name()).Data)
	assert.Len(t, d.Object(mesh.IndexBuffer().Name()).Data, 24)

	require.NoError(t, mesh.Draw(1))
	assert.Equal(t, uint32(device.UNSIGNED_INT), d.Draws[0].Type)

	mesh.Release()
	assert.Zero(t, d.Live())
}

func TestTransform(t *testing.T) {
	tr := model.NewTransform()
	assert.Equal(t, glm.Ident4(), tr.Matrix())

	tr.SetPosition(glm.Translate3D(1, 2, 3))
	tr.SetRotation(glm.HomogRotate3DZ(glm.DegToRad(90)))
	assert.Equal(t, glm.Translate3D(1, 2, 3), tr.Position())

	p := tr.Matrix().Mul4x1(glm.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 1, p.X(), 1e-6)
	assert.InDelta(t, 3, p.Y(), 1e-6)
	assert.InDelta(t, 3, p.Z(), 1e-6)

	var wg sync.WaitGroup
	for idx := 0; idx < 8; idx++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			tr.SetRotation(glm.HomogRotate3DY(float32(idx)))
			_ = tr.Matrix()
		}(idx)
	}
	wg.Wait()
}

func TestUniformMVP(t *testing.T) {
	u := model.Uniform{
		Model:      glm.Translate3D(0, 0, -5),
		View:       glm.Ident4(),
		Projection: glm.Scale3D(2, 2, 2),
	}
	p := u.MVP().Mul4x1(glm.Vec4{0, 0, 0, 1})
	assert.Equal(t, glm.Vec4{0, 0, -10, 1}, p)
}
