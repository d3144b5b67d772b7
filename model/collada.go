// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package model

import (
	"errors"
	"fmt"
	"io"

	"github.com/devblok/glowl/util/collada"
	glm "github.com/go-gl/mathgl/mgl32"
)

// ErrNoGeometry is returned for documents without triangle geometry
var ErrNoGeometry = errors.New("model: no triangle geometry")

// ImportCollada reads a COLLADA document and converts every geometry
// into a Model. Vertices reading the same position, normal and texture
// coordinate elements are merged.
func ImportCollada(r io.Reader) ([]*Model, error) {
	doc, err := collada.Decode(r)
	if err != nil {
		return nil, err
	}

	var models []*Model
	for idx := range doc.Geometries {
		geometry := &doc.Geometries[idx]
		if len(geometry.Mesh.Triangles) == 0 {
			continue
		}
		m, err := convertGeometry(geometry)
		if err != nil {
			return nil, fmt.Errorf("geometry %s: %w", geometry.ID, err)
		}
		models = append(models, m)
	}
	if len(models) == 0 {
		return nil, ErrNoGeometry
	}
	return models, nil
}

// vertexKey identifies a unique combination of sources and the
// indices into them. Triangle lists may bind different sources to the
// same semantic, so indices alone do not name a vertex.
type vertexKey struct {
	positionSrc, normalSrc, uvSrc *collada.Source

	position int
	normal   int
	uv       int
}

type sources struct {
	position *collada.Source
	normal   *collada.Source
	uv       *collada.Source

	positionOffset int
	normalOffset   int
	uvOffset       int
}

func resolve(mesh *collada.Mesh, triangles *collada.Triangles) (sources, error) {
	s := sources{positionOffset: -1, normalOffset: -1, uvOffset: -1}

	vertex, ok := triangles.Input("VERTEX")
	if !ok {
		return s, errors.New("triangles without VERTEX input")
	}
	s.positionOffset = int(vertex.Offset)

	// the <vertices> element may carry normals and texture coordinates
	// next to the positions, sharing the VERTEX index
	for _, input := range mesh.Vertices.Inputs {
		src, err := mesh.FindSource(input.Source)
		if err != nil {
			return s, err
		}
		switch input.Semantic {
		case "POSITION":
			s.position = src
		case "NORMAL":
			s.normal, s.normalOffset = src, int(vertex.Offset)
		case "TEXCOORD":
			s.uv, s.uvOffset = src, int(vertex.Offset)
		}
	}
	if s.position == nil {
		return s, errors.New("vertices without POSITION input")
	}

	if input, ok := triangles.Input("NORMAL"); ok {
		src, err := mesh.FindSource(input.Source)
		if err != nil {
			return s, err
		}
		s.normal, s.normalOffset = src, int(input.Offset)
	}
	if input, ok := triangles.Input("TEXCOORD"); ok {
		src, err := mesh.FindSource(input.Source)
		if err != nil {
			return s, err
		}
		s.uv, s.uvOffset = src, int(input.Offset)
	}
	return s, nil
}

func convertGeometry(geometry *collada.Geometry) (*Model, error) {
	m := &Model{Name: geometry.Name}
	if m.Name == "" {
		m.Name = geometry.ID
	}
	seen := make(map[vertexKey]uint32)

	for idx := range geometry.Mesh.Triangles {
		triangles := &geometry.Mesh.Triangles[idx]
		s, err := resolve(&geometry.Mesh, triangles)
		if err != nil {
			return nil, err
		}

		stride := triangles.Stride()
		if stride == 0 || len(triangles.Index)%(3*stride) != 0 {
			return nil, fmt.Errorf("index list of %d entries does not hold whole triangles", len(triangles.Index))
		}

		for v := 0; v < len(triangles.Index)/stride; v++ {
			indices := triangles.Index[v*stride : v*stride+stride]
			key := vertexKey{
				positionSrc: s.position,
				normalSrc:   s.normal,
				uvSrc:       s.uv,
				position:    indices[s.positionOffset],
				normal:      -1,
				uv:          -1,
			}
			if s.normal != nil {
				key.normal = indices[s.normalOffset]
			}
			if s.uv != nil {
				key.uv = indices[s.uvOffset]
			}

			if existing, ok := seen[key]; ok {
				m.Indices = append(m.Indices, existing)
				continue
			}

			vert, err := s.vertex(key)
			if err != nil {
				return nil, err
			}
			index := uint32(len(m.Vertices))
			seen[key] = index
			m.Vertices = append(m.Vertices, vert)
			m.Indices = append(m.Indices, index)
		}
	}
	return m, nil
}

func (s *sources) vertex(key vertexKey) (Vertex, error) {
	var vert Vertex

	pos, err := s.position.Element(key.position)
	if err != nil {
		return vert, err
	}
	copy(vert.Pos[:], pos)

	if s.normal != nil {
		normal, err := s.normal.Element(key.normal)
		if err != nil {
			return vert, err
		}
		copy(vert.Normal[:], normal)
		if vert.Normal.Len() > 0 {
			vert.Normal = vert.Normal.Normalize()
		}
	}

	if s.uv != nil {
		uv, err := s.uv.Element(key.uv)
		if err != nil {
			return vert, err
		}
		if len(uv) < 2 {
			return vert, fmt.Errorf("texture coordinates with %d components", len(uv))
		}
		// COLLADA puts the origin at the bottom left
		vert.UV = glm.Vec2{uv[0], 1 - uv[1]}
	}
	return vert, nil
}
