// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package collada decodes the geometry subset of COLLADA (.dae) documents.
package collada

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Decode reads a COLLADA document
func Decode(r io.Reader) (*Collada, error) {
	var c Collada
	if err := xml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("collada: %w", err)
	}
	return &c, nil
}

// Collada is the top-level Collada object
type Collada struct {
	Version    string     `xml:"version,attr"`
	Asset      Asset      `xml:"asset"`
	Geometries []Geometry `xml:"library_geometries>geometry"`
}

// Asset carries document metadata
type Asset struct {
	UpAxis string `xml:"up_axis"`
	Unit   Unit   `xml:"unit"`
}

// Unit is the length unit of the document
type Unit struct {
	Name  string  `xml:"name,attr"`
	Meter float32 `xml:"meter,attr"`
}

// Geometry represents Collada's geometry
type Geometry struct {
	Mesh Mesh   `xml:"mesh"`
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

// Mesh contains all the primitive data
type Mesh struct {
	Source    []Source    `xml:"source"`
	Vertices  Vertices    `xml:"vertices"`
	Triangles []Triangles `xml:"triangles"`
}

// FindSource resolves a source reference such as "#Cube-mesh-normals".
func (m *Mesh) FindSource(ref string) (*Source, error) {
	id := strings.TrimPrefix(ref, "#")
	for idx := range m.Source {
		if m.Source[idx].ID == id {
			return &m.Source[idx], nil
		}
	}
	return nil, fmt.Errorf("collada: source %s not found", ref)
}

// Source links to other sources where data is present
type Source struct {
	ID       string   `xml:"id,attr"`
	Floats   Floats   `xml:"float_array"`
	Accessor Accessor `xml:"technique_common>accessor"`
}

// Stride returns the number of floats per element, three when the
// accessor does not say.
func (s *Source) Stride() int {
	if s.Accessor.Stride > 0 {
		return s.Accessor.Stride
	}
	return 3
}

// Element returns the floats of the element at index.
func (s *Source) Element(index int) ([]float32, error) {
	stride := s.Stride()
	start := index * stride
	if index < 0 || start+stride > len(s.Floats.Data) {
		return nil, fmt.Errorf("collada: index %d out of range in source %s", index, s.ID)
	}
	return s.Floats.Data[start : start+stride], nil
}

// Accessor describes how to read a float array
type Accessor struct {
	Source string `xml:"source,attr"`
	Count  int    `xml:"count,attr"`
	Stride int    `xml:"stride,attr"`
}

// Floats is the array of floats
type Floats struct {
	ID    string
	Count int
	Data  []float32
}

// UnmarshalXML unmarshals the array of floats
func (f *Floats) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			f.ID = attr.Value
		case "count":
			num, err := strconv.Atoi(attr.Value)
			if err != nil {
				return err
			}
			f.Count = num
		}
	}
	var raw string
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}
	fields := strings.Fields(raw)
	f.Data = make([]float32, 0, len(fields))
	for _, r := range fields {
		num, err := strconv.ParseFloat(r, 32)
		if err != nil {
			return err
		}
		f.Data = append(f.Data, float32(num))
	}
	return nil
}

// Vertices contains the list of vertices
type Vertices struct {
	ID     string  `xml:"id,attr"`
	Inputs []Input `xml:"input"`
}

// Triangles contain the list of triangles
type Triangles struct {
	Count    int     `xml:"count,attr"`
	Material string  `xml:"material,attr"`
	Inputs   []Input `xml:"input"`
	Index    []int
}

// Stride returns the number of indices that make up one vertex.
func (t *Triangles) Stride() int {
	var stride uint
	for _, input := range t.Inputs {
		if input.Offset+1 > stride {
			stride = input.Offset + 1
		}
	}
	return int(stride)
}

// Input returns the input with the given semantic.
func (t *Triangles) Input(semantic string) (Input, bool) {
	for _, input := range t.Inputs {
		if input.Semantic == semantic {
			return input, true
		}
	}
	return Input{}, false
}

// UnmarshalXML parses the index list
func (t *Triangles) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "count":
			num, err := strconv.Atoi(attr.Value)
			if err != nil {
				return err
			}
			t.Count = num
		case "material":
			t.Material = attr.Value
		}
	}

	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "input":
				var input Input
				err := d.DecodeElement(&input, &el)
				if err != nil {
					return err
				}
				t.Inputs = append(t.Inputs, input)
			case "p":
				var raw string
				if err := d.DecodeElement(&raw, &el); err != nil {
					return err
				}
				fields := strings.Fields(raw)
				ints := make([]int, 0, len(fields))
				for _, r := range fields {
					num, err := strconv.Atoi(r)
					if err != nil {
						return err
					}
					ints = append(ints, num)
				}
				t.Index = ints
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if el == start.End() {
				return nil
			}
		}
	}
}

// Input is Collada'a input type
type Input struct {
	Semantic string `xml:"semantic,attr"`
	Source   string `xml:"source,attr"`
	Offset   uint   `xml:"offset,attr"`
	Set      uint   `xml:"set,attr"`
}
