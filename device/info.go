// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import "strings"

// Info describes the driver behind the current context
type Info struct {
	Vendor              string   `json:"vendor"`
	Renderer            string   `json:"renderer"`
	Version             string   `json:"version"`
	ShadingLanguage     string   `json:"shadingLanguage"`
	Extensions          []string `json:"extensions"`
	MaxTextureSize      int      `json:"maxTextureSize"`
	Max3DTextureSize    int      `json:"max3DTextureSize"`
	MaxColorAttachments int      `json:"maxColorAttachments"`
}

// HasExtension reports whether the driver advertises the named extension.
func (i Info) HasExtension(name string) bool {
	for _, ext := range i.Extensions {
		if ext == name {
			return true
		}
	}
	return false
}

// Bindless reports whether bindless textures can be used.
func (i Info) Bindless() bool {
	return i.HasExtension("GL_ARB_bindless_texture")
}

// Query collects Info from the driver.
func Query(d Driver) Info {
	info := Info{
		Vendor:              strings.TrimSpace(d.GetString(VENDOR)),
		Renderer:            strings.TrimSpace(d.GetString(RENDERER)),
		Version:             strings.TrimSpace(d.GetString(VERSION)),
		ShadingLanguage:     strings.TrimSpace(d.GetString(SHADING_LANGUAGE_VERSION)),
		MaxTextureSize:      int(d.GetInteger(MAX_TEXTURE_SIZE)),
		Max3DTextureSize:    int(d.GetInteger(MAX_3D_TEXTURE_SIZE)),
		MaxColorAttachments: int(d.GetInteger(MAX_COLOR_ATTACHMENTS)),
	}

	numExtensions := d.GetInteger(NUM_EXTENSIONS)
	for idx := uint32(0); idx < uint32(numExtensions); idx++ {
		if ext := d.GetStringi(EXTENSIONS, idx); ext != "" {
			info.Extensions = append(info.Extensions, ext)
		}
	}
	return info
}
