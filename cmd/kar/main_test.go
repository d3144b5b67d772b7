// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/devblok/glowl/utility/kar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestCompressListExtract(t *testing.T) {
	files := map[string]string{
		"shaders/basic.vert": "#version 450 core\nvoid main() {}",
		"shaders/basic.frag": "#version 450 core\nout vec4 color;\nvoid main() { color = vec4(1); }",
		"models/quad.dae":    "<COLLADA/>",
	}
	src := writeTree(t, files)
	archive := filepath.Join(t.TempDir(), "assets.kar")

	require.NoError(t, compressFiles(src, archive))
	assert.Error(t, compressFiles(src, archive), "existing archives are not overwritten")

	var listing bytes.Buffer
	require.NoError(t, withArchive(archive, func(ar *kar.Archive) error {
		assert.Len(t, ar.Index(), 3)
		return printIndex(&listing, ar)
	}))
	assert.Contains(t, listing.String(), "shaders/basic.vert")
	assert.Contains(t, listing.String(), "COMPRESSED")

	dst := t.TempDir()
	require.NoError(t, withArchive(archive, func(ar *kar.Archive) error {
		return extractAll(ar, dst)
	}))
	for name, content := range files {
		data, err := ioutil.ReadFile(filepath.Join(dst, filepath.FromSlash(name)))
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	}
}

func TestCompressSingleFile(t *testing.T) {
	src := writeTree(t, map[string]string{"texture.raw": "rgba"})
	archive := filepath.Join(t.TempDir(), "single.kar")

	require.NoError(t, compressFiles(filepath.Join(src, "texture.raw"), archive))
	require.NoError(t, withArchive(archive, func(ar *kar.Archive) error {
		data, err := ar.ReadAll("texture.raw")
		assert.Equal(t, "rgba", string(data))
		return err
	}))
}

func TestOpenNotAnArchive(t *testing.T) {
	src := writeTree(t, map[string]string{"plain.txt": "hello, not an archive"})
	err := withArchive(filepath.Join(src, "plain.txt"), func(*kar.Archive) error { return nil })
	assert.ErrorIs(t, err, kar.ErrFileFormat)
}
