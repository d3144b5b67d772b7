// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"fmt"
	"math"
	"time"

	"github.com/devblok/glowl/core"
	"github.com/devblok/glowl/device"
	"github.com/devblok/glowl/model"
	glm "github.com/go-gl/mathgl/mgl32"
	"github.com/gobuffalo/packr"
	log "github.com/sirupsen/logrus"
)

var clearColor = []byte{18, 18, 24, 255}

// scene owns every resource the viewer draws with. It renders into an
// offscreen framebuffer that is blitted to the window.
type scene struct {
	ctx *core.Context

	program   *core.Program
	mesh      *core.Mesh
	albedo    *core.Texture2D
	instances *core.BufferObject
	target    *core.Framebuffer

	transform *model.Transform
	uniform   model.Uniform
	count     int
	radius    float32
	started   time.Time
}

func newScene(ctx *core.Context, cfg viewerConfig, box packr.Box, src assetSource, info device.Info) (*scene, error) {
	s := &scene{
		ctx:       ctx,
		transform: model.NewTransform(),
		count:     cfg.Instances,
		started:   time.Now(),
	}
	if err := s.load(cfg, box, src, info); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

func (s *scene) load(cfg viewerConfig, box packr.Box, src assetSource, info device.Info) error {
	ctx := s.ctx
	sources, err := loadShaders(box, cfg.Shaders, "basic")
	if err != nil {
		return err
	}
	if s.program, err = core.NewProgram(ctx, "basic", sources); err != nil {
		return err
	}

	r, err := src.Open(cfg.Model)
	if err != nil {
		return err
	}
	models, err := model.ImportCollada(r)
	r.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Model, err)
	}
	m := models[0]
	if s.mesh, err = m.Upload(ctx, m.Name, device.STATIC_DRAW); err != nil {
		return err
	}
	lo, hi := m.Bounds()
	s.radius = hi.Sub(lo).Len() / 2
	if s.radius == 0 {
		s.radius = 1
	}
	log.WithFields(log.Fields{
		"model":    m.Name,
		"vertices": len(m.Vertices),
		"indices":  len(m.Indices),
	}).Info("Model loaded")

	img := checker(256, 8)
	if cfg.Texture != "" {
		if img, err = decodeImage(src, cfg.Texture); err != nil {
			return err
		}
	}
	layout, pixels := core.TextureFromImage(fitTexture(img, info.MaxTextureSize))
	if s.albedo, err = core.NewTexture2D(ctx, "albedo", layout, pixels, core.GenerateMipmap()); err != nil {
		return err
	}
	if cfg.Core.Resources.BindlessTextures {
		if err := s.albedo.MakeResident(); err != nil {
			log.WithError(err).Warn("Texture stays bound through units")
		}
	}

	if s.instances, err = core.NewShaderStorageBuffer(ctx, "instances", 0, core.Bytes(s.offsets())); err != nil {
		return err
	}

	if s.target, err = core.NewFramebuffer(ctx, "scene", cfg.Width, cfg.Height, core.Depth24Stencil8); err != nil {
		return err
	}
	if err = s.target.CreateColorAttachment(device.RGBA8, device.RGBA, device.UNSIGNED_BYTE); err != nil {
		return err
	}
	if err = s.target.Status(); err != nil {
		return err
	}

	return s.resize(cfg.Width, cfg.Height)
}

// offsets lays the instances out on a ring around the origin.
func (s *scene) offsets() []glm.Vec4 {
	offsets := make([]glm.Vec4, s.count)
	if s.count == 1 {
		return offsets
	}
	for idx := range offsets {
		angle := 2 * math.Pi * float64(idx) / float64(s.count)
		offsets[idx] = glm.Vec4{
			float32(math.Cos(angle)) * s.radius * 2,
			0,
			float32(math.Sin(angle)) * s.radius * 2,
			1,
		}
	}
	return offsets
}

func (s *scene) resize(width, height int) error {
	if width != s.target.Width() || height != s.target.Height() {
		if err := s.target.Resize(width, height); err != nil {
			return err
		}
	}
	aspect := float32(width) / float32(height)
	distance := s.radius * 6
	s.uniform.Projection = glm.Perspective(glm.DegToRad(45), aspect, 0.1, distance*4)
	s.uniform.View = glm.LookAtV(glm.Vec3{0, distance / 2, distance}, glm.Vec3{}, glm.Vec3{0, 1, 0})
	return nil
}

func (s *scene) render(now time.Time) error {
	elapsed := float32(now.Sub(s.started).Seconds())
	s.transform.SetRotation(glm.HomogRotate3DY(elapsed))
	s.uniform.Model = s.transform.Matrix()

	color, err := s.target.ColorAttachment(0)
	if err != nil {
		return err
	}
	if err := color.Clear(clearColor, 0); err != nil {
		return err
	}

	s.target.Bind()
	s.program.Use()
	s.program.SetMat4("mvp", s.uniform.MVP())
	s.program.SetVec3("light", glm.Vec3{0.4, 1, 0.6})
	s.albedo.BindUnit(0)
	s.program.SetInt("albedo", 0)
	s.instances.BindBase(0)

	err = s.mesh.Draw(s.count)

	s.instances.UnbindBase(0)
	s.program.Unuse()
	s.target.Unbind()
	if err != nil {
		return err
	}

	s.target.BlitToDefault(s.target.Width(), s.target.Height(), device.NEAREST)
	return nil
}

// Release frees everything created so far, in reverse order.
func (s *scene) Release() {
	if s.target != nil {
		s.target.Release()
	}
	if s.instances != nil {
		s.instances.Release()
	}
	if s.albedo != nil {
		s.albedo.Release()
	}
	if s.mesh != nil {
		s.mesh.Release()
	}
	if s.program != nil {
		s.program.Release()
	}
}
