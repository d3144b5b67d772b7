// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"fmt"

	"github.com/devblok/glowl/device"
)

// package errors
var (
	ErrMapFailed             = errors.New("buffer could not be mapped")
	ErrOutOfRange            = errors.New("range exceeds the resource size")
	ErrFramebufferIncomplete = errors.New("framebuffer is incomplete")
	ErrNoAttachment          = errors.New("framebuffer attachment does not exist")
	ErrReleased              = errors.New("resource has been released")
	ErrLayoutMismatch        = errors.New("vertex data does not match the vertex layouts")
	ErrPixelFormat           = errors.New("unsupported pixel format and type")
)

// Error is a driver error reported after an operation on a resource.
type Error struct {
	// Op names the originating call, e.g. "Texture2D.Reload".
	Op string

	// Kind is the resource kind, e.g. "texture".
	Kind string

	// ID is the identifier given to the resource.
	ID string

	// Code is the raw value returned by glGetError.
	Code uint32
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s - %s id: %s - OpenGL error %d (%s)",
		e.Op, e.Kind, e.ID, e.Code, device.ErrorString(e.Code))
}

// FramebufferError reports an incomplete framebuffer together with the
// status returned by the driver.
type FramebufferError struct {
	ID     string
	Status uint32
}

func (e *FramebufferError) Error() string {
	return fmt.Sprintf("framebuffer id: %s - %s", e.ID, device.FramebufferStatusString(e.Status))
}

// Is makes errors.Is match ErrFramebufferIncomplete.
func (e *FramebufferError) Is(target error) bool {
	return target == ErrFramebufferIncomplete
}

// ShaderError carries the info log of a failed compile or link.
type ShaderError struct {
	ID string

	// Stage is the failing shader stage, UnknownShaderType for link errors.
	Stage ShaderType
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Stage == UnknownShaderType {
		return fmt.Sprintf("program id: %s - link failed: %s", e.ID, e.Log)
	}
	return fmt.Sprintf("program id: %s - %s shader compilation failed: %s", e.ID, e.Stage, e.Log)
}
