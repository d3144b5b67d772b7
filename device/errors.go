// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import "fmt"

// ErrorString returns the registry name of a driver error code.
func ErrorString(code uint32) string {
	switch code {
	case NO_ERROR:
		return "GL_NO_ERROR"
	case INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case STACK_OVERFLOW:
		return "GL_STACK_OVERFLOW"
	case STACK_UNDERFLOW:
		return "GL_STACK_UNDERFLOW"
	case OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	}
	return fmt.Sprintf("0x%04x", code)
}

// FramebufferStatusString returns the registry name of a framebuffer
// completeness status.
func FramebufferStatusString(status uint32) string {
	switch status {
	case FRAMEBUFFER_COMPLETE:
		return "GL_FRAMEBUFFER_COMPLETE"
	case FRAMEBUFFER_UNDEFINED:
		return "GL_FRAMEBUFFER_UNDEFINED"
	case FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return "GL_FRAMEBUFFER_INCOMPLETE_ATTACHMENT"
	case FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return "GL_FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT"
	case FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return "GL_FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER"
	case FRAMEBUFFER_INCOMPLETE_READ_BUFFER:
		return "GL_FRAMEBUFFER_INCOMPLETE_READ_BUFFER"
	case FRAMEBUFFER_UNSUPPORTED:
		return "GL_FRAMEBUFFER_UNSUPPORTED"
	case FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		return "GL_FRAMEBUFFER_INCOMPLETE_MULTISAMPLE"
	case FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS:
		return "GL_FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS"
	}
	return fmt.Sprintf("0x%04x", status)
}
