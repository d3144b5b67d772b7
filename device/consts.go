// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

// OpenGL enums used by the wrappers. Values mirror the Khronos registry so
// they can be passed straight to the driver.
const (
	NO_ERROR                      = 0x0
	INVALID_ENUM                  = 0x0500
	INVALID_VALUE                 = 0x0501
	INVALID_OPERATION             = 0x0502
	STACK_OVERFLOW                = 0x0503
	STACK_UNDERFLOW               = 0x0504
	OUT_OF_MEMORY                 = 0x0505
	INVALID_FRAMEBUFFER_OPERATION = 0x0506

	NONE  = 0x0
	FALSE = 0
	TRUE  = 1

	VENDOR                   = 0x1F00
	RENDERER                 = 0x1F01
	VERSION                  = 0x1F02
	EXTENSIONS               = 0x1F03
	SHADING_LANGUAGE_VERSION = 0x8B8C
	NUM_EXTENSIONS           = 0x821D
	MAX_TEXTURE_SIZE         = 0x0D33
	MAX_3D_TEXTURE_SIZE      = 0x8073
	MAX_COLOR_ATTACHMENTS    = 0x8CDF

	ARRAY_BUFFER              = 0x8892
	ELEMENT_ARRAY_BUFFER      = 0x8893
	UNIFORM_BUFFER            = 0x8A11
	SHADER_STORAGE_BUFFER     = 0x90D2
	ATOMIC_COUNTER_BUFFER     = 0x92C0
	TRANSFORM_FEEDBACK_BUFFER = 0x8C8E
	COPY_READ_BUFFER          = 0x8F36
	COPY_WRITE_BUFFER         = 0x8F37
	DRAW_INDIRECT_BUFFER      = 0x8F3F

	STREAM_DRAW  = 0x88E0
	STATIC_DRAW  = 0x88E4
	STATIC_READ  = 0x88E5
	DYNAMIC_DRAW = 0x88E8
	DYNAMIC_READ = 0x88E9
	DYNAMIC_COPY = 0x88EA

	READ_ONLY  = 0x88B8
	WRITE_ONLY = 0x88B9
	READ_WRITE = 0x88BA

	MAP_READ_BIT  = 0x0001
	MAP_WRITE_BIT = 0x0002

	TEXTURE_1D = 0x0DE0
	TEXTURE_2D = 0x0DE1
	TEXTURE_3D = 0x806F

	TEXTURE_MIN_FILTER     = 0x2801
	TEXTURE_MAG_FILTER     = 0x2800
	TEXTURE_WRAP_S         = 0x2802
	TEXTURE_WRAP_T         = 0x2803
	TEXTURE_WRAP_R         = 0x8072
	TEXTURE_MAX_ANISOTROPY = 0x84FE
	NEAREST                = 0x2600
	LINEAR                 = 0x2601
	LINEAR_MIPMAP_LINEAR   = 0x2703
	REPEAT                 = 0x2901
	CLAMP_TO_EDGE          = 0x812F

	RED             = 0x1903
	RG              = 0x8227
	RGB             = 0x1907
	RGBA            = 0x1908
	DEPTH_COMPONENT = 0x1902
	DEPTH_STENCIL   = 0x84F9
	STENCIL_INDEX   = 0x1901
	BGR             = 0x80E0
	BGRA            = 0x80E1
	RED_INTEGER     = 0x8D94
	RG_INTEGER      = 0x8228
	RGB_INTEGER     = 0x8D98
	RGBA_INTEGER    = 0x8D99

	UNPACK_ALIGNMENT = 0x0CF5

	R8                 = 0x8229
	R32F               = 0x822E
	RGB8               = 0x8051
	RGBA8              = 0x8058
	RGBA16F            = 0x881A
	RGBA32F            = 0x8814
	DEPTH_COMPONENT24  = 0x81A6
	DEPTH_COMPONENT32F = 0x8CAC
	DEPTH24_STENCIL8   = 0x88F0
	DEPTH32F_STENCIL8  = 0x8CAD

	BYTE                           = 0x1400
	UNSIGNED_BYTE                  = 0x1401
	SHORT                          = 0x1402
	UNSIGNED_SHORT                 = 0x1403
	INT                            = 0x1404
	UNSIGNED_INT                   = 0x1405
	FLOAT                          = 0x1406
	HALF_FLOAT                     = 0x140B
	UNSIGNED_INT_24_8              = 0x84FA
	FLOAT_32_UNSIGNED_INT_24_8_REV = 0x8DAD

	FRAMEBUFFER              = 0x8D40
	READ_FRAMEBUFFER         = 0x8CA8
	DRAW_FRAMEBUFFER         = 0x8CA9
	DRAW_FRAMEBUFFER_BINDING = 0x8CA6
	READ_FRAMEBUFFER_BINDING = 0x8CAA
	COLOR_ATTACHMENT0        = 0x8CE0
	DEPTH_ATTACHMENT         = 0x8D00
	DEPTH_STENCIL_ATTACHMENT = 0x821A

	FRAMEBUFFER_COMPLETE                      = 0x8CD5
	FRAMEBUFFER_UNDEFINED                     = 0x8219
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         = 0x8CD6
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT = 0x8CD7
	FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER        = 0x8CDB
	FRAMEBUFFER_INCOMPLETE_READ_BUFFER        = 0x8CDC
	FRAMEBUFFER_UNSUPPORTED                   = 0x8CDD
	FRAMEBUFFER_INCOMPLETE_MULTISAMPLE        = 0x8D56
	FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS      = 0x8DA8

	COLOR_BUFFER_BIT   = 0x4000
	DEPTH_BUFFER_BIT   = 0x0100
	STENCIL_BUFFER_BIT = 0x0400

	POINTS         = 0x0000
	LINES          = 0x0001
	LINE_STRIP     = 0x0003
	TRIANGLES      = 0x0004
	TRIANGLE_STRIP = 0x0005
	TRIANGLE_FAN   = 0x0006

	VERTEX_SHADER          = 0x8B31
	FRAGMENT_SHADER        = 0x8B30
	GEOMETRY_SHADER        = 0x8DD9
	TESS_CONTROL_SHADER    = 0x8E88
	TESS_EVALUATION_SHADER = 0x8E87
	COMPUTE_SHADER         = 0x91B9
	COMPILE_STATUS         = 0x8B81
	LINK_STATUS            = 0x8B82
	INFO_LOG_LENGTH        = 0x8B84

	// ObjectLabel namespaces
	BUFFER       = 0x82E0
	SHADER       = 0x82E1
	PROGRAM      = 0x82E2
	VERTEX_ARRAY = 0x8074
	TEXTURE      = 0x1702
)

// UnpackAlignment is the driver default for UNPACK_ALIGNMENT, rows of
// client pixel data start at multiples of it.
const UnpackAlignment = 4

var formatComponents = map[uint32]int{
	RED:             1,
	RED_INTEGER:     1,
	DEPTH_COMPONENT: 1,
	STENCIL_INDEX:   1,
	RG:              2,
	RG_INTEGER:      2,
	RGB:             3,
	BGR:             3,
	RGB_INTEGER:     3,
	RGBA:            4,
	BGRA:            4,
	RGBA_INTEGER:    4,
}

var typeSizes = map[uint32]int{
	BYTE:           1,
	UNSIGNED_BYTE:  1,
	SHORT:          2,
	UNSIGNED_SHORT: 2,
	HALF_FLOAT:     2,
	INT:            4,
	UNSIGNED_INT:   4,
	FLOAT:          4,
}

// TexelSize returns the size in bytes of one texel of client pixel data
// in the given format and type, zero when the combination is unknown.
func TexelSize(format, xtype uint32) int {
	switch xtype {
	case UNSIGNED_INT_24_8:
		if format == DEPTH_STENCIL {
			return 4
		}
		return 0
	case FLOAT_32_UNSIGNED_INT_24_8_REV:
		if format == DEPTH_STENCIL {
			return 8
		}
		return 0
	}
	return formatComponents[format] * typeSizes[xtype]
}

// ImageSize returns how many bytes the driver reads for an image of the
// given extent, rows padded to UnpackAlignment except the last one.
// It is zero for an empty extent and -1 for an unknown format and type.
func ImageSize(format, xtype uint32, width, height, depth int) int {
	texel := TexelSize(format, xtype)
	if texel == 0 {
		return -1
	}
	if width <= 0 || height <= 0 || depth <= 0 {
		return 0
	}
	row := width * texel
	stride := (row + UnpackAlignment - 1) / UnpackAlignment * UnpackAlignment
	return stride*(height*depth-1) + row
}
