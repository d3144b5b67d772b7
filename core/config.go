// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

// Configuration defines a global configuration setting
type Configuration struct {
	Time      TimeConfiguration
	Resources ResourceConfiguration
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the delay between event polls in milliseconds
	EventPollDelay int
}

// ResourceConfiguration controls how wrappers talk to the driver
type ResourceConfiguration struct {
	// CheckErrors makes constructors and uploads read the driver
	// error flag and return it as an *Error.
	CheckErrors bool

	// DebugLabels attaches the resource id to every created object
	// through KHR_debug object labels.
	DebugLabels bool

	// BindlessTextures fetches an ARB_bindless_texture handle for
	// every texture on creation.
	BindlessTextures bool
}

// DefaultConfiguration returns the configuration used when nothing is set
func DefaultConfiguration() Configuration {
	return Configuration{
		Time: TimeConfiguration{
			FramesPerSecond: 60,
			EventPollDelay:  10,
		},
		Resources: ResourceConfiguration{
			CheckErrors: true,
		},
	}
}
