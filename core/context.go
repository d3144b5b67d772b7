// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"io/ioutil"

	"github.com/devblok/glowl/device"
	log "github.com/sirupsen/logrus"
)

// NewContext binds wrappers to a driver. A nil logger discards
// everything the context would log.
func NewContext(d device.Driver, cfg ResourceConfiguration, logger log.FieldLogger) *Context {
	if logger == nil {
		discard := log.New()
		discard.Out = ioutil.Discard
		logger = discard
	}
	return &Context{
		driver: d,
		config: cfg,
		log:    logger,
	}
}

// Context carries the driver, configuration and logger shared by the
// wrappers created from it. It mirrors the driver's own context and is
// not safe for concurrent use.
type Context struct {
	driver device.Driver
	config ResourceConfiguration
	log    log.FieldLogger

	live int
}

// Driver returns the underlying driver
func (c *Context) Driver() device.Driver {
	return c.driver
}

// Configuration returns the resource configuration
func (c *Context) Configuration() ResourceConfiguration {
	return c.config
}

// Live returns the number of handles currently held by wrappers
// created through this context.
func (c *Context) Live() int {
	return c.live
}

// Check reads the driver error flag and wraps a raised error into an
// *Error. It returns nil when error checking is disabled.
func (c *Context) Check(op, kind, id string) error {
	if !c.config.CheckErrors {
		return nil
	}
	if code := c.driver.GetError(); code != device.NO_ERROR {
		err := &Error{Op: op, Kind: kind, ID: id, Code: code}
		c.log.WithFields(log.Fields{
			"resource": kind,
			"id":       id,
			"code":     code,
		}).Error(err.Error())
		return err
	}
	return nil
}

func (c *Context) acquired(kind, id string, name uint32) {
	c.live++
	c.log.WithFields(log.Fields{
		"resource": kind,
		"id":       id,
		"name":     name,
	}).Debug("handle acquired")
}

func (c *Context) released(kind, id string, name uint32) {
	c.live--
	c.log.WithFields(log.Fields{
		"resource": kind,
		"id":       id,
		"name":     name,
	}).Debug("handle released")
}

func (c *Context) label(namespace, name uint32, id string) {
	if c.config.DebugLabels {
		c.driver.ObjectLabel(namespace, name, id)
	}
}
