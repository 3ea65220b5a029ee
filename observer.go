package sensorfilter

import (
	"fmt"

	"github.com/golang/glog"
)

// Property identifies an observable filter property.
type Property int

const (
	PropertyValue Property = iota
	PropertySwingHigh
	PropertySwingLow
	PropertySwing
	PropertyInitialized
)

var propertyNames = [...]string{
	PropertyValue:       "value",
	PropertySwingHigh:   "swing_high",
	PropertySwingLow:    "swing_low",
	PropertySwing:       "swing",
	PropertyInitialized: "initialized",
}

func (p Property) String() string {
	if p < 0 || int(p) >= len(propertyNames) {
		return fmt.Sprintf("Property(%d)", int(p))
	}
	return propertyNames[p]
}

// Change describes one property change.
// Value carries the new numeric value; for PropertyInitialized it is 1 or 0
// and Initialized carries the flag.
type Change struct {
	Property    Property
	Value       float64
	Initialized bool
}

// ObserverFunc receives property changes synchronously, on the goroutine
// that mutated the filter. Within one call changes are delivered in the
// order they are raised.
type ObserverFunc func(Change)

// LogObserver returns an observer that logs every change through glog at
// verbosity level 2, prefixed by name.
func LogObserver(name string) ObserverFunc {
	return func(c Change) {
		if !glog.V(2) {
			return
		}
		if c.Property == PropertyInitialized {
			glog.Infof("%s: %s=%t", name, c.Property, c.Initialized)
			return
		}
		glog.Infof("%s: %s=%g", name, c.Property, c.Value)
	}
}
