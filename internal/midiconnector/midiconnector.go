// Package midiconnector is the only part of this module that touches a
// real MIDI port. It provides a blocking input adapter (the FIFO the
// main loop receives from), a rate-limited output adapter (the delay
// floor between consecutive sends to the controller), and the ability to
// create a virtual output port for the processed note stream.
package midiconnector

import (
	"fmt"
	"strings"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

var (
	driverOnce sync.Once
	driver     *rtmididrv.Driver
	driverErr  error
)

// sharedDriver lazily creates the single rtmidi driver instance every
// virtual port in the process is opened through.
func sharedDriver() (*rtmididrv.Driver, error) {
	driverOnce.Do(func() {
		driver, driverErr = rtmididrv.New()
	})
	return driver, driverErr
}

// InPortNames lists every MIDI input port name currently visible to the
// system, for -list-ports and for matching a user-supplied name.
func InPortNames() []string {
	var names []string
	for _, in := range gomidi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

// OutPortNames lists every MIDI output port name currently visible to the
// system.
func OutPortNames() []string {
	var names []string
	for _, out := range gomidi.GetOutPorts() {
		names = append(names, out.String())
	}
	return names
}

// matchName resolves a user-supplied port name against the ports actually
// present, the same truncated-name/prefix/contains cascade the teacher's
// Device.filterName used, generalized to work over either port list.
func matchName(name string, available []string) (string, error) {
	words := strings.Fields(name)
	if len(words) > 3 {
		words = words[:3]
	}
	truncated := strings.Join(words, " ")

	for _, n := range available {
		if strings.EqualFold(n, truncated) {
			return n, nil
		}
	}
	for _, n := range available {
		if strings.HasPrefix(strings.ToLower(n), strings.ToLower(truncated)) {
			return n, nil
		}
	}
	for _, n := range available {
		if strings.Contains(strings.ToLower(n), strings.ToLower(truncated)) {
			return n, nil
		}
	}
	return "", fmt.Errorf("could not find MIDI port matching %q", name)
}
