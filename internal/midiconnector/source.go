package midiconnector

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Source is the blocking MIDI input adapter described in spec's
// concurrency model: the driver's own callback thread pushes into a
// buffered channel (the FIFO), and Recv blocks the main loop until a
// message is ready. It's the only cross-thread resource in the system.
type Source struct {
	in   drivers.In
	stop func()
	msgs chan gomidi.Message
}

// sourceBacklog bounds how many unread messages the FIFO holds before the
// driver callback starts dropping instead of blocking; a human playing an
// 8x8 pad grid cannot outrun this.
const sourceBacklog = 256

// OpenSource opens portName for input and starts listening immediately.
func OpenSource(portName string) (*Source, error) {
	name, err := matchName(portName, InPortNames())
	if err != nil {
		return nil, err
	}
	in, err := gomidi.FindInPort(name)
	if err != nil {
		return nil, fmt.Errorf("opening MIDI input port %s: %w", name, err)
	}
	s := &Source{in: in, msgs: make(chan gomidi.Message, sourceBacklog)}
	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, _ int32) {
		select {
		case s.msgs <- msg:
		default:
			// Backlog full: drop rather than block the driver's callback.
		}
	})
	if err != nil {
		return nil, fmt.Errorf("listening on MIDI input port %s: %w", name, err)
	}
	s.stop = stop
	return s, nil
}

// Recv blocks until the next incoming message arrives, or returns ok ==
// false once the source has been closed and drained.
func (s *Source) Recv() (gomidi.Message, bool) {
	msg, ok := <-s.msgs
	return msg, ok
}

// Close stops listening and closes the input port.
func (s *Source) Close() error {
	if s.stop != nil {
		s.stop()
	}
	close(s.msgs)
	return s.in.Close()
}
