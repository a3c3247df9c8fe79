package midiconnector

import (
	"fmt"
	"log"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// DefaultPushDelay is the monotonic minimum gap spec's rate limiter
// enforces between two consecutive sends to the controller.
const DefaultPushDelay = 800 * time.Microsecond

type noteKey struct {
	channel uint8
	note    uint8
}

// Sink is the rate-limited MIDI output adapter. Send sleeps the caller
// when necessary to hold a floor of delay between consecutive sends,
// exactly as spec's concurrency model describes for the controller port;
// a processed-note sink is typically opened with delay == 0.
type Sink struct {
	mu       sync.Mutex
	out      drivers.Out
	send     func(gomidi.Message) error
	delay    time.Duration
	lastSent time.Time
	notesOn  map[noteKey]bool
}

// OpenSink opens portName for output: a real, named device port (the
// controller itself, or a conventional processed-output destination).
func OpenSink(portName string, delay time.Duration) (*Sink, error) {
	name, err := matchName(portName, OutPortNames())
	if err != nil {
		return nil, err
	}
	out, err := gomidi.FindOutPort(name)
	if err != nil {
		return nil, fmt.Errorf("opening MIDI output port %s: %w", name, err)
	}
	if err := out.Open(); err != nil {
		return nil, fmt.Errorf("opening MIDI output port %s: %w", name, err)
	}
	return newSink(out, delay)
}

// OpenVirtualSink creates a new virtual MIDI output port named portName,
// for the processed note stream other software subscribes to.
func OpenVirtualSink(portName string, delay time.Duration) (*Sink, error) {
	drv, err := sharedDriver()
	if err != nil {
		return nil, fmt.Errorf("initializing MIDI driver: %w", err)
	}
	out, err := drv.OpenVirtualOut(portName)
	if err != nil {
		return nil, fmt.Errorf("creating virtual MIDI output port %s: %w", portName, err)
	}
	return newSink(out, delay)
}

func newSink(out drivers.Out, delay time.Duration) (*Sink, error) {
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("preparing MIDI sender: %w", err)
	}
	return &Sink{out: out, send: send, delay: delay, notesOn: make(map[noteKey]bool)}, nil
}

// Send enforces the delay floor, then writes msg to the port. A send
// error is logged rather than propagated -- a dropped display update or
// note event is never worth aborting the event loop over (spec's error
// taxonomy class 1 is reserved for the port failing to open at all, not
// for an individual write).
func (s *Sink) Send(msg gomidi.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waitForDelay()
	s.trackNote(msg)
	if err := s.send(msg); err != nil {
		log.Printf("midiconnector: send error: %v", err)
	}
}

func (s *Sink) waitForDelay() {
	if s.delay <= 0 {
		return
	}
	now := time.Now()
	if wait := s.delay - now.Sub(s.lastSent); wait > 0 {
		time.Sleep(wait)
		now = time.Now()
	}
	s.lastSent = now
}

func (s *Sink) trackNote(msg gomidi.Message) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteOn(&ch, &key, &vel) && vel > 0:
		s.notesOn[noteKey{ch, key}] = true
	case msg.GetNoteOn(&ch, &key, &vel):
		delete(s.notesOn, noteKey{ch, key})
	case msg.GetNoteOff(&ch, &key, &vel):
		delete(s.notesOn, noteKey{ch, key})
	}
}

// AllNotesOff sends a note-off for every note this sink believes is still
// sounding and clears its bookkeeping. It bypasses the delay floor:
// shutdown must not stall waiting it out.
func (s *Sink) AllNotesOff() {
	s.mu.Lock()
	held := make([]noteKey, 0, len(s.notesOn))
	for k := range s.notesOn {
		held = append(held, k)
	}
	s.notesOn = make(map[noteKey]bool)
	s.mu.Unlock()

	for _, k := range held {
		if err := s.send(gomidi.NoteOff(k.channel, k.note)); err != nil {
			log.Printf("midiconnector: all-notes-off error: %v", err)
		}
	}
}

// Close closes the underlying output port.
func (s *Sink) Close() error {
	return s.out.Close()
}
