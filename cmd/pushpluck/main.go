// Command pushpluck turns an Ableton Push 1 into a polyphonic fretted
// string instrument: pads become strings and frets, the menu page on the
// controller's own display tunes it, and a virtual MIDI port carries the
// resulting note stream to any synth listening for it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/muesli/termenv"

	"github.com/schollz/pushpluck/internal/config"
	"github.com/schollz/pushpluck/internal/midiconnector"
	"github.com/schollz/pushpluck/internal/palette"
	"github.com/schollz/pushpluck/internal/plucked"
	"github.com/schollz/pushpluck/internal/tui"
)

// logLevel mirrors the teacher's informal use of the standard log
// package: no injected logger, just a call-site Printf gated by a level
// comparison, configured once at startup from --log-level.
type logLevel int

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

func parseLevel(s string) (logLevel, error) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return levelDebug, nil
	case "INFO":
		return levelInfo, nil
	case "WARN", "WARNING":
		return levelWarn, nil
	case "ERROR":
		return levelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

var currentLevel = levelInfo

func logAt(level logLevel, format string, args ...interface{}) {
	if level < currentLevel {
		return
	}
	log.Printf(format, args...)
}

func main() {
	var (
		logLevelFlag    string
		pushDelaySecs   float64
		pushPort        string
		processedPort   string
		minVelocity     uint
		listPorts       bool
		statusDisplay   bool
		paletteFile     string
		stateFile       string
	)

	flag.StringVar(&logLevelFlag, "log-level", "INFO", "log level: DEBUG, INFO, WARN, ERROR")
	flag.Float64Var(&pushDelaySecs, "push-delay", 0.0008, "minimum seconds between consecutive sends to the controller")
	flag.StringVar(&pushPort, "push-port", "Ableton Push User Port", "MIDI port name for the Push controller")
	flag.StringVar(&processedPort, "processed-port", "pushpluck", "virtual MIDI output port name for the processed note stream")
	flag.UintVar(&minVelocity, "min-velocity", 0, "velocity floor applied to every triggered note")
	flag.BoolVar(&listPorts, "list-ports", false, "list available MIDI ports and exit")
	flag.BoolVar(&statusDisplay, "status-display", false, "mirror controller status in a terminal status display")
	flag.StringVar(&paletteFile, "palette-file", "", "optional colors.txt palette file (pairs of lines: #RRGGBB then a name)")
	flag.StringVar(&stateFile, "state-file", "", "optional file to persist/restore the last-chosen config")
	flag.Parse()

	if listPorts {
		printPorts(pushPort, processedPort)
		return
	}

	level, err := parseLevel(logLevelFlag)
	if err != nil {
		log.Fatalf("pushpluck: %v", err)
	}
	currentLevel = level
	log.SetFlags(log.LstdFlags)

	if minVelocity > 127 {
		log.Fatalf("pushpluck: --min-velocity must be in [0, 127], got %d", minVelocity)
	}

	pal, err := loadPalette(paletteFile)
	if err != nil {
		log.Fatalf("pushpluck: %v", err)
	}
	scheme := config.DefaultScheme(pal)

	cfg := config.Default(uint8(minVelocity))
	if stateFile != "" {
		if loaded, err := config.LoadState(stateFile, cfg); err != nil {
			logAt(levelInfo, "pushpluck: no usable state file at %s: %v", stateFile, err)
		} else {
			cfg = loaded
			logAt(levelInfo, "pushpluck: restored config from %s", stateFile)
		}
	}

	pushDelay := time.Duration(pushDelaySecs * float64(time.Second))

	source, err := midiconnector.OpenSource(pushPort)
	if err != nil {
		log.Fatalf("pushpluck: %v", err)
	}
	defer source.Close()

	controller, err := midiconnector.OpenSink(pushPort, pushDelay)
	if err != nil {
		log.Fatalf("pushpluck: %v", err)
	}
	defer controller.Close()

	processed, err := midiconnector.OpenVirtualSink(processedPort, 0)
	if err != nil {
		log.Fatalf("pushpluck: %v", err)
	}
	defer processed.Close()

	logAt(levelInfo, "pushpluck: listening on %q, controller display on %q, processed notes on virtual port %q", pushPort, pushPort, processedPort)

	orch := plucked.New(scheme, cfg, controller, processed)

	var mirror *tui.Model
	if statusDisplay {
		mirror = tui.New()
		go func() {
			if err := mirror.Run(); err != nil {
				logAt(levelWarn, "pushpluck: status display exited: %v", err)
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			msg, ok := source.Recv()
			if !ok {
				return
			}
			orch.HandleMessage(msg)
			if mirror != nil {
				mirror.Push(statusFromOrchestrator(orch))
			}
		}
	}()

	select {
	case <-sigc:
		logAt(levelInfo, "pushpluck: shutting down")
	case <-done:
		logAt(levelWarn, "pushpluck: controller input port closed unexpectedly")
	}

	if mirror != nil {
		mirror.Quit()
	}
	orch.Shutdown()

	if stateFile != "" {
		if err := config.SaveState(stateFile, orch.Config()); err != nil {
			logAt(levelWarn, "pushpluck: could not save state to %s: %v", stateFile, err)
		}
	}
}

func statusFromOrchestrator(orch *plucked.Plucked) tui.Status {
	cfg := orch.Config()
	return tui.Status{
		InstrumentName: cfg.InstrumentName,
		Page:           orch.Page().String(),
		PlayMode:       cfg.PlayMode.String(),
		ChannelMode:    cfg.ChannelMode.String(),
		HeldNotes:      orch.ActiveNoteCount(),
		MaxNotes:       len(cfg.Tuning),
	}
}

func loadPalette(path string) (*palette.Palette, error) {
	if path == "" {
		return palette.Default()
	}
	return palette.Load(path)
}

// printPorts lists the MIDI ports visible to the system, color-highlighting
// whichever name matches the push/processed ports this invocation would
// otherwise open, the same termenv.ColorProfile()/String().Foreground()
// usage internal/views/mixer.go makes for VU-meter coloring.
func printPorts(pushPort, processedPort string) {
	profile := termenv.ColorProfile()
	highlight := func(name string) string {
		if strings.EqualFold(name, pushPort) || strings.EqualFold(name, processedPort) {
			return termenv.String(name).Foreground(profile.Color("42")).Bold().String()
		}
		return name
	}

	fmt.Println("MIDI input ports:")
	for _, name := range midiconnector.InPortNames() {
		fmt.Println("  " + highlight(name))
	}
	fmt.Println("MIDI output ports:")
	for _, name := range midiconnector.OutPortNames() {
		fmt.Println("  " + highlight(name))
	}
}
