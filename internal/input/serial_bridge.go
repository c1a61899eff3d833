// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package input

import (
	"bufio"
	"log"
	"strings"

	nmea "github.com/adrianmo/go-nmea"
	serial "github.com/jacobsa/go-serial/serial"

	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// TypePWIIN is the sentence type of the proprietary input deck sentence:
// one checksummed line per sample carrying the full normalized control
// state.
//
//	$PWIIN,<tiltx>,<tilty>,<swx>,<swy>,<swz>,<shx>,<shy>,<shz>,<curx>,<cury>,<vis>,<rec>*hh
//
// go-nmea splits the "PWIIN" prefix into talker "P" and type "WIIN", so
// the custom parser registers under the type part only.
const TypePWIIN = "WIIN"

// PWIIN is one parsed input sentence.
type PWIIN struct {
	nmea.BaseSentence

	TiltX, TiltY           float64
	SwingX, SwingY, SwingZ float64
	ShakeX, ShakeY, ShakeZ float64
	CursorX, CursorY       float64
	CursorVisible          bool
	Recenter               bool
}

func init() {
	if err := nmea.RegisterParser(TypePWIIN, newPWIIN); err != nil {
		panic(err)
	}
}

func newPWIIN(s nmea.BaseSentence) (nmea.Sentence, error) {
	p := nmea.NewParser(s)
	m := PWIIN{
		BaseSentence: s,

		TiltX:  p.Float64(0, "tilt x"),
		TiltY:  p.Float64(1, "tilt y"),
		SwingX: p.Float64(2, "swing x"),
		SwingY: p.Float64(3, "swing y"),
		SwingZ: p.Float64(4, "swing z"),
		ShakeX: p.Float64(5, "shake x"),
		ShakeY: p.Float64(6, "shake y"),
		ShakeZ: p.Float64(7, "shake z"),

		CursorX: p.Float64(8, "cursor x"),
		CursorY: p.Float64(9, "cursor y"),

		CursorVisible: p.Int64(10, "cursor visible") != 0,
		Recenter:      p.Int64(11, "recenter") != 0,
	}
	return m, p.Err()
}

// apply copies the sentence into a snapshot, leaving the passthrough IMU
// fields untouched.
func (m PWIIN) apply(s *State) {
	s.Tilt = vecmath.Vec2{X: m.TiltX, Y: m.TiltY}
	s.Swing = vecmath.Vec3{X: m.SwingX, Y: m.SwingY, Z: m.SwingZ}
	s.Shake = vecmath.Vec3{X: m.ShakeX, Y: m.ShakeY, Z: m.ShakeZ}
	s.Cursor = vecmath.Vec2{X: m.CursorX, Y: m.CursorY}
	s.CursorVisible = m.CursorVisible
	s.Recenter = m.Recenter
}

// RunSerialBridge opens the input deck serial port and feeds every valid
// $PWIIN sentence into the holder. Blocks until a read error.
func RunSerialBridge(portName string, baudRate uint, h *Holder) error {
	serialOpts := serial.OpenOptions{
		PortName:        portName,
		BaudRate:        baudRate,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
		ParityMode:      serial.PARITY_NONE,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return err
	}
	defer port.Close()
	log.Printf("input: serial port opened on %s at %d baud", portName, baudRate)

	reader := bufio.NewReader(port)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Printf("input: serial read error: %v", err)
			return err
		}

		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "$") {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			log.Printf("input: sentence parse error: %v", err)
			continue
		}

		switch m := sentence.(type) {
		case PWIIN:
			h.Update(m.apply)
		default:
			// ignore other sentence types
		}
	}
}
