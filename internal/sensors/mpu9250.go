// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// MPU-9250 register addresses.
const (
	regSmplrtDiv   = 0x19
	regConfig      = 0x1A
	regGyroConfig  = 0x1B
	regAccelConfig = 0x1C
	regAccelXoutH  = 0x3B
	regPwrMgmt1    = 0x6B
	regWhoAmI      = 0x75

	whoAmIValue = 0x71
	readFlag    = 0x80
)

type mpu9250 struct {
	conn spi.Conn
}

// NewMPU9250 opens the given SPI device and configures the sensor with
// the given full-scale range selectors (0-3 each, per the datasheet).
func NewMPU9250(spiDev string, accelRange, gyroRange byte) (RawReader, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	port, err := spireg.Open(spiDev)
	if err != nil {
		return nil, fmt.Errorf("open SPI port %s: %w", spiDev, err)
	}

	conn, err := port.Connect(physic.MegaHertz, spi.Mode3, 8)
	if err != nil {
		return nil, fmt.Errorf("SPI connect (%s): %w", spiDev, err)
	}

	m := &mpu9250{conn: conn}

	id, err := m.readRegister(regWhoAmI)
	if err != nil {
		return nil, fmt.Errorf("WHO_AM_I read: %w", err)
	}
	if id != whoAmIValue {
		return nil, fmt.Errorf("unexpected WHO_AM_I value 0x%02X (want 0x%02X)", id, whoAmIValue)
	}

	// Wake up, auto-select best clock.
	if err := m.writeRegister(regPwrMgmt1, 0x01); err != nil {
		return nil, fmt.Errorf("power management: %w", err)
	}

	if err := m.writeRegister(regGyroConfig, gyroRange<<3); err != nil {
		return nil, fmt.Errorf("set gyro range: %w", err)
	}
	if err := m.writeRegister(regAccelConfig, accelRange<<3); err != nil {
		return nil, fmt.Errorf("set accel range: %w", err)
	}

	log.Printf("sensors: MPU9250 on %s ready (accel range %d, gyro range %d)",
		spiDev, accelRange, gyroRange)
	return m, nil
}

func (m *mpu9250) readRegister(reg byte) (byte, error) {
	w := []byte{reg | readFlag, 0}
	r := make([]byte, 2)
	if err := m.conn.Tx(w, r); err != nil {
		return 0, err
	}
	return r[1], nil
}

func (m *mpu9250) writeRegister(reg, value byte) error {
	return m.conn.Tx([]byte{reg, value}, make([]byte, 2))
}

// ReadRaw burst-reads accel + gyro in one transaction. The 14-byte block
// starting at ACCEL_XOUT_H also carries the temperature word, which is
// skipped.
func (m *mpu9250) ReadRaw() (Raw, error) {
	w := make([]byte, 15)
	w[0] = regAccelXoutH | readFlag
	r := make([]byte, 15)
	if err := m.conn.Tx(w, r); err != nil {
		return Raw{}, fmt.Errorf("burst read: %w", err)
	}

	d := r[1:]
	be16 := func(i int) int16 {
		return int16(uint16(d[i])<<8 | uint16(d[i+1]))
	}

	return Raw{
		Ax: be16(0),
		Ay: be16(2),
		Az: be16(4),
		// d[6:8] is temperature
		Gx: be16(8),
		Gy: be16(10),
		Gz: be16(12),
	}, nil
}
