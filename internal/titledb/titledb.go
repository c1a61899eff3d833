// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package titledb holds the per-title aim correction table: empirical
// cursor adjustments and derived pointer parameters for titles whose
// on-screen crosshair drifts from the raw cursor position. The table is
// plain YAML data keyed by title id rather than compiled branching logic.
package titledb

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// Correction is one measured record. VerticalOffset is in centimeters
// and Yaw/Pitch in degrees, matching how the values were taken; Params
// converts them to SI. VerticalOffset is a pointer and Yaw/Pitch treat
// zero as unset, so a record may override only part of the configured
// pointer geometry.
//
// The coefficients bend the cursor based on its distance from the
// screen axes. Multiplicative terms first:
//
//   - ScaleX stretches x by a fixed factor (aspect compensation).
//   - GainX scales x by 1+c*(1-|x|): full effect at center, none at the
//     edge. GainXLeft overrides the coefficient for x < 0.
//   - GainY is the same for y; GainYLower applies on the lower half
//     only and FlareYUpper scales y by 1+c*|y| on the upper half.
//
// Then additive terms, whose magnitudes read the original coordinates
// so they stay order independent:
//
//   - ShiftX is a constant offset; DriftX adds c*|x| without regard to
//     sign, a one-direction skew.
//   - SpreadX/SpreadY push the axis outward by c*|axis| (negative pulls
//     inward). SpreadXLeft overrides SpreadX for x < 0.
//   - LiftYLower/LiftYUpper raise y by c*|y| on that half only, and
//     DropYUpper lowers y by c*|x| on the upper half.
//   - PullXDown/PullXUp move x toward center by c*|x|*|y| when the
//     cursor is below/above the horizontal axis, with PullXDownLeft
//     overriding the down coefficient for x < 0.
//   - PullYLeft/PullYRight do the same for y left/right of center, and
//     PullYUpper on the upper half. Negative pulls push outward.
type Correction struct {
	VerticalOffset *float64 `yaml:"vertical_offset,omitempty"`
	Yaw            float64  `yaml:"yaw,omitempty"`
	Pitch          float64  `yaml:"pitch,omitempty"`

	ScaleX      float64  `yaml:"scale_x,omitempty"`
	GainX       float64  `yaml:"gain_x,omitempty"`
	GainXLeft   *float64 `yaml:"gain_x_left,omitempty"`
	GainY       float64  `yaml:"gain_y,omitempty"`
	GainYLower  float64  `yaml:"gain_y_lower,omitempty"`
	FlareYUpper float64  `yaml:"flare_y_upper,omitempty"`

	ShiftX        float64  `yaml:"shift_x,omitempty"`
	DriftX        float64  `yaml:"drift_x,omitempty"`
	SpreadX       float64  `yaml:"spread_x,omitempty"`
	SpreadXLeft   *float64 `yaml:"spread_x_left,omitempty"`
	SpreadY       float64  `yaml:"spread_y,omitempty"`
	LiftYLower    float64  `yaml:"lift_y_lower,omitempty"`
	LiftYUpper    float64  `yaml:"lift_y_upper,omitempty"`
	DropYUpper    float64  `yaml:"drop_y_upper,omitempty"`
	PullXDown     float64  `yaml:"pull_x_down,omitempty"`
	PullXDownLeft *float64 `yaml:"pull_x_down_left,omitempty"`
	PullXUp       float64  `yaml:"pull_x_up,omitempty"`
	PullYLeft     float64  `yaml:"pull_y_left,omitempty"`
	PullYRight    float64  `yaml:"pull_y_right,omitempty"`
	PullYUpper    float64  `yaml:"pull_y_upper,omitempty"`
}

// Entry carries the records of one title. The adjustments were measured
// separately per output aspect, so 4:3 and widescreen each have their
// own record; a missing record leaves that aspect uncorrected.
type Entry struct {
	Title      string      `yaml:"title,omitempty"`
	Standard   *Correction `yaml:"standard,omitempty"`
	Widescreen *Correction `yaml:"widescreen,omitempty"`
}

// Params are the derived pointer parameters in SI units.
type Params struct {
	VerticalOffset float64 // meters
	TotalYaw       float64 // radians
	TotalPitch     float64 // radians
}

// Params converts the record's measured values, keeping base for any
// value the record leaves unset.
func (c Correction) Params(base Params) Params {
	p := base
	if c.VerticalOffset != nil {
		p.VerticalOffset = *c.VerticalOffset / 100
	}
	if c.Yaw != 0 {
		p.TotalYaw = c.Yaw * math.Pi / 180
	}
	if c.Pitch != 0 {
		p.TotalPitch = c.Pitch * math.Pi / 180
	}
	return p
}

// Apply bends a raw cursor position by the record coefficients. The
// original coordinates drive every weight so the terms stay order
// independent; only the multiplicative terms compose on the running
// value.
func (c Correction) Apply(cursor vecmath.Vec2) vecmath.Vec2 {
	xori, yori := cursor.X, cursor.Y
	ax, ay := math.Abs(xori), math.Abs(yori)

	out := cursor

	if c.ScaleX != 0 {
		out.X *= c.ScaleX
	}
	gainX := c.GainX
	if xori < 0 && c.GainXLeft != nil {
		gainX = *c.GainXLeft
	}
	if gainX != 0 {
		out.X *= 1 + gainX*(1-ax)
	}
	if c.GainY != 0 {
		out.Y *= 1 + c.GainY*(1-ay)
	}
	if yori < 0 && c.GainYLower != 0 {
		out.Y *= 1 + c.GainYLower*(1-ay)
	}
	if yori > 0 && c.FlareYUpper != 0 {
		out.Y *= 1 + c.FlareYUpper*ay
	}

	out.X += c.ShiftX
	if c.DriftX != 0 {
		out.X += c.DriftX * ax
	}

	spreadX := c.SpreadX
	if xori < 0 && c.SpreadXLeft != nil {
		spreadX = *c.SpreadXLeft
	}
	if spreadX != 0 {
		out.X += spreadX * math.Copysign(ax, xori)
	}
	if c.SpreadY != 0 {
		out.Y += c.SpreadY * math.Copysign(ay, yori)
	}

	if yori < 0 && c.LiftYLower != 0 {
		out.Y += c.LiftYLower * ay
	}
	if yori > 0 && c.LiftYUpper != 0 {
		out.Y += c.LiftYUpper * ay
	}
	if yori > 0 && c.DropYUpper != 0 {
		out.Y -= c.DropYUpper * ax
	}

	pullXDown := c.PullXDown
	if xori < 0 && c.PullXDownLeft != nil {
		pullXDown = *c.PullXDownLeft
	}
	if yori < 0 && pullXDown != 0 {
		out.X -= pullXDown * ay * math.Copysign(ax, xori)
	}
	if yori > 0 && c.PullXUp != 0 {
		out.X -= c.PullXUp * ay * math.Copysign(ax, xori)
	}
	if xori < 0 && c.PullYLeft != 0 {
		out.Y -= c.PullYLeft * ax * math.Copysign(ay, yori)
	}
	if xori > 0 && c.PullYRight != 0 {
		out.Y -= c.PullYRight * ax * math.Copysign(ay, yori)
	}
	if yori > 0 && c.PullYUpper != 0 {
		out.Y -= c.PullYUpper * ax * math.Copysign(ay, yori)
	}

	return out
}

// DB is the loaded correction table.
type DB struct {
	entries map[string]Entry
}

// Load reads the YAML table. The file maps title id to entry; an entry
// listed under one id applies to that id only, so regional variants
// each carry their own copy.
func Load(path string) (*DB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read title db: %w", err)
	}

	var entries map[string]Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse title db: %w", err)
	}

	return &DB{entries: entries}, nil
}

// Len returns the number of entries.
func (db *DB) Len() int {
	return len(db.entries)
}

// Lookup returns the entry for a title id.
func (db *DB) Lookup(titleID string) (Entry, bool) {
	e, ok := db.entries[titleID]
	return e, ok
}

// Correct adjusts a cursor position and derives the pointer parameters
// for the active title and output aspect. An unknown title, or a title
// without a record for the requested aspect, passes through unchanged
// with the base parameters and reports applied=false.
func (db *DB) Correct(titleID string, widescreen bool, cursor vecmath.Vec2, base Params) (vecmath.Vec2, Params, bool) {
	e, ok := db.entries[titleID]
	if !ok {
		return cursor, base, false
	}
	c := e.Standard
	if widescreen {
		c = e.Widescreen
	}
	if c == nil {
		return cursor, base, false
	}
	return c.Apply(cursor), c.Params(base), true
}
