package sensors

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/motion_emulator/internal/input"
)

func TestScaleAccel(t *testing.T) {
	// Half full-scale on the 2g range is exactly one g.
	raw := Raw{Ax: 16384, Az: -32768}
	accel, _ := Scale(raw, 0, 0)

	assert.InDelta(t, StandardGravity, accel.X, 1e-9)
	assert.InDelta(t, 0.0, accel.Y, 1e-9)
	assert.InDelta(t, -2*StandardGravity, accel.Z, 1e-9)
}

func TestScaleGyro(t *testing.T) {
	raw := Raw{Gz: 16384}
	_, gyro := Scale(raw, 0, 0)

	// Half full-scale on the 250 dps range.
	assert.InDelta(t, 125*math.Pi/180, gyro.Z, 1e-9)
	assert.InDelta(t, 0.0, gyro.X, 1e-9)
}

func TestScaleRangeSelector(t *testing.T) {
	raw := Raw{Ax: 16384}

	accel2, _ := Scale(raw, 0, 0)
	accel16, _ := Scale(raw, 3, 0)
	assert.InDelta(t, 8*accel2.X, accel16.X, 1e-9)

	// Selectors only use the low two bits.
	accelMasked, _ := Scale(raw, 4, 0)
	assert.InDelta(t, accel2.X, accelMasked.X, 1e-9)
}

type fixedReader struct {
	raw Raw
	err error
}

func (r fixedReader) ReadRaw() (Raw, error) { return r.raw, r.err }

func TestRunPassthroughFeedsHolder(t *testing.T) {
	h := input.NewHolder()
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		RunPassthrough(fixedReader{raw: Raw{Ax: 16384}}, 0, 0, time.Millisecond, h, stop)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return h.Get().AccelValid
	}, time.Second, 5*time.Millisecond)

	s := h.Get()
	assert.True(t, s.GyroValid)
	assert.InDelta(t, StandardGravity, s.Accel.X, 1e-9)

	close(stop)
	<-done
}

func TestRunPassthroughInvalidatesOnError(t *testing.T) {
	h := input.NewHolder()
	h.Update(func(s *input.State) {
		s.AccelValid = true
		s.GyroValid = true
	})

	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		RunPassthrough(fixedReader{err: errors.New("bus fault")}, 0, 0, time.Millisecond, h, stop)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return !h.Get().AccelValid
	}, time.Second, 5*time.Millisecond)
	assert.False(t, h.Get().GyroValid)

	close(stop)
	<-done
}
