package input

import (
	"fmt"
	"testing"
	"time"

	nmea "github.com/adrianmo/go-nmea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/motion_emulator/internal/vecmath"
)

// sentence wraps a body with the NMEA framing and checksum.
func sentence(body string) string {
	var sum byte
	for i := 0; i < len(body); i++ {
		sum ^= body[i]
	}
	return fmt.Sprintf("$%s*%02X", body, sum)
}

func TestParsePWIIN(t *testing.T) {
	line := sentence("PWIIN,0.10,-0.20,0.00,0.50,0.00,1.00,0.00,0.00,0.25,-0.75,1,0")

	s, err := nmea.Parse(line)
	require.NoError(t, err)

	m, ok := s.(PWIIN)
	require.True(t, ok, "expected a PWIIN sentence, got %T", s)

	// The proprietary prefix splits into talker "P" and type "WIIN"; the
	// parser must be registered under the type or nothing matches.
	assert.Equal(t, "P", m.TalkerID())
	assert.Equal(t, TypePWIIN, m.DataType())

	assert.Equal(t, 0.10, m.TiltX)
	assert.Equal(t, -0.20, m.TiltY)
	assert.Equal(t, 0.50, m.SwingY)
	assert.Equal(t, 1.00, m.ShakeX)
	assert.Equal(t, 0.25, m.CursorX)
	assert.Equal(t, -0.75, m.CursorY)
	assert.True(t, m.CursorVisible)
	assert.False(t, m.Recenter)
}

func TestParsePWIINBadChecksum(t *testing.T) {
	_, err := nmea.Parse("$PWIIN,0,0,0,0,0,0,0,0,0,0,1,0*00")
	assert.Error(t, err)
}

func TestParsePWIINShortSentence(t *testing.T) {
	_, err := nmea.Parse(sentence("PWIIN,0.10,-0.20"))
	assert.Error(t, err)
}

func TestPWIINApply(t *testing.T) {
	line := sentence("PWIIN,0.10,-0.20,0.00,0.50,0.00,1.00,0.00,0.00,0.25,-0.75,1,1")
	s, err := nmea.Parse(line)
	require.NoError(t, err)
	m := s.(PWIIN)

	h := NewHolder()
	// Passthrough IMU fields arrive from another goroutine and must
	// survive a deck update.
	h.Update(func(st *State) {
		st.Accel = vecmath.Vec3{Z: 9.8}
		st.AccelValid = true
	})

	h.Update(m.apply)

	got := h.Get()
	assert.Equal(t, vecmath.Vec2{X: 0.10, Y: -0.20}, got.Tilt)
	assert.Equal(t, vecmath.Vec3{Y: 0.50}, got.Swing)
	assert.Equal(t, vecmath.Vec3{X: 1.00}, got.Shake)
	assert.Equal(t, vecmath.Vec2{X: 0.25, Y: -0.75}, got.Cursor)
	assert.True(t, got.CursorVisible)
	assert.True(t, got.Recenter)

	assert.True(t, got.AccelValid, "IMU fields must not be clobbered")
	assert.Equal(t, vecmath.Vec3{Z: 9.8}, got.Accel)
}

func TestHolderSetGet(t *testing.T) {
	h := NewHolder()
	assert.Equal(t, State{}, h.Get())

	s := State{CursorVisible: true, Cursor: vecmath.Vec2{X: 0.5}}
	h.Set(s)
	assert.Equal(t, s, h.Get())
}

func TestProvidersScaleSettings(t *testing.T) {
	h := NewHolder()
	h.Set(State{
		Tilt:          vecmath.Vec2{X: 0.5},
		Swing:         vecmath.Vec3{Y: 1},
		CursorVisible: true,
	})

	s := Settings{
		TiltMaxRotationalVelocity: 6.28,
		SwingMaxDistance:          0.5,
		PointVerticalOffset:       0.1,
		PointTotalYaw:             0.4,
		PointTotalPitch:           0.35,
		SensorBarOnTop:            true,
	}
	p := NewProviders(h, s, nil)

	assert.Equal(t, vecmath.Vec2{X: 0.5}, p.Tilt.State())
	assert.Equal(t, 6.28, p.Tilt.MaxRotationalVelocity())

	// Swing input is scaled from normalized to meters.
	assert.Equal(t, vecmath.Vec3{Y: 0.5}, p.Swing.State())

	// Without a corrector the cursor passes through with base params.
	cursor, visible := p.Cursor.State()
	assert.True(t, visible)
	assert.Equal(t, vecmath.Vec2{}, cursor)
	assert.Equal(t, 0.1, p.Cursor.VerticalOffset())
	assert.Equal(t, 0.4, p.Cursor.TotalYaw())
	assert.False(t, p.Cursor.Responsive())
}

func TestCursorControlAppliesCorrector(t *testing.T) {
	h := NewHolder()
	h.Set(State{Cursor: vecmath.Vec2{X: 0.5}, CursorVisible: true})

	s := Settings{FastPointer: true, PointTotalYaw: 0.4}
	corrector := func(cursor vecmath.Vec2) AimCorrection {
		return AimCorrection{
			Cursor:   cursor.Scaled(0.5),
			TotalYaw: 0.6,
			Applied:  true,
		}
	}
	p := NewProviders(h, s, corrector)

	cursor, _ := p.Cursor.State()
	assert.Equal(t, vecmath.Vec2{X: 0.25}, cursor)
	assert.Equal(t, 0.6, p.Cursor.TotalYaw())

	// Responsive pointing needs both the setting and an applied correction.
	assert.True(t, p.Cursor.Responsive())
}

func TestMockSourceVisibleCursor(t *testing.T) {
	src := NewMockSource()
	st := src.Next()
	assert.True(t, st.CursorVisible)
}

func TestFeedCopiesSnapshots(t *testing.T) {
	h := NewHolder()
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		Feed(NewMockSource(), h, time.Millisecond, stop)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return h.Get().CursorVisible
	}, time.Second, 5*time.Millisecond)

	close(stop)
	<-done
}
