package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "motion_config.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMinimal(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
# comment line

MQTT_BROKER=tcp://localhost:1883
INPUT_SOURCE=mock
`))
	require.NoError(t, err)

	assert.Equal(t, "tcp://localhost:1883", cfg.MQTTBroker)
	assert.Equal(t, "mock", cfg.InputSource)

	// Defaults fill everything else.
	assert.Equal(t, 200, cfg.UpdateRate)
	assert.Equal(t, 115200, cfg.InputBaudRate)
	assert.Equal(t, "motion/report", cfg.TopicReport)
	assert.Equal(t, 0.5, cfg.SwingMaxDistance)
	assert.Equal(t, 6.0, cfg.ShakeFrequency)
	assert.True(t, cfg.SensorBarOnTop)
	assert.Equal(t, 0.02, cfg.IMUAccelWeight)
}

func TestLoadFullOverride(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
MQTT_BROKER=tcp://broker:1883
INPUT_SOURCE=serial
INPUT_SERIAL_PORT=/dev/ttyUSB0
INPUT_BAUD_RATE=9600
UPDATE_RATE=100
TITLEDB_PATH=titles.yaml
ACTIVE_TITLE=S3AE5G
WIDESCREEN=true
SENSOR_BAR_ON_TOP=false
FAST_POINTER=true
SIDEWAYS=true
TILT_MAX_ROTATIONAL_VELOCITY_DEG=180
SWING_MAX_DISTANCE=0.25
SHAKE_INTENSITY=0.3
POINT_TOTAL_YAW_DEG=30
CALIBRATION_ZERO_G=130
CALIBRATION_ONE_G=156
IMU_ACCEL_RANGE=2
DISPLAY_UPDATE_INTERVAL=250
`))
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB0", cfg.InputSerialPort)
	assert.Equal(t, 9600, cfg.InputBaudRate)
	assert.Equal(t, 100, cfg.UpdateRate)
	assert.Equal(t, "S3AE5G", cfg.ActiveTitle)
	assert.True(t, cfg.Widescreen)
	assert.False(t, cfg.SensorBarOnTop)
	assert.True(t, cfg.FastPointer)
	assert.True(t, cfg.Sideways)
	assert.False(t, cfg.Upright)
	assert.Equal(t, 180.0, cfg.TiltMaxRotationalVelocityDeg)
	assert.Equal(t, 0.25, cfg.SwingMaxDistance)
	assert.Equal(t, 30.0, cfg.PointTotalYawDeg)
	assert.Equal(t, 130, cfg.CalibrationZeroG)
	assert.Equal(t, 156, cfg.CalibrationOneG)
	assert.Equal(t, byte(2), cfg.IMUAccelRange)
	assert.Equal(t, 250, cfg.DisplayUpdateInterval)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing broker", "UPDATE_RATE=200\nINPUT_SOURCE=mock\n"},
		{"unknown key", "MQTT_BROKER=tcp://x\nINPUT_SOURCE=mock\nNO_SUCH_KEY=1\n"},
		{"malformed line", "MQTT_BROKER=tcp://x\njust some words\n"},
		{"bad number", "MQTT_BROKER=tcp://x\nUPDATE_RATE=fast\n"},
		{"bad source", "MQTT_BROKER=tcp://x\nINPUT_SOURCE=telepathy\n"},
		{"serial without port", "MQTT_BROKER=tcp://x\nINPUT_SOURCE=serial\n"},
		{"passthrough without device", "MQTT_BROKER=tcp://x\nINPUT_SOURCE=mock\nIMU_PASSTHROUGH=true\n"},
		{"range out of bounds", "MQTT_BROKER=tcp://x\nINPUT_SOURCE=mock\nIMU_GYRO_RANGE=7\n"},
		{"calibration out of bounds", "MQTT_BROKER=tcp://x\nINPUT_SOURCE=mock\nCALIBRATION_ZERO_G=300\n"},
		{"zero update rate", "MQTT_BROKER=tcp://x\nINPUT_SOURCE=mock\nUPDATE_RATE=0\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
