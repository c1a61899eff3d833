package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values. Gesture settings are
// kept in the units they are written in (degrees, centimeters); the
// emulator converts to SI when wiring the input providers.
type Config struct {
	// MQTT
	MQTTBroker           string
	MQTTClientIDEmulator string
	MQTTClientIDConsole  string
	MQTTClientIDWeb      string
	MQTTClientIDDisplay  string

	// Topics
	TopicReport string
	TopicPose   string
	TopicInput  string

	// Timing
	// UpdateRate is the dynamics tick rate in Hz.
	UpdateRate int

	// Input
	// InputSource selects "serial" or "mock".
	InputSource     string
	InputSerialPort string
	InputBaudRate   int

	// IMU passthrough (optional real sensor)
	IMUPassthrough    bool
	IMUSPIDevice      string
	IMUAccelRange     byte // 0=±2g, 1=±4g, 2=±8g, 3=±16g
	IMUGyroRange      byte // 0=±250°/s, 1=±500°/s, 2=±1000°/s, 3=±2000°/s
	IMUSampleInterval int  // milliseconds

	// Title database
	TitleDBPath string
	ActiveTitle string
	Widescreen  bool

	// Device
	SensorBarOnTop bool
	FastPointer    bool
	Sideways       bool
	Upright        bool

	// Gestures
	TiltMaxRotationalVelocityDeg float64 // deg/s
	SwingMaxDistance             float64 // meters
	SwingTwistAngleDeg           float64 // degrees
	SwingSpeed                   float64 // m/s
	SwingReturnSpeed             float64 // m/s
	ShakeIntensity               float64 // meters
	ShakeFrequency               float64 // Hz
	PointVerticalOffsetCm        float64 // centimeters
	PointTotalYawDeg             float64 // degrees
	PointTotalPitchDeg           float64 // degrees
	IMUPointEnabled              bool
	IMUAccelWeight               float64
	IMUPointTotalYawDeg          float64 // degrees

	// Calibration (0 means factory default)
	CalibrationZeroG int
	CalibrationOneG  int

	// Web server
	WebServerPort int

	// Display
	DisplayUpdateInterval int // milliseconds
}

var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// defaults mirror the stock emulator profile.
func defaults() *Config {
	return &Config{
		TopicReport: "motion/report",
		TopicPose:   "motion/pose",
		TopicInput:  "motion/input",

		UpdateRate: 200,

		InputSource:   "serial",
		InputBaudRate: 115200,

		IMUSampleInterval: 5,

		SensorBarOnTop: true,

		TiltMaxRotationalVelocityDeg: 360,
		SwingMaxDistance:             0.5,
		SwingTwistAngleDeg:           90,
		SwingSpeed:                   9,
		SwingReturnSpeed:             3.5,
		ShakeIntensity:               0.5,
		ShakeFrequency:               6,
		PointVerticalOffsetCm:        10,
		PointTotalYawDeg:             25,
		PointTotalPitchDeg:           20,
		IMUAccelWeight:               0.02,
		IMUPointTotalYawDeg:          360,

		WebServerPort:         8080,
		DisplayUpdateInterval: 100,
	}
}

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := defaults()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseInt(key, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return v, nil
}

func parseFloat(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return v, nil
}

func parseBool(key, value string) (bool, error) {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return v, nil
}

func parseRange(key, value string) (byte, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if v < 0 || v > 3 {
		return 0, fmt.Errorf("%s must be 0-3, got %d", key, v)
	}
	return byte(v), nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	var err error
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_EMULATOR":
		c.MQTTClientIDEmulator = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value

	// Topics
	case "TOPIC_REPORT":
		c.TopicReport = value
	case "TOPIC_POSE":
		c.TopicPose = value
	case "TOPIC_INPUT":
		c.TopicInput = value

	// Timing
	case "UPDATE_RATE":
		if c.UpdateRate, err = parseInt(key, value); err != nil {
			return err
		}
		if c.UpdateRate <= 0 {
			return fmt.Errorf("UPDATE_RATE must be positive, got %d", c.UpdateRate)
		}

	// Input
	case "INPUT_SOURCE":
		if value != "serial" && value != "mock" {
			return fmt.Errorf("INPUT_SOURCE must be \"serial\" or \"mock\", got %q", value)
		}
		c.InputSource = value
	case "INPUT_SERIAL_PORT":
		c.InputSerialPort = value
	case "INPUT_BAUD_RATE":
		c.InputBaudRate, err = parseInt(key, value)

	// IMU passthrough
	case "IMU_PASSTHROUGH":
		c.IMUPassthrough, err = parseBool(key, value)
	case "IMU_SPI_DEVICE":
		c.IMUSPIDevice = value
	case "IMU_ACCEL_RANGE":
		c.IMUAccelRange, err = parseRange(key, value)
	case "IMU_GYRO_RANGE":
		c.IMUGyroRange, err = parseRange(key, value)
	case "IMU_SAMPLE_INTERVAL":
		c.IMUSampleInterval, err = parseInt(key, value)

	// Title database
	case "TITLEDB_PATH":
		c.TitleDBPath = value
	case "ACTIVE_TITLE":
		c.ActiveTitle = value
	case "WIDESCREEN":
		c.Widescreen, err = parseBool(key, value)

	// Device
	case "SENSOR_BAR_ON_TOP":
		c.SensorBarOnTop, err = parseBool(key, value)
	case "FAST_POINTER":
		c.FastPointer, err = parseBool(key, value)
	case "SIDEWAYS":
		c.Sideways, err = parseBool(key, value)
	case "UPRIGHT":
		c.Upright, err = parseBool(key, value)

	// Gestures
	case "TILT_MAX_ROTATIONAL_VELOCITY_DEG":
		c.TiltMaxRotationalVelocityDeg, err = parseFloat(key, value)
	case "SWING_MAX_DISTANCE":
		c.SwingMaxDistance, err = parseFloat(key, value)
	case "SWING_TWIST_ANGLE_DEG":
		c.SwingTwistAngleDeg, err = parseFloat(key, value)
	case "SWING_SPEED":
		c.SwingSpeed, err = parseFloat(key, value)
	case "SWING_RETURN_SPEED":
		c.SwingReturnSpeed, err = parseFloat(key, value)
	case "SHAKE_INTENSITY":
		c.ShakeIntensity, err = parseFloat(key, value)
	case "SHAKE_FREQUENCY":
		c.ShakeFrequency, err = parseFloat(key, value)
	case "POINT_VERTICAL_OFFSET_CM":
		c.PointVerticalOffsetCm, err = parseFloat(key, value)
	case "POINT_TOTAL_YAW_DEG":
		c.PointTotalYawDeg, err = parseFloat(key, value)
	case "POINT_TOTAL_PITCH_DEG":
		c.PointTotalPitchDeg, err = parseFloat(key, value)
	case "IMU_POINT_ENABLED":
		c.IMUPointEnabled, err = parseBool(key, value)
	case "IMU_ACCEL_WEIGHT":
		c.IMUAccelWeight, err = parseFloat(key, value)
	case "IMU_POINT_TOTAL_YAW_DEG":
		c.IMUPointTotalYawDeg, err = parseFloat(key, value)

	// Calibration
	case "CALIBRATION_ZERO_G":
		if c.CalibrationZeroG, err = parseInt(key, value); err != nil {
			return err
		}
		if c.CalibrationZeroG < 0 || c.CalibrationZeroG > 255 {
			return fmt.Errorf("CALIBRATION_ZERO_G must be 0-255, got %d", c.CalibrationZeroG)
		}
	case "CALIBRATION_ONE_G":
		if c.CalibrationOneG, err = parseInt(key, value); err != nil {
			return err
		}
		if c.CalibrationOneG < 0 || c.CalibrationOneG > 255 {
			return fmt.Errorf("CALIBRATION_ONE_G must be 0-255, got %d", c.CalibrationOneG)
		}

	// Web server
	case "WEB_SERVER_PORT":
		c.WebServerPort, err = parseInt(key, value)

	// Display
	case "DISPLAY_UPDATE_INTERVAL":
		c.DisplayUpdateInterval, err = parseInt(key, value)

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return err
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.InputSource == "serial" && c.InputSerialPort == "" {
		return fmt.Errorf("INPUT_SERIAL_PORT is required when INPUT_SOURCE=serial")
	}
	if c.IMUPassthrough && c.IMUSPIDevice == "" {
		return fmt.Errorf("IMU_SPI_DEVICE is required when IMU_PASSTHROUGH=true")
	}
	if c.ShakeFrequency <= 0 {
		return fmt.Errorf("SHAKE_FREQUENCY must be positive")
	}
	if c.SwingMaxDistance <= 0 {
		return fmt.Errorf("SWING_MAX_DISTANCE must be positive")
	}
	if c.TiltMaxRotationalVelocityDeg <= 0 {
		return fmt.Errorf("TILT_MAX_ROTATIONAL_VELOCITY_DEG must be positive")
	}
	return nil
}

// InitGlobal initializes the global configuration from file. Uses
// sync.Once so this only runs once even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance. InitGlobal must be
// called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
