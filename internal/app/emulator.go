package app

import (
	"encoding/json"
	"log"
	"math"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/motion_emulator/internal/config"
	"github.com/relabs-tech/motion_emulator/internal/input"
	"github.com/relabs-tech/motion_emulator/internal/orientation"
	"github.com/relabs-tech/motion_emulator/internal/sensors"
	"github.com/relabs-tech/motion_emulator/internal/titledb"
	"github.com/relabs-tech/motion_emulator/internal/vecmath"
	"github.com/relabs-tech/motion_emulator/internal/wiimote"
)

// fileCalibration overrides the factory accelerometer codes with values
// from the config file.
type fileCalibration struct {
	zeroG, oneG uint16
}

func (c fileCalibration) ZeroG() uint16 { return c.zeroG }
func (c fileCalibration) OneG() uint16  { return c.oneG }

const radPerDeg = math.Pi / 180

// settingsFromConfig converts the file units (degrees, centimeters) into
// the SI units the motion core works in.
func settingsFromConfig(cfg *config.Config) input.Settings {
	return input.Settings{
		TiltMaxRotationalVelocity: cfg.TiltMaxRotationalVelocityDeg * radPerDeg,

		SwingMaxDistance: cfg.SwingMaxDistance,
		SwingTwistAngle:  cfg.SwingTwistAngleDeg * radPerDeg,
		SwingSpeed:       cfg.SwingSpeed,
		SwingReturnSpeed: cfg.SwingReturnSpeed,

		ShakeIntensity: cfg.ShakeIntensity,
		ShakeFrequency: cfg.ShakeFrequency,

		PointVerticalOffset: cfg.PointVerticalOffsetCm / 100,
		PointTotalYaw:       cfg.PointTotalYawDeg * radPerDeg,
		PointTotalPitch:     cfg.PointTotalPitchDeg * radPerDeg,
		SensorBarOnTop:      cfg.SensorBarOnTop,
		FastPointer:         cfg.FastPointer,

		IMUPointEnabled:  cfg.IMUPointEnabled,
		IMUAccelWeight:   cfg.IMUAccelWeight,
		IMUPointTotalYaw: cfg.IMUPointTotalYawDeg * radPerDeg,
	}
}

// newAimCorrector binds the title database to the active title and
// output aspect. When the table has no record for the title and aspect
// the base pointer settings pass through unchanged; a record that sets
// only some of the pointer geometry keeps the base for the rest.
func newAimCorrector(db *titledb.DB, base input.Settings, titleID string, widescreen bool) input.AimCorrector {
	baseParams := titledb.Params{
		VerticalOffset: base.PointVerticalOffset,
		TotalYaw:       base.PointTotalYaw,
		TotalPitch:     base.PointTotalPitch,
	}
	return func(cursor vecmath.Vec2) input.AimCorrection {
		corrected, params, ok := db.Correct(titleID, widescreen, cursor, baseParams)
		return input.AimCorrection{
			Cursor:         corrected,
			VerticalOffset: params.VerticalOffset,
			TotalYaw:       params.TotalYaw,
			TotalPitch:     params.TotalPitch,
			Applied:        ok,
		}
	}
}

// RunEmulator is the main producer: it consumes input snapshots, steps
// the device dynamics at the configured rate and publishes sensor reports
// and the fused pose over MQTT.
func RunEmulator() error {
	log.Println("starting motion emulator producer")

	cfg := config.Get()
	settings := settingsFromConfig(cfg)

	holder := input.NewHolder()
	stop := make(chan struct{})
	defer close(stop)

	// --- input source (serial input deck or mock) ---
	switch cfg.InputSource {
	case "mock":
		log.Println("using mock input source")
		go input.Feed(input.NewMockSource(), holder,
			time.Second/time.Duration(cfg.UpdateRate), stop)
	default:
		go func() {
			if err := input.RunSerialBridge(cfg.InputSerialPort,
				uint(cfg.InputBaudRate), holder); err != nil {
				log.Fatalf("serial bridge: %v", err)
			}
		}()
	}

	// --- optional real IMU feeding the fusion path ---
	if cfg.IMUPassthrough {
		reader, err := sensors.NewMPU9250(cfg.IMUSPIDevice,
			cfg.IMUAccelRange, cfg.IMUGyroRange)
		if err != nil {
			log.Fatalf("failed to initialize IMU: %v", err)
			return err
		}
		log.Printf("IMU passthrough enabled on %s", cfg.IMUSPIDevice)
		go sensors.RunPassthrough(reader, cfg.IMUAccelRange, cfg.IMUGyroRange,
			time.Duration(cfg.IMUSampleInterval)*time.Millisecond, holder, stop)
	}

	// --- per-title aim correction ---
	var corrector input.AimCorrector
	if cfg.TitleDBPath != "" {
		db, err := titledb.Load(cfg.TitleDBPath)
		if err != nil {
			log.Fatalf("failed to load title db: %v", err)
			return err
		}
		log.Printf("title db loaded: %d entries, active title %q",
			db.Len(), cfg.ActiveTitle)
		corrector = newAimCorrector(db, settings, cfg.ActiveTitle, cfg.Widescreen)
	}

	providers := input.NewProviders(holder, settings, corrector)
	device := wiimote.New(wiimote.Inputs{
		Tilt:     providers.Tilt,
		Swing:    providers.Swing,
		Shake:    providers.Shake,
		Cursor:   providers.Cursor,
		IMUPoint: providers.IMUPoint,
		IMU:      providers.IMU,
	})
	device.SetOrientationFlags(cfg.Sideways, cfg.Upright)
	if cfg.CalibrationZeroG != 0 || cfg.CalibrationOneG != 0 {
		device.SetCalibration(fileCalibration{
			zeroG: uint16(cfg.CalibrationZeroG),
			oneG:  uint16(cfg.CalibrationOneG),
		})
	}

	// --- connect to MQTT ---
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDEmulator)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("MQTT connect error: %v", token.Error())
		return token.Error()
	}
	defer client.Disconnect(250)

	log.Println("connected to MQTT, starting dynamics loop")

	dt := 1.0 / float64(cfg.UpdateRate)
	ticker := time.NewTicker(time.Second / time.Duration(cfg.UpdateRate))
	defer ticker.Stop()

	tickCount := 0

	for t := range ticker.C {
		device.StepDynamics(dt)

		report := device.BuildReport()
		if payload, err := json.Marshal(report); err != nil {
			log.Printf("json marshal error (report): %v", err)
		} else {
			if token := client.Publish(cfg.TopicReport, 0, true, payload); token.Wait() && token.Error() != nil {
				log.Printf("MQTT publish error (report): %v", token.Error())
				continue
			}
		}

		pose := orientation.FromQuaternion(device.CursorRotation())
		if payload, err := json.Marshal(pose); err != nil {
			log.Printf("json marshal error (pose): %v", err)
		} else {
			if token := client.Publish(cfg.TopicPose, 0, true, payload); token.Wait() && token.Error() != nil {
				log.Printf("MQTT publish error (pose): %v", token.Error())
				continue
			}
		}

		// One status line per second is enough at 200 Hz.
		tickCount++
		if tickCount%cfg.UpdateRate == 0 {
			log.Printf("%s tick: accel=%d,%d,%d | gyro=%.3f,%.3f,%.3f | pose R=%.2f P=%.2f Y=%.2f",
				t.Format(time.RFC3339),
				report.AccelX, report.AccelY, report.AccelZ,
				report.GyroX, report.GyroY, report.GyroZ,
				pose.Roll, pose.Pitch, pose.Yaw,
			)
		}
	}
	return nil
}
