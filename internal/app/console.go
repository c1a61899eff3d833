package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/motion_emulator/internal/config"
	"github.com/relabs-tech/motion_emulator/internal/input"
	"github.com/relabs-tech/motion_emulator/internal/orientation"
	"github.com/relabs-tech/motion_emulator/internal/wiimote"
)

// RunConsole subscribes to the emulator topics and prints every message
// as a formatted line. Useful for eyeballing the dynamics output without
// the web UI.
func RunConsole() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	// Subscribe to sensor reports
	reportToken := client.Subscribe(cfg.TopicReport, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var r wiimote.Report
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			log.Printf("console: report unmarshal error: %v", err)
			return
		}

		fmt.Printf(
			"[REPO]  ax=%4d ay=%4d az=%4d  gx=%7.3f gy=%7.3f gz=%7.3f  point P=%6.3f Y=%6.3f\n",
			r.AccelX, r.AccelY, r.AccelZ,
			r.GyroX, r.GyroY, r.GyroZ,
			r.PointPitch, r.PointYaw,
		)
	})
	reportToken.Wait()
	if reportToken.Error() != nil {
		return reportToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicReport)

	// Subscribe to fused pose
	poseToken := client.Subscribe(cfg.TopicPose, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var p orientation.Pose
		if err := json.Unmarshal(msg.Payload(), &p); err != nil {
			log.Printf("console: pose unmarshal error: %v", err)
			return
		}

		fmt.Printf(
			"[POSE]  ROLL=%6.2f  PITCH=%6.2f  YAW=%6.2f\n",
			p.Roll, p.Pitch, p.Yaw,
		)
	})
	poseToken.Wait()
	if poseToken.Error() != nil {
		return poseToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicPose)

	// Subscribe to input snapshots, when another component republishes them
	inputToken := client.Subscribe(cfg.TopicInput, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s input.State
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("console: input unmarshal error: %v", err)
			return
		}

		fmt.Printf(
			"[INPT]  tilt=%.2f,%.2f  swing=%.2f,%.2f,%.2f  shake=%.2f,%.2f,%.2f  cursor=%.2f,%.2f vis=%t\n",
			s.Tilt.X, s.Tilt.Y,
			s.Swing.X, s.Swing.Y, s.Swing.Z,
			s.Shake.X, s.Shake.Y, s.Shake.Z,
			s.Cursor.X, s.Cursor.Y, s.CursorVisible,
		)
	})
	inputToken.Wait()
	if inputToken.Error() != nil {
		return inputToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicInput)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
