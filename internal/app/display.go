package app

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/motion_emulator/internal/config"
	"github.com/relabs-tech/motion_emulator/internal/orientation"
	"github.com/relabs-tech/motion_emulator/internal/wiimote"
)

// displayData holds the latest samples for the display loop.
type displayData struct {
	mu sync.RWMutex

	report     wiimote.Report
	haveReport bool

	pose     orientation.Pose
	havePose bool
}

// RunDisplay drives a small OLED status panel showing the fused pose and
// the current accelerometer codes.
func RunDisplay() error {
	cfg := config.Get()

	// Initialize periph
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	// Open I2C bus
	bus, err := i2creg.Open("")
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer bus.Close()

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Printf("display: initialized on %s", bus)

	if err := showSplash(dev); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}

	data := &displayData{}

	// Connect to MQTT
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDDisplay)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("display: connected to MQTT broker at %s", cfg.MQTTBroker)

	reportToken := client.Subscribe(cfg.TopicReport, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var r wiimote.Report
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			log.Printf("display: report unmarshal error: %v", err)
			return
		}
		data.mu.Lock()
		data.report = r
		data.haveReport = true
		data.mu.Unlock()
	})
	reportToken.Wait()
	if reportToken.Error() != nil {
		return reportToken.Error()
	}
	log.Printf("display: subscribed to %s", cfg.TopicReport)

	poseToken := client.Subscribe(cfg.TopicPose, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var p orientation.Pose
		if err := json.Unmarshal(msg.Payload(), &p); err != nil {
			log.Printf("display: pose unmarshal error: %v", err)
			return
		}
		data.mu.Lock()
		data.pose = p
		data.havePose = true
		data.mu.Unlock()
	})
	poseToken.Wait()
	if poseToken.Error() != nil {
		return poseToken.Error()
	}
	log.Printf("display: subscribed to %s", cfg.TopicPose)

	// Display update loop
	ticker := time.NewTicker(time.Duration(cfg.DisplayUpdateInterval) * time.Millisecond)
	defer ticker.Stop()

	log.Println("display: starting update loop")

	for range ticker.C {
		data.mu.RLock()
		report, haveReport := data.report, data.haveReport
		pose, havePose := data.pose, data.havePose
		data.mu.RUnlock()

		if err := updateStatusDisplay(dev, report, haveReport, pose, havePose); err != nil {
			log.Printf("display: error updating display: %v", err)
		}
	}

	return nil
}

func newDrawer(img *image1bit.VerticalLSB) *font.Drawer {
	return &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
}

func updateStatusDisplay(dev *ssd1306.Dev, report wiimote.Report, haveReport bool,
	pose orientation.Pose, havePose bool) error {

	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))

	// Blank image
	for i := 0; i < 1024; i++ {
		img.Pix[i] = 0
	}

	drawer := newDrawer(img)

	if !havePose && !haveReport {
		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte("Motion Emu"))
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte("Waiting..."))
		return dev.Draw(dev.Bounds(), img, image.Point{})
	}

	if havePose {
		drawer.Dot = fixed.P(0, 13)
		drawer.DrawBytes([]byte(fmt.Sprintf("R: %6.1f", pose.Roll)))

		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte(fmt.Sprintf("P: %6.1f", pose.Pitch)))

		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte(fmt.Sprintf("Y: %6.1f", pose.Yaw)))
	}

	if haveReport {
		drawer.Dot = fixed.P(0, 52)
		drawer.DrawBytes([]byte(fmt.Sprintf("A:%4d %4d %4d",
			report.AccelX, report.AccelY, report.AccelZ)))
	}

	return dev.Draw(dev.Bounds(), img, image.Point{})
}

func showSplash(dev *ssd1306.Dev) error {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))

	// Blank image
	for i := 0; i < 1024; i++ {
		img.Pix[i] = 0
	}

	drawer := newDrawer(img)

	drawer.Dot = fixed.P(10, 26)
	drawer.DrawBytes([]byte("Motion"))

	drawer.Dot = fixed.P(10, 43)
	drawer.DrawBytes([]byte("Emulator"))

	return dev.Draw(dev.Bounds(), img, image.Point{})
}
