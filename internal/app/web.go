package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/motion_emulator/internal/config"
	"github.com/relabs-tech/motion_emulator/internal/orientation"
	"github.com/relabs-tech/motion_emulator/internal/wiimote"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// streamHub fans each published sample out to the connected websockets.
type streamHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newStreamHub() *streamHub {
	return &streamHub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *streamHub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()
}

func (h *streamHub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
	c.Close()
}

// broadcast drops clients whose writes fail; slow consumers do not get
// to stall the MQTT callback.
func (h *streamHub) broadcast(v interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if err := c.WriteJSON(v); err != nil {
			delete(h.conns, c)
			c.Close()
		}
	}
}

// streamFrame is one websocket message: a report or a pose, tagged.
type streamFrame struct {
	Type   string            `json:"type"`
	Report *wiimote.Report   `json:"report,omitempty"`
	Pose   *orientation.Pose `json:"pose,omitempty"`
}

func RunWeb() error {
	cfg := config.Get()

	var (
		mu         sync.RWMutex
		lastReport wiimote.Report
		haveReport bool
		lastPose   orientation.Pose
		havePose   bool
	)

	hub := newStreamHub()

	// 1) Connect to MQTT broker
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	// 2) Subscribe to report and pose topics, cache and fan out
	reportToken := client.Subscribe(cfg.TopicReport, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var r wiimote.Report
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			log.Printf("web: report unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastReport = r
		haveReport = true
		mu.Unlock()
		hub.broadcast(streamFrame{Type: "report", Report: &r})
	})
	reportToken.Wait()
	if reportToken.Error() != nil {
		return reportToken.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicReport)

	poseToken := client.Subscribe(cfg.TopicPose, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var p orientation.Pose
		if err := json.Unmarshal(msg.Payload(), &p); err != nil {
			log.Printf("web: pose unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastPose = p
		havePose = true
		mu.Unlock()
		hub.broadcast(streamFrame{Type: "pose", Pose: &p})
	})
	poseToken.Wait()
	if poseToken.Error() != nil {
		return poseToken.Error()
	}
	log.Printf("web: subscribed to %s", cfg.TopicPose)

	// 3) JSON API endpoints: latest report and pose
	http.HandleFunc("/api/report", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !haveReport {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastReport); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	http.HandleFunc("/api/orientation", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !havePose {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastPose); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	// 4) Websocket live stream at the full tick rate
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}
		hub.add(conn)
		log.Printf("web: websocket client connected from %s", r.RemoteAddr)

		// Drain (and discard) client messages so pings are answered
		go func() {
			defer hub.remove(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})

	// 5) Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
