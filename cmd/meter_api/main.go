// Meter API is responsible for polling the KMP meter and broadcasting the
// latest register readings over HTTP/websocket. Live values only; nothing
// is persisted.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/gertvdijk/gokmp/pkg/client"
	"github.com/gertvdijk/gokmp/pkg/collector"
	"github.com/gertvdijk/gokmp/pkg/config"
	"github.com/gertvdijk/gokmp/pkg/transport"
	"github.com/gertvdijk/gokmp/pkg/types"
)

var poller *collector.MeterPoller

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// ws clients for broadcasting live readings
var (
	wsClients      = make(map[*websocket.Conn]bool)
	wsClientsMutex sync.RWMutex
)

func main() {
	if err := config.LoadMeterAPIConfig(); err != nil {
		logrus.Fatalf("Failed to load meter API config: %v", err)
	}
	cfg := config.ActiveMeterAPIConfig

	conn, err := transport.Open(cfg.SerialDevice)
	if err != nil {
		logrus.Fatalf("Failed to open meter connection: %v", err)
	}
	defer conn.Close()

	kmpClient := client.NewWithDestination(conn, cfg.DestinationAddress)
	kmpClient.SetReadTimeout(time.Duration(cfg.ReadTimeoutSeconds) * time.Second)

	poller = collector.NewMeterPoller(
		kmpClient,
		cfg.Registers,
		time.Duration(cfg.PollIntervalSeconds)*time.Second,
	)
	poller.StartPolling(
		func(reading *types.MeterReading) {
			BroadcastToWebSockets(reading)
		},
		func(err error) {
			if err != nil {
				logrus.Fatalf("Error polling meter: %v", err)
			}
		},
	)

	// Setup HTTP handlers
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response := map[string]string{
			"message": "KMP Meter API",
			"status":  "running",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})

	http.HandleFunc("/latest", func(w http.ResponseWriter, r *http.Request) {
		reading := poller.GetLatestReading()
		w.Header().Set("Content-Type", "application/json")
		if reading == nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "No readings available yet",
			})
			return
		}

		json.NewEncoder(w).Encode(reading)
	})

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.Warnf("WebSocket upgrade error: %v", err)
			return
		}

		AddWebSocketClient(conn)

		// Send current reading immediately if available
		if reading := poller.GetLatestReading(); reading != nil {
			if data, err := json.Marshal(reading); err == nil {
				conn.WriteMessage(websocket.TextMessage, data)
			}
		}

		// Keep connection alive
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				RemoveWebSocketClient(conn)
				break
			}
		}
	})

	listener := fmt.Sprintf("%s:%d", cfg.ListenAddress, cfg.ListenPort)
	logrus.Infof("Starting KMP Meter API on %s", listener)
	logrus.Fatal(http.ListenAndServe(listener, nil))
}

func BroadcastToWebSockets(reading *types.MeterReading) {
	wsClientsMutex.RLock()
	clients := make([]*websocket.Conn, 0, len(wsClients))
	for client := range wsClients {
		clients = append(clients, client)
	}
	wsClientsMutex.RUnlock()

	data, err := json.Marshal(reading)
	if err != nil {
		logrus.Warnf("Error marshaling reading: %v", err)
		return
	}

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			RemoveWebSocketClient(client)
		}
	}
}

func AddWebSocketClient(conn *websocket.Conn) {
	wsClientsMutex.Lock()
	wsClients[conn] = true
	wsClientsMutex.Unlock()
}

func RemoveWebSocketClient(conn *websocket.Conn) {
	wsClientsMutex.Lock()
	delete(wsClients, conn)
	wsClientsMutex.Unlock()
	conn.Close()
}
