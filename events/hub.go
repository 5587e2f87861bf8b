package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/crabkhai/crabkhai-shop/models"
)

// Event types pushed to connected admin dashboards
const (
	EventOrderCreated     = "order_created"
	EventOrderUpdate      = "order_update"
	EventDeviceAuthorized = "device_authorized"
	EventDeviceRevoked    = "device_revoked"
	EventLowStock         = "low_stock"
	EventNotification     = "notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds all connected admin dashboard clients.
type Hub struct {
	clients map[*websocket.Conn]bool
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]bool),
}

// RegisterClient adds a connection to the broadcast set.
func RegisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = true
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreated announces a freshly placed order.
func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{Event: EventOrderCreated, Data: order})
}

// BroadcastOrderUpdate announces a status/detail change on an order.
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: order})
}

// BroadcastDeviceAuthorized announces a newly trusted admin device.
func BroadcastDeviceAuthorized(device models.TrustedDevice) {
	broadcast(Message{Event: EventDeviceAuthorized, Data: device})
}

// BroadcastDeviceRevoked announces a revoked or expired device.
func BroadcastDeviceRevoked(deviceID string) {
	broadcast(Message{Event: EventDeviceRevoked, Data: deviceID})
}

// BroadcastLowStock warns dashboards that a product is running out.
func BroadcastLowStock(product models.Product) {
	broadcast(Message{Event: EventLowStock, Data: product})
}

// BroadcastNotification pushes a persisted notification in real time.
func BroadcastNotification(notif models.Notification) {
	broadcast(Message{Event: EventNotification, Data: notif})
}

func broadcast(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("events: marshal failed: %v", err)
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			// Drop dead connections on write failure
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
