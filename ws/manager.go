package ws

import (
	"context"
	"encoding/json"
	"sync"

	"charitybridge/internal/logger"
)

// WebSocketManager tracks live connections per user. A user may hold several
// (tabs, devices); a push reaches all of them.
type WebSocketManager struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves register/unregister until ctx is done, then drops every client.
func (manager *WebSocketManager) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			manager.closeAll()
			manager.stopOnce.Do(func() { close(manager.done) })
			return nil

		case client := <-manager.register:
			manager.mu.Lock()
			set, ok := manager.clients[client.UserID]
			if !ok {
				set = make(map[*Client]struct{})
				manager.clients[client.UserID] = set
			}
			set[client] = struct{}{}
			manager.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.UserID, "connections", len(set))

		case client := <-manager.unregister:
			manager.remove(client)
		}
	}
}

// Register hands the client to Run. It reports false once the manager has
// stopped; the caller then owns the connection and must close it.
func (manager *WebSocketManager) Register(client *Client) bool {
	select {
	case manager.register <- client:
		return true
	case <-manager.done:
		return false
	}
}

// Unregister never blocks past shutdown: closeAll has already released
// every client by then.
func (manager *WebSocketManager) Unregister(client *Client) {
	select {
	case manager.unregister <- client:
	case <-manager.done:
	}
}

func (manager *WebSocketManager) remove(client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	set, ok := manager.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	close(client.Send)
	delete(set, client)
	if len(set) == 0 {
		delete(manager.clients, client.UserID)
	}
	logger.Debug("ws client unregistered", "user_id", client.UserID)
}

func (manager *WebSocketManager) closeAll() {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	for userID, set := range manager.clients {
		for client := range set {
			close(client.Send)
		}
		delete(manager.clients, userID)
	}
}

// Broadcast pushes payload to every connection of userID on this instance.
// An offline user is not an error: the in-app feed still has the event.
func (manager *WebSocketManager) Broadcast(_ context.Context, userID string, payload []byte) error {
	if !json.Valid(payload) {
		payload, _ = json.Marshal(string(payload))
	}

	manager.mu.RLock()
	defer manager.mu.RUnlock()

	for client := range manager.clients[userID] {
		select {
		case client.Send <- payload:
		default:
			// Slow consumer: drop the connection instead of blocking the sender.
			go manager.Unregister(client)
		}
	}
	return nil
}

func (manager *WebSocketManager) GetClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	n := 0
	for _, set := range manager.clients {
		n += len(set)
	}
	return n
}

func (manager *WebSocketManager) IsClientConnected(userID string) bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients[userID]) > 0
}
