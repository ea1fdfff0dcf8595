package socketio

import (
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/mux"
	"github.com/zishang520/socket.io/v2/socket"

	"jarvis/clients"
	"jarvis/core"
)

// MessageEvent is the single socket.io event used for both directions of the
// push channel.
const MessageEvent = "jarvis_message"

type MessageHandler func(client *clients.Client, message any)
type ConnectionHook func(client *clients.Client) error

// SocketIOClient owns the socket.io server and the registry of connected
// push clients.
type SocketIOClient struct {
	server *socket.Server

	mutex              sync.RWMutex
	clientsBySocketID  map[string]*clients.Client
	messageHandler     MessageHandler
	connectionHooks    []ConnectionHook
	disconnectionHooks []ConnectionHook
}

func NewSocketIOClient() *SocketIOClient {
	c := &SocketIOClient{
		server:            socket.NewServer(nil, nil),
		clientsBySocketID: map[string]*clients.Client{},
	}
	c.setupEventHandlers()
	return c
}

func (c *SocketIOClient) setupEventHandlers() {
	c.server.On("connection", func(args ...any) {
		sock := args[0].(*socket.Socket)
		client := c.registerClient(sock)
		log.Printf("🔗 Push client connected: %s", client.ID)

		for _, hook := range c.connectionHooks {
			if err := hook(client); err != nil {
				log.Printf("❌ Connection hook failed for client %s: %v", client.ID, err)
			}
		}

		sock.On(MessageEvent, func(data ...any) {
			if len(data) == 0 {
				return
			}
			c.mutex.RLock()
			handler := c.messageHandler
			c.mutex.RUnlock()
			if handler == nil {
				log.Printf("⚠️ No message handler registered, dropping message from %s", client.ID)
				return
			}
			handler(client, data[0])
		})

		sock.On("disconnect", func(...any) {
			c.unregisterClient(sock)
			log.Printf("🔌 Push client disconnected: %s", client.ID)
			for _, hook := range c.disconnectionHooks {
				if err := hook(client); err != nil {
					log.Printf("❌ Disconnection hook failed for client %s: %v", client.ID, err)
				}
			}
		})
	})
}

func (c *SocketIOClient) registerClient(sock *socket.Socket) *clients.Client {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	client := clients.NewClient(core.NewID("cl"), sock)
	c.clientsBySocketID[string(sock.Id())] = client
	return client
}

func (c *SocketIOClient) unregisterClient(sock *socket.Socket) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.clientsBySocketID, string(sock.Id()))
}

// RegisterMessageHandler sets the handler invoked for every inbound push
// message. Only one handler is supported.
func (c *SocketIOClient) RegisterMessageHandler(handler MessageHandler) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.messageHandler = handler
}

func (c *SocketIOClient) RegisterConnectionHook(hook ConnectionHook) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.connectionHooks = append(c.connectionHooks, hook)
}

func (c *SocketIOClient) RegisterDisconnectionHook(hook ConnectionHook) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.disconnectionHooks = append(c.disconnectionHooks, hook)
}

// SendMessage emits a message to a single connected client.
func (c *SocketIOClient) SendMessage(clientID string, message any) error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for _, client := range c.clientsBySocketID {
		if client.ID == clientID {
			if err := client.Socket.Emit(MessageEvent, message); err != nil {
				return fmt.Errorf("failed to emit message to client %s: %w", clientID, err)
			}
			return nil
		}
	}
	return fmt.Errorf("client %s is not connected: %w", clientID, core.ErrNotFound)
}

// ConnectedClientCount reports how many push clients are currently connected.
func (c *SocketIOClient) ConnectedClientCount() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.clientsBySocketID)
}

// RegisterWithRouter mounts the socket.io endpoint on the HTTP router.
func (c *SocketIOClient) RegisterWithRouter(router *mux.Router) {
	router.PathPrefix("/socket.io/").Handler(c.server.ServeHandler(nil))
	log.Printf("🚀 Socket.IO endpoint registered at /socket.io/")
}

// Close disconnects all clients and shuts the server down.
func (c *SocketIOClient) Close() {
	c.server.Close(nil)
}
