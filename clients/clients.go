package clients

import (
	"time"

	"github.com/zishang520/socket.io/v2/socket"
)

// Client represents a connected push-channel client.
type Client struct {
	ID          string
	Socket      *socket.Socket
	ConnectedAt time.Time
}

func NewClient(id string, sock *socket.Socket) *Client {
	return &Client{
		ID:          id,
		Socket:      sock,
		ConnectedAt: time.Now(),
	}
}
