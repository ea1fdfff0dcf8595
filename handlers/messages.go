package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"jarvis/clients"
	"jarvis/models"
	"jarvis/services"
)

// MessagesHandler processes inbound push-channel messages. Every inbound
// message produces exactly one outbound message on the same channel.
type MessagesHandler struct {
	commandsService services.CommandsService
	messageSender   clients.MessageSender
}

func NewMessagesHandler(commandsService services.CommandsService, messageSender clients.MessageSender) *MessagesHandler {
	return &MessagesHandler{
		commandsService: commandsService,
		messageSender:   messageSender,
	}
}

// HandleMessage decodes one push message, runs it through the command
// pipeline and sends the reply back to the originating client.
func (h *MessagesHandler) HandleMessage(client *clients.Client, message any) error {
	inbound, err := decodeInbound(message)
	if err != nil {
		log.Printf("⚠️ Dropping undecodable push message from %s: %v", client.ID, err)
		return h.sendError(client, "Invalid message format")
	}

	var text string
	switch inbound.Type {
	case models.MessageTypeCommand:
		text = inbound.Command
	case models.MessageTypeVoice:
		text = inbound.Transcript
	default:
		return h.sendError(client, "Unknown message type")
	}

	if strings.TrimSpace(text) == "" {
		return h.sendError(client, "command is required")
	}

	command := models.NewRawCommand(text, models.ChannelPush)
	envelope, err := h.commandsService.ProcessCommand(context.Background(), command)
	if err != nil {
		log.Printf("❌ Failed to process push command from %s: %v", client.ID, err)
		return h.sendError(client, "failed to process command")
	}

	return h.send(client, models.OutboundMessage{
		Type: models.MessageTypeResponse,
		Data: envelope,
	})
}

// WelcomeHook greets a newly connected push client so it knows the channel
// is live. Registered as a connection hook on the socket server.
func (h *MessagesHandler) WelcomeHook(client *clients.Client) error {
	return h.send(client, models.OutboundMessage{
		Type:    models.MessageTypeWelcome,
		Message: "Connected to Jarvis AI Assistant",
	})
}

func (h *MessagesHandler) sendError(client *clients.Client, message string) error {
	return h.send(client, models.OutboundMessage{
		Type:    models.MessageTypeError,
		Message: message,
	})
}

func (h *MessagesHandler) send(client *clients.Client, msg models.OutboundMessage) error {
	if err := h.messageSender.SendMessage(client.ID, msg); err != nil {
		return fmt.Errorf("failed to send message to client %s: %w", client.ID, err)
	}
	return nil
}

// decodeInbound accepts both raw JSON strings and already-decoded maps, which
// is what the socket.io layer hands over depending on how the client emitted.
func decodeInbound(message any) (*models.InboundMessage, error) {
	var raw []byte
	switch v := message.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to re-encode message: %w", err)
		}
		raw = encoded
	}

	var inbound models.InboundMessage
	if err := json.Unmarshal(raw, &inbound); err != nil {
		return nil, fmt.Errorf("failed to decode message: %w", err)
	}
	return &inbound, nil
}
