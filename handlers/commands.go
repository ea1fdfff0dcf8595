package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"jarvis/clients"
	"jarvis/core"
	"jarvis/models"
	"jarvis/services"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// CommandsHTTPHandler serves the request/response transport.
type CommandsHTTPHandler struct {
	commandsService services.CommandsService
	historyService  services.CommandHistoryService
	launcherClient  clients.LauncherClient
	playbackClient  clients.PlaybackClient
}

func NewCommandsHTTPHandler(
	commandsService services.CommandsService,
	historyService services.CommandHistoryService,
	launcherClient clients.LauncherClient,
	playbackClient clients.PlaybackClient,
) *CommandsHTTPHandler {
	return &CommandsHTTPHandler{
		commandsService: commandsService,
		historyService:  historyService,
		launcherClient:  launcherClient,
		playbackClient:  playbackClient,
	}
}

// SetupEndpoints registers all HTTP API routes on the router.
func (h *CommandsHTTPHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/api/command", h.handleCommand).Methods(http.MethodPost)
	router.HandleFunc("/api/history", h.handleHistory).Methods(http.MethodGet)
	router.HandleFunc("/api/history/{id}", h.handleHistoryByID).Methods(http.MethodGet)
	router.HandleFunc("/api/apps", h.handleApps).Methods(http.MethodGet)
	router.HandleFunc("/api/spotify/pause", h.handleSpotifyPause).Methods(http.MethodPost)
	router.HandleFunc("/api/spotify/next", h.handleSpotifyNext).Methods(http.MethodPost)
	router.HandleFunc("/api/spotify/previous", h.handleSpotifyPrevious).Methods(http.MethodPost)
	log.Printf("🚀 Command API endpoints registered")
}

type commandRequest struct {
	Command string `json:"command"`
}

func (h *CommandsHTTPHandler) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// A caller disconnecting mid-command must not cancel the in-flight
	// pipeline, so the request context is deliberately not propagated.
	command := models.NewRawCommand(req.Command, models.ChannelRequest)
	envelope, err := h.commandsService.ProcessCommand(context.Background(), command)
	if errors.Is(err, core.ErrEmptyCommand) {
		writeErrorResponse(w, http.StatusBadRequest, "command is required")
		return
	}
	if err != nil {
		log.Printf("❌ Failed to process command: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "failed to process command")
		return
	}

	writeJSONResponse(w, http.StatusOK, envelope)
}

func (h *CommandsHTTPHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := h.historyService.ListRecentCommands(r.Context(), limit)
	if err != nil {
		log.Printf("❌ Failed to list command history: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "failed to list command history")
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{
		"count":    len(records),
		"commands": records,
	})
}

func (h *CommandsHTTPHandler) handleHistoryByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	maybeRecord, err := h.historyService.GetCommandByID(r.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to get command %s: %v", id, err)
		writeErrorResponse(w, http.StatusInternalServerError, "failed to get command")
		return
	}

	record, found := maybeRecord.Get()
	if !found {
		writeErrorResponse(w, http.StatusNotFound, "command not found")
		return
	}

	writeJSONResponse(w, http.StatusOK, record)
}

func (h *CommandsHTTPHandler) handleApps(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"apps": h.launcherClient.AvailableApps(),
	})
}

func (h *CommandsHTTPHandler) handleSpotifyPause(w http.ResponseWriter, r *http.Request) {
	h.handlePlaybackControl(w, r, "Paused playback", h.playbackClient.Pause)
}

func (h *CommandsHTTPHandler) handleSpotifyNext(w http.ResponseWriter, r *http.Request) {
	h.handlePlaybackControl(w, r, "Skipped to next track", h.playbackClient.Next)
}

func (h *CommandsHTTPHandler) handleSpotifyPrevious(w http.ResponseWriter, r *http.Request) {
	h.handlePlaybackControl(w, r, "Skipped to previous track", h.playbackClient.Previous)
}

func (h *CommandsHTTPHandler) handlePlaybackControl(w http.ResponseWriter, r *http.Request, message string, control func(ctx context.Context) error) {
	if err := control(r.Context()); err != nil {
		log.Printf("❌ Playback control failed: %v", err)
		writeErrorResponse(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{"message": message})
}

func writeJSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, message string) {
	writeJSONResponse(w, status, map[string]string{"error": message})
}
