package ws_review

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/filmnest/core/internal/model"
	usecase_review "github.com/filmnest/core/internal/usecase/review"
	"github.com/gorilla/websocket"
)

// Event is pushed to every client subscribed to one media record whenever a
// review for it is inserted, updated or deleted. Clients respond by
// re-fetching the review list; the event itself carries no review body.
type Event struct {
	Type     usecase_review.ChangeType `json:"type"`
	Kind     model.MediaKind           `json:"kind"`
	MediaID  int64                     `json:"media_id"`
	ReviewID int64                     `json:"review_id"`
}

type Client struct {
	Conn *websocket.Conn
	Send chan []byte

	channel string
}

func NewClient(conn *websocket.Conn, kind model.MediaKind, mediaID int64) *Client {
	return &Client{
		Conn:    conn,
		Send:    make(chan []byte, 8),
		channel: channelKey(kind, mediaID),
	}
}

func channelKey(kind model.MediaKind, mediaID int64) string {
	return fmt.Sprintf("%s:%d", kind, mediaID)
}

// Hub fans review change events out to per-media subscriber sets.
type Hub struct {
	mu sync.RWMutex

	// Set of clients per (kind, media id) channel
	channels map[string]map[*Client]bool

	logger *slog.Logger
}

func New(logger *slog.Logger) *Hub {
	return &Hub{
		channels: make(map[string]map[*Client]bool),
		logger:   logger,
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.channels[client.channel]; !ok {
		h.channels[client.channel] = make(map[*Client]bool)
	}
	h.channels[client.channel][client] = true

	h.logger.Info("client registered", "channel", client.channel)
}

func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.channels[client.channel]; ok {
		// Map presence means broadcast has not dropped this client yet, so
		// Send is still open. Closing it releases the writer pump.
		if clients[client] {
			close(client.Send)
			delete(clients, client)
		}
		if len(clients) == 0 {
			delete(h.channels, client.channel)
		}
	}
	h.logger.Info("client unregistered", "channel", client.channel)
}

// NotifyReviewChange implements the review usecase's Notifier.
func (h *Hub) NotifyReviewChange(kind model.MediaKind, mediaID int64, change usecase_review.ChangeType, reviewID int64) {
	h.broadcast(channelKey(kind, mediaID), Event{
		Type:     change,
		Kind:     kind,
		MediaID:  mediaID,
		ReviewID: reviewID,
	})
}

func (h *Hub) broadcast(channel string, event Event) {
	// Full lock: slow subscribers get dropped from the set here.
	h.mu.Lock()
	defer h.mu.Unlock()

	messageBytes, _ := json.Marshal(event)

	if clients, ok := h.channels[channel]; ok {
		for client := range clients {
			select {
			case client.Send <- messageBytes:
			default:
				close(client.Send)
				delete(h.channels[channel], client)
			}
		}
	}
}

func (h *Hub) StartClientReading(client *Client) {
	defer func() {
		h.RemoveClient(client)
		client.Conn.Close()
	}()

	for {
		_, _, err := client.Conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

func (h *Hub) StartClientWriting(client *Client) {
	defer client.Conn.Close()

	for message := range client.Send {
		err := client.Conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			break
		}
	}
}
