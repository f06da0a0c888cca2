package services

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Catalog event names, also used as AMQP message types.
const (
	EventSongCreated = "song.created"
	EventSongUpdated = "song.updated"
	EventSongDeleted = "song.deleted"
)

// EventPublisher delivers catalog events to a broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// CatalogEvent announces a committed change to a song.
type CatalogEvent struct {
	Event  string    `json:"event"`
	SongID string    `json:"song_id"`
	At     time.Time `json:"at"`
}

// publishEvent is best-effort: a failure is logged and never fails the request.
func publishEvent(pub EventPublisher, log *zap.Logger, event, songID string) {
	if pub == nil {
		return
	}
	body, err := json.Marshal(CatalogEvent{Event: event, SongID: songID, At: time.Now().UTC()})
	if err != nil {
		log.Warn("failed to marshal catalog event", zap.String("event", event), zap.Error(err))
		return
	}
	if err := pub.Publish(event, body); err != nil {
		log.Warn("failed to publish catalog event", zap.String("event", event), zap.String("song_id", songID), zap.Error(err))
	}
}
