package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avvvet/tracker-services/internal/comm"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

// Broker publishes tracker events to NATS.
type Broker struct {
	Conn    *nats.Conn
	Subject string
	Source  string
}

func NewBroker(nc *nats.Conn, subject, source string) *Broker {
	return &Broker{
		Conn:    nc,
		Subject: subject,
		Source:  source,
	}
}

// PublishTrackerEvent wraps the event in a comm.Message and publishes it on
// the broker subject.
func (b *Broker) PublishTrackerEvent(ctx context.Context, event comm.TrackerEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := b.envelope(event)
	if err != nil {
		return err
	}
	return b.Publish(b.Subject, payload)
}

func (b *Broker) envelope(event comm.TrackerEvent) ([]byte, error) {
	event.Source = b.Source
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal tracker event: %w", err)
	}

	msg := &comm.Message{
		Type:   event.Type,
		Data:   data,
		Source: b.Source,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return payload, nil
}

func (b *Broker) Publish(topic string, payload []byte) error {
	if b.Conn == nil {
		return fmt.Errorf("nats connection is not set")
	}
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to %s: %s", topic, err)
		return err
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (b *Broker) Close() {
	if b.Conn == nil {
		return
	}
	if err := b.Conn.Drain(); err != nil {
		log.Warnf("nats drain: %s", err)
		b.Conn.Close()
	}
}

// Nop drops every event. It stands in for the broker when no NATS url is
// configured.
type Nop struct{}

func (Nop) PublishTrackerEvent(context.Context, comm.TrackerEvent) error { return nil }
