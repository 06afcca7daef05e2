package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/brightstay/brightstay-api/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	QueueSubscribe(subject, queue string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
	ID        string
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
			ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		})
	})
	return err
}

func (n *NATSEventBus) QueueSubscribe(subject, queue string, handler func(msg *Message)) error {
	_, err := n.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
			ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		})
	})
	return err
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// Event subjects
const (
	BookingCreated    = "booking.created"
	BookingDeleted    = "booking.deleted"
	RoomStatusChanged = "room.status_changed"
	UserRoleChanged   = "user.role_changed"
)

// Event payloads
type BookingCreatedEvent struct {
	BookingID  string    `json:"booking_id"`
	RoomID     string    `json:"room_id"`
	GuestEmail string    `json:"guest_email"`
	HostEmail  string    `json:"host_email"`
	Price      float64   `json:"price"`
	BookedAt   time.Time `json:"booked_at"`
	CreatedAt  time.Time `json:"created_at"`
}

type BookingDeletedEvent struct {
	BookingID string    `json:"booking_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

type RoomStatusChangedEvent struct {
	RoomID    string    `json:"room_id"`
	Booked    bool      `json:"booked"`
	ChangedAt time.Time `json:"changed_at"`
}

type UserRoleChangedEvent struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}
