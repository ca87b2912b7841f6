package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys событий бронирований
const (
	KeyBookingCreated   = "booking.created"
	KeyBookingUpdated   = "booking.updated"
	KeyBookingCancelled = "booking.cancelled"
)

// ErrPublish возвращается при ошибке публикации события
var ErrPublish = errors.New("events: failed to publish")

// BookingEvent событие изменения бронирования
// Публикуется в topic exchange для внешних потребителей (уведомления, аналитика)
type BookingEvent struct {
	BookingID   int64   `json:"bookingId"`
	FacilityID  int64   `json:"facilityId"`
	BookingDate string  `json:"bookingDate"` // "2025-01-02"
	StartTime   string  `json:"startTime"`   // "10:00"
	EndTime     string  `json:"endTime"`     // "12:00"
	Email       string  `json:"email,omitempty"`
	Fee         float64 `json:"fee"`
}

// Publisher публикует события сервиса в RabbitMQ topic exchange
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewPublisher подключается к RabbitMQ и объявляет topic exchange
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrPublish, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrPublish, err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange: %v", ErrPublish, err)
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish сериализует событие в JSON и публикует его с указанным routing key
func (p *Publisher) Publish(ctx context.Context, key string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	return nil
}

// Close закрывает канал и соединение с RabbitMQ
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Noop заглушка publisher'а, используется когда события выключены в конфигурации
type Noop struct{}

// Publish ничего не делает
func (Noop) Publish(ctx context.Context, key string, event interface{}) error {
	return nil
}
