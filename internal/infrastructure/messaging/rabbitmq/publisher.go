package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mercata/storefront/services/user-service/internal/application/auth"
)

const DefaultExchange = "storefront.users"

// Publisher emits account events to a topic exchange. Downstream services
// (email notifications, fraud review) bind their own queues.
type Publisher struct {
	url      string
	exchange string

	mu sync.Mutex

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url string) (*Publisher, error) {
	p := &Publisher{
		url:      url,
		exchange: DefaultExchange,
	}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) SetExchange(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if name != "" {
		p.exchange = name
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
	return nil
}

// ---- auth.EventPublisher ----

func (p *Publisher) PublishUserRegistered(ctx context.Context, evt auth.UserRegisteredEvent) error {
	return p.publishJSON(ctx, "user.registered", evt)
}

func (p *Publisher) PublishAccountLocked(ctx context.Context, evt auth.AccountLockedEvent) error {
	return p.publishJSON(ctx, "user.account.locked", evt)
}

// ---- internal ----

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}

	// Declare topic exchange (idempotent).
	if err := ch.ExchangeDeclare(
		p.exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	p.conn = conn
	p.ch = ch
	return nil
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("rabbitmq marshal: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		if err := p.connect(); err != nil {
			return err
		}
	}

	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		// drop the channel so the next publish reconnects
		p.ch = nil
		return fmt.Errorf("rabbitmq publish %s: %w", routingKey, err)
	}
	return nil
}
