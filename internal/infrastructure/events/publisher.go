// Package events publica eventos de ciclo de vida da OS em um exchange
// topic do RabbitMQ. Sem AMQP_URL configurado o sistema usa o Noop.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alpsistemas/oficina-api/internal/application/usecase"
	"github.com/alpsistemas/oficina-api/pkg/logger"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Verificação em tempo de compilação dos portos implementados.
var (
	_ usecase.EventPublisher = (*Publisher)(nil)
	_ usecase.EventPublisher = (*Noop)(nil)
)

// envelope formato do corpo publicado; o tipo do evento repete a routing key.
type envelope struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	CompanyID  string    `json:"company_id"`
	Payload    any       `json:"payload"`
}

// Publisher publica no RabbitMQ usando um canal por publicação, o que evita
// compartilhar canal entre goroutines (canais amqp não são thread-safe).
type Publisher struct {
	conn     *amqp.Connection
	exchange string
	log      *logger.Logger
}

// NewPublisher conecta no broker e declara o exchange topic durável.
func NewPublisher(url, exchange string, log *logger.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: conectar no RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("events: abrir canal: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("events: declarar exchange %s: %w", exchange, err)
	}
	return &Publisher{conn: conn, exchange: exchange, log: log}, nil
}

// Publish envia o evento com routing key igual ao tipo (ex. os.finalizada).
func (p *Publisher) Publish(ctx context.Context, eventType, companyID string, payload any) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("events: abrir canal: %w", err)
	}
	defer ch.Close()

	env := envelope{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		CompanyID:  companyID,
		Payload:    payload,
	}
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("events: serializar evento %s: %w", eventType, err)
	}

	err = ch.PublishWithContext(ctx, p.exchange, eventType, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    env.EventID,
		Timestamp:    env.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("events: publicar %s: %w", eventType, err)
	}
	p.log.Debug().Str("type", eventType).Str("company_id", companyID).Msg("evento publicado")
	return nil
}

// Close encerra a conexão com o broker.
func (p *Publisher) Close() error {
	return p.conn.Close()
}

// Noop descarta eventos quando não há broker configurado.
type Noop struct{}

// NewNoop constrói o publisher nulo.
func NewNoop() *Noop {
	return &Noop{}
}

// Publish não faz nada.
func (*Noop) Publish(context.Context, string, string, any) error {
	return nil
}
