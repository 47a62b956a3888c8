package tracking

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const trackingTopic = "interactions"

// RabbitSender publishes JSON messages to a durable topic exchange.
type RabbitSender struct {
	prefix     string
	connection *amqp.Connection
}

func NewRabbitSender(url, prefix string) (*RabbitSender, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		return nil, fmt.Errorf("dial rabbit: %w", err)
	}
	s := &RabbitSender{prefix: prefix, connection: conn}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err := defineTopic(ch, s.name()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare %s: %w", s.name(), err)
	}
	return s, nil
}

func (s *RabbitSender) name() string {
	return fmt.Sprintf("%s_%s", s.prefix, trackingTopic)
}

func defineTopic(ch *amqp.Channel, name string) error {
	if err := ch.ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-delete
		false,   // internal
		false,   // noWait
		nil,     // arguments
	); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(
		name,  // name of the queue
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // noWait
		nil,   // arguments
	); err != nil {
		return err
	}
	return ch.QueueBind(name, name, name, false, nil)
}

func (s *RabbitSender) Send(data any) error {
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}
	ch, err := s.connection.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := s.name()
	return ch.Publish(
		name,
		name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (s *RabbitSender) Close() error {
	return s.connection.Close()
}
