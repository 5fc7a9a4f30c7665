// Package rabbitmq owns the AMQP connection: dialing, topology declaration, and the channels
// handed to the publisher and the consumers.
package rabbitmq

import (
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrConnectionClosed = errors.New("rabbitmq connection is closed")

// Client wraps one AMQP connection and the publishing channel opened on it. Consumers open
// their own channels through Channel.
type Client struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	confirms <-chan amqp.Confirmation
}

// Dial connects to url and opens a publishing channel in confirm mode.
func Dial(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	confirms := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &Client{conn: conn, ch: ch, confirms: confirms}, nil
}

// PublishChannel returns the confirm-mode channel and its confirmation stream.
func (c *Client) PublishChannel() (*amqp.Channel, <-chan amqp.Confirmation) {
	return c.ch, c.confirms
}

// Channel opens a new channel, typically for a consumer.
func (c *Client) Channel() (*amqp.Channel, error) {
	return c.conn.Channel()
}

// Topology describes the exchange and the queues bound to it. Every queue is bound with its
// own name as routing key.
type Topology struct {
	Exchange string
	Queues   []string
}

// Declare creates a durable topic exchange and durable queues. Declaring existing objects
// with the same arguments is a no-op.
func (c *Client) Declare(t Topology) error {
	if err := c.ch.ExchangeDeclare(t.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", t.Exchange, err)
	}
	for _, queue := range t.Queues {
		if _, err := c.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}
		if err := c.ch.QueueBind(queue, queue, t.Exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", queue, err)
		}
	}
	return nil
}

func (c *Client) Ping() error {
	if c.conn == nil || c.conn.IsClosed() {
		return ErrConnectionClosed
	}
	return nil
}

func (c *Client) Close() error {
	var chErr, connErr error
	if c.ch != nil {
		chErr = c.ch.Close()
	}
	if c.conn != nil {
		connErr = c.conn.Close()
	}
	return errors.Join(chErr, connErr)
}
