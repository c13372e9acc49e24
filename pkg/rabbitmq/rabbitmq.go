package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"inventory/internal/models"

	amqp "github.com/streadway/amqp"
)

// ProductEventsQueue receives one message per committed product change.
const ProductEventsQueue = "product_events"

// channel is the subset of *amqp.Channel the client uses.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel channel
	mu      sync.Mutex // amqp channels are not safe for concurrent publishing
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient creates a new RabbitMQ client.
// It connects to RabbitMQ, opens a channel and declares the product events queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	client, err := newClient(conn, ch)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	log.Printf("RabbitMQ client connected and %s declared.", ProductEventsQueue)
	return client, nil
}

func newClient(conn *amqp.Connection, ch channel) (*Client, error) {
	if err := declareQueue(ch); err != nil {
		return nil, err
	}
	return &Client{conn: conn, channel: ch}, nil
}

func declareQueue(ch channel) error {
	_, err := ch.QueueDeclare(
		ProductEventsQueue, // name
		true,               // durable
		false,              // delete when unused
		false,              // exclusive
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", ProductEventsQueue, err)
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishProductChanged publishes a product event to the product events queue.
func (c *Client) PublishProductChanged(event models.ProductEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal product event to JSON: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",                 // exchange: default exchange
		ProductEventsQueue, // routing key: the queue name
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.ID,
			Type:         event.Action,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// ConsumeProductEvents starts a goroutine that feeds decoded product events
// to handler. Messages are acked when handler succeeds and requeued when it
// fails; undecodable messages are dropped.
func (c *Client) ConsumeProductEvents(handler func(event models.ProductEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		ProductEventsQueue, // queue
		"",                 // consumer tag
		false,              // auto-ack
		false,              // exclusive
		false,              // no-local
		false,              // no-wait
		nil,                // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			handleDelivery(msg, handler)
		}
	}()
	return nil
}

func handleDelivery(msg amqp.Delivery, handler func(event models.ProductEvent) error) {
	var event models.ProductEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Dropping malformed product event %d: %v", msg.DeliveryTag, err)
		if nackErr := msg.Nack(false, false); nackErr != nil {
			log.Printf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
		}
		return
	}

	if err := handler(event); err != nil {
		log.Printf("Error processing message %d: %v", msg.DeliveryTag, err)
		if requeueErr := msg.Nack(false, true); requeueErr != nil {
			log.Printf("Error nacking message %d: %v", msg.DeliveryTag, requeueErr)
		}
		return
	}
	if ackErr := msg.Ack(false); ackErr != nil {
		log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
	}
}

// LogProductEvent is a handler for ConsumeProductEvents that only logs.
func LogProductEvent(event models.ProductEvent) error {
	log.Printf("Product event %s: %s product=%d", event.ID, event.Action, event.ProductID)
	return nil
}
