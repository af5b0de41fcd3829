package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/GoArmGo/VideoApp/internal/config"
	"github.com/GoArmGo/VideoApp/internal/messaging/payloads"
)

// Client представляет собой клиент RabbitMQ для очереди событий просмотра.
// Сервер публикует события при скачивании видео, воркер потребляет их
// и пишет историю просмотров в БД.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewClient создает и инициализирует новый клиент RabbitMQ.
// Объявление очереди идемпотентно.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.RabbitMQ.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.RabbitMQQueueName, // name
		true,                           // durable - очередь переживает перезапуск RabbitMQ
		false,                          // delete when unused
		false,                          // exclusive
		false,                          // no-wait
		nil,                            // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}

	logger.Info("RabbitMQ queue declared", "queue", q.Name, "messages", q.Messages)

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   q,
		logger:  logger,
	}, nil
}

// Close закрывает соединение и канал RabbitMQ
func (c *Client) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("failed to close RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error("failed to close RabbitMQ connection", "error", err)
			return err
		}
	}
	return nil
}

// PublishVideoWatched публикует событие просмотра в очередь.
// Реализует ports.VideoWatchedPublisher.
func (c *Client) PublishVideoWatched(ctx context.Context, payload payloads.VideoWatchedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload to JSON: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}

	c.logger.Debug("video watched event published", "queue", c.queue.Name, "username", payload.Username, "video_id", payload.VideoID)
	return nil
}

// StartConsumingVideoWatched начинает потребление событий просмотра из очереди.
// Реализует ports.VideoWatchedConsumer. Подтверждение сообщений ручное:
// неудачно обработанное сообщение возвращается в очередь, нечитаемое — отбрасывается.
func (c *Client) StartConsumingVideoWatched(ctx context.Context, handler func(context.Context, payloads.VideoWatchedPayload) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name, // queue
		"",           // consumer
		false,        // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.logger.Info("consumer registered, waiting for messages", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Info("RabbitMQ channel closed, stopping consumer")
					return
				}

				var payload payloads.VideoWatchedPayload
				if err := json.Unmarshal(msg.Body, &payload); err != nil {
					c.logger.Error("failed to unmarshal message, dropping", "error", err, "body", string(msg.Body))
					// Плохой формат: не возвращаем в очередь, иначе зациклимся.
					if err := msg.Nack(false, false); err != nil {
						c.logger.Error("failed to nack message", "error", err)
					}
					continue
				}

				if err := handler(ctx, payload); err != nil {
					c.logger.Error("failed to process message, requeueing", "error", err, "video_id", payload.VideoID)
					if err := msg.Nack(false, true); err != nil {
						c.logger.Error("failed to nack message", "error", err)
					}
					continue
				}

				if err := msg.Ack(false); err != nil {
					c.logger.Error("failed to ack message", "error", err)
				}
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping RabbitMQ consumer")
				return
			}
		}
	}()

	return nil
}
