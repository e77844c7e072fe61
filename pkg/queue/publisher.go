package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"campus-event/backend/config"
)

// NotificationJob 投递到队列的通知任务
// 由独立的投递进程消费（邮件/短信通道），本服务只负责入队
type NotificationJob struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher RabbitMQ 通知发布器
// 发布失败只记录日志并返回错误，调用方可以忽略——通知投递不阻塞业务流程
type Publisher struct {
	conn      *amqp.Connection
	ch        *amqp.Channel
	queueName string
	logger    *zap.Logger
}

// NewPublisher 建立 RabbitMQ 连接并声明持久化队列
func NewPublisher(cfg *config.QueueConfig, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("RabbitMQ 连接失败: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("RabbitMQ 打开 channel 失败: %w", err)
	}

	// 幂等声明：durable 队列，消息在 broker 重启后不丢失
	if _, err := ch.QueueDeclare(
		cfg.QueueName, // name
		true,          // durable
		false,         // autoDelete
		false,         // exclusive
		false,         // noWait
		nil,           // args
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("RabbitMQ 声明队列失败: %w", err)
	}

	logger.Info("RabbitMQ 连接成功", zap.String("queue", cfg.QueueName))

	return &Publisher{conn: conn, ch: ch, queueName: cfg.QueueName, logger: logger}, nil
}

// Publish 将通知任务以持久化消息发布到队列
func (p *Publisher) Publish(ctx context.Context, job NotificationJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		p.logger.Error("序列化通知任务失败", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx,
		"",          // default exchange
		p.queueName, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		pub,
	); err != nil {
		p.logger.Error("发布通知任务失败", zap.Error(err))
		return err
	}

	return nil
}

// Close 关闭 channel 与连接
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
