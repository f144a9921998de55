package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/IBM/sarama"
)

// NewSaramaConfig создает конфигурацию синхронного продюсера
func NewSaramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()

	// Версия Kafka
	cfg.Version = sarama.V3_3_0_0

	cfg.Producer.MaxMessageBytes = 1000000
	cfg.Producer.Compression = sarama.CompressionSnappy
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.Timeout = 5 * time.Second

	return cfg
}

// NewSyncProducer подключается к брокерам
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return producer, nil
}

// KafkaPublisher публикует события аудита в Kafka
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

// NewKafkaPublisher создает новый продюсер событий аудита
func NewKafkaPublisher(producer sarama.SyncProducer, topic string, log *logger.Logger) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		log:      log,
	}
}

// Publish публикует событие; ключ сообщения - идентификатор записи
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	messageValue, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(e.RecordID),
		Value: sarama.ByteEncoder(messageValue),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("event_type"),
				Value: []byte(e.Type),
			},
		},
		Timestamp: e.At,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish audit event: %w", err)
	}

	p.log.Debugw("Published audit event",
		"topic", p.topic, "type", e.Type, "record_id", e.RecordID, "partition", partition, "offset", offset)
	return nil
}

// Close закрывает продюсер
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

var _ Publisher = (*KafkaPublisher)(nil)
