package events

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/Dhoini/Admin-panel/pkg/logger"
	kafkaGo "github.com/segmentio/kafka-go"
)

// TopicConfig returns the audit topic settings
func TopicConfig(topic string) kafkaGo.TopicConfig {
	return kafkaGo.TopicConfig{
		Topic:             topic,
		NumPartitions:     3,
		ReplicationFactor: 1,
	}
}

// ValidateBroker checks a host:port broker address
func ValidateBroker(broker string) error {
	broker = strings.TrimSpace(broker)
	if broker == "" {
		return errors.New("kafka broker address is empty")
	}
	if _, _, err := net.SplitHostPort(broker); err != nil {
		return fmt.Errorf("invalid broker address %s: %w", broker, err)
	}
	return nil
}

// EnsureTopics проверяет и создает топик аудита
func EnsureTopics(ctx context.Context, brokers []string, topic string, log *logger.Logger) error {
	if len(brokers) == 0 {
		return errors.New("kafka broker address is empty")
	}
	if err := ValidateBroker(brokers[0]); err != nil {
		log.Errorw("Invalid Kafka broker address", "broker", brokers[0], "error", err)
		return err
	}

	connCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	conn, err := kafkaGo.DialContext(connCtx, "tcp", strings.TrimSpace(brokers[0]))
	if err != nil {
		log.Errorw("Failed to connect to Kafka broker for topic creation", "broker", brokers[0], "error", err)
		return fmt.Errorf("kafka connection failed: %w", err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return fmt.Errorf("kafka read partitions failed: %w", err)
	}
	for _, p := range partitions {
		if p.Topic == topic {
			log.Debugw("Topic already exists", "topic", topic)
			return nil
		}
	}

	// Топики создаются только через контроллер
	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("kafka controller lookup failed: %w", err)
	}
	ctrlConn, err := kafkaGo.DialContext(connCtx, "tcp", net.JoinHostPort(controller.Host, fmt.Sprint(controller.Port)))
	if err != nil {
		return fmt.Errorf("kafka controller connection failed: %w", err)
	}
	defer ctrlConn.Close()

	log.Infow("Creating Kafka topic", "topic", topic)
	if err := ctrlConn.CreateTopics(TopicConfig(topic)); err != nil {
		if errors.Is(err, kafkaGo.TopicAlreadyExists) {
			log.Warnw("Topic already existed during creation attempt", "topic", topic)
			return nil
		}
		log.Errorw("Failed to create topic", "topic", topic, "error", err)
		return fmt.Errorf("kafka create topics failed: %w", err)
	}
	return nil
}
