package cmd

import (
	"errors"
	"fmt"
	"strings"
)

const (
	BrokerKafka    = "kafka"
	BrokerRabbitMQ = "rabbitmq"
)

const (
	PaymentResponseQueue            = "payment-response"
	RestaurantApprovalResponseQueue = "restaurant-approval-response"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogMode    string

	Broker                               string
	KafkaHost                            string
	KafkaConsumerGroup                   string
	KafkaPaymentRequestTopic             string
	KafkaRestaurantApprovalRequestTopic  string
	KafkaPaymentResponseTopic            string
	KafkaRestaurantApprovalResponseTopic string
	RabbitMQURL                          string
	RabbitMQExchange                     string

	OutboxBatchSize int
}

// DSN returns the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KafkaHost, which may list several comma separated brokers.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c Config) Validate() error {
	switch c.Broker {
	case BrokerKafka:
		if len(c.KafkaBrokers()) == 0 {
			return fmt.Errorf("KAFKA_HOST is required for broker %q", c.Broker)
		}
	case BrokerRabbitMQ:
		if c.RabbitMQURL == "" {
			return fmt.Errorf("RABBITMQ_URL is required for broker %q", c.Broker)
		}
	default:
		return fmt.Errorf("unknown broker %q, expected %q or %q", c.Broker, BrokerKafka, BrokerRabbitMQ)
	}
	if c.HTTPPort == "" {
		return errors.New("HTTP_PORT is required")
	}
	return nil
}
