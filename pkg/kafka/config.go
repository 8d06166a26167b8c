package kafka

import (
	"time"
)

// Config holds Kafka configuration
type Config struct {
	Brokers  []string
	ClientID string

	// Producer settings
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int // 0: no ack, 1: leader ack, -1: all replicas ack
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Brokers:  []string{"localhost:9092"},
		ClientID: "inbound-service",

		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: -1, // All replicas
	}
}

// Topics contains all inbound platform Kafka topic names
var Topics = struct {
	InboundEvents string
	PutawayEvents string
	ScanEvents    string
	DamageEvents  string
	ClientEvents  string
}{
	InboundEvents: "threepl.inbound.events",
	PutawayEvents: "threepl.putaway.events",
	ScanEvents:    "threepl.scan.events",
	DamageEvents:  "threepl.damage.events",
	ClientEvents:  "threepl.client.events",
}

// TopicConfig holds configuration for a Kafka topic
type TopicConfig struct {
	Name              string
	Partitions        int
	ReplicationFactor int
	RetentionMs       int64
}

// DefaultTopicConfigs returns default configurations for inbound topics
func DefaultTopicConfigs() []TopicConfig {
	const week = 7 * 24 * 60 * 60 * 1000
	return []TopicConfig{
		{Name: Topics.InboundEvents, Partitions: 6, ReplicationFactor: 3, RetentionMs: week},
		{Name: Topics.PutawayEvents, Partitions: 6, ReplicationFactor: 3, RetentionMs: week},
		{Name: Topics.ScanEvents, Partitions: 12, ReplicationFactor: 3, RetentionMs: week},
		{Name: Topics.DamageEvents, Partitions: 3, ReplicationFactor: 3, RetentionMs: 90 * 24 * 60 * 60 * 1000}, // retained for audit
		{Name: Topics.ClientEvents, Partitions: 3, ReplicationFactor: 3, RetentionMs: 30 * 24 * 60 * 60 * 1000},
	}
}
