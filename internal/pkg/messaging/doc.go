// Package messaging publishes domain events to a broker.
//
// Use cases depend on the Publisher interface only. The concrete backend
// (NATS, NSQ, Kafka, Google Pub/Sub, RabbitMQ) is chosen by driver name at
// startup, so switching brokers is a configuration change.
package messaging
