package services

// Routing keys for events published on the "store" topic exchange.
const (
	EventOrderCreated  = "order.created"
	EventStockAdjusted = "stock.adjusted"

	EventsExchange = "store"
)

// EventPublisher publishes domain events to the message broker. Satisfied by
// *rabbitmq.Client; services tolerate a nil publisher and skip publication.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}
