// Package kafkaproducer publishes order lifecycle events to Kafka.
package kafkaproducer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/pkg/kafkatrace"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const OrderPlacedTopic = "order.placed"

var tracer = otel.Tracer("kafkaproducer")

// OrderPlacedEvent is the message the restaurant side consumes.
type OrderPlacedEvent struct {
	OrderID               kernel.UUID       `json:"order_id"`
	OrderNumber           string            `json:"order_number"`
	CustomerID            kernel.UUID       `json:"customer_id"`
	RestaurantID          kernel.UUID       `json:"restaurant_id"`
	Subtotal              kernel.Money      `json:"subtotal"`
	TaxAmount             kernel.Money      `json:"tax_amount"`
	DeliveryFee           kernel.Money      `json:"delivery_fee"`
	TotalAmount           kernel.Money      `json:"total_amount"`
	PaymentMethod         string            `json:"payment_method"`
	DeliveryInstructions  string            `json:"delivery_instructions,omitempty"`
	EstimatedDeliveryTime time.Time         `json:"estimated_delivery_time"`
	PlacedAt              time.Time         `json:"placed_at"`
	Items                 []OrderPlacedItem `json:"items"`
}

type OrderPlacedItem struct {
	MenuItemID          kernel.UUID  `json:"menu_item_id"`
	Quantity            int          `json:"quantity"`
	UnitPrice           kernel.Money `json:"unit_price"`
	TotalPrice          kernel.Money `json:"total_price"`
	SpecialInstructions string       `json:"special_instructions,omitempty"`
}

func NewOrderPlacedEvent(placed *order.Order) OrderPlacedEvent {
	state := placed.State()
	event := OrderPlacedEvent{
		OrderID:               state.ID,
		OrderNumber:           state.Number,
		CustomerID:            state.CustomerID,
		RestaurantID:          state.RestaurantID,
		Subtotal:              state.Subtotal,
		TaxAmount:             state.TaxAmount,
		DeliveryFee:           state.DeliveryFee,
		TotalAmount:           state.TotalAmount,
		PaymentMethod:         state.PaymentMethod,
		DeliveryInstructions:  state.DeliveryInstructions,
		EstimatedDeliveryTime: state.EstimatedDeliveryTime,
		PlacedAt:              state.CreatedAt,
	}
	for _, item := range placed.Items() {
		event.Items = append(event.Items, OrderPlacedItem{
			MenuItemID:          item.MenuItemID(),
			Quantity:            item.Quantity(),
			UnitPrice:           item.UnitPrice(),
			TotalPrice:          item.TotalPrice(),
			SpecialInstructions: item.SpecialInstructions(),
		})
	}
	return event
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderPlacedPublisher implements ports.OrderEventPublisher.
type OrderPlacedPublisher struct {
	writer messageWriter
	topic  string
}

func NewOrderPlacedPublisher(brokers []string) *OrderPlacedPublisher {
	return newOrderPlacedPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  OrderPlacedTopic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           100 * time.Millisecond,
		RequiredAcks:           kafka.RequireAll,
	}, OrderPlacedTopic)
}

func newOrderPlacedPublisher(writer messageWriter, topic string) *OrderPlacedPublisher {
	return &OrderPlacedPublisher{writer: writer, topic: topic}
}

// PublishOrderPlaced keys messages by order id so one order's events stay
// on one partition.
func (p *OrderPlacedPublisher) PublishOrderPlaced(ctx context.Context, placed *order.Order) error {
	data, err := json.Marshal(NewOrderPlacedEvent(placed))
	if err != nil {
		return fmt.Errorf("marshal order placed event: %w", err)
	}

	key := placed.ID().String()
	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	ctx, span := tracer.Start(ctx, "send "+p.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("send"),
			semconv.MessagingOperationTypePublish,
			semconv.MessagingDestinationName(p.topic),
			semconv.MessagingKafkaMessageKey(key),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, kafkatrace.NewMessageCarrier(&msg))

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("write order placed event: %w", err)
	}
	return nil
}

func (p *OrderPlacedPublisher) Close() error {
	return p.writer.Close()
}
