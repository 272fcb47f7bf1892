package cmd

import (
	"log/slog"

	httpin "foodorder/internal/adapters/in/http"
	"foodorder/internal/adapters/in/kafkaconsumer"
	"foodorder/internal/adapters/out/kafkaproducer"
	"foodorder/internal/adapters/out/postgres"
	"foodorder/internal/adapters/out/postgres/restaurantrepo"
	"foodorder/internal/adapters/out/redis/cartstore"
	"foodorder/internal/adapters/out/redis/changefeed"
	"foodorder/internal/core/application/tracking"
	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs     Config
	gormDB      *gorm.DB
	redis       redis.UniversalClient
	uowFactory  *postgres.GormUnitOfWorkFactory
	orderPlaced *kafkaproducer.OrderPlacedPublisher
	logger      *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, redisClient redis.UniversalClient, logger *slog.Logger) *CompositionRoot {
	return &CompositionRoot{
		configs:     configs,
		gormDB:      gormDB,
		redis:       redisClient,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		orderPlaced: kafkaproducer.NewOrderPlacedPublisher(configs.KafkaBrokers()),
		logger:      logger,
	}
}

func (c *CompositionRoot) CreateCartStore() *cartstore.RedisCartStore {
	ttl := c.configs.CartTTL
	if ttl <= 0 {
		ttl = cartstore.DefaultTTL
	}
	return cartstore.NewRedisCartStore(c.redis, ttl)
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() *commands.AddCartItemCommandHandler {
	h := commands.NewAddCartItemCommandHandler(restaurantrepo.NewGormRestaurantRepository(c.gormDB), c.CreateCartStore())
	return &h
}

func (c *CompositionRoot) CreateSetCartItemQuantityCommandHandler() *commands.SetCartItemQuantityCommandHandler {
	h := commands.NewSetCartItemQuantityCommandHandler(c.CreateCartStore())
	return &h
}

func (c *CompositionRoot) CreateClearCartCommandHandler() *commands.ClearCartCommandHandler {
	h := commands.NewClearCartCommandHandler(c.CreateCartStore())
	return &h
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() *commands.SubmitOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	h := commands.NewSubmitOrderCommandHandler(f, c.orderPlaced, c.logger)
	return &h
}

func (c *CompositionRoot) CreateRetryOrderItemsCommandHandler() *commands.RetryOrderItemsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	h := commands.NewRetryOrderItemsCommandHandler(f, c.orderPlaced, c.logger)
	return &h
}

func (c *CompositionRoot) CreateReorderCommandHandler() *commands.ReorderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	h := commands.NewReorderCommandHandler(f, c.CreateCartStore(), c.logger)
	return &h
}

func (c *CompositionRoot) CreateApplyOrderChangeCommandHandler() *commands.ApplyOrderChangeCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewApplyOrderChangeCommandHandler(f, changefeed.NewPublisher(c.redis))
	return &h
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.CreateCartStore(), restaurantrepo.NewGormRestaurantRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetIncompleteOrdersQueryHandler() queries.GetIncompleteOrdersQueryHandler {
	return queries.NewGetIncompleteOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateOrderWatcher() *tracking.Watcher {
	return tracking.NewWatcher(
		c.CreateGetOrderDetailsQueryHandler(),
		changefeed.NewFeed(c.redis, c.logger),
		c.logger,
	)
}

func (c *CompositionRoot) CreateHTTPServer() (*httpin.Server, error) {
	validator, err := httpin.NewRequestValidator()
	if err != nil {
		return nil, err
	}
	return httpin.NewServer(httpin.Handlers{
		AddCartItem:         c.CreateAddCartItemCommandHandler(),
		SetCartItemQuantity: c.CreateSetCartItemQuantityCommandHandler(),
		ClearCart:           c.CreateClearCartCommandHandler(),
		SubmitOrder:         c.CreateSubmitOrderCommandHandler(),
		RetryOrderItems:     c.CreateRetryOrderItemsCommandHandler(),
		Reorder:             c.CreateReorderCommandHandler(),
		GetCart:             c.CreateGetCartQueryHandler(),
		GetOrderDetails:     c.CreateGetOrderDetailsQueryHandler(),
		GetOrderHistory:     c.CreateGetOrderHistoryQueryHandler(),
		Carts:               c.CreateCartStore(),
		Watcher:             c.CreateOrderWatcher(),
	}, httpin.NewAuthenticator(c.configs.JWTSecret), validator, c.logger), nil
}

func (c *CompositionRoot) CreateOrderChangedConsumer() (*kafkaconsumer.Consumer, kafkaconsumer.HandlerFunc) {
	topic := c.configs.KafkaOrderChangedTopic
	if topic == "" {
		topic = kafkaconsumer.OrderChangedTopic
	}
	consumer := kafkaconsumer.NewConsumer(kafkaconsumer.Config{
		Brokers: c.configs.KafkaBrokers(),
		Topic:   topic,
		GroupID: c.configs.KafkaConsumerGroup,
	}, c.logger)
	handler := kafkaconsumer.NewOrderChangedHandler(c.CreateApplyOrderChangeCommandHandler(), c.logger)
	return consumer, handler.Handle
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetIncompleteOrdersQueryHandler(), c.logger)
}

// Close releases the producer; the database and Redis clients belong to main.
func (c *CompositionRoot) Close() error {
	return c.orderPlaced.Close()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
