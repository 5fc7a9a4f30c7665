package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	httpin "ordering/internal/adapters/in/http"
	kafkain "ordering/internal/adapters/in/kafka"
	rabbitmqin "ordering/internal/adapters/in/rabbitmq"
	"ordering/internal/adapters/messaging"
	kafkaout "ordering/internal/adapters/out/kafka"
	"ordering/internal/adapters/out/postgres"
	rabbitmqout "ordering/internal/adapters/out/rabbitmq"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"
	"ordering/internal/pkg/metrics"
	"ordering/internal/pkg/rabbitmq"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs       Config
	gormDB        *gorm.DB
	logger        *zap.Logger
	metrics       *metrics.Metrics
	gatherer      prometheus.Gatherer
	domainService services.OrderDomainService
	uowFactory    *postgres.GormUnitOfWorkFactory

	// dispatchJob is woken by the unit of work after commits that staged events. It is
	// created after the factory, so the hook reads it lazily.
	dispatchJob atomic.Pointer[jobs.OutboxDispatchJob]
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *zap.Logger, registry *prometheus.Registry) *CompositionRoot {
	c := &CompositionRoot{
		configs:       configs,
		gormDB:        gormDB,
		logger:        logger,
		metrics:       metrics.New(registry),
		gatherer:      registry,
		domainService: services.NewOrderDomainService(),
	}
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, messaging.NewCodec(), postgres.WithAfterCommit(c.notifyDispatcher))
	return c
}

func (c *CompositionRoot) notifyDispatcher() {
	if job := c.dispatchJob.Load(); job != nil {
		job.Notify()
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	var f commands.CreateOrderUoWFactory = FuncCreateOrderUoWFactory(func() commands.CreateOrderUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCreateOrderCommandHandler(f, c.domainService, c.logger, c.metrics)
	return &h
}

func (c *CompositionRoot) CreatePaymentResponseHandler() *commands.PaymentResponseHandler {
	var f commands.SagaUoWFactory = FuncSagaUoWFactory(func() commands.SagaUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewPaymentResponseHandler(f, c.domainService, c.logger, c.metrics)
	return &h
}

func (c *CompositionRoot) CreateRestaurantApprovalResponseHandler() *commands.RestaurantApprovalResponseHandler {
	var f commands.SagaUoWFactory = FuncSagaUoWFactory(func() commands.SagaUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewRestaurantApprovalResponseHandler(f, c.domainService, c.logger, c.metrics)
	return &h
}

func (c *CompositionRoot) CreateDispatchOutboxCommandHandler(
	publisher ports.MessagePublisher,
) *commands.DispatchOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewDispatchOutboxCommandHandler(f, publisher, c.logger, c.metrics)
	return &h
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB)
}

// CreateJobManager wires the outbox dispatcher to publisher and to the unit of work's
// after-commit hook.
func (c *CompositionRoot) CreateJobManager(publisher ports.MessagePublisher) (*jobs.JobManager, error) {
	job, err := jobs.NewOutboxDispatchJob(c.CreateDispatchOutboxCommandHandler(publisher), c.configs.OutboxBatchSize, c.logger)
	if err != nil {
		return nil, fmt.Errorf("create outbox dispatch job: %w", err)
	}
	c.dispatchJob.Store(job)
	return jobs.NewJobManager(job), nil
}

// CreateEcho builds the HTTP API. brokerHealth may be nil.
func (c *CompositionRoot) CreateEcho(brokerHealth func(ctx context.Context) error) (*echo.Echo, error) {
	server := httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateTrackOrderQueryHandler(),
		c.logger,
		httpin.WithMetrics(c.metrics, c.gatherer),
		httpin.WithHealthCheck(func(ctx context.Context) error {
			if err := c.pingDB(ctx); err != nil {
				return err
			}
			if brokerHealth != nil {
				return brokerHealth(ctx)
			}
			return nil
		}),
	)
	return httpin.NewEcho(server)
}

func (c *CompositionRoot) pingDB(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Consumer is an inbound message loop run until its context is cancelled.
type Consumer interface {
	Run(ctx context.Context) error
}

// Broker bundles the transport selected by BROKER.
type Broker struct {
	Publisher ports.MessagePublisher
	Consumers []Consumer
	Health    func(ctx context.Context) error
	Close     func() error
}

func (c *CompositionRoot) CreateBroker() (Broker, error) {
	router := messaging.NewRouter(c.CreatePaymentResponseHandler(), c.CreateRestaurantApprovalResponseHandler(), c.logger)
	processor := messaging.NewProcessor(messaging.DefaultRetryPolicy(), c.logger)

	switch c.configs.Broker {
	case BrokerKafka:
		return c.createKafkaBroker(router, processor), nil
	case BrokerRabbitMQ:
		return c.createRabbitMQBroker(router, processor)
	default:
		return Broker{}, fmt.Errorf("unknown broker %q", c.configs.Broker)
	}
}

func (c *CompositionRoot) createKafkaBroker(router *messaging.Router, processor *messaging.Processor) Broker {
	brokers := c.configs.KafkaBrokers()
	publisher := kafkaout.NewPublisher(brokers, map[ports.Channel]string{
		ports.PaymentRequestChannel:            c.configs.KafkaPaymentRequestTopic,
		ports.RestaurantApprovalRequestChannel: c.configs.KafkaRestaurantApprovalRequestTopic,
	})
	payments := kafkain.NewConsumer(brokers, c.configs.KafkaConsumerGroup,
		c.configs.KafkaPaymentResponseTopic, router.HandlePaymentResponse, processor, c.logger)
	approvals := kafkain.NewConsumer(brokers, c.configs.KafkaConsumerGroup,
		c.configs.KafkaRestaurantApprovalResponseTopic, router.HandleRestaurantApprovalResponse, processor, c.logger)

	return Broker{
		Publisher: publisher,
		Consumers: []Consumer{payments, approvals},
		Close: func() error {
			return errors.Join(payments.Close(), approvals.Close(), publisher.Close())
		},
	}
}

func (c *CompositionRoot) createRabbitMQBroker(router *messaging.Router, processor *messaging.Processor) (Broker, error) {
	client, err := rabbitmq.Dial(c.configs.RabbitMQURL)
	if err != nil {
		return Broker{}, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	err = client.Declare(rabbitmq.Topology{
		Exchange: c.configs.RabbitMQExchange,
		Queues: []string{
			string(ports.PaymentRequestChannel),
			string(ports.RestaurantApprovalRequestChannel),
			PaymentResponseQueue,
			RestaurantApprovalResponseQueue,
		},
	})
	if err != nil {
		_ = client.Close()
		return Broker{}, err
	}

	consumers := make([]Consumer, 0, 2)
	for queue, handle := range map[string]messaging.HandlerFunc{
		PaymentResponseQueue:            router.HandlePaymentResponse,
		RestaurantApprovalResponseQueue: router.HandleRestaurantApprovalResponse,
	} {
		ch, chErr := client.Channel()
		if chErr != nil {
			_ = client.Close()
			return Broker{}, fmt.Errorf("open channel for %s: %w", queue, chErr)
		}
		// One unacknowledged delivery at a time keeps each queue in order.
		if chErr = ch.Qos(1, 0, false); chErr != nil {
			_ = client.Close()
			return Broker{}, fmt.Errorf("set qos for %s: %w", queue, chErr)
		}
		deliveries, chErr := ch.Consume(queue, "", false, false, false, false, nil)
		if chErr != nil {
			_ = client.Close()
			return Broker{}, fmt.Errorf("consume %s: %w", queue, chErr)
		}
		consumers = append(consumers, rabbitmqin.NewConsumer(queue, deliveries, handle, processor, c.logger))
	}

	ch, confirms := client.PublishChannel()
	return Broker{
		Publisher: rabbitmqout.NewPublisher(ch, confirms, c.configs.RabbitMQExchange),
		Consumers: consumers,
		Health: func(context.Context) error {
			return client.Ping()
		},
		Close: client.Close,
	}, nil
}

type FuncCreateOrderUoWFactory func() commands.CreateOrderUoW

func (f FuncCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return f()
}

type FuncSagaUoWFactory func() commands.SagaUoW

func (f FuncSagaUoWFactory) Create() commands.SagaUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
