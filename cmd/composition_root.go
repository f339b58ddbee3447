package cmd

import (
	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/alertrepo"
	"dispatch/internal/adapters/out/postgres/devicerepo"
	"dispatch/internal/adapters/out/push"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/notifications"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services, and use case handlers.
// Handlers are created on demand so each carries only the dependencies
// it needs.
type CompositionRoot struct {
	config Config
	gormDB *gorm.DB
	logger *zap.Logger

	uowFactory *postgres.GormUnitOfWorkFactory
	fare       services.FareCalculator
	transition services.OrderTransition
	dispatcher *notifications.Dispatcher
	bus        *kafka.Publisher
	tokens     *devicerepo.GormTokenDirectory
}

// NewCompositionRoot builds the object graph for the given configuration
// and database handle.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) *CompositionRoot {
	tokens := devicerepo.NewGormTokenDirectory(gormDB)

	dispatcher := notifications.NewDispatcher(
		tokens,
		[]ports.ChannelProvider{
			push.NewExpoProvider(config.ExpoEndpoint),
			push.NewFCMProvider(config.FCMEndpoint, config.FCMServerKey),
		},
		alertrepo.NewGormAlertRepository(gormDB),
		logger,
	)

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		fare:       services.NewFareCalculator(),
		transition: services.NewOrderTransition(),
		dispatcher: dispatcher,
		bus:        kafka.NewPublisher(config.KafkaBrokers, config.KafkaEventsTopic, logger),
		tokens:     tokens,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderCourierUoWFactory = FuncOrderCourierUoWFactory(func() commands.OrderCourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.fare, c.dispatcher, c.bus, c.logger)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	var f commands.OrderCourierUoWFactory = FuncOrderCourierUoWFactory(func() commands.OrderCourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimOrderCommandHandler(f, c.dispatcher, c.bus, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(
		f, c.transition, c.CreateClaimOrderCommandHandler(), c.dispatcher, c.bus, c.logger)
}

func (c *CompositionRoot) CreateCancelStaleOrdersCommandHandler() commands.CancelStaleOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelStaleOrdersCommandHandler(f, c.transition, c.dispatcher, c.bus, c.logger)
}

func (c *CompositionRoot) CreateMarkAlertReadCommandHandler() commands.MarkAlertReadCommandHandler {
	var f commands.AlertUoWFactory = FuncAlertUoWFactory(func() commands.AlertUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkAlertReadCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetFareQuoteQueryHandler() queries.GetFareQuoteQueryHandler {
	return queries.NewGetFareQuoteQueryHandler(c.gormDB, c.fare)
}

func (c *CompositionRoot) CreateGetAlertsQueryHandler() queries.GetAlertsQueryHandler {
	return queries.NewGetAlertsQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the REST adapter over all handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateClaimOrderCommandHandler(),
		c.CreateMarkAlertReadCommandHandler(),
		c.CreateGetAvailableOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetFareQuoteQueryHandler(),
		c.CreateGetAlertsQueryHandler(),
		c.tokens,
	)
}

// CreateJobManager builds the background job scheduler.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCancelStaleOrdersCommandHandler(),
		c.config.StaleSweepSchedule,
		c.config.OrderStaleAfter,
		c.logger,
	)
}

// Close releases outbound resources and drains in-flight notifications.
func (c *CompositionRoot) Close() error {
	c.dispatcher.Wait()
	return c.bus.Close()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderCourierUoWFactory func() commands.OrderCourierUoW

func (f FuncOrderCourierUoWFactory) Create() commands.OrderCourierUoW {
	return f()
}

type FuncAlertUoWFactory func() commands.AlertUoW

func (f FuncAlertUoWFactory) Create() commands.AlertUoW {
	return f()
}
