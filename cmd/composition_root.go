package cmd

import (
	"log/slog"
	"strings"
	"time"

	"fulfillment/internal/adapters/out/kafkanotify"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

// defaultStalledAfter is the reminder threshold when the config leaves it unset.
const defaultStalledAfter = 45 * time.Minute

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   *kafkanotify.KafkaNotifier

	stalledAfter time.Duration
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	brokers := strings.Split(config.KafkaHost, ",")
	notifier := kafkanotify.NewKafkaNotifier(brokers, config.KafkaTopicPrefix, logger)

	stalledAfter := defaultStalledAfter
	if config.DeliveryStalledAfter != "" {
		parsed, err := time.ParseDuration(config.DeliveryStalledAfter)
		if err == nil {
			stalledAfter = parsed
		} else {
			logger.Warn("Invalid DELIVERY_STALLED_AFTER, using default",
				"value", config.DeliveryStalledAfter, "default", defaultStalledAfter)
		}
	}

	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:     notifier,
		stalledAfter: stalledAfter,
	}
}

// Close releases resources held by long-lived adapters.
func (c *CompositionRoot) Close() error {
	return c.notifier.Close()
}

func (c *CompositionRoot) CreateCollectOrderCommandHandler() commands.CollectOrderCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCollectOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDriverCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDeliveryStatusCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	var f commands.TrackingUoWFactory = FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateLocationCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateStartInspectionCommandHandler() commands.StartInspectionCommandHandler {
	var f commands.InspectionUoWFactory = FuncInspectionUoWFactory(func() commands.InspectionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartInspectionCommandHandler(f)
}

func (c *CompositionRoot) CreateSubmitInspectionCommandHandler() commands.SubmitInspectionCommandHandler {
	var f commands.InspectionUoWFactory = FuncInspectionUoWFactory(func() commands.InspectionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitInspectionCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateCreateReturnAssignmentCommandHandler() commands.CreateReturnAssignmentCommandHandler {
	var f commands.ReturnUoWFactory = FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateReturnAssignmentCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateGetCollectionReadyOrdersQueryHandler() queries.GetCollectionReadyOrdersQueryHandler {
	return queries.NewGetCollectionReadyOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetQCPassedOrdersQueryHandler() queries.GetQCPassedOrdersQueryHandler {
	return queries.NewGetQCPassedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingReturnsQueryHandler() queries.GetPendingReturnsQueryHandler {
	return queries.NewGetPendingReturnsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	handler := queries.NewGetStalledDeliveriesQueryHandler(c.gormDB)
	return jobs.NewJobManager(handler, c.notifier, c.stalledAfter, logger)
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncInspectionUoWFactory func() commands.InspectionUoW

func (f FuncInspectionUoWFactory) Create() commands.InspectionUoW {
	return f()
}

type FuncReturnUoWFactory func() commands.ReturnUoW

func (f FuncReturnUoWFactory) Create() commands.ReturnUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}
