package bootstrap

import (
	"context"
	"log"

	"marketplace-billing-be/internal/config"
	"marketplace-billing-be/internal/controller"
	"marketplace-billing-be/internal/pkg/clock"
	"marketplace-billing-be/internal/pkg/logger"
	"marketplace-billing-be/internal/pkg/mailer"
	"marketplace-billing-be/internal/repository/unitofwork"
	"marketplace-billing-be/internal/scheduler"
	"marketplace-billing-be/internal/service"

	pktNats "marketplace-billing-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const notificationTopic = "billing.notifications"

type Container struct {
	// Controllers
	PlanController         controller.PlanController
	SubscriptionController controller.ISubscriptionController
	InvoiceController      controller.IInvoiceController
	PaymentController      controller.IPaymentController
	StatsController        controller.IStatsController
	SettingsController     controller.ISettingsController

	// Background workers (exposed for main.go to run)
	ConsumerService service.IConsumerService
	AuditService    service.IAuditService
	Scheduler       *scheduler.Scheduler
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	clk := clock.NewSystemClock()

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 3. Services
	notifier := service.NewNotificationService(natsPub, pubSub, notificationTopic, sysLogger)
	consumerService := service.NewConsumerService(pubSub, notificationTopic, emailService, sysLogger)
	auditService := service.NewAuditService(natsSub, auditLogger)

	planService := service.NewPlanService(uowFactory)
	invoiceService := service.NewInvoiceService(uowFactory, clk, auditLogger)
	subscriptionService := service.NewSubscriptionService(uowFactory, invoiceService, notifier, clk, auditLogger)
	receiptService := service.NewReceiptService(cfg.Billing.ReceiptDir)
	paymentService := service.NewPaymentService(uowFactory, notifier, receiptService, clk, auditLogger)
	revenueService := service.NewRevenueService(uowFactory, rdb, clk, sysLogger)
	reminderService := service.NewReminderService(uowFactory, notifier, sysLogger)
	settingsService := service.NewSettingsService(uowFactory)

	billingScheduler := scheduler.New(
		cfg.Billing.SchedulerSpec,
		subscriptionService,
		invoiceService,
		reminderService,
		clk,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		PlanController:         controller.NewPlanController(planService),
		SubscriptionController: controller.NewSubscriptionController(subscriptionService, invoiceService),
		InvoiceController:      controller.NewInvoiceController(invoiceService),
		PaymentController:      controller.NewPaymentController(paymentService),
		StatsController:        controller.NewStatsController(revenueService),
		SettingsController:     controller.NewSettingsController(settingsService),

		ConsumerService: consumerService,
		AuditService:    auditService,
		Scheduler:       billingScheduler,
	}
}
