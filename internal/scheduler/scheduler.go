// FILE: internal/scheduler/scheduler.go
package scheduler

import (
	"context"

	"marketplace-billing-be/internal/pkg/clock"
	"marketplace-billing-be/internal/pkg/logger"
	"marketplace-billing-be/internal/service"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the daily billing run: trial expiry, period rollover,
// overdue marking, delinquency suspension and renewal reminders. Every
// step is idempotent, so an overlapping or repeated run is safe.
type Scheduler struct {
	cron          *cron.Cron
	spec          string
	subscriptions service.ISubscriptionService
	invoices      service.IInvoiceService
	reminders     service.IReminderService
	clock         clock.Clock
	logger        logger.ILogger
}

func New(
	spec string,
	subscriptions service.ISubscriptionService,
	invoices service.IInvoiceService,
	reminders service.IReminderService,
	clk clock.Clock,
	log logger.ILogger,
) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		spec:          spec,
		subscriptions: subscriptions,
		invoices:      invoices,
		reminders:     reminders,
		clock:         clk,
		logger:        log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, func() {
		s.RunBillingCycle(context.Background())
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Scheduler", "Billing scheduler started", map[string]interface{}{"spec": s.spec})
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunBillingCycle executes one full pass. Steps run in dependency order:
// trials must expire before delinquency checks, rollover must issue
// invoices before reminders can see them. A failed step is logged and the
// remaining steps still run.
func (s *Scheduler) RunBillingCycle(ctx context.Context) {
	now := s.clock.Now()

	if n, err := s.subscriptions.ExpireTrials(ctx, now); err != nil {
		s.logger.Error("Scheduler", "Trial expiry step failed", map[string]interface{}{"error": err.Error()})
	} else if n > 0 {
		s.logger.Info("Scheduler", "Expired trials", map[string]interface{}{"count": n})
	}

	if n, err := s.subscriptions.RolloverDueSubscriptions(ctx, now); err != nil {
		s.logger.Error("Scheduler", "Rollover step failed", map[string]interface{}{"error": err.Error()})
	} else if n > 0 {
		s.logger.Info("Scheduler", "Rolled over subscriptions", map[string]interface{}{"count": n})
	}

	if _, err := s.invoices.MarkOverdue(ctx, now); err != nil {
		s.logger.Error("Scheduler", "Overdue step failed", map[string]interface{}{"error": err.Error()})
	}

	if n, err := s.subscriptions.SuspendDelinquent(ctx, now); err != nil {
		s.logger.Error("Scheduler", "Delinquency step failed", map[string]interface{}{"error": err.Error()})
	} else if n > 0 {
		s.logger.Info("Scheduler", "Suspended delinquent subscriptions", map[string]interface{}{"count": n})
	}

	if n, err := s.reminders.SendDueReminders(ctx, now); err != nil {
		s.logger.Error("Scheduler", "Reminder step failed", map[string]interface{}{"error": err.Error()})
	} else if n > 0 {
		s.logger.Info("Scheduler", "Sent renewal reminders", map[string]interface{}{"count": n})
	}
}
