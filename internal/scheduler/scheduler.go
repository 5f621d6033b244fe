package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/catalog"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/config"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/service/monitor"
	"github.com/OmAmbre27/smart-inventory-sub000/internal/service/summary"
	"github.com/OmAmbre27/smart-inventory-sub000/pkg/clients/notifier"
)

// Scheduler manages the recurring reporting jobs: the nightly per-outlet
// daily summary and the morning low-stock sweep.
type Scheduler struct {
	cron       *cron.Cron
	summarySvc *summary.Service
	monitorSvc *monitor.Service
	outlets    catalog.OutletSource
	notifier   notifier.Client
	cfg        config.ReportingConfig
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance. The notifier may be nil, in
// which case jobs still run (summaries are persisted by the summary sinks)
// but nothing is delivered.
func NewScheduler(cfg config.ReportingConfig, summarySvc *summary.Service, monitorSvc *monitor.Service, outlets catalog.OutletSource, notify notifier.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []cron.Option{}
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		opts = append(opts, cron.WithLocation(loc))
	} else {
		logger.Warn("invalid timezone, scheduler falls back to local time",
			zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	return &Scheduler{
		cron:       cron.New(opts...),
		summarySvc: summarySvc,
		monitorSvc: monitorSvc,
		outlets:    outlets,
		notifier:   notify,
		cfg:        cfg,
		logger:     logger,
	}
}

// Start registers and starts the cron jobs.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("summary_schedule", s.cfg.SummaryCronSchedule),
		zap.String("low_stock_schedule", s.cfg.LowStockCronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.SummaryCronSchedule, s.runDailySummaries); err != nil {
		s.logger.Error("failed to schedule daily summaries", zap.Error(err))
	}
	if _, err := s.cron.AddFunc(s.cfg.LowStockCronSchedule, s.runLowStockSweep); err != nil {
		s.logger.Error("failed to schedule low stock sweep", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailySummaries() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	day := time.Now().UTC()
	for _, outlet := range s.outlets.Outlets() {
		sum, err := s.summarySvc.GenerateSummary(ctx, outlet.ID, day)
		if err != nil {
			s.logger.Error("failed to generate daily summary",
				zap.String("outlet_id", outlet.ID), zap.Error(err))
			continue
		}

		if s.notifier == nil {
			continue
		}
		if err := s.notifier.SendDailySummary(ctx, sum); err != nil {
			s.logger.Error("failed to deliver daily summary",
				zap.String("outlet_id", outlet.ID), zap.Error(err))
		}
	}
}

func (s *Scheduler) runLowStockSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, outlet := range s.outlets.Outlets() {
		alerts := s.monitorSvc.CheckLowStock(outlet.ID)
		if len(alerts) == 0 {
			continue
		}
		s.logger.Info("low stock detected",
			zap.String("outlet_id", outlet.ID),
			zap.Int("alerts", len(alerts)))

		if s.notifier == nil {
			continue
		}
		if err := s.notifier.SendLowStockAlerts(ctx, outlet.ID, alerts); err != nil {
			s.logger.Error("failed to deliver low stock alerts",
				zap.String("outlet_id", outlet.ID), zap.Error(err))
		}
	}
}
