package main

import (
	"time"

	"subscription_processing/internal/app"
	"subscription_processing/internal/domain/subscription"
	"subscription_processing/internal/infra/config"
	"subscription_processing/internal/infra/logger"
	"subscription_processing/internal/infra/scheduler"

	"github.com/sirupsen/logrus"
)

const previewName = "preview"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	log := logger.Get()

	log.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"log_level":   cfg.LogLevel,
	}).Info("Configuration loaded")

	frequency, err := subscription.ParseFrequency(cfg.Frequency)
	if err != nil {
		log.Fatalf("Invalid subscription frequency: %v", err)
	}
	sub, err := subscription.NewFromParams(subscription.Params{
		Interval:  cfg.Interval,
		StartDate: cfg.StartDate,
		Frequency: frequency,
	})
	if err != nil {
		log.Fatalf("Could not create subscription: %v", err)
	}

	planner := app.NewPlanningService(log)
	if err := planner.Register(previewName, sub); err != nil {
		log.Fatalf("Could not register subscription: %v", err)
	}

	from := cfg.PreviewFrom.Format(time.DateOnly)
	log.WithFields(logrus.Fields{
		"subscription": sub.String(),
		"epoch":        subscription.Epoch().Format(time.DateOnly),
		"residue":      sub.Residue(),
	}).Info("Subscription created")
	log.WithFields(logrus.Fields{
		"date":       from,
		"process_on": sub.ProcessOn(cfg.PreviewFrom),
		"due":        planner.DueOn(cfg.PreviewFrom),
	}).Info("Processing check")

	agenda, err := planner.Agenda(cfg.PreviewFrom, cfg.PreviewCount)
	if err != nil {
		log.Fatalf("Could not compute processing dates: %v", err)
	}
	for i, entry := range agenda {
		log.WithFields(logrus.Fields{
			"n":    i + 1,
			"date": entry.Date.Format(time.DateOnly),
		}).Info("Upcoming processing date")
	}

	schedule, err := scheduler.NewResidueSchedule(sub, cfg.PreviewCronOffset)
	if err != nil {
		log.Fatalf("Could not create cron schedule: %v", err)
	}
	// cron semantics: activations strictly after the instant before "from"
	start := cfg.PreviewFrom.Add(-time.Nanosecond)
	for i, fire := range scheduler.NextOccurrences(schedule, start, cfg.PreviewCount) {
		log.WithFields(logrus.Fields{
			"n":    i + 1,
			"fire": fire.Format(time.RFC3339),
		}).Info("Upcoming cron activation")
	}
}
