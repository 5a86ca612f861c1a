package main

import (
	"context"
	"os"

	"campusevents/config"
	"campusevents/internal/adapters/email"
	"campusevents/internal/cli"
	"campusevents/internal/repository/memory"
	"campusevents/internal/seed"
	"campusevents/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretKey,
			InsecureSkipVerify: cfg.SESSkipVerify,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	users := memory.NewUserRepository()
	events := memory.NewEventRepository()

	ctx := context.Background()
	if cfg.SeedDemo {
		if err := seed.Demo(ctx, users, events); err != nil {
			logger.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
		logger.Info("demo data loaded")
	}

	app := &cli.App{
		Users:        users,
		Events:       events,
		EventService: services.NewEventService(events, users, emailService, logger),
		Attendees:    services.NewAttendeeService(events, users),
		Search:       services.NewSearchService(events),
		Stats:        services.NewStatsService(events, users),
		Logger:       logger,
	}

	root := cli.NewRootCommand(app, cfg.ExportDir)
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
