package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	authservice "github.com/goserg/storeserver/auth/service"
	"github.com/goserg/storeserver/auth/storage"
	authpostgres "github.com/goserg/storeserver/auth/storage/postgres"
	authsqlite "github.com/goserg/storeserver/auth/storage/sqlite"
	"github.com/goserg/storeserver/internal/config"
	"github.com/goserg/storeserver/internal/logger"
	"github.com/goserg/storeserver/internal/mail"
	"github.com/goserg/storeserver/internal/service"
	storesqlite "github.com/goserg/storeserver/internal/storage/sqlite"
	"github.com/goserg/storeserver/internal/tgbot"
	"github.com/goserg/storeserver/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.New(cfg.Server.Debug)

	var authStorage storage.AuthStorage
	switch cfg.Auth.Backend {
	case "postgres":
		authStorage, err = authpostgres.New(context.Background(), log, cfg.Auth)
	default:
		authStorage, err = authsqlite.New(log, cfg.Auth)
	}
	if err != nil {
		return fmt.Errorf("auth storage: %w", err)
	}

	mailer := mail.NewSMTP(cfg.Server.Mail, log)
	authService := authservice.New(cfg.Auth, authStorage, mailer, log)

	storeStorage, err := storesqlite.New(log, cfg.Server.SqliteFile)
	if err != nil {
		return fmt.Errorf("store storage: %w", err)
	}
	storeService := service.New(storeStorage, storeStorage, storeStorage, log)

	if cfg.Server.TgBotEnabled {
		events := make(chan service.Notification, 64)
		storeService.WithNotifications(events)
		bot, err := tgbot.New(cfg, events, log)
		if err != nil {
			return fmt.Errorf("tg bot: %w", err)
		}
		go bot.Run()
		defer bot.Stop()
	}

	server, err := web.New(storeService, cfg.Server, authService)
	if err != nil {
		return fmt.Errorf("web server: %w", err)
	}
	return server.Serve()
}
