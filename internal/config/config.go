package config

import (
	"flag"
	"os"

	"github.com/BurntSushi/toml"

	authservice "github.com/goserg/storeserver/auth/service"
	"github.com/goserg/storeserver/internal/mail"
)

var (
	serverConfigPath = flag.String("server-config", "configs/server.toml", "path to server config")
	authConfigPath   = flag.String("auth-config", "configs/auth.toml", "path to auth config")
	botConfigPath    = flag.String("bot-config", "configs/bot.toml", "path to bot config")
)

type TgBot struct {
	TelegramApiToken string `toml:"telegram_apitoken"`
	ChatID           int64  `toml:"chat_id"`
}

type Server struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	TgBotEnabled bool   `toml:"tg_bot_enabled"`
	Debug        bool   `toml:"debug_mode"`
	SqliteFile   string `toml:"sqlite_file"`

	Mail mail.Config `toml:"mail"`
}

type Config struct {
	TgBot  TgBot
	Server Server
	Auth   authservice.Config
}

func New() (Config, error) {
	if !flag.Parsed() {
		flag.Parse()
	}

	var serverCfg Server
	_, err := toml.DecodeFile(*serverConfigPath, &serverCfg)
	if err != nil {
		return Config{}, err
	}

	var authCfg authservice.Config
	_, err = toml.DecodeFile(*authConfigPath, &authCfg)
	if err != nil {
		return Config{}, err
	}
	if secret := os.Getenv("STORESERVER_TOKEN_SECRET"); secret != "" {
		authCfg.Token = secret
	}
	if pepper := os.Getenv("STORESERVER_PASSWORD_PEPPER"); pepper != "" {
		authCfg.PasswordPepper = pepper
	}

	var tgBotCfg TgBot
	_, err = toml.DecodeFile(*botConfigPath, &tgBotCfg)
	if err != nil {
		return Config{}, err
	}
	if token := os.Getenv("TELEGRAM_APITOKEN"); token != "" {
		tgBotCfg.TelegramApiToken = token
	}
	if password := os.Getenv("STORESERVER_SMTP_PASSWORD"); password != "" {
		serverCfg.Mail.Password = password
	}

	return Config{
		TgBot:  tgBotCfg,
		Server: serverCfg,
		Auth:   authCfg,
	}, nil
}
