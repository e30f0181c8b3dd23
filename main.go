package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/routepal/routepal/chatgpt"
	"github.com/routepal/routepal/feishu"
	"github.com/routepal/routepal/internal/biz"
	"github.com/routepal/routepal/internal/biz/domain"
	"github.com/routepal/routepal/internal/conf"
	"github.com/routepal/routepal/internal/data"
	"github.com/routepal/routepal/internal/server"
	"github.com/routepal/routepal/internal/service"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := conf.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	feishuClient := feishu.NewClient(cfg.Feishu.AppID, cfg.Feishu.AppSecret, logger)
	chatgptClient := chatgpt.NewClient(cfg.ChatGPT.APIKey, cfg.ChatGPT.OrgID, cfg.ChatGPT.Model, logger)

	repos := data.NewRepositories(feishuClient, chatgptClient, cfg.Prediction.DataDir, logger)

	resolver := domain.DateTimeResolver{FallbackYear: cfg.Prediction.FallbackYear}
	usecases := biz.NewUsecases(repos.Chat, repos.Prediction, resolver, cfg.Bot.DisableSelfChat, logger)

	trigger := domain.TriggerContext{
		BotName: cfg.Bot.Name,
		Keyword: cfg.Bot.TriggerKeyword,
	}

	replySvc := service.NewReplyService(usecases.Filter, usecases.Router, trigger, repos.Message, logger)
	srv := server.NewFeishuServer(feishuClient, replySvc, logger)

	// Backend self-test: one round trip before accepting traffic, so a bad
	// key or unreachable API shows up in the logs at startup.
	selfTestCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if answer, err := repos.Chat.Ask(selfTestCtx, "Say Hello World"); err != nil {
		logger.Warn("backend self-test failed", "error", err)
	} else {
		logger.Info("backend self-test passed", "answer", answer)
	}
	cancel()

	logger.Info("starting RoutePal",
		"bot_name", cfg.Bot.Name,
		"trigger_keyword", cfg.Bot.TriggerKeyword,
		"data_dir", cfg.Prediction.DataDir)

	// 优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("shutting down")
		srv.Stop()
		os.Exit(0)
	}()

	if err := srv.Start(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
