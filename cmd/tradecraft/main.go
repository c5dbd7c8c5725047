package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"TradeCraft/internal/cache"
	"TradeCraft/internal/collector"
	"TradeCraft/internal/config"
	"TradeCraft/internal/dashboard"
	"TradeCraft/internal/logger"
	"TradeCraft/internal/metrics"
	"TradeCraft/internal/notifier"
	"TradeCraft/internal/prefs"
	"TradeCraft/internal/recorder"
	"TradeCraft/internal/scheduler"
	"TradeCraft/internal/server"
	"TradeCraft/internal/symbol"
	"TradeCraft/internal/widget"
	"TradeCraft/internal/youtube"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tradecraft: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer log.Sync()
	log.Info("TradeCraft starting")

	m := metrics.NewMetrics()

	var fetcher collector.Fetcher
	if cfg.Market.UseMock {
		fetcher = &collector.MockFetcher{}
	} else {
		fetcher = collector.NewAPIFetcher(cfg.Market.BaseURL, cfg.Proxy)
	}
	log.Info("market data source", zap.String("source", fetcher.Name()), zap.String("base_url", cfg.Market.BaseURL))
	col := collector.NewCollector(fetcher, log)

	symbols := symbol.NewStore(cfg.Market.DefaultSymbol)

	var snapCache cache.Cache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		snapCache = cache.NewRedisCache(rdb, cfg.Redis.TTL, log)
	} else {
		snapCache = cache.NewMemoryCache()
	}

	var rec recorder.Recorder
	if sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log); err != nil {
		log.Warn("init sqlite recorder failed, using noop", zap.Error(err))
		rec = recorder.NewNoopRecorder()
	} else {
		rec = sr
	}
	defer rec.Close()

	var poll *widget.Poll
	if kv, err := prefs.Open(cfg.Prefs.File); err != nil {
		log.Warn("open prefs failed, poll vote will not persist", zap.Error(err))
		poll = widget.NewPoll(widget.DefaultPollOptions, nil)
	} else {
		poll = widget.RestorePoll(widget.DefaultPollOptions, kv)
	}

	yt := youtube.NewClient(cfg.YouTube.APIKey, cfg.YouTube.ChannelID, cfg.YouTube.BaseURL, cfg.Proxy, log, m)
	if !cfg.YouTubeConfigured() {
		log.Warn("youtube credentials missing, serving placeholder channel data")
	}
	feed := youtube.NewFeed(yt, cfg.YouTube.MaxResults)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	hub := server.NewHub(m, log)
	dash := dashboard.New(col, symbols, snapCache, rec, m, log)
	dash.OnSnapshot(hub.PublishSnapshot)

	var tn *notifier.TelegramNotifier
	var n notifier.Notifier = notifier.NopNotifier{}
	if cfg.TelegramConfigured() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		n = tn
	}
	dash.OnSnapshot(notifier.NewAlerter(n, m, log).Observe)
	go dash.Watch(ctx)

	board := dashboard.NewCheckpointBoard(fetcher, rec, log)

	sched := scheduler.NewScheduler(ctx, dash, board, feed, rec, log)
	sched.Symbols = symbols
	if err := sched.RegisterAll(scheduler.Intervals{
		Dashboard:  cfg.Schedule.DashboardInterval,
		Checkpoint: cfg.Schedule.CheckpointInterval,
		Videos:     cfg.Schedule.VideoInterval,
		PruneCron:  cfg.Schedule.PruneCron,
		Retention:  cfg.Schedule.HistoryRetention,
	}); err != nil {
		return fmt.Errorf("register tasks: %w", err)
	}
	sched.Start()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info("telegram polling started")
	}

	// The dashboard loads once at startup; the other boards wait for their
	// first tick unless RUN_ON_START asks for everything now.
	go func() {
		if err := sched.RunNow(); err != nil {
			log.Warn("initial dashboard refresh", zap.Error(err))
		}
	}()
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, refreshing checkpoints and videos now")
		go board.Refresh(ctx)
		go feed.Refresh(ctx)
	}

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: (&server.Server{
			Dashboard:   dash,
			Checkpoints: board,
			Symbols:     symbols,
			Feed:        feed,
			Poll:        poll,
			Form:        widget.NewMessageForm(widget.DefaultSendDelay),
			Recorder:    rec,
			Cache:       snapCache,
			Hub:         hub,
			Metrics:     m,
			Logger:      log.Named("http"),
		}).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping")
	case err := <-errCh:
		log.Error("http server failed", zap.Error(err))
		cancel()
	}

	sched.Stop()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	hub.Close()
	log.Info("TradeCraft stopped")
	return nil
}
