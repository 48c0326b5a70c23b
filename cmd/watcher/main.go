package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ictdetect/internal/api/twelvedata"
	"ictdetect/internal/config"
	"ictdetect/internal/database"
	"ictdetect/internal/engine"
	"ictdetect/internal/model"
	"ictdetect/internal/notify"
	"ictdetect/internal/scheduler"
	"ictdetect/internal/series"
)

// watcher re-runs the analysis on a cron spec and alerts on high-confluence
// closes. It keeps no state between runs; every detection pass is a full,
// deterministic re-analysis of the freshly fetched series.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	client := twelvedata.NewClient(cfg.TwelveAPIKey, time.Duration(cfg.RequestTimeout)*time.Second)

	var tg *notify.Telegram
	if cfg.TelegramToken != "" {
		if tg, err = notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID); err != nil {
			log.Fatal().Err(err).Msg("telegram init")
		}
	}

	var db *database.DB
	if cfg.DatabaseURL != "" {
		if db, err = database.New(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("connecting to database")
		}
		defer db.Close()
	}

	eng := engine.New(cfg.EngineParams())

	sched := scheduler.New()
	if err := sched.Register(cfg.CronSpec, func() {
		runOnce(cfg, client, eng, tg, db)
	}); err != nil {
		log.Fatal().Err(err).Msg("registering job")
	}

	sched.Start()
	defer sched.Stop()
	log.Info().Str("cron", cfg.CronSpec).Str("symbol", cfg.Symbol).Msg("watcher running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
}

func runOnce(cfg *config.Config, client *twelvedata.Client, eng *engine.Engine, tg *notify.Telegram, db *database.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	candles, err := client.GetCandles(ctx, cfg.Symbol, cfg.Interval, cfg.CandleCount)
	if err != nil {
		log.Error().Err(err).Msg("fetch failed")
		return
	}
	store, err := series.New(candles)
	if err != nil {
		log.Error().Err(err).Msg("rejected candle series")
		return
	}

	analysis := eng.Analyze(store)
	params := eng.Params()

	last := store.Len() - 1
	score := analysis.Confluence[last]
	longBucket := params.Bucket(score.LongScore)
	shortBucket := params.Bucket(score.ShortScore)
	log.Info().
		Int("confluence_long", score.LongScore).
		Int("confluence_short", score.ShortScore).
		Str("structure", string(analysis.Structure[last])).
		Msg("cycle complete")

	if db != nil {
		if runID, err := db.RecordAnalysis(cfg.Symbol, cfg.Interval, store, analysis); err != nil {
			log.Error().Err(err).Msg("recording analysis")
		} else {
			log.Debug().Str("run_id", runID).Msg("analysis recorded")
		}
	}

	if tg != nil && (longBucket == model.ConfluenceHigh || shortBucket == model.ConfluenceHigh) {
		bucket := longBucket
		if shortBucket == model.ConfluenceHigh {
			bucket = shortBucket
		}
		if err := tg.SendConfluenceAlert(cfg.Symbol, last, store.At(last).Timestamp, score, bucket); err != nil {
			log.Error().Err(err).Msg("sending alert")
		}
	}
}
