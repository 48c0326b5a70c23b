package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ictdetect/internal/api/classifier"
	"ictdetect/internal/api/twelvedata"
	"ictdetect/internal/config"
	"ictdetect/internal/database"
	"ictdetect/internal/engine"
	"ictdetect/internal/features"
	"ictdetect/internal/model"
	"ictdetect/internal/notify"
	"ictdetect/internal/series"
)

func main() {
	csvPath := flag.String("csv", "", "read candles from a CSV file instead of the Twelve Data API")
	presetPath := flag.String("preset", "", "YAML preset file with per-instrument thresholds")
	outPath := flag.String("out", "features.csv", "feature table output path")
	record := flag.Bool("record", false, "persist the run to Postgres (DATABASE_URL)")
	doNotify := flag.Bool("notify", false, "send a Telegram alert when the last candle scores HIGH")
	classify := flag.Bool("classify", false, "send the feature table to the classifier (CLASSIFIER_URL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	if *presetPath != "" {
		preset, err := config.LoadPreset(*presetPath)
		if err != nil {
			log.Fatal().Err(err).Msg("loading preset")
		}
		preset.Apply(cfg)
	}

	lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	ctx := context.Background()

	candles, err := loadCandles(ctx, cfg, *csvPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading candles")
	}

	store, err := series.New(candles)
	if err != nil {
		log.Fatal().Err(err).Msg("rejected candle series")
	}
	if store.DegenerateCount() > 0 {
		log.Warn().Int("count", store.DegenerateCount()).Msg("degenerate candles in input")
	}

	params := cfg.EngineParams()
	analysis := engine.New(params).Analyze(store)

	last := store.Len() - 1
	lastScore := analysis.Confluence[last]
	log.Info().
		Str("symbol", cfg.Symbol).
		Int("candles", store.Len()).
		Int("swings", len(analysis.Swings)).
		Int("order_blocks", len(analysis.OrderBlocks)).
		Int("fvgs", len(analysis.Gaps)).
		Int("grabs", len(analysis.Grabs)).
		Int("confluence_long", lastScore.LongScore).
		Int("confluence_short", lastScore.ShortScore).
		Str("long_bucket", string(params.Bucket(lastScore.LongScore))).
		Str("short_bucket", string(params.Bucket(lastScore.ShortScore))).
		Msg("analysis finished")

	rows := features.Build(store, analysis, params)
	if err := writeFeatures(*outPath, rows); err != nil {
		log.Fatal().Err(err).Msg("writing feature table")
	}
	log.Info().Str("path", *outPath).Int("rows", len(rows)).Msg("feature table written")

	if *record {
		db, err := database.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connecting to database")
		}
		defer db.Close()
		runID, err := db.RecordAnalysis(cfg.Symbol, cfg.Interval, store, analysis)
		if err != nil {
			log.Error().Err(err).Msg("recording analysis")
		} else {
			log.Info().Str("run_id", runID).Msg("analysis recorded")
		}
	}

	if *classify {
		if cfg.ClassifierURL == "" {
			log.Fatal().Msg("CLASSIFIER_URL not set")
		}
		client := classifier.NewClient(cfg.ClassifierURL, time.Duration(cfg.RequestTimeout)*time.Second)
		preds, err := client.Predict(ctx, rows)
		if err != nil {
			log.Error().Err(err).Msg("classifier call failed")
		} else {
			p := preds[len(preds)-1]
			log.Info().
				Float64("prob_long", p.ProbLong).
				Float64("prob_short", p.ProbShort).
				Msg("classifier prediction for latest candle")
		}
	}

	if *doNotify {
		longBucket := params.Bucket(lastScore.LongScore)
		shortBucket := params.Bucket(lastScore.ShortScore)
		if longBucket == model.ConfluenceHigh || shortBucket == model.ConfluenceHigh {
			tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
			if err != nil {
				log.Fatal().Err(err).Msg("telegram init")
			}
			bucket := longBucket
			if shortBucket == model.ConfluenceHigh {
				bucket = shortBucket
			}
			if err := tg.SendConfluenceAlert(cfg.Symbol, last, store.At(last).Timestamp, lastScore, bucket); err != nil {
				log.Error().Err(err).Msg("sending alert")
			}
		}
	}
}

func loadCandles(ctx context.Context, cfg *config.Config, csvPath string) ([]model.Candle, error) {
	if csvPath != "" {
		return readCandleCSV(csvPath)
	}
	client := twelvedata.NewClient(cfg.TwelveAPIKey, time.Duration(cfg.RequestTimeout)*time.Second)
	return client.GetCandles(ctx, cfg.Symbol, cfg.Interval, cfg.CandleCount)
}

// readCandleCSV expects a header of timestamp,open,high,low,close,volume.
func readCandleCSV(path string) ([]model.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil { // header
		return nil, fmt.Errorf("read header: %w", err)
	}

	var candles []model.Candle
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(rec) < 6 {
			return nil, fmt.Errorf("row %d: want 6 columns, got %d", len(candles)+2, len(rec))
		}
		var c model.Candle
		if c.Timestamp, err = strconv.ParseInt(rec[0], 10, 64); err != nil {
			return nil, fmt.Errorf("row %d timestamp: %w", len(candles)+2, err)
		}
		fields := []*float64{&c.Open, &c.High, &c.Low, &c.Close, &c.Volume}
		for i, dst := range fields {
			if *dst, err = strconv.ParseFloat(rec[i+1], 64); err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", len(candles)+2, i+1, err)
			}
		}
		candles = append(candles, c)
	}
	return candles, nil
}

func writeFeatures(path string, rows []features.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()
	return features.WriteCSV(f, rows)
}
