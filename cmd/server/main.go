package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dealfeed/api"
	"dealfeed/archive"
	"dealfeed/config"
	"dealfeed/logger"
	"dealfeed/poller"
	"dealfeed/preferences"
	"dealfeed/rssfeeds"
	"dealfeed/scoring"
	"dealfeed/seen"
	"dealfeed/shared/kafka"
	"dealfeed/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	port := flag.String("port", cfg.Port, "HTTP API port")
	schedule := flag.String("cron", cfg.PollSchedule, "Cron schedule for feed polling")
	strict := flag.Bool("strict", cfg.StrictRelevance, "Only score private-deal news")
	flag.Parse()

	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogJSON)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *port, *schedule, *strict, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Server, port, schedule string, strict bool, log *slog.Logger) error {
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	scorer := scoring.NewScorer(scoring.WithStrictRelevance(strict))
	registry := preferences.NewRegistry()
	hub := api.NewHub(log)

	publishers, closeFanout, err := openFanout(ctx, cfg, store, hub, log)
	if err != nil {
		return err
	}
	defer closeFanout()

	if archiver := openArchive(ctx, cfg, log); archiver != nil {
		publishers = append(publishers, poller.PublisherFunc(archiver.Archive))
	}

	feeds := rssfeeds.ResolveFeeds(cfg.Feeds)
	p := poller.New(poller.Config{
		Fetcher:        rssfeeds.NewFetcher(nil),
		Feeds:          feeds,
		EntriesPerFeed: cfg.EntriesPerFeed,
		Store:          store,
		Scorer:         scorer,
		Preferences:    registry,
		Publishers:     publishers,
		Logger:         log,
	})
	scheduler := poller.NewScheduler(p)

	router := api.NewRouter(api.Deps{
		Store:       store,
		Scorer:      scorer,
		Preferences: registry,
		Hub:         hub,
		Origins:     api.OriginPolicy{Allowed: cfg.AllowedOrigins, Suffixes: cfg.AllowedSuffixes},
		InitialPush: cfg.InitialPush,
		Logger:      log,
	})
	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	if err := scheduler.Start(ctx, schedule); err != nil {
		return err
	}

	fmt.Printf("📈 Deal Feed Server\n")
	fmt.Printf("   API:            http://0.0.0.0:%s\n", port)
	fmt.Printf("   Stream:         ws://0.0.0.0:%s/ws\n", port)
	fmt.Printf("   Poll Schedule:  %s\n", schedule)
	fmt.Printf("   Feeds:          %d\n", len(feeds))
	fmt.Printf("   Strict:         %t\n", strict)
	fmt.Println("\nPress Ctrl+C to shutdown")

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			scheduler.Stop()
			return fmt.Errorf("http server: %w", err)
		}
	}

	log.Info("shutting down")
	scheduler.Stop()
	hub.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// openStore uses Redis when REDIS_ADDR is set, memory otherwise
func openStore(ctx context.Context, cfg *config.Server, log *slog.Logger) (seen.Store, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info("seen store: memory")
		return seen.NewMemoryStore(), func() {}, nil
	}

	rs, err := seen.NewRedisStore(ctx, seen.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Key:      cfg.RedisKey,
		TTL:      cfg.SeenTTL,
	})
	if err != nil {
		return nil, nil, err
	}
	log.Info("seen store: redis", "addr", cfg.RedisAddr, "key", cfg.RedisKey)
	return rs, func() { _ = rs.Close() }, nil
}

// openFanout decides how new deals reach websocket clients. Without Kafka the
// hub is fed directly. With Kafka the poller publishes to the topic and every
// instance consumes it under its own group so all clients see every deal.
func openFanout(ctx context.Context, cfg *config.Server, store seen.Store, hub *api.Hub, log *slog.Logger) ([]poller.Publisher, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		return []poller.Publisher{hub}, func() {}, nil
	}

	producer, err := kafka.NewProducer(kafka.ProducerConfig{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic})
	if err != nil {
		return nil, nil, err
	}

	groupID := "dealfeed-" + uuid.NewString()
	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
		GroupID: groupID,
		Logger:  log,
		Handler: kafka.DealHandler(func(ctx context.Context, item types.DealItem) error {
			if err := store.Put(ctx, item); err != nil {
				return err
			}
			hub.Broadcast(item)
			return nil
		}),
	})
	if err != nil {
		_ = producer.Close()
		return nil, nil, err
	}
	if err := consumer.Start(ctx); err != nil {
		_ = producer.Close()
		_ = consumer.Close()
		return nil, nil, err
	}
	log.Info("kafka fan-out enabled", "topic", cfg.KafkaTopic, "group", groupID)

	closeAll := func() {
		if err := consumer.Close(); err != nil {
			log.Warn("kafka consumer close failed", "error", err)
		}
		if err := producer.Close(); err != nil {
			log.Warn("kafka producer close failed", "error", err)
		}
	}
	return []poller.Publisher{poller.PublisherFunc(producer.PublishDeal)}, closeAll, nil
}

// openArchive returns nil when S3_BUCKET is unset or the client cannot be built
func openArchive(ctx context.Context, cfg *config.Server, log *slog.Logger) *archive.Archiver {
	if cfg.S3Bucket == "" {
		log.Info("S3 not configured; archiving disabled")
		return nil
	}

	client, err := archive.NewS3(ctx, archive.S3Config{
		Region:       cfg.S3Region,
		Profile:      cfg.S3Profile,
		UsePathStyle: cfg.S3UsePathStyle,
	})
	if err != nil {
		log.Warn("failed to init S3 client; archiving disabled", "error", err)
		return nil
	}
	log.Info("archiving deals to S3", "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix)
	return archive.NewArchiver(client, cfg.S3Bucket, cfg.S3Prefix, log)
}
