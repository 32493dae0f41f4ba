package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"comment-board/board"
	"comment-board/common/rabbitmq"
	"comment-board/common/redis"
	"comment-board/config"
	"comment-board/consumer"
	"comment-board/handlers"
	"comment-board/hub"
	"comment-board/internal"
	"comment-board/logger"
	"comment-board/services"
	"comment-board/tally"
)

func initSentry(cfg config.Config) {
	if cfg.SentryDSN == "" {
		return
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Env,
		AttachStacktrace: true,
	}); err != nil {
		logger.For(nil).Warnf("failed to start sentry: %s", err)
	}
}

// newVoteStore returns the tally backend and a function releasing it.
func newVoteStore(ctx context.Context, cfg config.Config) (tally.VoteStore, func(), error) {
	if cfg.TallyBackend != config.TallyRedis {
		return tally.NewMemoryVoteStore(), func() {}, nil
	}

	rdb, err := redis.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return tally.NewRedisVoteStore(rdb), func() { rdb.Close() }, nil
}

// newPublisher returns the event publisher for the configured broker. With
// RabbitMQ it also starts the consumer that feeds events back to handler.
func newPublisher(ctx context.Context, cfg config.Config, handler internal.EventHandler) (internal.EventPublisher, func(), error) {
	if cfg.EventBroker != config.BrokerRabbitMQ {
		return services.NewLocalEventPublisher(handler), func() {}, nil
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	if err := rabbitmq.DeclareExchange(ch, cfg.RabbitMQExchange); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, err
	}

	c := consumer.New(handler, conn, cfg.RabbitMQExchange, cfg.RabbitMQQueue)
	go func() {
		if err := c.Start(ctx); err != nil {
			logger.For(ctx).WithError(err).Error("board event consumer stopped")
			sentry.CaptureException(err)
		}
	}()

	return services.NewAmqpEventPublisher(ch, cfg.RabbitMQExchange), func() {
		ch.Close()
		conn.Close()
	}, nil
}

func newRouter(cfg config.Config, svc internal.CommentService, votes tally.VoteStore, feed *hub.Hub) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestID(), handlers.RequestLogger())
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}

	return handlers.Register(
		router,
		handlers.NewCommentHandler(svc),
		handlers.NewResultsHandler(votes),
		handlers.NewWebSocketHandler(feed, votes),
	)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.For(nil).Fatalf("Invalid configuration: %s", err)
	}
	logger.Init(cfg.Env, cfg.LogLevel)
	initSentry(cfg)
	defer sentry.Flush(2 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	votes, closeVotes, err := newVoteStore(ctx, cfg)
	if err != nil {
		logger.For(ctx).Fatalf("Failed to set up vote tally: %s", err)
	}
	defer closeVotes()

	feed := hub.New()
	go feed.Run(ctx)

	publisher, closePublisher, err := newPublisher(ctx, cfg, consumer.NewProcessor(votes, feed))
	if err != nil {
		logger.For(ctx).Fatalf("Failed to set up event publisher: %s", err)
	}
	defer closePublisher()

	store := board.NewStore(board.WithDislikeThreshold(cfg.DislikeThreshold))
	svc := services.NewBoardService(store, board.StubTranslator{}, publisher)

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: newRouter(cfg, svc, votes, feed),
	}

	// Start service in a goroutine.
	go func() {
		logger.For(ctx).Infof("Comment board starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.For(ctx).Fatalf("Failed to start server: %s", err)
		}
	}()

	// Wait for a signal to gracefully shut down.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.For(ctx).Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.For(ctx).Errorf("Server forced to shutdown: %s", err)
	}
	cancel()

	logger.For(ctx).Info("Server exiting")
}
