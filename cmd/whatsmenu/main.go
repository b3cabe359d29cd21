package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"whatsmenu/internal/cart"
	"whatsmenu/internal/common/logger"
	"whatsmenu/internal/config"
	"whatsmenu/internal/connections/database"
	"whatsmenu/internal/connections/rabbitmq"
	redisconn "whatsmenu/internal/connections/redis"
	"whatsmenu/internal/microservices/notificator"
	"whatsmenu/internal/microservices/storefront"
)

func main() {
	mode := flag.String("mode", "", "storefront | whatsapp-notifier")
	port := flag.Int("port", 3000, "storefront: http port")
	flag.Parse()

	lg := logger.New("bootstrap")
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfgPath, err := config.FindConfig()
	if err != nil {
		lg.Error("config_not_found", err, nil)
		os.Exit(1)
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		lg.Error("config_invalid", err, map[string]any{"path": cfgPath})
		os.Exit(1)
	}

	switch *mode {
	case "storefront":
		db, err := database.ConnectDB(ctx, cfg.Database)
		if err != nil {
			lg.Error("db_connect_failed", err, nil)
			os.Exit(1)
		}
		defer db.Close()

		rmq := mustDialRabbit(lg, cfg.RabbitMQ)
		defer rmq.Close()

		// Cart persistence is best-effort: with redis down the storefront
		// still runs, carts just stop surviving restarts.
		var kv cart.KV
		if rc, err := redisconn.Connect(ctx, cfg.Redis); err != nil {
			lg.Warn("redis_unavailable", err, nil)
			kv = cart.NewMemoryKV()
		} else {
			defer rc.Close()
			kv = cart.NewRedisKV(rc)
		}

		lg.Info("service_started", map[string]any{"service": "storefront", "port": *port})
		if err := storefront.Run(ctx, *port, db, rmq, kv, cfg.Geocoder); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}

	case "whatsapp-notifier":
		rmq := mustDialRabbit(lg, cfg.RabbitMQ)
		defer rmq.Close()

		lg.Info("service_started", map[string]any{"service": "whatsapp-notifier"})
		if err := notificator.Start(ctx, rmq); err != nil {
			lg.Error("fatal", err, nil)
			os.Exit(1)
		}

	default:
		fmt.Fprintln(os.Stderr, "--mode is required: storefront | whatsapp-notifier")
		os.Exit(2)
	}
}

func mustDialRabbit(lg *logger.Logger, cfg config.RabbitMQConfig) *rabbitmq.Client {
	rmq, err := rabbitmq.Dial(rabbitmq.Config{
		Host: cfg.Host, Port: cfg.Port,
		User: cfg.User, Password: cfg.Password, VHost: cfg.VHost,
	})
	if err != nil {
		lg.Error("rabbitmq_connect_failed", err, nil)
		os.Exit(1)
	}
	if err := rmq.DeclareTopology(); err != nil {
		lg.Error("rabbitmq_declare_failed", err, nil)
		os.Exit(1)
	}
	return rmq
}
