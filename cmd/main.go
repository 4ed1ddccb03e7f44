package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	etherblinks "github.com/devesh1011/EtherBlinks"
	"github.com/devesh1011/EtherBlinks/pkg/cache"
	"github.com/devesh1011/EtherBlinks/pkg/chain"
	"github.com/devesh1011/EtherBlinks/pkg/chainclient"
	"github.com/devesh1011/EtherBlinks/pkg/handler"
	"github.com/devesh1011/EtherBlinks/pkg/middleware"
	"github.com/devesh1011/EtherBlinks/pkg/repository"
	"github.com/devesh1011/EtherBlinks/pkg/service"
	"github.com/devesh1011/EtherBlinks/pkg/utils"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	logrus.Infoln("Starting server")
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

// run owns every resource opened at startup; returning lets its defers close
// them before main exits.
func run() error {
	if err := godotenv.Load(); err != nil {
		logrus.Infof("no .env file loaded: %s", err)
	}

	if err := InitConfig(); err != nil {
		return errors.Wrap(err, "failed to read config")
	}
	logrus.Infoln("YAML config loaded")

	db, err := repository.NewPostgresDB(repository.Config{
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   viper.GetString("db.dbname"),
		SSLMode:  viper.GetString("db.sslmode"),
	})
	if err != nil {
		return errors.Wrap(err, "failed to initialize database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := repository.EnsureSchema(ctx, db); err != nil {
		return errors.Wrap(err, "failed to prepare schema")
	}
	logrus.Info("Database connected")

	chainCfg := chainConfig()
	opts := service.Options{
		BaseURL:  viper.GetString("server.base_url"),
		Strategy: viper.GetString("links.strategy"),
		Chain:    chainCfg,
		Cache:    newRecordCache(ctx),
		Notifier: newNotifier(),
	}

	if chainCfg.RPCURL != "" {
		client, err := chainclient.Dial(ctx, chainCfg)
		if err != nil {
			logrus.Warnf("transaction status lookups disabled: %s", err)
		} else {
			defer client.Close()
			opts.Receipts = client
		}
	}

	repos := repository.NewRepository(db)
	services := service.NewService(repos, opts)

	var limiter *middleware.IPRateLimiter
	if viper.GetBool("ratelimit.enabled") {
		limiter = middleware.NewIPRateLimiter(viper.GetFloat64("ratelimit.per_second"), viper.GetInt("ratelimit.burst"))
	}
	handlers := handler.NewHandler(services, handler.Config{
		AllowOrigins: viper.GetStringSlice("server.allow_origins"),
		RateLimiter:  limiter,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = viper.GetString("server.port")
	}

	srv := etherblinks.NewServer(port, handlers.InitRoute())
	serverErrors := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"port":     port,
			"strategy": opts.Strategy,
			"chain":    chainCfg.Name,
		}).Info("Server listening")
		serverErrors <- srv.Run()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server error")
		}

	case sig := <-shutdown:
		logrus.Infof("shutdown started: %s", sig)

		ctx, cancel := context.WithTimeout(context.Background(), viper.GetDuration("server.shutdown_timeout"))
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logrus.Errorf("graceful shutdown failed: %s", err)
		}
		logrus.Info("shutdown complete")
	}
	return nil
}

func InitConfig() error {
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.base_url", "http://localhost:8080")
	viper.SetDefault("server.shutdown_timeout", 15*time.Second)
	viper.SetDefault("links.strategy", service.StrategyStore)
	viper.SetDefault("chain.id", chain.EtherlinkTestnet.ID)
	viper.SetDefault("chain.name", chain.EtherlinkTestnet.Name)
	viper.SetDefault("chain.rpc_url", chain.EtherlinkTestnet.RPCURL)
	viper.SetDefault("chain.explorer_url", chain.EtherlinkTestnet.ExplorerURL)
	viper.SetDefault("chain.currency.name", chain.EtherlinkTestnet.Currency.Name)
	viper.SetDefault("chain.currency.symbol", chain.EtherlinkTestnet.Currency.Symbol)
	viper.SetDefault("chain.currency.decimals", chain.EtherlinkTestnet.Currency.Decimals)
	viper.SetDefault("cache.driver", "memory")
	viper.SetDefault("cache.ttl", cache.DefaultTTL)
	viper.SetDefault("ratelimit.per_second", 2)
	viper.SetDefault("ratelimit.burst", 10)
	viper.SetDefault("notify.driver", "none")

	return viper.ReadInConfig()
}

func chainConfig() chain.Config {
	return chain.Config{
		ID:          viper.GetInt64("chain.id"),
		Name:        viper.GetString("chain.name"),
		RPCURL:      viper.GetString("chain.rpc_url"),
		ExplorerURL: viper.GetString("chain.explorer_url"),
		Currency: chain.Currency{
			Name:     viper.GetString("chain.currency.name"),
			Symbol:   viper.GetString("chain.currency.symbol"),
			Decimals: viper.GetInt32("chain.currency.decimals"),
		},
	}
}

func newRecordCache(ctx context.Context) cache.Records {
	ttl := viper.GetDuration("cache.ttl")

	switch viper.GetString("cache.driver") {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     viper.GetString("cache.redis.addr"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       viper.GetInt("cache.redis.db"),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logrus.Warnf("redis unavailable, falling back to memory cache: %s", err)
			return cache.NewMemory(ttl)
		}
		logrus.Info("Redis cache connected")
		return cache.NewRedis(client, ttl)
	case "none":
		return cache.Nop{}
	default:
		return cache.NewMemory(ttl)
	}
}

func newNotifier() utils.Notifier {
	cfg := utils.MailConfig{
		FromEmail: viper.GetString("notify.from_email"),
		FromName:  viper.GetString("notify.from_name"),
		ToEmail:   viper.GetString("notify.to_email"),
	}

	switch viper.GetString("notify.driver") {
	case "mailjet":
		return utils.NewMailjetNotifier(os.Getenv("MAILJET_API_KEY"), os.Getenv("MAILJET_SECRET_KEY"), cfg)
	case "smtp":
		return utils.NewSMTPNotifier(
			viper.GetString("notify.smtp.host"),
			viper.GetInt("notify.smtp.port"),
			viper.GetString("notify.smtp.username"),
			os.Getenv("SMTP_PASSWORD"),
			cfg,
		)
	default:
		return utils.NopNotifier{}
	}
}
