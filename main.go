package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SwiftFiat/SwiftFiat-Ledger/api"
	db "github.com/SwiftFiat/SwiftFiat-Ledger/db/sqlc"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/fiat"
	"github.com/SwiftFiat/SwiftFiat-Ledger/providers/rates"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/currency"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/fees"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/ledger"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/tasks"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/notification"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/outbox"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/redis"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/transaction"
	user_service "github.com/SwiftFiat/SwiftFiat-Ledger/services/user"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/wallet"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/webhook"
	"github.com/SwiftFiat/SwiftFiat-Ledger/utils"
	_ "github.com/lib/pq"
)

var envPath string = "."

func main() {
	utils.EnvPath = envPath

	config, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	logger := logging.NewLoggerFromConfig(config)
	logger.WithField("config", config.Redact()).Debug("configuration loaded")

	if err := api.RunMigrations(config); err != nil {
		logger.Fatal(err)
	}

	conn, err := sql.Open(config.DBDriver, utils.GetDBSource(config, config.DBName))
	if err != nil {
		panic(fmt.Sprintf("Could not load DB: %v", err))
	}
	defer conn.Close()
	store := db.NewStore(conn)

	paystack := fiat.NewPaystackProvider(logger)
	monnify := fiat.NewMonnifyProvider(logger)
	p := providers.NewProviderService()
	p.AddProvider(paystack)
	p.AddProvider(monnify)

	policy, err := fees.LoadPolicy(envPath)
	if err != nil {
		logger.Warn(fmt.Sprintf("using default withdrawal policy: %v", err))
		policy = fees.DefaultPolicy()
	}

	ledgerService := ledger.NewLedgerService(store, logger)
	transactions := transaction.NewTransactionService(store, ledgerService, p, policy, logger)

	cache, err := redis.NewRedisService(&redis.RedisConfig{
		Host:     config.RedisHost,
		Port:     config.RedisPort,
		Password: config.RedisPassword,
	})
	if err != nil {
		logger.Warn(fmt.Sprintf("bank list cache disabled: %v", err))
	} else {
		defer cache.Close()
		transactions.WithBankCache(cache)
	}

	dispatcher := outbox.NewDispatcher(store, logger)
	dispatcher.Register(notification.TopicEmail, notification.EmailHandler(notification.NewPlunk(config)))

	scheduler := tasks.NewTaskScheduler(logger)
	if _, err := scheduler.AddTask("outbox", "outbox dispatch", dispatcher.Task, config.OutboxPollInterval); err != nil {
		logger.Fatal(err)
	}
	if err := scheduler.ScheduleTask("outbox", 0); err != nil {
		logger.Fatal(err)
	}
	defer scheduler.Stop()

	server := api.NewServer(config, api.Services{
		Users:        user_service.NewUserService(store, logger),
		Wallets:      wallet.NewWalletService(store, logger),
		Transactions: transactions,
		Currency:     currency.NewCurrencyService(store, ledgerService, rates.NewExchangeRateProvider(logger), logger),
		Webhooks: webhook.NewReconciler(store, transactions, webhook.Secrets{
			providers.Paystack: paystack.SecretKey(),
			providers.Monnify:  monnify.SecretKey(),
		}, logger),
	}, logger)

	errs := make(chan error, 1)
	go func() { errs <- server.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		logger.Error(fmt.Sprintf("server stopped: %v", err))
	case sig := <-quit:
		logger.Info(fmt.Sprintf("received %v, shutting down", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// drain one last batch before exit
	if _, err := dispatcher.Dispatch(ctx); err != nil {
		logger.Warn(fmt.Sprintf("final outbox dispatch: %v", err))
	}
}
