package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SwiftFiat/SwiftFiat-Ledger/models"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/currency"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/monitoring/logging"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/transaction"
	user_service "github.com/SwiftFiat/SwiftFiat-Ledger/services/user"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/wallet"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/webhook"
	"github.com/SwiftFiat/SwiftFiat-Ledger/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Services are the domain services the HTTP layer drives.
type Services struct {
	Users        *user_service.UserService
	Wallets      *wallet.WalletService
	Transactions *transaction.TransactionService
	Currency     *currency.CurrencyService
	Webhooks     *webhook.Reconciler
}

type Server struct {
	router   *gin.Engine
	config   *utils.Config
	logger   *logging.Logger
	token    *utils.JWTToken
	services Services
}

// RunMigrations brings the schema up to the latest migration.
func RunMigrations(c *utils.Config) error {
	m, err := migrate.New(c.MigrationsPath, utils.GetDBSource(c, c.DBName))
	if err != nil {
		return fmt.Errorf("unable to instantiate the database schema migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("unable to migrate up to the latest database schema: %w", err)
	}
	return nil
}

func NewServer(c *utils.Config, svc Services, l *logging.Logger) *Server {
	if c.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	registerValidators()

	g := gin.New()
	g.Use(gin.Recovery())
	g.Use(CORSMiddleware())
	g.Use(l.LoggingMiddleWare())

	s := &Server{
		router:   g,
		config:   c,
		logger:   l,
		token:    utils.NewJWTToken(c),
		services: svc,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	dr := models.SuccessResponse{
		Status:  "success",
		Message: "Welcome to SwiftFiat!",
		Version: utils.REVISION,
	}

	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dr)
	})

	/// Register Object Routers Below
	Wallet{}.router(s)
	Transaction{}.router(s)
	Webhook{}.router(s)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%v", s.config.ServerPort))
}
