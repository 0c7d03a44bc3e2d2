package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/FredesVirginia/captus-back/internal/config"
	"github.com/FredesVirginia/captus-back/internal/handler"
	"github.com/FredesVirginia/captus-back/internal/infra"
	"github.com/FredesVirginia/captus-back/internal/middleware"
	"github.com/FredesVirginia/captus-back/internal/print"
	"github.com/FredesVirginia/captus-back/internal/repository"
	"github.com/FredesVirginia/captus-back/internal/service"
	"github.com/FredesVirginia/captus-back/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, gateway infra.CheckoutGateway, breaker *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	mailer := infra.NewMailer(cfg)
	blob := infra.NewBlobClient(cfg.BlobEndpoint, cfg.BlobToken)
	printer := print.NewPrinter()
	dispatcher := worker.NewDispatcher(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	floorRepo := repository.NewFloorRepository(db)
	ofertaRepo := repository.NewOfertaRepository(db)
	comboRepo := repository.NewComboRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	favoritoRepo := repository.NewFavoritoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	floorSvc := service.NewFloorService(floorRepo, ofertaRepo, comboRepo, blob, rdb)
	orderSvc := service.NewOrderService(ordenRepo, floorRepo, userRepo, printer)
	paymentSvc := service.NewPaymentService(pagoRepo, ordenRepo, floorRepo, gateway, breaker, dispatcher, cfg)
	mailSvc := service.NewMailService(mailer)
	userSvc := service.NewUserService(userRepo, floorRepo, favoritoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	floorsH := handler.NewFloorsHandler(floorSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	paymentsH := handler.NewPaymentsHandler(orderSvc, paymentSvc, mailSvc, cfg)
	usersH := handler.NewUsersHandler(userSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/auth")
	{
		auth.POST("/auth_register", authH.Register)
		auth.POST("/auth_login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/auth_validate", authH.ValidateToken)
	}

	floors := r.Group("/floors")
	{
		floors.GET("", floorsH.List)
		floors.GET("/ofertas", floorsH.Ofertas)
		floors.GET("/combos", floorsH.Combos)

		// Catalog writes are admin-only
		admin := floors.Group("", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole("ADMIN"))
		{
			admin.POST("/upload-image", floorsH.UploadImage)
			admin.POST("/create-oferta", floorsH.CreateOferta)
			admin.POST("/create-combo", floorsH.CreateCombo)
		}
	}

	order := r.Group("/order")
	{
		order.POST("", ordersH.Create)
		order.GET("/:id/print", ordersH.Print)
	}

	payments := r.Group("/payments")
	{
		payments.POST("/create", paymentsH.Create)
		payments.POST("/checkout", paymentsH.Checkout)
		payments.POST("/webhook", paymentsH.Webhook)
		payments.GET("/success", paymentsH.Success)
		payments.GET("/failure", paymentsH.Failure)
		payments.GET("/pending", paymentsH.Pending)
	}

	users := r.Group("/users")
	{
		users.GET("/get-all-user", usersH.List)
		users.GET("/favorites/:userId", usersH.Favorites)
		users.POST("/favorites", usersH.AddFavorito)
		users.DELETE("/favorites/:userId/:floorId", usersH.RemoveFavorito)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
