package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-furniture-erp/internal/config"
	"go-furniture-erp/internal/handler"
	"go-furniture-erp/internal/middleware"
	"go-furniture-erp/internal/model"
	"go-furniture-erp/internal/refno"
	"go-furniture-erp/internal/repository"
	"go-furniture-erp/internal/service"
	"go-furniture-erp/internal/settlement"
	"go-furniture-erp/internal/ws"
	"go-furniture-erp/pkg/database"
	"go-furniture-erp/pkg/jwt"
	"go-furniture-erp/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "admin123"
)

func main() {
	// 1. Config & logging
	cfg := config.Load()
	logger.SetLevel(cfg.LogLevel)
	jwt.SetSecret(cfg.JWTSecret)
	log := logger.Get()

	// 2. Database
	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	if err := db.AutoMigrate(
		&model.Privilege{}, &model.Role{}, &model.User{},
		&model.CompanyProfile{},
		&model.MasterItem{}, &model.ItemLink{},
		&model.PurchaseOrder{}, &model.PurchaseOrderLine{},
		&model.SaleOrder{}, &model.SaleOrderLine{},
		&model.Payment{},
	); err != nil {
		log.WithError(err).Fatal("auto migrate failed")
	}

	seedPrivilegesRolesAndAdmin(context.Background(), db)

	// 3. WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Wiring
	itemRepo := repository.NewItemRepo(db)
	poRepo := repository.NewPurchaseOrderRepo(db)
	soRepo := repository.NewSaleOrderRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	companyRepo := repository.NewCompanyRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	refs := refno.NewIssuer(paymentRepo, cfg.Location)
	tracker := settlement.NewTracker(paymentRepo, refs)

	itemService := service.NewItemService(itemRepo, wsHub)
	poService := service.NewPurchaseOrderService(poRepo, itemRepo, db, wsHub)
	soService := service.NewSaleOrderService(soRepo, itemRepo, db, wsHub)
	paymentService := service.NewPaymentService(paymentRepo, refs, tracker, wsHub)
	stockService := service.NewStockService(itemRepo, poRepo, soRepo, companyRepo, cfg.Location)
	dashService := service.NewDashboardService(itemRepo, poRepo, soRepo, companyRepo, cfg.Location)
	settingsService := service.NewSettingsService(companyRepo, wsHub)
	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	itemHandler := handler.NewItemHandler(itemService)
	poHandler := handler.NewPurchaseOrderHandler(poService)
	soHandler := handler.NewSaleOrderHandler(soService)
	paymentHandler := handler.NewPaymentHandler(paymentService, cfg.Location)
	stockHandler := handler.NewStockHandler(stockService)
	dashHandler := handler.NewDashboardHandler(dashService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo, privilegeRepo)

	// 5. Fiber
	app := fiber.New(fiber.Config{
		AppName: "Furniture ERP v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))

	api := app.Group("/api/v1")

	// Public
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	protected := api.Group("", middleware.RequireAuth(userRepo))
	priv := middleware.RequirePrivilege

	protected.Get("/dashboard/stats", priv(model.PrivDashboardView), dashHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", priv(model.PrivDashboardView), dashHandler.GetStockMovement)

	protected.Get("/items", priv(model.PrivItemView), itemHandler.GetItems)
	protected.Get("/items/:id", priv(model.PrivItemView), itemHandler.GetItem)
	protected.Post("/items", priv(model.PrivItemCreate), itemHandler.CreateItem)
	protected.Put("/items/:id", priv(model.PrivItemUpdate), itemHandler.UpdateItem)

	protected.Get("/purchase-orders", priv(model.PrivPurchaseOrderView), poHandler.GetPurchaseOrders)
	protected.Get("/purchase-orders/:id", priv(model.PrivPurchaseOrderView), poHandler.GetPurchaseOrder)
	protected.Post("/purchase-orders", priv(model.PrivPurchaseOrderCreate), poHandler.CreatePurchaseOrder)
	protected.Post("/purchase-orders/:id/send", priv(model.PrivPurchaseOrderCreate), poHandler.MarkSent)
	protected.Post("/purchase-orders/:id/fulfill", priv(model.PrivPurchaseOrderFulfill), poHandler.Fulfill)

	protected.Get("/sale-orders", priv(model.PrivSaleOrderView), soHandler.GetSaleOrders)
	protected.Get("/sale-orders/:id", priv(model.PrivSaleOrderView), soHandler.GetSaleOrder)
	protected.Post("/sale-orders", priv(model.PrivSaleOrderCreate), soHandler.CreateSaleOrder)
	protected.Patch("/sale-orders/:id/status", priv(model.PrivSaleOrderUpdate), soHandler.UpdateStatus)

	protected.Get("/payments", priv(model.PrivPaymentView), paymentHandler.GetPayments)
	protected.Get("/payments/cash-book", priv(model.PrivPaymentView), paymentHandler.GetCashBook)
	protected.Get("/payments/:id", priv(model.PrivPaymentView), paymentHandler.GetPayment)
	protected.Get("/payments/:id/remaining", priv(model.PrivPaymentView), paymentHandler.GetRemaining)
	protected.Post("/payments", priv(model.PrivPaymentCreate), paymentHandler.CreatePayment)
	protected.Post("/payments/:id/installments", priv(model.PrivPaymentSettle), paymentHandler.RecordInstallment)

	protected.Get("/stock/ledger", priv(model.PrivStockView), stockHandler.GetLedger)
	protected.Get("/stock/ledger/export", priv(model.PrivStockView), stockHandler.ExportLedger)
	protected.Get("/stock/levels", priv(model.PrivStockView), stockHandler.GetLevels)
	protected.Get("/stock/levels/export", priv(model.PrivStockView), stockHandler.ExportLevels)
	protected.Get("/stock/reconciliation", priv(model.PrivStockView), stockHandler.GetReconciliation)

	protected.Get("/settings", settingsHandler.GetSettings)
	protected.Put("/settings", priv(model.PrivSettingsUpdate), settingsHandler.UpdateSettings)

	protected.Get("/users", priv(model.PrivUserView), userHandler.GetUsers)
	protected.Get("/users/:id", priv(model.PrivUserView), userHandler.GetUser)
	protected.Post("/users", priv(model.PrivUserCreate), userHandler.CreateUser)
	protected.Put("/users/:id", priv(model.PrivUserUpdate), userHandler.UpdateUser)
	protected.Delete("/users/:id", priv(model.PrivUserDelete), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", priv(model.PrivUserUpdatePrivilege), userHandler.UpdateUserPrivileges)

	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", roleHandler.GetPrivileges)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 6. Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Panic("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	log.Info("server exited")
}

// seedPrivilegesRolesAndAdmin creates default privileges, roles and the admin user if missing.
func seedPrivilegesRolesAndAdmin(ctx context.Context, db *gorm.DB) {
	log := logger.Get()
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	if err := privilegeRepo.SeedDefaults(ctx); err != nil {
		log.WithError(err).Warn("failed to seed privileges")
	}
	if err := roleRepo.SeedDefaults(ctx); err != nil {
		log.WithError(err).Warn("failed to seed roles")
	}

	allPrivileges, err := privilegeRepo.FindAll(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to load privileges")
		return
	}

	// Roles only get defaults while they have none, so edits survive restarts.
	for _, def := range model.DefaultRoles {
		role, err := roleRepo.FindByCode(ctx, def.Code)
		if err != nil || len(role.Privileges) > 0 {
			continue
		}
		if err := roleRepo.AssignPrivileges(ctx, role, model.PrivilegesFor(role.Code, allPrivileges)); err != nil {
			log.WithError(err).WithField("role", role.Code).Warn("failed to assign role privileges")
			continue
		}
		log.WithField("role", role.Code).Info("role assigned default privileges")
	}

	if _, err := userRepo.FindByEmail(ctx, defaultAdminEmail); err == nil {
		return
	}

	masterRole, err := roleRepo.FindByCode(ctx, model.RoleMasterAdmin)
	if err != nil {
		log.WithError(err).Warn("master admin role missing, admin user not created")
		return
	}
	admin := &model.User{
		Email:      defaultAdminEmail,
		FullName:   "Master Administrator",
		RoleID:     &masterRole.ID,
		IsActive:   true,
		Privileges: masterRole.Privileges,
	}
	admin.Stamp("system")

	if err := admin.SetPassword(defaultAdminPassword); err != nil {
		log.WithError(err).Warn("failed to hash admin password")
		return
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.WithError(err).Warn("failed to create admin user")
		return
	}
	log.WithField("email", defaultAdminEmail).Info("admin user created (MASTER_ADMIN)")
}
