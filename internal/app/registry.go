package app

import (
	"database/sql"

	"leavehub/internal/balance"
	"leavehub/internal/holiday"
	"leavehub/internal/leave"
	"leavehub/internal/messaging/kafka"
	"leavehub/internal/policy"
	"leavehub/internal/rbac"
	"leavehub/internal/rbac/infra"
	"leavehub/internal/shared/counter"
	"leavehub/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	policyRepo := policy.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB, db)
	leaveRepo := leave.NewRepository(gormDB, db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	balanceService := balance.NewService(balanceRepo, policyRepo, rdb)
	leaveService := leave.NewService(
		leaveRepo,
		balanceRepo,
		policyRepo,
		holidayRepo,
		userRepo,
		counterRepo,
		outboxRepo,
		db,
		rdb,
	)

	// --- Handlers ---
	balanceHandler := balance.NewHandler(balanceService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		balance.RegisterRoutes(api, balanceHandler, rbacService)
	}

	return nil
}
