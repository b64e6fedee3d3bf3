package leave

import (
	"leavehub/internal/middleware"
	"leavehub/internal/rbac"
	"leavehub/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("",
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			middleware.Idempotency(rdb),
			h.Create,
		)
		leaves.POST("/check", middleware.RBACAuthorize(rbacService, "leave", "create"), h.Check)
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), h.List)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), h.GetByID)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "approve"), h.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "approve"), h.Reject)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "cancel"), h.Cancel)
		leaves.DELETE("/:id",
			middleware.RBACAuthorize(rbacService, "leave", "delete"),
			middleware.RoleMiddleware(user.RoleAdmin, user.RoleHR),
			h.Delete,
		)
	}
}
