package balance

import (
	"leavehub/internal/middleware"
	"leavehub/internal/rbac"
	"leavehub/internal/user"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("", middleware.RBACAuthorize(rbacService, "balance", "read"), h.GetOwn)
		balances.GET("/:employee_id", middleware.RBACAuthorize(rbacService, "balance", "read"), h.GetForEmployee)
		balances.POST("",
			middleware.RBACAuthorize(rbacService, "balance", "provision"),
			middleware.RoleMiddleware(user.RoleAdmin, user.RoleHR),
			h.Provision,
		)
	}
}
