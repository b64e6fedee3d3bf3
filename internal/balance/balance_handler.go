package balance

import (
	"net/http"
	"strings"

	"leavehub/internal/shared/apperror"
	"leavehub/internal/shared/response"
	"leavehub/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("balance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("balance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Provision(c *gin.Context) {
	organizationID := c.GetString("organization_id")

	var req ProvisionBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resolved := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, resolved.Status, resolved.Code, resolved.Message, err.Error())
		return
	}

	resp, err := h.service.Provision(c.Request.Context(), organizationID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

// GetOwn returns the calling employee's balances.
func (h *Handler) GetOwn(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	userID := c.GetString("user_id")

	resp, err := h.service.GetForEmployee(c.Request.Context(), organizationID, userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// GetForEmployee returns another employee's balances; employees may only read
// their own.
func (h *Handler) GetForEmployee(c *gin.Context) {
	organizationID := c.GetString("organization_id")
	userID := c.GetString("user_id")
	targetID := c.Param("employee_id")
	role := strings.ToUpper(strings.TrimSpace(c.GetString("role")))

	if targetID != userID && !user.IsPrivilegedRole(role) {
		response.Error(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message, nil)
		return
	}

	resp, err := h.service.GetForEmployee(c.Request.Context(), organizationID, targetID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
