package balance

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	balanceerrors "leavehub/internal/balance/errors"
	"leavehub/internal/policy"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const SummaryKeyPrefix = "balances:summary:"

func GetSummaryKey(organizationID, employeeID string) string {
	return SummaryKeyPrefix + organizationID + ":" + employeeID
}

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	Provision(ctx context.Context, organizationID string, req ProvisionBalanceRequest) (BalanceResponse, error)
	GetForEmployee(ctx context.Context, organizationID, employeeID string) ([]BalanceResponse, error)
}

type service struct {
	repo       Repository
	policyRepo policy.Repository
	rdb        *redis.Client
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(repo Repository, policyRepo policy.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{
		repo:       repo,
		policyRepo: policyRepo,
		rdb:        rdb,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

func (s *service) Provision(ctx context.Context, organizationID string, req ProvisionBalanceRequest) (BalanceResponse, error) {
	s.logger.Debug("provision balance requested",
		zap.String("organization_id", organizationID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("policy_name", req.PolicyName),
	)

	orgUUID, err := uuid.Parse(organizationID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidOrganizationID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidEmployeeID
	}

	pol, err := s.policyRepo.FindByNameAndOrganization(ctx, organizationID, req.PolicyName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, balanceerrors.ErrPolicyNotFound
		}
		return BalanceResponse{}, err
	}
	if !pol.Active {
		return BalanceResponse{}, balanceerrors.ErrPolicyInactive
	}

	b := &LeaveBalance{
		ID:             uuid.New(),
		OrganizationID: orgUUID,
		EmployeeID:     employeeUUID,
		PolicyID:       pol.ID,
		TotalDays:      pol.MaxDays + pol.CarryForward,
		UsedDays:       0,
		CarryForward:   pol.CarryForward,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Error("provision balance persist failed", zap.Error(err))
		return BalanceResponse{}, mapRepositoryError(err)
	}

	s.invalidateSummary(ctx, organizationID, req.EmployeeID)

	s.logger.Info("provision balance success",
		zap.String("balance_id", b.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("policy_name", pol.Name),
		zap.Int("total_days", b.TotalDays),
	)

	resp := mapToResponse(*b)
	resp.PolicyName = pol.Name
	return resp, nil
}

func (s *service) GetForEmployee(ctx context.Context, organizationID, employeeID string) ([]BalanceResponse, error) {
	cacheKey := GetSummaryKey(organizationID, employeeID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []BalanceResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight agar dashboard refresh tidak membanjiri database
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		balances, err := s.repo.FindAllByEmployee(ctx, organizationID, employeeID)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(balances)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 5*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]BalanceResponse), nil
}

func (s *service) invalidateSummary(ctx context.Context, organizationID, employeeID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetSummaryKey(organizationID, employeeID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate balance summary cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	resp := BalanceResponse{
		ID:             b.ID.String(),
		OrganizationID: b.OrganizationID.String(),
		EmployeeID:     b.EmployeeID.String(),
		PolicyID:       b.PolicyID.String(),
		TotalDays:      b.TotalDays,
		UsedDays:       b.UsedDays,
		CarryForward:   b.CarryForward,
		RemainingDays:  b.RemainingDays(),
	}
	if b.Policy != nil {
		resp.PolicyName = b.Policy.Name
	}
	return resp
}

func mapToListResponse(balances []LeaveBalance) []BalanceResponse {
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp
}
