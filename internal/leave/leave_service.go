package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"leavehub/internal/balance"
	balanceerrors "leavehub/internal/balance/errors"
	"leavehub/internal/events"
	"leavehub/internal/holiday"
	leaveerrors "leavehub/internal/leave/errors"
	"leavehub/internal/messaging/kafka"
	"leavehub/internal/policy"
	"leavehub/internal/shared/contextutil"
	"leavehub/internal/shared/counter"
	"leavehub/internal/user"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout           = "2006-01-02"
	requestNumberCounter = "leave_request"
	leaveAggregateType   = "leave_request"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, organizationID, employeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	CheckEligibility(ctx context.Context, organizationID, employeeID string, req CreateLeaveRequest) (EligibilityResponse, error)
	GetByID(ctx context.Context, organizationID, id string) (LeaveResponse, error)
	List(ctx context.Context, organizationID string, limit, offset int) ([]LeaveResponse, int64, error)
	ListByEmployee(ctx context.Context, organizationID, employeeID string, limit, offset int) ([]LeaveResponse, int64, error)
	Approve(ctx context.Context, organizationID, actorID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, organizationID, actorID, id string, req RejectLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, organizationID, actorID, id string) (LeaveResponse, error)
	Delete(ctx context.Context, organizationID, actorID, actorRole, id string) error
}

type service struct {
	repo        Repository
	balanceRepo balance.Repository
	policyRepo  policy.Repository
	holidayRepo holiday.Repository
	userRepo    user.Repository
	counterRepo counter.Repository
	outboxRepo  kafka.OutboxRepository
	sqlDB       *sql.DB
	rdb         *redis.Client
	logger      *zap.Logger
}

func NewService(
	repo Repository,
	balanceRepo balance.Repository,
	policyRepo policy.Repository,
	holidayRepo holiday.Repository,
	userRepo user.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	sqlDB *sql.DB,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		repo:        repo,
		balanceRepo: balanceRepo,
		policyRepo:  policyRepo,
		holidayRepo: holidayRepo,
		userRepo:    userRepo,
		counterRepo: counterRepo,
		outboxRepo:  outboxRepo,
		sqlDB:       sqlDB,
		rdb:         rdb,
		logger:      l,
	}
}

// submissionContext carries everything Create and CheckEligibility resolve
// before the eligibility rules run.
type submissionContext struct {
	start    time.Time
	end      time.Time
	policy   *policy.LeavePolicy
	balance  *balance.LeaveBalance
	holidays []holiday.Holiday
}

func (s *service) resolveSubmission(ctx context.Context, organizationID, employeeID string, req CreateLeaveRequest) (*submissionContext, error) {
	if _, err := uuid.Parse(organizationID); err != nil {
		return nil, leaveerrors.ErrInvalidOrganizationID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidActorID
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, leaveerrors.ErrInvalidDateFormat
	}

	pol, err := s.policyRepo.FindByNameAndOrganization(ctx, organizationID, req.LeaveType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrUnknownLeaveType
		}
		return nil, err
	}
	if !pol.Active {
		return nil, leaveerrors.ErrPolicyInactive
	}

	bal, err := s.balanceRepo.FindByEmployeeAndPolicy(ctx, organizationID, employeeID, pol.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, balanceerrors.ErrBalanceNotFound
		}
		return nil, err
	}

	holidays, err := s.holidayRepo.FindAllByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	return &submissionContext{
		start:    start,
		end:      end,
		policy:   pol,
		balance:  bal,
		holidays: holidays,
	}, nil
}

func (s *service) CheckEligibility(ctx context.Context, organizationID, employeeID string, req CreateLeaveRequest) (EligibilityResponse, error) {
	sub, err := s.resolveSubmission(ctx, organizationID, employeeID, req)
	if err != nil {
		return EligibilityResponse{}, err
	}

	result := CheckEligibility(EligibilityInput{
		StartDate: sub.start,
		EndDate:   sub.end,
		Policy:    sub.policy,
		Balance:   sub.balance,
		Holidays:  sub.holidays,
		Now:       time.Now().UTC(),
	})

	return EligibilityResponse{
		Eligible: result.OK(),
		Days:     result.Days,
		Reasons:  result.Reasons,
	}, nil
}

// Create validates, reserves balance, and persists the request in one
// transaction. When the policy does not require approval the request is born
// APPROVED and both lifecycle events go out.
func (s *service) Create(ctx context.Context, organizationID, employeeID string, req CreateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	sub, err := s.resolveSubmission(ctx, organizationID, employeeID, req)
	if err != nil {
		return LeaveResponse{}, err
	}

	result := CheckEligibility(EligibilityInput{
		StartDate: sub.start,
		EndDate:   sub.end,
		Policy:    sub.policy,
		Balance:   sub.balance,
		Holidays:  sub.holidays,
		Now:       time.Now().UTC(),
	})
	if !result.OK() {
		log.Info("leave request rejected by eligibility rules",
			zap.String("employee_id", employeeID),
			zap.Strings("reasons", result.Reasons),
		)
		return LeaveResponse{}, leaveerrors.ErrNotEligible.WithDetails(result.Reasons)
	}

	seq, err := s.counterRepo.GetNextValue(ctx, organizationID, requestNumberCounter)
	if err != nil {
		return LeaveResponse{}, err
	}

	lr := &LeaveRequest{
		ID:             uuid.New(),
		OrganizationID: uuid.MustParse(organizationID),
		EmployeeID:     uuid.MustParse(employeeID),
		RequestNumber:  fmt.Sprintf("LV-%06d", seq),
		PolicyID:       sub.policy.ID,
		LeaveType:      sub.policy.Name,
		StartDate:      startOfDay(sub.start),
		EndDate:        startOfDay(sub.end),
		Days:           result.Days,
		Reason:         req.Reason,
		Status:         StatusPending,
		NotifyUsers:    req.NotifyUsers,
	}
	if !sub.policy.RequiresApproval {
		lr.Status = StatusApproved
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.balanceRepo.WithTx(tx).Reserve(ctx, organizationID, employeeID, sub.policy.ID.String(), result.Days); err != nil {
		return LeaveResponse{}, err
	}

	if err := s.repo.WithTx(tx).Create(ctx, lr); err != nil {
		return LeaveResponse{}, err
	}

	if err := s.enqueueEvent(ctx, tx, events.TypeLeaveRequested, lr, employeeID); err != nil {
		return LeaveResponse{}, err
	}
	if lr.Status == StatusApproved {
		if err := s.enqueueEvent(ctx, tx, events.TypeLeaveApproved, lr, employeeID); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.invalidateSummary(ctx, organizationID, employeeID)

	log.Info("leave request created",
		zap.String("leave_id", lr.ID.String()),
		zap.String("request_number", lr.RequestNumber),
		zap.String("status", lr.Status),
		zap.Int("days", lr.Days),
	)
	return toLeaveResponse(lr), nil
}

func (s *service) GetByID(ctx context.Context, organizationID, id string) (LeaveResponse, error) {
	lr, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return toLeaveResponse(lr), nil
}

func (s *service) List(ctx context.Context, organizationID string, limit, offset int) ([]LeaveResponse, int64, error) {
	requests, err := s.repo.FindAllByOrganization(ctx, organizationID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByOrganization(ctx, organizationID)
	if err != nil {
		return nil, 0, err
	}
	return toLeaveResponses(requests), total, nil
}

func (s *service) ListByEmployee(ctx context.Context, organizationID, employeeID string, limit, offset int) ([]LeaveResponse, int64, error) {
	requests, err := s.repo.FindAllByEmployee(ctx, organizationID, employeeID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountByEmployee(ctx, organizationID, employeeID)
	if err != nil {
		return nil, 0, err
	}
	return toLeaveResponses(requests), total, nil
}

func (s *service) Approve(ctx context.Context, organizationID, actorID, id string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	lr, err := s.loadPendingForDecision(ctx, organizationID, actorID, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer func() { _ = tx.Rollback() }()

	won, err := s.repo.WithTx(tx).UpdateStatusIfPending(ctx, organizationID, id, StatusApproved, &actorID, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !won {
		return LeaveResponse{}, leaveerrors.ErrStateChanged
	}

	lr.Status = StatusApproved
	approver := uuid.MustParse(actorID)
	lr.ApproverID = &approver

	if err := s.enqueueEvent(ctx, tx, events.TypeLeaveApproved, lr, actorID); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	log.Info("leave request approved",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)
	return toLeaveResponse(lr), nil
}

func (s *service) Reject(ctx context.Context, organizationID, actorID, id string, req RejectLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	lr, err := s.loadPendingForDecision(ctx, organizationID, actorID, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	var rejectionReason *string
	if req.RejectionReason != "" {
		rejectionReason = &req.RejectionReason
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer func() { _ = tx.Rollback() }()

	won, err := s.repo.WithTx(tx).UpdateStatusIfPending(ctx, organizationID, id, StatusRejected, &actorID, rejectionReason)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !won {
		return LeaveResponse{}, leaveerrors.ErrStateChanged
	}

	// The CAS above proves the request was still PENDING, so its reservation
	// is still held and exactly one release happens here.
	if err := s.balanceRepo.WithTx(tx).Release(ctx, organizationID, lr.EmployeeID.String(), lr.PolicyID.String(), lr.Days); err != nil {
		return LeaveResponse{}, err
	}

	lr.Status = StatusRejected
	approver := uuid.MustParse(actorID)
	lr.ApproverID = &approver
	lr.RejectionReason = rejectionReason

	if err := s.enqueueEvent(ctx, tx, events.TypeLeaveRejected, lr, actorID); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.invalidateSummary(ctx, organizationID, lr.EmployeeID.String())

	log.Info("leave request rejected",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)
	return toLeaveResponse(lr), nil
}

func (s *service) Cancel(ctx context.Context, organizationID, actorID, id string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	lr, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if lr.EmployeeID.String() != actorID {
		return LeaveResponse{}, leaveerrors.ErrCancelNotOwner
	}
	if lr.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer func() { _ = tx.Rollback() }()

	won, err := s.repo.WithTx(tx).UpdateStatusIfPending(ctx, organizationID, id, StatusCanceled, nil, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !won {
		return LeaveResponse{}, leaveerrors.ErrStateChanged
	}

	if err := s.balanceRepo.WithTx(tx).Release(ctx, organizationID, lr.EmployeeID.String(), lr.PolicyID.String(), lr.Days); err != nil {
		return LeaveResponse{}, err
	}

	lr.Status = StatusCanceled

	if err := s.enqueueEvent(ctx, tx, events.TypeLeaveCancelled, lr, actorID); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.invalidateSummary(ctx, organizationID, lr.EmployeeID.String())

	log.Info("leave request cancelled",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)
	return toLeaveResponse(lr), nil
}

// Delete hard-deletes a request. When the row still holds a reservation
// (PENDING or APPROVED) the days go back to the ledger in the same
// transaction; the status-conditioned delete guarantees the release decision
// matches what actually got removed.
func (s *service) Delete(ctx context.Context, organizationID, actorID, actorRole, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	if actorRole != user.RoleAdmin && actorRole != user.RoleHR {
		return leaveerrors.ErrDeleteNotPermitted
	}

	lr, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	deleted, err := s.repo.WithTx(tx).DeleteByIDAndStatus(ctx, organizationID, id, lr.Status)
	if err != nil {
		return err
	}
	if !deleted {
		return leaveerrors.ErrStateChanged
	}

	if holdsReservation(lr.Status) {
		if err := s.balanceRepo.WithTx(tx).Release(ctx, organizationID, lr.EmployeeID.String(), lr.PolicyID.String(), lr.Days); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateSummary(ctx, organizationID, lr.EmployeeID.String())

	log.Info("leave request deleted",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("prior_status", lr.Status),
	)
	return nil
}

// loadPendingForDecision fetches the request and verifies both its state and
// the actor's authority over it. Authorization failures come back as a
// generic forbidden so callers cannot probe other employees' requests.
func (s *service) loadPendingForDecision(ctx context.Context, organizationID, actorID, id string) (*LeaveRequest, error) {
	lr, err := s.repo.FindByIDAndOrganization(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	if lr.Status != StatusPending {
		return nil, leaveerrors.ErrNotPending
	}

	actor, err := s.userRepo.FindByIDAndOrganization(ctx, organizationID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrNotPermitted
		}
		return nil, err
	}
	employee, err := s.userRepo.FindByIDAndOrganization(ctx, organizationID, lr.EmployeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrNotPermitted
		}
		return nil, err
	}

	if !CanActOnRequest(actor, employee, lr) {
		return nil, leaveerrors.ErrNotPermitted
	}
	return lr, nil
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, eventType string, lr *LeaveRequest, actorID string) error {
	payload, err := json.Marshal(events.LeaveLifecycleEvent{
		EventType:      eventType,
		RequestID:      contextutil.GetRequestID(ctx),
		LeaveID:        lr.ID.String(),
		RequestNumber:  lr.RequestNumber,
		OrganizationID: lr.OrganizationID.String(),
		EmployeeID:     lr.EmployeeID.String(),
		ActorID:        actorID,
		LeaveType:      lr.LeaveType,
		Days:           lr.Days,
		NotifyUsers:    lr.NotifyUsers,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: leaveAggregateType,
		AggregateID:   lr.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateSummary(ctx context.Context, organizationID, employeeID string) {
	if s.rdb == nil {
		return
	}
	key := balance.GetSummaryKey(organizationID, employeeID)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("failed to invalidate balance summary cache",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func toLeaveResponse(lr *LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:             lr.ID.String(),
		RequestNumber:  lr.RequestNumber,
		OrganizationID: lr.OrganizationID.String(),
		EmployeeID:     lr.EmployeeID.String(),
		LeaveType:      lr.LeaveType,
		StartDate:      lr.StartDate.Format(dateLayout),
		EndDate:        lr.EndDate.Format(dateLayout),
		Days:           lr.Days,
		Reason:         lr.Reason,
		Status:         lr.Status,
		NotifyUsers:    lr.NotifyUsers,
		CreatedAt:      lr.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      lr.UpdatedAt.Format(time.RFC3339),
	}
	if lr.ApproverID != nil {
		id := lr.ApproverID.String()
		resp.ApproverID = &id
	}
	resp.RejectionReason = lr.RejectionReason
	return resp
}

func toLeaveResponses(requests []LeaveRequest) []LeaveResponse {
	responses := make([]LeaveResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, toLeaveResponse(&requests[i]))
	}
	return responses
}
