package balance

type ProvisionBalanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	PolicyName string `json:"policy_name" binding:"required"`
}

type BalanceResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	EmployeeID     string `json:"employee_id"`
	PolicyID       string `json:"policy_id"`
	PolicyName     string `json:"policy_name,omitempty"`
	TotalDays      int    `json:"total_days"`
	UsedDays       int    `json:"used_days"`
	CarryForward   int    `json:"carry_forward"`
	RemainingDays  int    `json:"remaining_days"`
}
