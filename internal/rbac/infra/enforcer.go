package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Role permissions are fixed: member/role administration lives in the identity
// service, this core only distinguishes the four platform roles.
var rolePolicies = [][]string{
	{"ADMIN", "leave", "read"},
	{"ADMIN", "leave", "create"},
	{"ADMIN", "leave", "cancel"},
	{"ADMIN", "leave", "approve"},
	{"ADMIN", "leave", "delete"},
	{"ADMIN", "balance", "read"},
	{"ADMIN", "balance", "provision"},

	{"HR", "leave", "read"},
	{"HR", "leave", "create"},
	{"HR", "leave", "cancel"},
	{"HR", "leave", "approve"},
	{"HR", "leave", "delete"},
	{"HR", "balance", "read"},
	{"HR", "balance", "provision"},

	{"MANAGER", "leave", "read"},
	{"MANAGER", "leave", "create"},
	{"MANAGER", "leave", "cancel"},
	{"MANAGER", "leave", "approve"},
	{"MANAGER", "balance", "read"},

	{"EMPLOYEE", "leave", "read"},
	{"EMPLOYEE", "leave", "create"},
	{"EMPLOYEE", "leave", "cancel"},
	{"EMPLOYEE", "balance", "read"},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range rolePolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return enforcer, nil
}
