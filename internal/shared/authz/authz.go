// Package authz builds the role based enforcer shared by the modules.
// Subjects are role names as carried in the session token.
package authz

import (
	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/shandysiswandi/esign/internal/shared/constant"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

var policies = [][]string{
	{constant.RoleCompany, constant.ObjectDocument, "*"},
	{constant.RoleCompany, constant.ObjectSigner, constant.ActionVerify},
	{constant.RoleSigner, constant.ObjectSigner, constant.ActionVerify},
}

// admin inherits everything granted to company
var groupings = [][]string{
	{constant.RoleAdmin, constant.RoleCompany},
}

func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if _, err := e.AddPolicies(policies); err != nil {
		return nil, err
	}
	if _, err := e.AddGroupingPolicies(groupings); err != nil {
		return nil, err
	}

	return e, nil
}
