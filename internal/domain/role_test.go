package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleGrantUnmarshalLevelString(t *testing.T) {
	var set PermissionSet
	require.NoError(t, json.Unmarshal([]byte(`{"inventory":"full"}`), &set))

	grant := set["inventory"]
	require.NotNil(t, grant.Level)
	assert.Equal(t, PermissionFull, *grant.Level)
	assert.Nil(t, grant.Pages)
}

func TestModuleGrantUnmarshalPageMap(t *testing.T) {
	var set PermissionSet
	require.NoError(t, json.Unmarshal([]byte(`{"payroll":{"Payslips":"view","Reports":"none"}}`), &set))

	grant := set["payroll"]
	assert.Nil(t, grant.Level)
	assert.Equal(t, PermissionView, grant.Pages["Payslips"])
	assert.Equal(t, PermissionNone, grant.Pages["Reports"])
}

func TestModuleGrantUnmarshalRejectsOtherShapes(t *testing.T) {
	var grant ModuleGrant
	assert.Error(t, json.Unmarshal([]byte(`42`), &grant))
	assert.Error(t, json.Unmarshal([]byte(`["view"]`), &grant))
}

func TestRoleGrantDefaults(t *testing.T) {
	level := PermissionView
	role := &Role{Name: "hr_viewer", Permissions: PermissionSet{
		"leave":   {Level: &level},
		"payroll": {Pages: map[string]PermissionLevel{"Payslips": PermissionFull}},
	}}

	assert.Equal(t, PermissionView, role.Grant("leave", ""))
	// Module-level grants answer page queries too.
	assert.Equal(t, PermissionView, role.Grant("leave", "History"))
	assert.Equal(t, PermissionFull, role.Grant("payroll", "Payslips"))
	assert.Equal(t, PermissionNone, role.Grant("payroll", "Reports"))
	assert.Equal(t, PermissionNone, role.Grant("unknown", ""))

	var nilRole *Role
	assert.Equal(t, PermissionNone, nilRole.Grant("leave", ""))
}
