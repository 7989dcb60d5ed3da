package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inslanka/shop-api/pkg/models"
)

func TestPolicyAllows(t *testing.T) {
	tests := []struct {
		role    models.Role
		action  Action
		allowed bool
	}{
		{models.RoleCustomer, ActionManageCatalog, false},
		{models.RoleCustomer, ActionViewInventory, false},
		{models.RoleCustomer, ActionViewAnalytics, false},

		{models.RoleStaff, ActionManageInventory, true},
		{models.RoleStaff, ActionManageOrders, true},
		{models.RoleStaff, ActionViewAnalytics, true},
		{models.RoleStaff, ActionManageCatalog, false},
		{models.RoleStaff, ActionManageCoupons, false},
		{models.RoleStaff, ActionManageUsers, false},

		{models.RoleAdmin, ActionManageCatalog, true},
		{models.RoleAdmin, ActionManageCoupons, true},
		{models.RoleAdmin, ActionManageUsers, true},
		{models.RoleAdmin, ActionManageShipping, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"_"+string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.allowed, Allows(tt.role, tt.action))
		})
	}
}

func TestPolicyDeniesUnknowns(t *testing.T) {
	assert.False(t, Allows(models.Role("SUPERUSER"), ActionManageCatalog))
	assert.False(t, Allows(models.RoleAdmin, Action("something:else")))
	assert.False(t, Allows(models.Role(""), Action("")))
}
