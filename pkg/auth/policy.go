package auth

import "github.com/inslanka/shop-api/pkg/models"

// Action names a privileged operation checked at the HTTP layer.
type Action string

const (
	ActionManageCatalog   Action = "catalog:manage"
	ActionManageInventory Action = "inventory:manage"
	ActionViewInventory   Action = "inventory:view"
	ActionManageOrders    Action = "orders:manage"
	ActionManageCoupons   Action = "coupons:manage"
	ActionManageShipping  Action = "shipping:manage"
	ActionModerateReviews Action = "reviews:moderate"
	ActionViewAnalytics   Action = "analytics:view"
	ActionManageUsers     Action = "users:manage"
)

var rolePolicy = map[models.Role]map[Action]bool{
	models.RoleCustomer: {},
	models.RoleStaff: {
		ActionViewInventory:   true,
		ActionManageInventory: true,
		ActionManageOrders:    true,
		ActionModerateReviews: true,
		ActionViewAnalytics:   true,
	},
	models.RoleAdmin: {
		ActionManageCatalog:   true,
		ActionViewInventory:   true,
		ActionManageInventory: true,
		ActionManageOrders:    true,
		ActionManageCoupons:   true,
		ActionManageShipping:  true,
		ActionModerateReviews: true,
		ActionViewAnalytics:   true,
		ActionManageUsers:     true,
	},
}

// Allows reports whether the role may perform the action. Unknown roles
// and unknown actions are both denied.
func Allows(role models.Role, action Action) bool {
	perms, ok := rolePolicy[role]
	if !ok {
		return false
	}
	return perms[action]
}
