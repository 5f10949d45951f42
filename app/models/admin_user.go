package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin roles.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Permission flag names, as they appear in request payloads and tokens.
const (
	PermManageProducts    = "canManageProducts"
	PermManageCategories  = "canManageCategories"
	PermManageBrands      = "canManageBrands"
	PermManageOrders      = "canManageOrders"
	PermManageWebsite     = "canManageWebsite"
	PermManageAdmins      = "canManageAdmins"
	PermViewStats         = "canViewStats"
	PermChangeCredentials = "canChangeCredentials"
)

// AdminPermissions is the per-admin flag set. A super_admin ignores it
// entirely; a site-bound admin is gated by each flag.
type AdminPermissions struct {
	CanManageProducts    bool `json:"canManageProducts" bson:"can_manage_products"`
	CanManageCategories  bool `json:"canManageCategories" bson:"can_manage_categories"`
	CanManageBrands      bool `json:"canManageBrands" bson:"can_manage_brands"`
	CanManageOrders      bool `json:"canManageOrders" bson:"can_manage_orders"`
	CanManageWebsite     bool `json:"canManageWebsite" bson:"can_manage_website"`
	CanManageAdmins      bool `json:"canManageAdmins" bson:"can_manage_admins"`
	CanViewStats         bool `json:"canViewStats" bson:"can_view_stats"`
	CanChangeCredentials bool `json:"canChangeCredentials" bson:"can_change_credentials"`
}

// Has reports whether the named permission flag is set.
func (p AdminPermissions) Has(name string) bool {
	switch name {
	case PermManageProducts:
		return p.CanManageProducts
	case PermManageCategories:
		return p.CanManageCategories
	case PermManageBrands:
		return p.CanManageBrands
	case PermManageOrders:
		return p.CanManageOrders
	case PermManageWebsite:
		return p.CanManageWebsite
	case PermManageAdmins:
		return p.CanManageAdmins
	case PermViewStats:
		return p.CanViewStats
	case PermChangeCredentials:
		return p.CanChangeCredentials
	default:
		return false
	}
}

// AdminUser is a back-office principal. Site is required for role=admin
// and nil for super_admin, whose scope is every tenant.
type AdminUser struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name,omitempty" bson:"name,omitempty"`
	Email       string              `json:"email" bson:"email"` // unique
	Password    string              `json:"-" bson:"password"`  // bcrypt hash, never serialised
	Role        string              `json:"role" bson:"role"`
	Site        *primitive.ObjectID `json:"site,omitempty" bson:"site,omitempty"`
	Permissions AdminPermissions    `json:"permissions" bson:"permissions"`
	IsActive    bool                `json:"isActive" bson:"is_active"`
	LastLogin   *time.Time          `json:"lastLogin,omitempty" bson:"last_login,omitempty"`
	CreatedAt   time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updated_at"`
}

// IsSuperAdmin reports whether this admin sees all tenants.
func (a *AdminUser) IsSuperAdmin() bool { return a.Role == RoleSuperAdmin }
