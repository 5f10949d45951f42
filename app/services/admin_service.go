package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/auth"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
	jwtauth "github.com/shashiranjanraj/vastra/pkg/auth"
)

// AdminInput is the create/update payload for a back-office account.
type AdminInput struct {
	Email       string                  `json:"email" validate:"required,email"`
	Password    string                  `json:"password" validate:"nullable,min=8"`
	Role        string                  `json:"role" validate:"required,in=admin|super_admin"`
	Site        string                  `json:"site"`
	Permissions models.AdminPermissions `json:"permissions"`
	IsActive    *bool                   `json:"isActive"`
}

// AdminService manages back-office accounts. A site admin with the
// manage-admins flag can only manage accounts on their own site and
// can never mint a super admin; only a super admin can do either.
type AdminService struct {
	admins repositories.AdminUserRepository
}

func NewAdminService(admins repositories.AdminUserRepository) *AdminService {
	return &AdminService{admins: admins}
}

// List returns the accounts the caller may see: all of them for a
// super admin, same-site only for everyone else.
func (s *AdminService) List(ctx context.Context, p *auth.Principal) ([]models.AdminUser, error) {
	if p.IsSuperAdmin() {
		return s.admins.BySite(ctx, nil)
	}
	if p.Site == nil {
		return nil, apperr.New(apperr.Forbidden, "Account is not assigned to a site")
	}
	return s.admins.BySite(ctx, p.Site)
}

func (s *AdminService) Create(ctx context.Context, p *auth.Principal, in AdminInput) (*models.AdminUser, error) {
	if in.Password == "" {
		return nil, apperr.New(apperr.Validation, "Password is required")
	}
	if in.Role == models.RoleSuperAdmin && !p.IsSuperAdmin() {
		return nil, apperr.New(apperr.Forbidden, "Only a super admin can create super admins")
	}

	site, err := s.resolveSite(p, in)
	if err != nil {
		return nil, err
	}
	if in.Role == models.RoleAdmin && site == nil {
		return nil, apperr.New(apperr.Validation, "A site admin must be assigned to a site")
	}

	hash, err := jwtauth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.AdminUser{
		Email:       in.Email,
		Password:    hash,
		Role:        in.Role,
		Site:        site,
		Permissions: in.Permissions,
		IsActive:    true,
	}
	if in.IsActive != nil {
		admin.IsActive = *in.IsActive
	}
	if in.Role == models.RoleSuperAdmin {
		admin.Site = nil
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) Update(ctx context.Context, p *auth.Principal, id primitive.ObjectID, in AdminInput) (*models.AdminUser, error) {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.assertManages(p, admin); err != nil {
		return nil, err
	}
	if in.Role == models.RoleSuperAdmin && !p.IsSuperAdmin() {
		return nil, apperr.New(apperr.Forbidden, "Only a super admin can grant super admin")
	}

	admin.Email = in.Email
	admin.Role = in.Role
	admin.Permissions = in.Permissions
	if in.IsActive != nil {
		admin.IsActive = *in.IsActive
	}
	if in.Password != "" {
		hash, herr := jwtauth.HashPassword(in.Password)
		if herr != nil {
			return nil, herr
		}
		admin.Password = hash
	}
	if p.IsSuperAdmin() && in.Site != "" {
		siteID, serr := primitive.ObjectIDFromHex(in.Site)
		if serr != nil {
			return nil, apperr.New(apperr.Validation, "Invalid site id")
		}
		admin.Site = &siteID
	}
	if admin.Role == models.RoleSuperAdmin {
		admin.Site = nil
	}

	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) Delete(ctx context.Context, p *auth.Principal, id primitive.ObjectID) error {
	if p.ID == id {
		return apperr.New(apperr.Validation, "You cannot delete your own account")
	}
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.assertManages(p, admin); err != nil {
		return err
	}
	return s.admins.Delete(ctx, id)
}

func (s *AdminService) resolveSite(p *auth.Principal, in AdminInput) (*primitive.ObjectID, error) {
	if p.IsSuperAdmin() {
		if in.Site == "" {
			return nil, nil
		}
		id, err := primitive.ObjectIDFromHex(in.Site)
		if err != nil {
			return nil, apperr.New(apperr.Validation, "Invalid site id")
		}
		return &id, nil
	}
	// Site admins always create within their own site.
	if p.Site == nil {
		return nil, apperr.New(apperr.Forbidden, "Account is not assigned to a site")
	}
	if in.Site != "" && in.Site != p.Site.Hex() {
		return nil, apperr.New(apperr.Forbidden, "You do not have access to this site")
	}
	return p.Site, nil
}

func (s *AdminService) assertManages(p *auth.Principal, target *models.AdminUser) error {
	if p.IsSuperAdmin() {
		return nil
	}
	if target.Role == models.RoleSuperAdmin {
		return apperr.New(apperr.Forbidden, "You cannot manage a super admin")
	}
	if p.Site == nil || target.Site == nil || *p.Site != *target.Site {
		return apperr.New(apperr.Forbidden, "You do not have access to this site")
	}
	return nil
}
