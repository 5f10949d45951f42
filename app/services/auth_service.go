package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/auth"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
	jwtauth "github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/logger"
)

// AuthResult is what a successful login returns to the client.
type AuthResult struct {
	Token       string                  `json:"token"`
	ID          string                  `json:"id"`
	Name        string                  `json:"name,omitempty"`
	Email       string                  `json:"email"`
	Role        string                  `json:"role"`
	Site        string                  `json:"site,omitempty"`
	Permissions models.AdminPermissions `json:"permissions"`
}

// AuthService owns login and principal resolution across the two
// identity stores. The dedicated admin store always wins; the users
// collection is only consulted afterwards, which keeps legacy
// admin-role shopper rows working without letting them shadow a real
// admin account with the same email.
type AuthService struct {
	admins repositories.AdminUserRepository
	users  repositories.UserRepository
}

func NewAuthService(admins repositories.AdminUserRepository, users repositories.UserRepository) *AuthService {
	return &AuthService{admins: admins, users: users}
}

var errBadCredentials = apperr.New(apperr.Unauthenticated, "Invalid email or password")

// AdminLogin authenticates a back-office account. The admin store is
// checked first, then legacy users-collection rows with role=admin.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	admin, err := s.admins.FindByEmail(ctx, email)
	if err == nil {
		if !jwtauth.CheckPassword(admin.Password, password) {
			return nil, errBadCredentials
		}
		if !admin.IsActive {
			return nil, apperr.New(apperr.Forbidden, "Account is deactivated")
		}
		s.touchLastLogin(admin.ID)

		site := ""
		if admin.Site != nil {
			site = admin.Site.Hex()
		}
		token, terr := jwtauth.GenerateToken(admin.ID.Hex(), admin.Role, site)
		if terr != nil {
			return nil, terr
		}
		return &AuthResult{
			Token:       token,
			ID:          admin.ID.Hex(),
			Name:        admin.Name,
			Email:       admin.Email,
			Role:        admin.Role,
			Site:        site,
			Permissions: admin.Permissions,
		}, nil
	}
	if !apperr.Is(err, apperr.NotFound) {
		return nil, err
	}

	// Legacy fallback: shopper row promoted to admin before the
	// dedicated store existed.
	user, uerr := s.users.FindByEmail(ctx, email)
	if uerr != nil {
		if apperr.Is(uerr, apperr.NotFound) {
			return nil, errBadCredentials
		}
		return nil, uerr
	}
	if user.Role != models.RoleAdmin {
		return nil, errBadCredentials
	}
	if !jwtauth.CheckPassword(user.Password, password) {
		return nil, errBadCredentials
	}
	if !user.IsActive {
		return nil, apperr.New(apperr.Forbidden, "Account is deactivated")
	}

	site := ""
	if user.Site != nil {
		site = user.Site.Hex()
	}
	token, terr := jwtauth.GenerateToken(user.ID.Hex(), models.RoleAdmin, site)
	if terr != nil {
		return nil, terr
	}
	return &AuthResult{
		Token: token,
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  models.RoleAdmin,
		Site:  site,
	}, nil
}

// Login authenticates a shopper account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if !jwtauth.CheckPassword(user.Password, password) {
		return nil, errBadCredentials
	}
	if !user.IsActive {
		return nil, apperr.New(apperr.Forbidden, "Account is deactivated")
	}

	site := ""
	if user.Site != nil {
		site = user.Site.Hex()
	}
	token, terr := jwtauth.GenerateToken(user.ID.Hex(), user.Role, site)
	if terr != nil {
		return nil, terr
	}
	return &AuthResult{
		Token: token,
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Site:  site,
	}, nil
}

// ResolvePrincipal loads the live account behind validated token
// claims. A deleted or deactivated account invalidates the token even
// before it expires. Resolving a dedicated admin refreshes last_login
// in the background so the field tracks activity, not just logins.
func (s *AuthService) ResolvePrincipal(ctx context.Context, claims *jwtauth.Claims) (*auth.Principal, error) {
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperr.New(apperr.Unauthenticated, "Not authorized, token failed")
	}

	admin, aerr := s.admins.FindByID(ctx, id)
	if aerr == nil {
		if !admin.IsActive {
			return nil, apperr.New(apperr.Forbidden, "Account is deactivated")
		}
		s.touchLastLogin(admin.ID)
		return &auth.Principal{
			Kind:        auth.KindAdmin,
			ID:          admin.ID,
			Role:        admin.Role,
			Site:        admin.Site,
			Email:       admin.Email,
			Name:        admin.Name,
			Permissions: admin.Permissions,
		}, nil
	}
	if !apperr.Is(aerr, apperr.NotFound) {
		return nil, aerr
	}

	user, uerr := s.users.FindByID(ctx, id)
	if uerr != nil {
		if apperr.Is(uerr, apperr.NotFound) {
			return nil, apperr.New(apperr.Unauthenticated, "Not authorized, token failed")
		}
		return nil, uerr
	}
	if !user.IsActive {
		return nil, apperr.New(apperr.Forbidden, "Account is deactivated")
	}

	kind := auth.KindShopper
	if user.Role == models.RoleAdmin {
		kind = auth.KindLegacyAdmin
	}
	return &auth.Principal{
		Kind:  kind,
		ID:    user.ID,
		Role:  user.Role,
		Site:  user.Site,
		Email: user.Email,
		Name:  user.Name,
	}, nil
}

// ProfileInput is the self-service profile payload. Phone, address and
// city only apply to shopper accounts; a dedicated admin carries just a
// display name.
type ProfileInput struct {
	Name    string
	Phone   string
	Address string
	City    string
}

// UpdateProfile lets the caller change their own display details.
// Credentials are out of scope here; see ChangeCredentials.
func (s *AuthService) UpdateProfile(ctx context.Context, p *auth.Principal, in ProfileInput) error {
	if p == nil {
		return apperr.New(apperr.Unauthenticated, "Not authorized")
	}
	if p.Kind == auth.KindAdmin {
		admin, err := s.admins.FindByID(ctx, p.ID)
		if err != nil {
			return err
		}
		admin.Name = in.Name
		return s.admins.Update(ctx, admin)
	}

	user, err := s.users.FindByID(ctx, p.ID)
	if err != nil {
		return err
	}
	user.Name = in.Name
	user.Phone = in.Phone
	user.Address = in.Address
	user.City = in.City
	return s.users.Update(ctx, user)
}

// ChangeCredentials updates an admin account's email and/or password
// after verifying the current password.
func (s *AuthService) ChangeCredentials(ctx context.Context, p *auth.Principal, currentPassword, newEmail, newPassword string) error {
	if p.Kind != auth.KindAdmin {
		return apperr.New(apperr.Forbidden, "Only dedicated admin accounts can change credentials here")
	}
	admin, err := s.admins.FindByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if !jwtauth.CheckPassword(admin.Password, currentPassword) {
		return apperr.New(apperr.Unauthenticated, "Current password is incorrect")
	}
	if newEmail != "" {
		admin.Email = newEmail
	}
	if newPassword != "" {
		hash, herr := jwtauth.HashPassword(newPassword)
		if herr != nil {
			return herr
		}
		admin.Password = hash
	}
	return s.admins.Update(ctx, admin)
}

// touchLastLogin records the login time without blocking the response.
func (s *AuthService) touchLastLogin(id primitive.ObjectID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.admins.TouchLastLogin(ctx, id, time.Now().UTC()); err != nil {
			logger.Warn("auth: last_login update failed", "admin", id.Hex(), "error", err)
		}
	}()
}
