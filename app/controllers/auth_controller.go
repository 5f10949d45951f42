package controllers

import (
	"github.com/shashiranjanraj/vastra/app/auth"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/ctx"
)

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerInput struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Site     string `json:"site"`
}

type verifyOTPInput struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,size=6"`
}

type emailInput struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordInput struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required,size=6"`
	Password string `json:"password" validate:"required,min=8"`
}

type profileInput struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Phone   string `json:"phone" validate:"nullable,max=30"`
	Address string `json:"address" validate:"nullable,max=500"`
	City    string `json:"city" validate:"nullable,max=100"`
}

type credentialsInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	Email           string `json:"email" validate:"nullable,email"`
	Password        string `json:"password" validate:"nullable,min=8"`
}

// AuthController serves both login surfaces and the OTP registration
// flow.
type AuthController struct {
	authSvc     *services.AuthService
	registerSvc *services.RegisterService
}

func NewAuthController(authSvc *services.AuthService, registerSvc *services.RegisterService) *AuthController {
	return &AuthController{authSvc: authSvc, registerSvc: registerSvc}
}

// Login authenticates a shopper.
func (a *AuthController) Login(c *ctx.Context) {
	var in loginInput
	if !c.BindJSON(&in) {
		return
	}
	result, err := a.authSvc.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(result)
}

// AdminLogin authenticates a back-office account.
func (a *AuthController) AdminLogin(c *ctx.Context) {
	var in loginInput
	if !c.BindJSON(&in) {
		return
	}
	result, err := a.authSvc.AdminLogin(c.Context(), in.Email, in.Password)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(result)
}

// RegisterInit starts the two-step signup and emails the OTP.
func (a *AuthController) RegisterInit(c *ctx.Context) {
	var in registerInput
	if !c.BindJSON(&in) {
		return
	}
	if err := a.registerSvc.Begin(c.Context(), in.Name, in.Email, in.Password, in.Site); err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"message": "Verification code sent"})
}

// VerifyOTP completes the signup and returns a logged-in session.
func (a *AuthController) VerifyOTP(c *ctx.Context) {
	var in verifyOTPInput
	if !c.BindJSON(&in) {
		return
	}
	result, err := a.registerSvc.Verify(c.Context(), in.Email, in.OTP)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(result)
}

// ResendOTP issues a fresh code for a pending signup.
func (a *AuthController) ResendOTP(c *ctx.Context) {
	var in emailInput
	if !c.BindJSON(&in) {
		return
	}
	if err := a.registerSvc.Resend(c.Context(), in.Email); err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"message": "Verification code sent"})
}

// ForgotPassword emails a reset code. Always answers success so the
// endpoint does not reveal which addresses are registered.
func (a *AuthController) ForgotPassword(c *ctx.Context) {
	var in emailInput
	if !c.BindJSON(&in) {
		return
	}
	if err := a.registerSvc.ForgotPassword(c.Context(), in.Email); err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"message": "If the email exists, a reset code was sent"})
}

// ResetPassword exchanges a reset code for a new password.
func (a *AuthController) ResetPassword(c *ctx.Context) {
	var in resetPasswordInput
	if !c.BindJSON(&in) {
		return
	}
	if err := a.registerSvc.ResetPassword(c.Context(), in.Email, in.Code, in.Password); err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"message": "Password updated"})
}

// Profile returns the authenticated principal.
func (a *AuthController) Profile(c *ctx.Context) {
	p := auth.CurrentPrincipal(c)
	if p == nil {
		c.Unauthorized()
		return
	}
	out := map[string]interface{}{
		"id":    p.ID.Hex(),
		"email": p.Email,
		"name":  p.Name,
		"role":  p.Role,
	}
	if p.Site != nil {
		out["site"] = p.Site.Hex()
	}
	if p.Kind == auth.KindAdmin {
		out["permissions"] = p.Permissions
	}
	c.Success(out)
}

// UpdateProfile changes the caller's own display details.
func (a *AuthController) UpdateProfile(c *ctx.Context) {
	var in profileInput
	if !c.BindJSON(&in) {
		return
	}
	p := auth.CurrentPrincipal(c)
	if p == nil {
		c.Unauthorized()
		return
	}
	err := a.authSvc.UpdateProfile(c.Context(), p, services.ProfileInput{
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
		City:    in.City,
	})
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"message": "Profile updated"})
}

// ChangeCredentials updates the calling admin's email or password.
func (a *AuthController) ChangeCredentials(c *ctx.Context) {
	var in credentialsInput
	if !c.BindJSON(&in) {
		return
	}
	p := auth.CurrentPrincipal(c)
	if err := a.authSvc.ChangeCredentials(c.Context(), p, in.CurrentPassword, in.Email, in.Password); err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"message": "Credentials updated"})
}
