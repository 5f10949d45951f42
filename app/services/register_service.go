package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/jobs"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
	jwtauth "github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/crypt"
	"github.com/shashiranjanraj/vastra/pkg/ephemeral"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/queue"
)

// RegisterService runs the two-step shopper signup: credentials are
// parked in the ephemeral store until the emailed OTP comes back, and
// only then does a user document exist. Abandoned signups expire with
// the TTL and never touch MongoDB.
//
// The same ephemeral store carries password-reset codes.
type RegisterService struct {
	users repositories.UserRepository
	store ephemeral.Store
	ttl   time.Duration
}

func NewRegisterService(users repositories.UserRepository, store ephemeral.Store, ttl time.Duration) *RegisterService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RegisterService{users: users, store: store, ttl: ttl}
}

func pendingKey(email string) string { return "pending:" + email }
func resetKey(email string) string   { return "reset:" + email }

// generateOTP returns a 6-digit numeric code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Begin starts a registration: hashes the password, parks the pending
// record, and queues the OTP email. An email already registered is a
// Conflict; a signup already pending is silently replaced so the user
// can retry with a fresh code.
func (s *RegisterService) Begin(ctx context.Context, name, email, password, site string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return apperr.Newf(apperr.Conflict, "account with email %q already exists", email)
	} else if !apperr.Is(err, apperr.NotFound) {
		return err
	}

	hash, err := jwtauth.HashPassword(password)
	if err != nil {
		return err
	}
	otp, err := generateOTP()
	if err != nil {
		return err
	}

	pending := models.PendingRegistration{
		Name:      name,
		Email:     email,
		Password:  hash,
		Site:      site,
		OTP:       crypt.Hash(otp), // only the digest is parked
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Put(ctx, pendingKey(email), pending, s.ttl); err != nil {
		return err
	}

	if err := queue.Dispatch(&jobs.OTPEmailJob{Email: email, Name: name, OTP: otp}); err != nil {
		logger.Error("register: otp email dispatch failed", "email", email, "error", err)
	}
	return nil
}

// Verify completes a registration: the OTP must match the pending
// record, which is then promoted into a real user document and removed
// from the ephemeral store.
func (s *RegisterService) Verify(ctx context.Context, email, otp string) (*AuthResult, error) {
	var pending models.PendingRegistration
	if err := s.store.Get(ctx, pendingKey(email), &pending); err != nil {
		if errors.Is(err, ephemeral.ErrNotFound) {
			return nil, apperr.New(apperr.Validation, "No pending registration, or the code has expired")
		}
		return nil, err
	}
	if !crypt.Verify(otp, pending.OTP) {
		return nil, apperr.New(apperr.Validation, "Invalid verification code")
	}

	user := &models.User{
		Name:     pending.Name,
		Email:    pending.Email,
		Password: pending.Password, // already hashed at Begin
		Role:     "user",
		IsActive: true,
	}
	if pending.Site != "" {
		if siteID, err := primitive.ObjectIDFromHex(pending.Site); err == nil {
			user.Site = &siteID
		}
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, pendingKey(email)); err != nil {
		logger.Warn("register: pending cleanup failed", "email", email, "error", err)
	}

	site := ""
	if user.Site != nil {
		site = user.Site.Hex()
	}
	token, err := jwtauth.GenerateToken(user.ID.Hex(), user.Role, site)
	if err != nil {
		return nil, err
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

// Resend issues a fresh OTP for a pending registration, resetting its TTL.
func (s *RegisterService) Resend(ctx context.Context, email string) error {
	var pending models.PendingRegistration
	if err := s.store.Get(ctx, pendingKey(email), &pending); err != nil {
		if errors.Is(err, ephemeral.ErrNotFound) {
			return apperr.New(apperr.Validation, "No pending registration, or the code has expired")
		}
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}
	pending.OTP = crypt.Hash(otp)
	pending.CreatedAt = time.Now().UTC()
	if err := s.store.Put(ctx, pendingKey(email), pending, s.ttl); err != nil {
		return err
	}

	if err := queue.Dispatch(&jobs.OTPEmailJob{Email: email, Name: pending.Name, OTP: otp}); err != nil {
		logger.Error("register: otp email dispatch failed", "email", email, "error", err)
	}
	return nil
}

// ForgotPassword parks a reset code for an existing account. Unknown
// emails return success anyway so the endpoint does not reveal which
// addresses are registered.
func (s *RegisterService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil
		}
		return err
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, resetKey(email), crypt.Hash(code), s.ttl); err != nil {
		return err
	}

	if err := queue.Dispatch(&jobs.PasswordResetEmailJob{Email: email, Name: user.Name, Code: code}); err != nil {
		logger.Error("register: reset email dispatch failed", "email", email, "error", err)
	}
	return nil
}

// ResetPassword exchanges a valid reset code for a new password.
func (s *RegisterService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	var stored string
	if err := s.store.Get(ctx, resetKey(email), &stored); err != nil {
		if errors.Is(err, ephemeral.ErrNotFound) {
			return apperr.New(apperr.Validation, "Invalid or expired reset code")
		}
		return err
	}
	if !crypt.Verify(code, stored) {
		return apperr.New(apperr.Validation, "Invalid or expired reset code")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	hash, err := jwtauth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, resetKey(email)); err != nil {
		logger.Warn("register: reset code cleanup failed", "email", email, "error", err)
	}
	return nil
}
