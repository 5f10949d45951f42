package services_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/jobs"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/apperr"
	jwtauth "github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/ephemeral"
	"github.com/shashiranjanraj/vastra/pkg/queue"
)

// captureDriver records dispatched queue payloads so tests can read
// the plaintext codes out of the emails that would have been sent.
type captureDriver struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (d *captureDriver) Push(payload []byte) error {
	d.mu.Lock()
	d.payloads = append(d.payloads, payload)
	d.mu.Unlock()
	return nil
}

func (d *captureDriver) Pop(ctx context.Context) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// lastOTP decodes the most recently dispatched email job and returns
// its code.
func (d *captureDriver) lastOTP(t *testing.T) string {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	require.NotEmpty(t, d.payloads, "expected a dispatched email job")

	var env struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(d.payloads[len(d.payloads)-1], &env))

	switch env.Type {
	case "*jobs.OTPEmailJob":
		var job jobs.OTPEmailJob
		require.NoError(t, json.Unmarshal(env.Payload, &job))
		return job.OTP
	case "*jobs.PasswordResetEmailJob":
		var job jobs.PasswordResetEmailJob
		require.NoError(t, json.Unmarshal(env.Payload, &job))
		return job.Code
	default:
		t.Fatalf("unexpected job type %q", env.Type)
		return ""
	}
}

func (d *captureDriver) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.payloads)
}

func TestRegistrationFlow(t *testing.T) {
	driver := &captureDriver{}
	queue.SetDriver(driver)
	defer queue.SetDriver(queue.NewMemoryDriver())

	users := newFakeUserRepo()
	store := ephemeral.NewMemoryStore()
	svc := services.NewRegisterService(users, store, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, svc.Begin(ctx, "Asha", "asha@demo.test", "password123", ""))
	require.Equal(t, 1, store.Len(), "pending registration is parked, not persisted")

	// No user document exists before verification.
	_, err := users.FindByEmail(ctx, "asha@demo.test")
	require.True(t, apperr.Is(err, apperr.NotFound))

	otp := driver.lastOTP(t)
	require.Len(t, otp, 6)

	t.Run("wrong code rejected", func(t *testing.T) {
		_, err := svc.Verify(ctx, "asha@demo.test", "000000")
		require.True(t, apperr.Is(err, apperr.Validation))
	})

	t.Run("resend replaces the code", func(t *testing.T) {
		require.NoError(t, svc.Resend(ctx, "asha@demo.test"))
		fresh := driver.lastOTP(t)
		require.Len(t, fresh, 6)
		otp = fresh
	})

	t.Run("correct code promotes the registration", func(t *testing.T) {
		res, err := svc.Verify(ctx, "asha@demo.test", otp)
		require.NoError(t, err)
		require.NotEmpty(t, res.Token)
		require.Equal(t, "user", res.Role)

		user, err := users.FindByEmail(ctx, "asha@demo.test")
		require.NoError(t, err)
		require.Equal(t, "Asha", user.Name)
		require.True(t, user.IsActive)
		require.True(t, jwtauth.CheckPassword(user.Password, "password123"))
		require.Equal(t, 0, store.Len(), "pending entry is consumed")
	})

	t.Run("verify cannot be replayed", func(t *testing.T) {
		_, err := svc.Verify(ctx, "asha@demo.test", otp)
		require.True(t, apperr.Is(err, apperr.Validation))
	})

	t.Run("registered email conflicts", func(t *testing.T) {
		err := svc.Begin(ctx, "Asha", "asha@demo.test", "password123", "")
		require.True(t, apperr.Is(err, apperr.Conflict))
	})
}

func TestRegistrationExpiry(t *testing.T) {
	driver := &captureDriver{}
	queue.SetDriver(driver)
	defer queue.SetDriver(queue.NewMemoryDriver())

	users := newFakeUserRepo()
	store := ephemeral.NewMemoryStore()
	svc := services.NewRegisterService(users, store, time.Millisecond)
	ctx := context.Background()

	require.NoError(t, svc.Begin(ctx, "Asha", "asha@demo.test", "password123", ""))
	otp := driver.lastOTP(t)

	time.Sleep(5 * time.Millisecond)

	_, err := svc.Verify(ctx, "asha@demo.test", otp)
	require.True(t, apperr.Is(err, apperr.Validation), "expired registrations cannot be completed")
}

func TestPasswordResetFlow(t *testing.T) {
	driver := &captureDriver{}
	queue.SetDriver(driver)
	defer queue.SetDriver(queue.NewMemoryDriver())

	users := newFakeUserRepo()
	store := ephemeral.NewMemoryStore()
	svc := services.NewRegisterService(users, store, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{
		Name:     "Asha",
		Email:    "asha@demo.test",
		Password: mustHash(t, "old-password"),
		Role:     "user",
		IsActive: true,
	}))

	t.Run("unknown email succeeds silently", func(t *testing.T) {
		require.NoError(t, svc.ForgotPassword(ctx, "ghost@demo.test"))
		require.Equal(t, 0, driver.count(), "no email is sent for unknown addresses")
	})

	require.NoError(t, svc.ForgotPassword(ctx, "asha@demo.test"))
	code := driver.lastOTP(t)

	t.Run("wrong code rejected", func(t *testing.T) {
		err := svc.ResetPassword(ctx, "asha@demo.test", "000000", "new-password")
		require.True(t, apperr.Is(err, apperr.Validation))
	})

	t.Run("correct code rewrites the password", func(t *testing.T) {
		require.NoError(t, svc.ResetPassword(ctx, "asha@demo.test", code, "new-password"))
		user, err := users.FindByEmail(ctx, "asha@demo.test")
		require.NoError(t, err)
		require.True(t, jwtauth.CheckPassword(user.Password, "new-password"))
		require.False(t, jwtauth.CheckPassword(user.Password, "old-password"))
	})

	t.Run("code cannot be replayed", func(t *testing.T) {
		err := svc.ResetPassword(ctx, "asha@demo.test", code, "another-password")
		require.True(t, apperr.Is(err, apperr.Validation))
	})
}
