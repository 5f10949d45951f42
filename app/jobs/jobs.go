// Package jobs defines the background jobs dispatched through the
// queue: transactional emails that must not block the request cycle.
package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/vastra/pkg/mail"
	"github.com/shashiranjanraj/vastra/pkg/queue"
)

// RegisterAll registers every job type with the queue so workers can
// reconstruct them from their serialized payloads. Call once at boot
// before StartWorkers. Registration keys must match the %T name the
// dispatcher stamps on the envelope.
func RegisterAll() {
	register(func() queue.Job { return &OTPEmailJob{} })
	register(func() queue.Job { return &PasswordResetEmailJob{} })
	register(func() queue.Job { return &OrderConfirmationEmailJob{} })
}

func register(factory func() queue.Job) {
	queue.Register(fmt.Sprintf("%T", factory()), factory)
}

// OTPEmailJob delivers the one-time registration code.
type OTPEmailJob struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	OTP   string `json:"otp"`
}

func (j *OTPEmailJob) Handle() error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your verification code is <strong>%s</strong>. It expires in 10 minutes.</p>",
		j.Name, j.OTP,
	)
	return mail.To(j.Email).
		Subject("Verify your email").
		Body(body).
		Send()
}

// PasswordResetEmailJob delivers the password reset code.
type PasswordResetEmailJob struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Code  string `json:"code"`
}

func (j *PasswordResetEmailJob) Handle() error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Use code <strong>%s</strong> to reset your password. If you did not request this, ignore this email.</p>",
		j.Name, j.Code,
	)
	return mail.To(j.Email).
		Subject("Reset your password").
		Body(body).
		Send()
}

// OrderConfirmationEmailJob is dispatched after checkout.
type OrderConfirmationEmailJob struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	OrderID  string  `json:"orderId"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

func (j *OrderConfirmationEmailJob) Handle() error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Thanks for your order <strong>%s</strong>. Total: %s %.2f.</p>",
		j.Name, j.OrderID, j.Currency, j.Total,
	)
	return mail.To(j.Email).
		Subject("Order confirmation").
		Body(body).
		Send()
}
