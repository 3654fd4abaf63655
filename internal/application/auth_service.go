package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"campdir/internal/domain/entity"
	repo "campdir/internal/domain/repository"
	"campdir/pkg/apperr"
	"campdir/pkg/helpers"
	"campdir/pkg/mailer"
)

// EmailQueue is where outbound mail jobs go; RabbitPublisher satisfies it.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService implements registration, login and the password lifecycle.
// Reset emails are queued to RabbitMQ and delivered by the email worker.
type AuthService struct {
	Users repo.UserRepository
	JWT   *helpers.JWTManager

	Emails   EmailQueue
	ResetTTL time.Duration
	ResetURL string

	Logger *logrus.Logger
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,oneof=user publisher"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateDetailsInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type UpdatePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,pwd"`
}

// Session is an issued token with its expiry, used to set the cookie.
type Session struct {
	Token   string
	Expires time.Time
}

// Register creates an account and signs the first session token. The admin
// role can never be self-assigned here.
func (s *AuthService) Register(ctx context.Context, in *RegisterInput) (*Session, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{Name: in.Name, Email: in.Email, Role: role, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *AuthService) Login(ctx context.Context, in *LoginInput) (*Session, error) {
	u, err := s.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, apperr.New(apperr.Authentication, "invalid credentials")
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, in.Password) {
		return nil, apperr.New(apperr.Authentication, "invalid credentials")
	}
	return s.session(u)
}

func (s *AuthService) Me(ctx context.Context, actor Actor) (*entity.User, error) {
	return s.Users.GetByID(ctx, actor.ID)
}

func (s *AuthService) UpdateDetails(ctx context.Context, actor Actor, in *UpdateDetailsInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	u.Name = in.Name
	u.Email = in.Email
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdatePassword rotates the password after verifying the current one and
// issues a fresh session token.
func (s *AuthService) UpdatePassword(ctx context.Context, actor Actor, in *UpdatePasswordInput) (*Session, error) {
	u, err := s.Users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, in.CurrentPassword) {
		return nil, apperr.New(apperr.Authentication, "password is incorrect")
	}

	hash, err := helpers.HashPassword(in.NewPassword)
	if err != nil {
		return nil, err
	}
	if err := s.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return nil, err
	}
	return s.session(u)
}

// ForgotPassword stores a hashed single-use reset token and queues the email
// carrying the raw one. If the email cannot be queued the token is rolled
// back, so a dead letter never leaves a live token behind.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	raw, hashed, err := helpers.NewResetToken()
	if err != nil {
		return err
	}
	expire := time.Now().Add(s.ResetTTL)
	if err := s.Users.SetResetToken(ctx, u.ID, hashed, expire); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/%s", s.ResetURL, raw)
	job := mailer.EmailJob{
		To:      u.Email,
		Subject: "Password reset token",
		Text: "You are receiving this email because you (or someone else) has requested " +
			"the reset of a password. Please make a PUT request to: \n\n" + resetURL,
	}
	if err := s.Emails.PublishJSON(ctx, job); err != nil {
		if clearErr := s.Users.ClearResetToken(ctx, u.ID); clearErr != nil && s.Logger != nil {
			s.Logger.WithError(clearErr).WithField("user_id", u.ID).Error("reset token rollback failed")
		}
		return apperr.Wrap(apperr.External, err, "email could not be sent")
	}
	return nil
}

// ResetPassword consumes a raw reset token from the emailed link. Expired or
// unknown tokens fail validation without revealing which.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) (*Session, error) {
	u, err := s.Users.GetByResetToken(ctx, helpers.HashResetToken(rawToken))
	if err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	if err := s.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return nil, err
	}
	if err := s.Users.ClearResetToken(ctx, u.ID); err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *AuthService) session(u *entity.User) (*Session, error) {
	token, exp, err := s.JWT.Generate(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, Expires: exp}, nil
}
