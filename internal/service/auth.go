package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/seminarroom/bookdesk/internal/errs"
	"github.com/seminarroom/bookdesk/internal/model"
	"github.com/seminarroom/bookdesk/internal/repository"
	"github.com/seminarroom/bookdesk/pkg/auth"
	"github.com/seminarroom/bookdesk/pkg/mailer"
)

// AuthService implements registration with OTP email verification,
// login, and the OTP-backed password reset flow.
type AuthService struct {
	users   repository.UserRepository
	otp     *OTPService
	mail    mailer.Sender
	mailCfg mailer.Config
	log     *zap.Logger

	jwtKey        []byte
	sessionTTL    time.Duration
	emailTokenTTL time.Duration
}

func NewAuthService(
	users repository.UserRepository,
	otp *OTPService,
	mail mailer.Sender,
	mailCfg mailer.Config,
	log *zap.Logger,
	jwtKey []byte,
	sessionTTL, emailTokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		users:         users,
		otp:           otp,
		mail:          mail,
		mailCfg:       mailCfg,
		log:           log.Named("auth"),
		jwtKey:        jwtKey,
		sessionTTL:    sessionTTL,
		emailTokenTTL: emailTokenTTL,
	}
}

// RequestOTP issues a verification code and mails it. For registration
// the email must be unclaimed; for anything else it must belong to a
// user.
func (s *AuthService) RequestOTP(ctx context.Context, email string, isRegistration bool) error {
	name := ""
	user, err := s.users.ByEmail(ctx, email)
	switch {
	case err == nil:
		if isRegistration {
			return errs.ErrEmailTaken
		}
		name = user.Name
	case errors.Is(err, errs.ErrNotFound):
		if !isRegistration {
			return errs.ErrNotFound
		}
	default:
		return err
	}

	code, err := s.otp.Issue(ctx, email)
	if err != nil {
		return err
	}
	subject, body := s.mailCfg.OTPMail(code, name)
	if err := s.mail.Send(ctx, email, subject, body); err != nil {
		s.log.Error("otp mail", zap.String("email", email), zap.Error(err))
		return errors.WithMessage(errs.ErrMail, err.Error())
	}
	return nil
}

// VerifyOTP consumes the code and returns a short-lived token proving
// ownership of the email.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	if err := s.otp.Verify(ctx, email, code); err != nil {
		return "", err
	}
	return auth.IssueEmailToken(s.jwtKey, email, s.emailTokenTTL)
}

// Register creates the user. The verified-email token must bind the
// same address the caller is registering with.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.User, string, error) {
	verifiedEmail, err := auth.ParseEmailToken(s.jwtKey, req.VerifiedEmailToken)
	if err != nil || verifiedEmail != req.Email {
		return model.User{}, "", errs.ErrEmailNotVerified
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, "", err
	}
	user := model.User{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return model.User{}, "", err
	}

	token, err := auth.IssueSession(s.jwtKey, user.ID, user.Username, user.Email, s.sessionTTL)
	if err != nil {
		return model.User{}, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.User, string, error) {
	user, err := s.users.ByEmailOrUsername(ctx, req.EmailOrUsername)
	if err != nil {
		return model.User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return model.User{}, "", errs.ErrInvalidCredentials
	}
	token, err := auth.IssueSession(s.jwtKey, user.ID, user.Username, user.Email, s.sessionTTL)
	if err != nil {
		return model.User{}, "", err
	}
	return user, token, nil
}

// ForgotPassword issues a reset code for an existing account.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return err
	}
	code, err := s.otp.Issue(ctx, email)
	if err != nil {
		return err
	}
	subject, body := s.mailCfg.ResetMail(code, user.Name)
	if err := s.mail.Send(ctx, email, subject, body); err != nil {
		s.log.Error("reset mail", zap.String("email", email), zap.Error(err))
		return errors.WithMessage(errs.ErrMail, err.Error())
	}
	return nil
}

// ResetPassword consumes the reset code and replaces the password hash.
func (s *AuthService) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	if err := s.otp.Verify(ctx, req.Email, req.OTP); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, req.Email, string(hash))
}
