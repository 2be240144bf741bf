package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nishantpawar/institute-backend/internal/users"
	pkgauth "github.com/nishantpawar/institute-backend/pkg/auth"
	"github.com/nishantpawar/institute-backend/pkg/config"
	"github.com/nishantpawar/institute-backend/pkg/db/models"
	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
	"github.com/nishantpawar/institute-backend/pkg/logger"
	"github.com/nishantpawar/institute-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the OTP and login controllers.
type Service interface {
	SendOTP(ctx context.Context, req SendOTPRequest, clientIP string) error
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type otpStore interface {
	StoreOTP(ctx context.Context, email, code string, ttl time.Duration) error
	GetOTP(ctx context.Context, email string) (string, error)
	DeleteOTP(ctx context.Context, email string) error
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type otpMailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

type service struct {
	users       userRepository
	otp         otpStore
	mailer      otpMailer
	logg        *logger.Logger
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	otpCfg      config.OTPConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	OTPStore       otpStore
	Mailer         otpMailer
	Logger         *logger.Logger
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	OTPConfig      config.OTPConfig
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "user repository required")
	}
	if params.OTPStore == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "otp store required")
	}
	if params.Mailer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mailer required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		users:       params.UserRepo,
		otp:         params.OTPStore,
		mailer:      params.Mailer,
		logg:        params.Logger,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		otpCfg:      params.OTPConfig,
	}, nil
}

func (s *service) SendOTP(ctx context.Context, req SendOTPRequest, clientIP string) error {
	email := normalizeEmail(req.Email)
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	if err := s.allowSend(ctx, email, clientIP); err != nil {
		return err
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking registration state")
	}
	if exists {
		return pkgerrors.New(pkgerrors.CodeConflict, "email is already registered")
	}

	code, err := generateOTP()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating otp")
	}

	if err := s.otp.StoreOTP(ctx, email, code, s.otpCfg.TTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing otp")
	}

	if err := s.mailer.Send(ctx, email, "Your verification code", renderOTPMail(code, s.otpCfg.TTL)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sending otp mail")
	}

	s.logg.Info(s.logg.WithField(ctx, "email", email), "otp sent")
	return nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, email and password are required")
	}

	stored, err := s.otp.GetOTP(ctx, email)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "otp expired or not requested")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading otp")
	}
	if stored != strings.TrimSpace(req.OTP) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid otp")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		MobileNumber: req.MobileNumber,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating user")
	}

	if err := s.otp.DeleteOTP(ctx, email); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "email", email), "failed to clear consumed otp")
	}

	token, err := s.mintToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Success: true, Token: token, User: users.FromModel(user)}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading user")
	}

	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, err := s.mintToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Success: true, Token: token, User: users.FromModel(user)}, nil
}

func (s *service) mintToken(user *models.User) (string, error) {
	token, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
	}
	return token, nil
}

func (s *service) allowSend(ctx context.Context, email, clientIP string) error {
	limit := int64(s.otpCfg.SendEmailLimit)
	if limit > 0 {
		allowed, _, err := s.otp.FixedWindowAllow(ctx, "otp_email:"+email, limit, s.otpCfg.SendWindow)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "otp rate limit")
		}
		if !allowed {
			return pkgerrors.New(pkgerrors.CodeRateLimit, "too many codes requested for this email")
		}
	}

	ipLimit := int64(s.otpCfg.SendIPLimit)
	if ipLimit > 0 && clientIP != "" {
		allowed, _, err := s.otp.FixedWindowAllow(ctx, "otp_ip:"+clientIP, ipLimit, s.otpCfg.SendWindow)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "otp rate limit")
		}
		if !allowed {
			return pkgerrors.New(pkgerrors.CodeRateLimit, "too many codes requested from this address")
		}
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func renderOTPMail(code string, ttl time.Duration) string {
	minutes := int(ttl.Minutes())
	if minutes <= 0 {
		minutes = 10
	}
	return fmt.Sprintf(
		`<div style="font-family:Arial,sans-serif"><h2>Verify your email</h2><p>Your verification code is:</p><p style="font-size:28px;letter-spacing:4px"><strong>%s</strong></p><p>The code expires in %d minutes.</p><hr/><p style="color:#888;font-size:12px">This is an automated mail. Please do not reply.</p></div>`,
		code, minutes,
	)
}
