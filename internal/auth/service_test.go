package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nishantpawar/institute-backend/internal/users"
	"github.com/nishantpawar/institute-backend/pkg/config"
	"github.com/nishantpawar/institute-backend/pkg/db/models"
	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
	"github.com/nishantpawar/institute-backend/pkg/logger"
	"github.com/nishantpawar/institute-backend/pkg/security"
)

type stubUserRepo struct {
	usersByEmail map[string]*models.User
	created      []users.CreateUserDTO
	createErr    error
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, dto)
	user := dto.ToModel()
	user.ID = uuid.New()
	return user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := s.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := s.usersByEmail[email]
	return ok, nil
}

type stubOTPStore struct {
	codes     map[string]string
	storeErr  error
	denyScope string
}

func (s *stubOTPStore) StoreOTP(ctx context.Context, email, code string, ttl time.Duration) error {
	if s.storeErr != nil {
		return s.storeErr
	}
	if s.codes == nil {
		s.codes = map[string]string{}
	}
	s.codes[email] = code
	return nil
}

func (s *stubOTPStore) GetOTP(ctx context.Context, email string) (string, error) {
	code, ok := s.codes[email]
	if !ok {
		return "", goredis.Nil
	}
	return code, nil
}

func (s *stubOTPStore) DeleteOTP(ctx context.Context, email string) error {
	delete(s.codes, email)
	return nil
}

func (s *stubOTPStore) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	if s.denyScope != "" && scope == s.denyScope {
		return false, limit + 1, nil
	}
	return true, 1, nil
}

type stubMailer struct {
	sent    []sentMail
	sendErr error
}

type sentMail struct {
	to      string
	subject string
	html    string
}

func (s *stubMailer) Send(ctx context.Context, to, subject, html string) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, html: html})
	return nil
}

func newTestService(t *testing.T, repo *stubUserRepo, otp *stubOTPStore, mail *stubMailer) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo: repo,
		OTPStore: otp,
		Mailer:   mail,
		Logger:   logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		JWTConfig: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "institute-api",
			ExpirationMinutes: 60,
		},
		PasswordConfig: config.PasswordConfig{
			ArgonMemoryKB:    8,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     8,
			ArgonKeyLen:      16,
		},
		OTPConfig: config.OTPConfig{
			TTL:            10 * time.Minute,
			SendWindow:     time.Minute,
			SendIPLimit:    20,
			SendEmailLimit: 3,
		},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSendOTPStoresAndMailsCode(t *testing.T) {
	repo := &stubUserRepo{usersByEmail: map[string]*models.User{}}
	otp := &stubOTPStore{}
	mail := &stubMailer{}
	svc := newTestService(t, repo, otp, mail)

	if err := svc.SendOTP(context.Background(), SendOTPRequest{Email: "New@Example.com"}, "10.0.0.1"); err != nil {
		t.Fatalf("send otp: %v", err)
	}

	code, ok := otp.codes["new@example.com"]
	if !ok {
		t.Fatal("expected code stored under normalized email")
	}
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}
	if len(mail.sent) != 1 || mail.sent[0].to != "new@example.com" {
		t.Fatalf("expected one mail to the requester, got %+v", mail.sent)
	}
}

func TestSendOTPRejectsRegisteredEmail(t *testing.T) {
	repo := &stubUserRepo{usersByEmail: map[string]*models.User{
		"taken@example.com": {Email: "taken@example.com"},
	}}
	svc := newTestService(t, repo, &stubOTPStore{}, &stubMailer{})

	err := svc.SendOTP(context.Background(), SendOTPRequest{Email: "taken@example.com"}, "")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSendOTPRateLimited(t *testing.T) {
	repo := &stubUserRepo{usersByEmail: map[string]*models.User{}}
	otp := &stubOTPStore{denyScope: "otp_email:new@example.com"}
	svc := newTestService(t, repo, otp, &stubMailer{})

	err := svc.SendOTP(context.Background(), SendOTPRequest{Email: "new@example.com"}, "")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeRateLimit {
		t.Fatalf("expected rate limit, got %v", err)
	}
}

func TestRegisterVerifiesOTPAndHashesPassword(t *testing.T) {
	repo := &stubUserRepo{usersByEmail: map[string]*models.User{}}
	otp := &stubOTPStore{codes: map[string]string{"new@example.com": "482913"}}
	svc := newTestService(t, repo, otp, &stubMailer{})

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "New Student",
		Email:    "new@example.com",
		Password: "correct horse battery",
		OTP:      "482913",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !resp.Success || resp.Token == "" || resp.User == nil {
		t.Fatalf("unexpected response %+v", resp)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected one user created")
	}
	match, err := security.VerifyPassword("correct horse battery", repo.created[0].PasswordHash)
	if err != nil || !match {
		t.Fatalf("stored hash should verify, match=%v err=%v", match, err)
	}

	// the consumed code must not be replayable
	if _, ok := otp.codes["new@example.com"]; ok {
		t.Fatal("expected otp to be deleted after registration")
	}
}

func TestRegisterRejectsWrongOrMissingOTP(t *testing.T) {
	repo := &stubUserRepo{usersByEmail: map[string]*models.User{}}
	otp := &stubOTPStore{codes: map[string]string{"new@example.com": "482913"}}
	svc := newTestService(t, repo, otp, &stubMailer{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name: "X", Email: "new@example.com", Password: "password123", OTP: "000000",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for wrong otp, got %v", err)
	}

	_, err = svc.Register(context.Background(), RegisterRequest{
		Name: "X", Email: "other@example.com", Password: "password123", OTP: "482913",
	})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for missing otp, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	passwordCfg := config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
	hash, err := security.HashPassword("s3cretpass", passwordCfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	repo := &stubUserRepo{usersByEmail: map[string]*models.User{
		"ana@example.com": {ID: uuid.New(), Name: "Ana", Email: "ana@example.com", PasswordHash: hash},
	}}
	svc := newTestService(t, repo, &stubOTPStore{}, &stubMailer{})

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "Ana@Example.com", Password: "s3cretpass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Fatalf("unexpected response %+v", resp)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "wrong"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for bad password, got %v", err)
	}

	_, err = svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown user, got %v", err)
	}
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	if _, err := NewService(ServiceParams{OTPStore: &stubOTPStore{}, Mailer: &stubMailer{}, Logger: logg}); err == nil {
		t.Fatal("expected missing user repo to fail")
	}
	if _, err := NewService(ServiceParams{UserRepo: &stubUserRepo{}, Mailer: &stubMailer{}, Logger: logg}); err == nil {
		t.Fatal("expected missing otp store to fail")
	}
	if _, err := NewService(ServiceParams{UserRepo: &stubUserRepo{}, OTPStore: &stubOTPStore{}, Logger: logg}); err == nil {
		t.Fatal("expected missing mailer to fail")
	}
}
