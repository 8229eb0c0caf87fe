package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/solarishq/solaris/internal/auth/domain"
	"github.com/solarishq/solaris/internal/auth/repository"
	"github.com/solarishq/solaris/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.User{}, &domain.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	repo, sessionRepo := repository.New(conn)
	return New(zap.NewNop(), repo, sessionRepo, node)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.RegisterRequest{
		Email:    "asha@example.com",
		Name:     "Asha",
		Password: "sunny-roof-9",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("user id not assigned")
	}
	if user.PasswordHash == nil || *user.PasswordHash == "sunny-roof-9" {
		t.Fatal("password must be stored hashed")
	}

	result, err := svc.Login(ctx, domain.LoginRequest{Email: "asha@example.com", Password: "sunny-roof-9"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.RawToken == "" {
		t.Fatal("login must issue a session token")
	}

	sess, err := svc.Authenticate(ctx, result.RawToken)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if sess.UserID != user.ID {
		t.Fatalf("session user mismatch: %v != %v", sess.UserID, user.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := domain.RegisterRequest{Email: "dup@example.com", Password: "sunny-roof-9"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("duplicate register should fail with ErrUserExists, got %v", err)
	}
}

func TestRegisterRejectsWeakInputs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, domain.RegisterRequest{Email: "not-an-email", Password: "sunny-roof-9"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("bad email should be rejected, got %v", err)
	}
	if _, err := svc.Register(ctx, domain.RegisterRequest{Email: "ok@example.com", Password: "short"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("short password should be rejected, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, domain.RegisterRequest{Email: "a@example.com", Password: "sunny-roof-9"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Login(ctx, domain.LoginRequest{Email: "a@example.com", Password: "wrong-password"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password should fail with ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, domain.LoginRequest{Email: "ghost@example.com", Password: "whatever-123"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user should also report invalid credentials, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, domain.RegisterRequest{Email: "b@example.com", Password: "sunny-roof-9"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	result, err := svc.Login(ctx, domain.LoginRequest{Email: "b@example.com", Password: "sunny-roof-9"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(ctx, result.RawToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Authenticate(ctx, result.RawToken); err == nil {
		t.Fatal("revoked session must not authenticate")
	}
}

func TestSaveEstimateMarksJourneyComplete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.RegisterRequest{Email: "c@example.com", Password: "sunny-roof-9"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.JourneyCompleted {
		t.Fatal("fresh user should not have a completed journey")
	}

	err = svc.SaveEstimate(ctx, user.ID, domain.EstimateSnapshot{
		SystemKw:            3,
		NetCostINR:          81000,
		EstimatedSavingsINR: 21120,
	})
	if err != nil {
		t.Fatalf("save estimate: %v", err)
	}

	got, err := svc.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !got.JourneyCompleted {
		t.Fatal("estimate snapshot should mark the journey complete")
	}
	if got.LastSystemKw == nil || *got.LastSystemKw != 3 {
		t.Fatalf("last system kw not saved: %+v", got.LastSystemKw)
	}
	if got.LastNetCostINR == nil || *got.LastNetCostINR != 81000 {
		t.Fatalf("last net cost not saved: %+v", got.LastNetCostINR)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, domain.RegisterRequest{Email: "d@example.com", Name: "Dee", Password: "sunny-roof-9"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	name := "Deepa Rao"
	phone := "+91-9800000000"
	updated, err := svc.UpdateProfile(ctx, user.ID, domain.UpdateProfileRequest{Name: &name, Phone: &phone})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != name || updated.Phone != phone {
		t.Fatalf("profile not updated: %+v", updated)
	}

	empty := "   "
	if _, err := svc.UpdateProfile(ctx, user.ID, domain.UpdateProfileRequest{Name: &empty}); err == nil {
		t.Fatal("blank name must be rejected")
	}
}
