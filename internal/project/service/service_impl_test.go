package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/solarishq/solaris/internal/config"
	"github.com/solarishq/solaris/internal/project/domain"
	"github.com/solarishq/solaris/internal/project/repository"
	"github.com/solarishq/solaris/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.Project{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	cfg := config.Config{
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
	}
	return New(zap.NewNop(), repository.New(conn), node, cfg)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := snowflake.ID(1)

	if _, err := svc.Create(ctx, userID, domain.CreateRequest{Name: "  "}); !errors.Is(err, domain.ErrInvalidProject) {
		t.Fatalf("blank name should be invalid, got %v", err)
	}

	zero := 0.0
	if _, err := svc.Create(ctx, userID, domain.CreateRequest{Name: "Rooftop", CapacityKw: &zero}); !errors.Is(err, domain.ErrInvalidProject) {
		t.Fatalf("zero capacity should be invalid, got %v", err)
	}
}

func TestCreateListGetDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID := snowflake.ID(2)

	capacity := 3.2
	created, err := svc.Create(ctx, userID, domain.CreateRequest{
		Name:       "Home rooftop",
		Location:   "Pune",
		CapacityKw: &capacity,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := svc.List(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list mismatch: %+v", list)
	}

	got, err := svc.Get(ctx, userID, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Home rooftop" {
		t.Fatalf("project name = %q", got.Name)
	}

	if _, err := svc.Get(ctx, snowflake.ID(99), created.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("foreign project must be hidden, got %v", err)
	}

	if err := svc.Delete(ctx, userID, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, userID, created.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("deleted project should be gone, got %v", err)
	}
	if err := svc.Delete(ctx, userID, created.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("double delete should report not found, got %v", err)
	}
}

func TestCreateWithImage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, snowflake.ID(3), domain.CreateRequest{
		Name: "With photo",
		Image: &domain.Upload{
			Filename: "roof.jpg",
			Reader:   strings.NewReader("not-really-a-jpeg"),
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ImagePath == "" {
		t.Fatal("image path not recorded")
	}
	if _, err := os.Stat(created.ImagePath); err != nil {
		t.Fatalf("image file missing: %v", err)
	}
	if strings.Contains(created.ImagePath, "roof") {
		t.Fatalf("client filename must not reach disk: %q", created.ImagePath)
	}

	if err := svc.Delete(ctx, snowflake.ID(3), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(created.ImagePath); !os.IsNotExist(err) {
		t.Fatalf("image should be removed with the project, got %v", err)
	}
}

func TestCreateRejectsBadImage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, snowflake.ID(4), domain.CreateRequest{
		Name: "Bad upload",
		Image: &domain.Upload{
			Filename: "malware.exe",
			Reader:   strings.NewReader("nope"),
		},
	})
	if !errors.Is(err, domain.ErrInvalidImage) {
		t.Fatalf("disallowed extension should fail, got %v", err)
	}
}

func TestCreateEnforcesUploadLimit(t *testing.T) {
	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.Project{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	svc := New(zap.NewNop(), repository.New(conn), node, config.Config{
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 8,
	})

	_, err = svc.Create(context.Background(), snowflake.ID(5), domain.CreateRequest{
		Name: "Too big",
		Image: &domain.Upload{
			Filename: "big.png",
			Reader:   strings.NewReader("way more than eight bytes"),
		},
	})
	if !errors.Is(err, domain.ErrInvalidImage) {
		t.Fatalf("oversize upload should fail, got %v", err)
	}
}
