package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/solarishq/solaris/internal/config"
	"github.com/solarishq/solaris/internal/project/domain"
	"go.uber.org/zap"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type Service struct {
	log       *zap.Logger
	repo      domain.Repository
	genID     *snowflake.Node
	uploadDir string
	maxBytes  int64
}

func New(log *zap.Logger, repo domain.Repository, genID *snowflake.Node, cfg config.Config) domain.Service {
	return &Service{
		log:       log.Named("project.service"),
		repo:      repo,
		genID:     genID,
		uploadDir: cfg.UploadDir,
		maxBytes:  cfg.MaxUploadBytes,
	}
}

func (s *Service) Create(ctx context.Context, userID snowflake.ID, req domain.CreateRequest) (*domain.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidProject
	}
	if req.CapacityKw != nil && *req.CapacityKw <= 0 {
		return nil, domain.ErrInvalidProject
	}

	p := &domain.Project{
		ID:          s.genID.Generate(),
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		CapacityKw:  req.CapacityKw,
	}

	if req.Image != nil {
		path, err := s.saveImage(req.Image)
		if err != nil {
			return nil, err
		}
		p.ImagePath = path
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if p.ImagePath != "" {
			s.removeImage(p.ImagePath)
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, userID snowflake.ID) ([]domain.Project, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id snowflake.ID) (*domain.Project, error) {
	return s.repo.FindByID(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id snowflake.ID) error {
	p, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	if p.ImagePath != "" {
		s.removeImage(p.ImagePath)
	}
	return nil
}

// saveImage writes the upload under a random name so client filenames never
// touch the filesystem.
func (s *Service) saveImage(img *domain.Upload) (string, error) {
	ext := strings.ToLower(filepath.Ext(img.Filename))
	if !allowedImageExts[ext] {
		return "", domain.ErrInvalidImage
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}

	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	path := filepath.Join(s.uploadDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	written, err := io.Copy(f, io.LimitReader(img.Reader, s.maxBytes+1))
	if err != nil {
		s.removeImage(path)
		return "", err
	}
	if written > s.maxBytes {
		s.removeImage(path)
		return "", domain.ErrInvalidImage
	}

	return path, nil
}

func (s *Service) removeImage(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("remove project image", zap.String("path", path), zap.Error(err))
	}
}
