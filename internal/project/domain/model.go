// Package domain contains core types for the project service.
package domain

import (
	"context"
	"io"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Project is a user-tracked installation.
type Project struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID      snowflake.ID `gorm:"column:user_id;not null;index" json:"-"`
	Name        string       `gorm:"column:name;type:text;not null" json:"name"`
	Description string       `gorm:"column:description;type:text" json:"description,omitempty"`
	Location    string       `gorm:"column:location;type:text" json:"location,omitempty"`
	CapacityKw  *float64     `gorm:"column:capacity_kw" json:"capacity_kw,omitempty"`
	ImagePath   string       `gorm:"column:image_path;type:text" json:"image_path,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Project) TableName() string { return "projects" }

type Repository interface {
	Create(ctx context.Context, p *Project) error
	ListByUser(ctx context.Context, userID snowflake.ID) ([]Project, error)
	FindByID(ctx context.Context, userID, id snowflake.ID) (*Project, error)
	Delete(ctx context.Context, userID, id snowflake.ID) error
}

type Service interface {
	Create(ctx context.Context, userID snowflake.ID, req CreateRequest) (*Project, error)
	List(ctx context.Context, userID snowflake.ID) ([]Project, error)
	Get(ctx context.Context, userID, id snowflake.ID) (*Project, error)
	Delete(ctx context.Context, userID, id snowflake.ID) error
}

type CreateRequest struct {
	Name        string
	Description string
	Location    string
	CapacityKw  *float64
	Image       *Upload
}

// Upload is a pending image attachment.
type Upload struct {
	Filename string
	Reader   io.Reader
}
