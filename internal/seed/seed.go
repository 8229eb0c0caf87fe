// Package seed bootstraps demo data for local environments.
package seed

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/solarishq/solaris/internal/auth/domain"
	"github.com/solarishq/solaris/internal/auth/password"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	demoEmail    = "demo@solaris.local"
	demoPassword = "solar-demo-123"
)

// EnsureDemoUser creates the demo account once. Enabled only by config, for
// local walkthroughs of the wizard without a signup step.
func EnsureDemoUser(conn *gorm.DB, genID *snowflake.Node) error {
	var existing authdomain.User
	err := conn.Where("email = ?", demoEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup demo user: %w", err)
	}

	hash, err := password.Hash(demoPassword)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	now := time.Now().UTC()
	user := authdomain.User{
		ID:           genID.Generate(),
		Email:        demoEmail,
		Name:         "Demo Household",
		PasswordHash: &hash,
		Metadata:     datatypes.JSONMap{"seeded": true},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := conn.Create(&user).Error; err != nil {
		return fmt.Errorf("create demo user: %w", err)
	}
	return nil
}
