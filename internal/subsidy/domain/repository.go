package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	CreateSubmission(ctx context.Context, sub *Submission) error
	ListByUser(ctx context.Context, userID snowflake.ID) ([]Submission, error)
	FindByID(ctx context.Context, userID, id snowflake.ID) (*Submission, error)
}
