package users

import (
	"context"

	"github.com/dmitrijs2005/photojournal/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, username, hashedPassword string) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
