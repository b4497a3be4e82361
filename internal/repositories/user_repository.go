package repositories

import (
	"github.com/damianut/public-InterSynergy/internal/models"
	"github.com/google/uuid"
)

type UserRepository interface {
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByConfirmationToken(token string) (*models.User, error)
	GetByResetToken(token string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id uuid.UUID) error
	GetAll() ([]models.User, error)
	ExistsByEmail(email string) (bool, error)
}
