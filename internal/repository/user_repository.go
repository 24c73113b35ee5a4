package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/dkotenko/filegate/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(offset, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at ASC").Offset(offset).Limit(limit).Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateLastLogin(id uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("last_login", now).Error
}

func (r *UserRepository) SetActive(id uuid.UUID, active bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("is_active", active).Error
}

func (r *UserRepository) SetRole(id uuid.UUID, role string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("role", role).Error
}

// DeleteWithFiles hard-deletes the user and soft-deletes all owned files in a
// single transaction. Either both take effect or neither does. Returns the
// number of files soft-deleted.
func (r *UserRepository) DeleteWithFiles(id uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("owner_id = ?", id).Delete(&models.File{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return deleted, nil
}
