package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID    int64  `gorm:"column:id;primaryKey"`
	Name  string `gorm:"column:name"`
	Email string `gorm:"column:email;uniqueIndex"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{ID: m.ID, Name: m.Name, Email: m.Email}
}

func toUserModel(u *domain.User) userModel {
	return userModel{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}
	u.ID = m.ID
	return nil
}

func (r *UserRepository) Save(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainUser(m), nil
}

// FindByEmailExcludingID looks for another user already holding an email.
// Used by patch to allow re-submitting the caller's own address.
func (r *UserRepository) FindByEmailExcludingID(ctx context.Context, email string, id int64) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).Where("email = ? AND id <> ?", email, id).First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	var models []userModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	users := make([]domain.User, 0, len(models))
	for _, m := range models {
		users = append(users, *toDomainUser(m))
	}
	return users, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&userModel{}, id)
	if tx.Error != nil {
		return fmt.Errorf("delete user: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
