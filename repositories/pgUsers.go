package repositories

import (
	"errors"
	"fmt"
	"user-server/db"
	"user-server/entities"

	"gorm.io/gorm"
)

type userPgRepository struct {
	db db.Database
}

func NewUserPgRepository(database db.Database) UserRepository {
	return &userPgRepository{db: database}
}

func (r *userPgRepository) Create(user *entities.User) error {
	if err := r.db.GetDB().Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userPgRepository) GetByID(id int64) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrNotFound
		}
		return nil, fmt.Errorf("select user by id: %w", err)
	}
	return &user, nil
}

func (r *userPgRepository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrNotFound
		}
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return &user, nil
}

func (r *userPgRepository) GetAll() ([]entities.User, error) {
	var users []entities.User
	err := r.db.GetDB().Find(&users).Error
	return users, err
}

func (r *userPgRepository) SearchByName(term string) ([]entities.User, error) {
	var users []entities.User
	err := r.db.GetDB().Where("name ILIKE ?", "%"+term+"%").Find(&users).Error
	return users, err
}

func (r *userPgRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.GetDB().Model(&entities.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return count > 0, nil
}

func (r *userPgRepository) Count() (int64, error) {
	var count int64
	err := r.db.GetDB().Model(&entities.User{}).Count(&count).Error
	return count, err
}

func (r *userPgRepository) Update(user *entities.User) error {
	if err := r.db.GetDB().Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *userPgRepository) Delete(id int64) (bool, error) {
	res := r.db.GetDB().Where("id = ?", id).Delete(&entities.User{})
	if res.Error != nil {
		return false, fmt.Errorf("delete user: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *userPgRepository) Transaction(fn func(UserRepository) error) error {
	return r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		return fn(&userPgRepository{db: &db.GormDatabase{DB: tx}})
	})
}
