package usecases

import (
	"fmt"
	"strings"
	"user-server/entities"
	"user-server/repositories"
)

type UserUseCase struct {
	UserRepo repositories.UserRepository
}

func NewUserUseCase(userRepo repositories.UserRepository) *UserUseCase {
	return &UserUseCase{
		UserRepo: userRepo,
	}
}

// validateUser enforces the record invariants: non-blank name, email with "@".
func validateUser(user *entities.User) error {
	if user.Name == "" {
		return fmt.Errorf("%w: name is required", entities.ErrInvalidInput)
	}
	if user.Email == "" {
		return fmt.Errorf("%w: email is required", entities.ErrInvalidInput)
	}
	if !strings.Contains(user.Email, "@") {
		return fmt.Errorf("%w: email must contain @", entities.ErrInvalidInput)
	}
	return nil
}

func normalize(user *entities.User) {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)
	user.Phone = strings.TrimSpace(user.Phone)
}

// CreateUser inserts a new user. The duplicate-email check and the insert run
// in one transaction; a writer racing past the check still hits the unique
// index and surfaces as ErrDuplicateEmail.
func (uc *UserUseCase) CreateUser(user *entities.User) (*entities.User, error) {
	normalize(user)
	if err := validateUser(user); err != nil {
		return nil, err
	}

	err := uc.UserRepo.Transaction(func(repo repositories.UserRepository) error {
		exists, err := repo.ExistsByEmail(user.Email)
		if err != nil {
			return err
		}
		if exists {
			return entities.ErrDuplicateEmail
		}
		return repo.Create(user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (uc *UserUseCase) GetUser(id int64) (*entities.User, error) {
	return uc.UserRepo.GetByID(id)
}

// GetUserByEmail retrieves a user by email
func (uc *UserUseCase) GetUserByEmail(email string) (*entities.User, error) {
	return uc.UserRepo.GetByEmail(email)
}

// GetAllUsers retrieves all users
func (uc *UserUseCase) GetAllUsers() ([]entities.User, error) {
	return uc.UserRepo.GetAll()
}

// UpdateUser overwrites name, email and phone of an existing user. ID and
// CreatedAt are never touched.
func (uc *UserUseCase) UpdateUser(id int64, input *entities.User) (*entities.User, error) {
	normalize(input)
	if err := validateUser(input); err != nil {
		return nil, err
	}

	var updated *entities.User
	err := uc.UserRepo.Transaction(func(repo repositories.UserRepository) error {
		existing, err := repo.GetByID(id)
		if err != nil {
			return err
		}

		// Only check for a conflict when the email actually changes
		if existing.Email != input.Email {
			exists, err := repo.ExistsByEmail(input.Email)
			if err != nil {
				return err
			}
			if exists {
				return entities.ErrDuplicateEmail
			}
		}

		existing.Name = input.Name
		existing.Email = input.Email
		existing.Phone = input.Phone

		if err := repo.Update(existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteUser removes a user and reports whether a record existed. Absence is
// a reported boolean, not a fault.
func (uc *UserUseCase) DeleteUser(id int64) (bool, error) {
	return uc.UserRepo.Delete(id)
}

// SearchUsers matches names case-insensitively; a blank term lists everyone.
func (uc *UserUseCase) SearchUsers(term string) ([]entities.User, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return uc.UserRepo.GetAll()
	}
	return uc.UserRepo.SearchByName(term)
}

// CountUsers returns the total number of users
func (uc *UserUseCase) CountUsers() (int64, error) {
	return uc.UserRepo.Count()
}
