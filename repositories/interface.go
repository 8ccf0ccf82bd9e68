package repositories

import "user-server/entities"

type UserRepository interface {
	Create(user *entities.User) error
	GetByID(id int64) (*entities.User, error)
	GetByEmail(email string) (*entities.User, error)
	GetAll() ([]entities.User, error)
	SearchByName(term string) ([]entities.User, error)
	ExistsByEmail(email string) (bool, error)
	Count() (int64, error)
	Update(user *entities.User) error
	Delete(id int64) (bool, error)

	// Transaction runs fn against a repository bound to a single database
	// transaction. The check-then-write sequences in create and update run
	// inside this scope so a racing writer cannot slip between them.
	Transaction(fn func(UserRepository) error) error
}
