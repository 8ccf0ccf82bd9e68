package repositories

import (
	"strings"
	"sync"
	"time"
	"user-server/entities"
)

type memoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]entities.User
	nextID int64
}

// NewMemoryUserRepository returns a mutex-guarded map implementation of
// UserRepository. It mirrors the postgres semantics (generated ids, unique
// email, hard delete) and backs the business and transport layer tests.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users:  make(map[int64]entities.User),
		nextID: 1,
	}
}

func (r *memoryUserRepository) Create(user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return entities.ErrDuplicateEmail
		}
	}

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) GetByID(id int64) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	return &u, nil
}

func (r *memoryUserRepository) GetByEmail(email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, entities.ErrNotFound
}

func (r *memoryUserRepository) GetAll() ([]entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]entities.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *memoryUserRepository) SearchByName(term string) ([]entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term = strings.ToLower(term)
	users := make([]entities.User, 0)
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Name), term) {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *memoryUserRepository) ExistsByEmail(email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryUserRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func (r *memoryUserRepository) Update(user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return entities.ErrNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return entities.ErrDuplicateEmail
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Delete(id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

// Transaction runs fn directly; the per-operation mutex already serializes
// each step, which is enough for the tests this repository serves.
func (r *memoryUserRepository) Transaction(fn func(UserRepository) error) error {
	return fn(r)
}
