package repositories

import (
	"testing"
	"user-server/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepo_CreateAssignsSequentialIDs(t *testing.T) {
	repo := NewMemoryUserRepository()

	ann := &entities.User{Name: "Ann Lee", Email: "ann@x.com"}
	require.NoError(t, repo.Create(ann))
	assert.Equal(t, int64(1), ann.ID)
	assert.False(t, ann.CreatedAt.IsZero())

	bo := &entities.User{Name: "Bo", Email: "bo@x.com"}
	require.NoError(t, repo.Create(bo))
	assert.Equal(t, int64(2), bo.ID)
}

func TestMemoryRepo_UniqueEmail(t *testing.T) {
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(&entities.User{Name: "Ann Lee", Email: "ann@x.com"}))

	err := repo.Create(&entities.User{Name: "Bo", Email: "ann@x.com"})
	assert.ErrorIs(t, err, entities.ErrDuplicateEmail)

	exists, err := repo.ExistsByEmail("ann@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail("bo@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryRepo_UpdateConflicts(t *testing.T) {
	repo := NewMemoryUserRepository()

	ann := &entities.User{Name: "Ann Lee", Email: "ann@x.com"}
	require.NoError(t, repo.Create(ann))
	bo := &entities.User{Name: "Bo", Email: "bo@x.com"}
	require.NoError(t, repo.Create(bo))

	bo.Email = "ann@x.com"
	assert.ErrorIs(t, repo.Update(bo), entities.ErrDuplicateEmail)

	missing := &entities.User{ID: 999, Name: "Ghost", Email: "ghost@x.com"}
	assert.ErrorIs(t, repo.Update(missing), entities.ErrNotFound)
}

func TestMemoryRepo_DeleteReportsExistence(t *testing.T) {
	repo := NewMemoryUserRepository()

	ann := &entities.User{Name: "Ann Lee", Email: "ann@x.com"}
	require.NoError(t, repo.Create(ann))

	deleted, err := repo.Delete(ann.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ann.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryRepo_SearchByName(t *testing.T) {
	repo := NewMemoryUserRepository()

	require.NoError(t, repo.Create(&entities.User{Name: "John Smith", Email: "john@x.com"}))
	require.NoError(t, repo.Create(&entities.User{Name: "Ann Lee", Email: "ann@x.com"}))

	matches, err := repo.SearchByName("jOhN")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "John Smith", matches[0].Name)

	none, err := repo.SearchByName("zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}
