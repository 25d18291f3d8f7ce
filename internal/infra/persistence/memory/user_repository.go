package memory

import (
	"context"

	"bridge/internal/domain/entity"
	domainerrors "bridge/internal/domain/errors"
	"bridge/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	access access
}

// NewUserRepository returns a UserRepository backed by store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{access: access{store: store}}
}

func (repo *userRepository) CreateUser(_ context.Context, user *entity.User) error {
	return repo.access.write(func(st *state) error {
		if _, ok := st.users[user.ID]; ok {
			return domainerrors.NewDatabaseExecuteError(errDuplicateID, "failed to create user")
		}
		for _, existing := range st.users {
			if existing.Email == user.Email {
				return domainerrors.ErrEmailAlreadyExists.WrapMessage("user email already registered")
			}
		}

		now := repo.access.store.timestamp()
		if user.CreatedAt.IsZero() {
			user.CreatedAt = now
		}
		user.UpdatedAt = now

		st.users[user.ID] = cloneUser(user)
		repo.access.store.userGrid.Put(user.ID, user.Location)

		return nil
	})
}

func (repo *userRepository) FindUserByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	var found *entity.User
	err := repo.access.read(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return repository.ErrUserNotFound
		}
		found = cloneUser(u)

		return nil
	})

	return found, err
}

func (repo *userRepository) ExistsUserByEmail(_ context.Context, email string) (bool, error) {
	var exists bool
	err := repo.access.read(func(st *state) error {
		for _, u := range st.users {
			if u.Email == email {
				exists = true

				break
			}
		}

		return nil
	})

	return exists, err
}

func (repo *userRepository) UpdateUser(_ context.Context, user *entity.User) error {
	return repo.access.write(func(st *state) error {
		current, ok := st.users[user.ID]
		if !ok {
			return repository.ErrUserNotFound
		}
		for id, other := range st.users {
			if id != user.ID && other.Email == user.Email {
				return domainerrors.ErrEmailAlreadyExists.WrapMessage("user email already registered")
			}
		}

		user.CreatedAt = current.CreatedAt
		user.UpdatedAt = repo.access.store.timestamp()

		st.users[user.ID] = cloneUser(user)
		repo.access.store.userGrid.Put(user.ID, user.Location)

		return nil
	})
}

// DeleteUser removes the user and, like the foreign key cascade, their reviews.
func (repo *userRepository) DeleteUser(_ context.Context, id uuid.UUID) error {
	return repo.access.write(func(st *state) error {
		if _, ok := st.users[id]; !ok {
			return repository.ErrUserNotFound
		}
		delete(st.users, id)
		repo.access.store.userGrid.Remove(id)

		for reviewID, r := range st.reviews {
			if r.UserID == id {
				st.removeReview(reviewID)
			}
		}

		return nil
	})
}

func (repo *userRepository) ListUsers(_ context.Context) ([]*entity.User, error) {
	var users []*entity.User
	err := repo.access.read(func(st *state) error {
		users = sortedValues(st.users, nil, compareUsers, cloneUser)

		return nil
	})

	return users, err
}

func (repo *userRepository) FindLocatedUsers(_ context.Context, filter repository.LocatedFilter) ([]*entity.User, error) {
	users := []*entity.User{}
	if filter.Category != nil {
		return users, nil
	}

	err := repo.access.read(func(st *state) error {
		if filter.Bound == nil {
			users = sortedValues(st.users, func(u *entity.User) bool { return u.Location != nil }, compareUsers, cloneUser)

			return nil
		}

		for _, id := range repo.access.store.userGrid.Within(*filter.Bound) {
			if u, ok := st.users[id]; ok && u.Location != nil {
				users = append(users, cloneUser(u))
			}
		}

		return nil
	})

	return users, err
}

func compareUsers(a, b *entity.User) int {
	return oldestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
}
