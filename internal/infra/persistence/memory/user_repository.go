package memory

import (
	"context"
	"sort"
	"time"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"

	"github.com/google/uuid"
)

// userRepository implements repository.DirectoryUserRepository on the record store.
type userRepository struct {
	store *Store
}

// NewDirectoryUserRepository is the constructor for the volatile directory gateway.
func NewDirectoryUserRepository(store *Store) repository.DirectoryUserRepository {
	return &userRepository{store: store}
}

func (repo *userRepository) FindAll(_ context.Context, filter *repository.DirectoryUserFilter, page *repository.Page) (repository.PagedResult[*entity.DirectoryUser], error) {
	repo.store.mu.RLock()
	matched := make([]*entity.DirectoryUser, 0, len(repo.store.users))
	for _, u := range repo.store.users {
		if matchUser(u, filter) {
			matched = append(matched, cloneUser(u))
		}
	}
	repo.store.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}

		return matched[i].ID.String() < matched[j].ID.String()
	})

	return repository.Paginate(matched, page), nil
}

func (repo *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.DirectoryUser, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	u, ok := repo.store.users[id]
	if !ok {
		return nil, repository.ErrDirectoryUserNotFound
	}

	return cloneUser(u), nil
}

func (repo *userRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, role entity.Role) ([]*entity.DirectoryUser, error) {
	result, err := repo.FindAll(ctx, &repository.DirectoryUserFilter{BranchID: &branchID, Role: &role}, nil)
	if err != nil {
		return nil, err
	}

	return result.Data, nil
}

func (repo *userRepository) Create(_ context.Context, user *entity.DirectoryUser) error {
	now := time.Now()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	repo.store.mu.Lock()
	repo.store.users[user.ID] = cloneUser(user)
	repo.store.mu.Unlock()

	return nil
}

func (repo *userRepository) Update(_ context.Context, id uuid.UUID, update repository.DirectoryUserUpdate) (*entity.DirectoryUser, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	u, ok := repo.store.users[id]
	if !ok {
		return nil, repository.ErrDirectoryUserNotFound
	}

	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.BranchID != nil {
		b := *update.BranchID
		u.BranchID = &b
	}
	u.UpdatedAt = time.Now()

	return cloneUser(u), nil
}

func (repo *userRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, ok := repo.store.users[id]; !ok {
		return false, nil
	}
	delete(repo.store.users, id)

	return true, nil
}

func matchUser(u *entity.DirectoryUser, filter *repository.DirectoryUserFilter) bool {
	if filter == nil {
		return true
	}
	if filter.BranchID != nil && (u.BranchID == nil || *u.BranchID != *filter.BranchID) {
		return false
	}
	if filter.Role != nil && u.Role != *filter.Role {
		return false
	}

	return true
}
