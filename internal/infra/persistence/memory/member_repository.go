package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"gymgate/internal/domain/entity"
	"gymgate/internal/domain/repository"

	"github.com/google/uuid"
)

// memberRepository implements repository.MemberRepository on the record store.
type memberRepository struct {
	store *Store
}

// NewMemberRepository is the constructor for the volatile member gateway.
func NewMemberRepository(store *Store) repository.MemberRepository {
	return &memberRepository{store: store}
}

func (repo *memberRepository) FindAll(_ context.Context, filter *repository.MemberFilter, page *repository.Page) (repository.PagedResult[*entity.Member], error) {
	repo.store.mu.RLock()
	matched := make([]*entity.Member, 0, len(repo.store.members))
	for _, m := range repo.store.members {
		if matchMember(m, filter) {
			matched = append(matched, cloneMember(m))
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

func (repo *memberRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Member, error) {
	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	m, ok := repo.store.members[id]
	if !ok {
		return nil, repository.ErrMemberNotFound
	}

	return cloneMember(m), nil
}

func (repo *memberRepository) Create(_ context.Context, member *entity.Member) error {
	now := time.Now()
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	member.CreatedAt = now
	member.UpdatedAt = now

	repo.store.mu.Lock()
	repo.store.members[member.ID] = cloneMember(member)
	repo.store.mu.Unlock()

	return nil
}

func (repo *memberRepository) Update(_ context.Context, id uuid.UUID, update repository.MemberUpdate) (*entity.Member, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	m, ok := repo.store.members[id]
	if !ok {
		return nil, repository.ErrMemberNotFound
	}

	if update.Name != nil {
		m.Name = *update.Name
	}
	if update.Phone != nil {
		m.Phone = *update.Phone
	}
	if update.Email != nil {
		m.Email = *update.Email
	}
	if update.BranchID != nil {
		m.BranchID = *update.BranchID
	}
	if update.PlanName != nil {
		m.PlanName = *update.PlanName
	}
	if update.Status != nil {
		m.Status = *update.Status
	}
	if update.ExpiryDate != nil {
		m.ExpiryDate = *update.ExpiryDate
	}
	if update.LastVisit != nil {
		lv := *update.LastVisit
		m.LastVisit = &lv
	}
	m.UpdatedAt = time.Now()

	return cloneMember(m), nil
}

func (repo *memberRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, ok := repo.store.members[id]; !ok {
		return false, nil
	}
	delete(repo.store.members, id)

	return true, nil
}

func matchMember(m *entity.Member, filter *repository.MemberFilter) bool {
	if filter == nil {
		return true
	}
	if filter.BranchID != nil && m.BranchID != *filter.BranchID {
		return false
	}
	if filter.Status != nil && m.Status != *filter.Status {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(m.Name), needle) &&
			!strings.Contains(strings.ToLower(m.Phone), needle) &&
			!strings.Contains(strings.ToLower(m.Email), needle) {
			return false
		}
	}

	return true
}
