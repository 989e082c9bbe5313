package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/core/port/out"
)

type userRow = domain.User

type UserRepository struct {
	s *Store
}

var _ out.UserRepository = (*UserRepository)(nil)

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users.get(user.ID); ok {
		return out.ErrDuplicate
	}
	dup := false
	r.s.users.each(func(row *userRow) bool {
		dup = strings.EqualFold(row.Email, user.Email)
		return !dup
	})
	if dup {
		return out.ErrDuplicate
	}
	r.s.users.insert(user.ID, cloneUser(user))
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.users.get(id)
	if !ok {
		return nil, out.ErrNotFound
	}
	return cloneUser(row), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *domain.User
	r.s.users.each(func(row *userRow) bool {
		if row.Email == email {
			found = cloneUser(row)
			return false
		}
		return true
	})
	if found == nil {
		return nil, out.ErrNotFound
	}
	return found, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, update *domain.UserUpdate, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.users.get(id)
	if !ok {
		return out.ErrNotFound
	}
	if update.FirstName != nil {
		row.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		row.LastName = *update.LastName
	}
	if update.Headline != nil {
		row.Headline = update.Headline
	}
	if update.Summary != nil {
		row.Summary = update.Summary
	}
	if update.Location != nil {
		row.Location = update.Location
	}
	if update.Industry != nil {
		row.Industry = update.Industry
	}
	if update.ExperienceYears != nil {
		row.ExperienceYears = update.ExperienceYears
	}
	if update.Skills != nil {
		row.Skills = update.Skills
	}
	if update.Education != nil {
		row.Education = update.Education
	}
	if update.Experience != nil {
		row.Experience = update.Experience
	}
	row.UpdatedAt = now
	return nil
}

func (r *UserRepository) Search(ctx context.Context, filter *domain.UserFilter) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*domain.User
	r.s.users.each(func(row *userRow) bool {
		if filter.Role != nil && row.Role != *filter.Role {
			return true
		}
		if filter.Query != nil {
			q := *filter.Query
			hit := containsFold(row.FirstName, q) || containsFold(row.LastName, q) ||
				(row.Headline != nil && containsFold(*row.Headline, q)) ||
				slices.Contains(row.Skills, q)
			if !hit {
				return true
			}
		}
		matched = append(matched, cloneUser(row))
		return true
	})
	return page(matched, filter.Skip, filter.Limit), nil
}

func (r *UserRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := []*domain.User{}
	r.s.users.each(func(row *userRow) bool {
		if slices.Contains(ids, row.ID) {
			users = append(users, cloneUser(row))
		}
		return true
	})
	return users, nil
}

func (r *UserRepository) IncrementConnections(ctx context.Context, id string, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if row, ok := r.s.users.get(id); ok {
		row.ConnectionsCount += delta
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(r.s.users.len()), nil
}
