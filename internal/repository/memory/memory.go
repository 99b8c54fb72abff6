// Package memory keeps every record in process memory. It backs the
// "memory" database driver used for local development and end-to-end tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/repository"
)

// tables is shared by all repositories of one Store so that joins see a
// consistent snapshot.
type tables struct {
	mu            sync.RWMutex
	seq           int64
	users         map[int64]domain.User
	organizations map[int64]domain.Organization
	donations     map[int64]domain.Donation
	stories       map[int64]domain.Story
	beneficiaries map[int64]domain.Beneficiary
	inventory     map[int64]domain.Inventory
}

func (t *tables) nextID() int64 {
	t.seq++
	return t.seq
}

type Store struct {
	repository.UserRepository
	repository.OrganizationRepository
	repository.DonationRepository
	repository.StoryRepository
	repository.BeneficiaryRepository
	repository.InventoryRepository
}

func NewStore() *Store {
	t := &tables{
		users:         map[int64]domain.User{},
		organizations: map[int64]domain.Organization{},
		donations:     map[int64]domain.Donation{},
		stories:       map[int64]domain.Story{},
		beneficiaries: map[int64]domain.Beneficiary{},
		inventory:     map[int64]domain.Inventory{},
	}
	return &Store{
		UserRepository:         &userRepo{t},
		OrganizationRepository: &organizationRepo{t},
		DonationRepository:     &donationRepo{t},
		StoryRepository:        &storyRepo{t},
		BeneficiaryRepository:  &beneficiaryRepo{t},
		InventoryRepository:    &inventoryRepo{t},
	}
}

type userRepo struct{ t *tables }

func (r *userRepo) Create(_ context.Context, u *domain.User) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	for _, existing := range r.t.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	u.ID = r.t.nextID()
	u.CreatedAt = time.Now().UTC()
	r.t.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	u, ok := r.t.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	for _, u := range r.t.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) ListByRole(_ context.Context, role domain.UserRole) ([]domain.User, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	var users []domain.User
	for _, u := range r.t.users {
		if u.Role == role {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type organizationRepo struct{ t *tables }

func (r *organizationRepo) Create(_ context.Context, o *domain.Organization) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	if _, ok := r.t.users[o.OwnerID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range r.t.organizations {
		if existing.OwnerID == o.OwnerID {
			return repository.ErrDuplicate
		}
	}
	o.ID = r.t.nextID()
	o.CreatedAt = time.Now().UTC()
	r.t.organizations[o.ID] = *o
	return nil
}

func (r *organizationRepo) GetByID(_ context.Context, id int64) (*domain.Organization, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	o, ok := r.t.organizations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (r *organizationRepo) GetByOwner(_ context.Context, ownerID int64) (*domain.Organization, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	for _, o := range r.t.organizations {
		if o.OwnerID == ownerID {
			return &o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *organizationRepo) ListByStatus(_ context.Context, status domain.OrganizationStatus) ([]domain.Organization, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	var out []domain.Organization
	for _, o := range r.t.organizations {
		if o.Status == status {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *organizationRepo) UpdateStatus(_ context.Context, id int64, status domain.OrganizationStatus) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	o, ok := r.t.organizations[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	r.t.organizations[id] = o
	return nil
}

type donationRepo struct{ t *tables }

func (r *donationRepo) Create(_ context.Context, d *domain.Donation) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	for _, existing := range r.t.donations {
		if existing.PaymentIntentID == d.PaymentIntentID {
			return repository.ErrDuplicate
		}
	}
	d.ID = r.t.nextID()
	d.CreatedAt = time.Now().UTC()
	r.t.donations[d.ID] = *d
	return nil
}

func (r *donationRepo) GetByID(_ context.Context, id int64) (*domain.Donation, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	d, ok := r.t.donations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (r *donationRepo) GetByPaymentIntentID(_ context.Context, intentID string) (*domain.Donation, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	for _, d := range r.t.donations {
		if d.PaymentIntentID == intentID {
			return &d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *donationRepo) TransitionStatus(_ context.Context, id int64, from, to domain.DonationStatus) (bool, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	d, ok := r.t.donations[id]
	if !ok || d.Status != from {
		return false, nil
	}
	d.Status = to
	r.t.donations[id] = d
	return true, nil
}

func (r *donationRepo) ListByOrganization(_ context.Context, orgID int64) ([]domain.DonationRecord, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	var out []domain.DonationRecord
	for _, d := range r.t.donations {
		if d.OrganizationID != orgID {
			continue
		}
		donor := r.t.users[d.DonorID]
		out = append(out, domain.DonationRecord{Donation: d, DonorName: donor.Name, DonorEmail: donor.Email})
	}
	// newest first, matching the SQL ordering
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type storyRepo struct{ t *tables }

func (r *storyRepo) Create(_ context.Context, s *domain.Story) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	s.ID = r.t.nextID()
	s.CreatedAt = time.Now().UTC()
	r.t.stories[s.ID] = *s
	return nil
}

func (r *storyRepo) ListByOrganization(_ context.Context, orgID int64) ([]domain.Story, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	var out []domain.Story
	for _, s := range r.t.stories {
		if s.OrganizationID == orgID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type beneficiaryRepo struct{ t *tables }

func (r *beneficiaryRepo) Create(_ context.Context, b *domain.Beneficiary) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	b.ID = r.t.nextID()
	b.CreatedAt = time.Now().UTC()
	r.t.beneficiaries[b.ID] = *b
	return nil
}

func (r *beneficiaryRepo) GetByID(_ context.Context, id int64) (*domain.Beneficiary, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	b, ok := r.t.beneficiaries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *beneficiaryRepo) ListByOrganization(_ context.Context, orgID int64) ([]domain.Beneficiary, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	var out []domain.Beneficiary
	for _, b := range r.t.beneficiaries {
		if b.OrganizationID == orgID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type inventoryRepo struct{ t *tables }

func (r *inventoryRepo) Create(_ context.Context, item *domain.Inventory) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	if _, ok := r.t.beneficiaries[item.BeneficiaryID]; !ok {
		return repository.ErrNotFound
	}
	item.ID = r.t.nextID()
	item.CreatedAt = time.Now().UTC()
	r.t.inventory[item.ID] = *item
	return nil
}

func (r *inventoryRepo) ListByBeneficiary(_ context.Context, beneficiaryID int64) ([]domain.Inventory, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()

	var out []domain.Inventory
	for _, it := range r.t.inventory {
		if it.BeneficiaryID == beneficiaryID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateSent.Equal(out[j].DateSent) {
			return out[i].DateSent.After(out[j].DateSent)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
