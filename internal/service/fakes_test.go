package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gym_management/internal/model"
	"gym_management/internal/repository"

	"github.com/shopspring/decimal"
)

// plainHasher keeps service tests fast; bcrypt itself is covered in utils.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) bool {
	return strings.HasPrefix(hash, "hashed:") && hash == "hashed:"+password
}

type memUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]model.User
	err    error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int]model.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return repository.ErrConflict
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	return r.filter(func(model.User) bool { return true })
}

func (r *memUserRepo) FindByRole(_ context.Context, role model.Role) ([]model.User, error) {
	return r.filter(func(u model.User) bool { return u.Role == role })
}

func (r *memUserRepo) DeleteByID(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r *memUserRepo) filter(keep func(model.User) bool) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	users := []model.User{}
	for _, u := range r.users {
		if keep(u) {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type memClassRepo struct {
	mu      sync.Mutex
	nextID  int
	classes map[int]model.WorkoutClass
}

func newMemClassRepo() *memClassRepo {
	return &memClassRepo{classes: make(map[int]model.WorkoutClass)}
}

func (r *memClassRepo) Create(_ context.Context, c *model.WorkoutClass) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	r.classes[c.ID] = *c
	return nil
}

func (r *memClassRepo) Update(_ context.Context, c *model.WorkoutClass) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.classes[c.ID]
	if !ok || existing.TrainerID != c.TrainerID {
		return false, nil
	}
	r.classes[c.ID] = *c
	return true, nil
}

func (r *memClassRepo) Delete(_ context.Context, id, trainerID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.classes[id]
	if !ok || existing.TrainerID != trainerID {
		return false, nil
	}
	delete(r.classes, id)
	return true, nil
}

func (r *memClassRepo) FindAll(_ context.Context) ([]model.WorkoutClass, error) {
	return r.filter(func(model.WorkoutClass) bool { return true }), nil
}

func (r *memClassRepo) FindByTrainer(_ context.Context, trainerID int) ([]model.WorkoutClass, error) {
	return r.filter(func(c model.WorkoutClass) bool { return c.TrainerID == trainerID }), nil
}

func (r *memClassRepo) filter(keep func(model.WorkoutClass) bool) []model.WorkoutClass {
	r.mu.Lock()
	defer r.mu.Unlock()
	classes := []model.WorkoutClass{}
	for _, c := range r.classes {
		if keep(c) {
			classes = append(classes, c)
		}
	}
	sort.Slice(classes, func(i, j int) bool {
		if classes[i].ScheduledAt.Equal(classes[j].ScheduledAt) {
			return classes[i].ID < classes[j].ID
		}
		return classes[i].ScheduledAt.Before(classes[j].ScheduledAt)
	})
	return classes
}

type memMembershipRepo struct {
	mu          sync.Mutex
	memberships []model.Membership
	err         error
}

func (r *memMembershipRepo) Create(_ context.Context, m *model.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	m.ID = len(r.memberships) + 1
	r.memberships = append(r.memberships, *m)
	return nil
}

func (r *memMembershipRepo) FindByMember(_ context.Context, memberID int) ([]model.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []model.Membership{}
	for _, m := range r.memberships {
		if m.MemberID == memberID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *memMembershipRepo) FindAll(_ context.Context) ([]model.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return append([]model.Membership{}, r.memberships...), nil
}

func (r *memMembershipRepo) TotalRevenue(_ context.Context) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return decimal.Zero, r.err
	}
	return SumCosts(r.memberships), nil
}

type memMerchRepo struct {
	items []model.MerchItem
}

func (r *memMerchRepo) Create(_ context.Context, item *model.MerchItem) error {
	item.ID = len(r.items) + 1
	r.items = append(r.items, *item)
	return nil
}

func (r *memMerchRepo) FindAll(_ context.Context) ([]model.MerchItem, error) {
	return append([]model.MerchItem{}, r.items...), nil
}

func (r *memMerchRepo) TotalStockValue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range r.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.QuantityInStock))))
	}
	return total, nil
}

func storageFailure(op string) error {
	return fmt.Errorf("%s: %w: connection refused", op, repository.ErrStorage)
}

// countingHasher records how often each hasher method is called
type countingHasher struct {
	plainHasher
	mu       sync.Mutex
	hashes   int
	verifies int
}

func (h *countingHasher) Hash(password string) (string, error) {
	h.mu.Lock()
	h.hashes++
	h.mu.Unlock()
	return h.plainHasher.Hash(password)
}

func (h *countingHasher) Verify(password, hash string) bool {
	h.mu.Lock()
	h.verifies++
	h.mu.Unlock()
	return h.plainHasher.Verify(password, hash)
}
