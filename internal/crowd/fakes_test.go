package crowd

import (
	"context"
	"sync"

	"github.com/crowdlink/crowdlink/internal/accounts"
	"github.com/crowdlink/crowdlink/internal/db/models"
	"github.com/crowdlink/crowdlink/internal/linkstore"
)

type fakeAccounts struct {
	mu          sync.Mutex
	users       map[uint64]*models.User
	nextID      uint64
	createCalls int
	readErr     error
	createErr   error
}

func newFakeAccounts(users ...models.User) *fakeAccounts {
	f := &fakeAccounts{users: map[uint64]*models.User{}}
	for _, u := range users {
		f.add(u)
	}

	return f
}

func (f *fakeAccounts) add(u models.User) *models.User {
	f.nextID++
	if u.ID == 0 {
		u.ID = f.nextID
	}

	f.users[u.ID] = &u

	return &u
}

func (f *fakeAccounts) find(match func(*models.User) bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.readErr != nil {
		return nil, f.readErr
	}

	for _, u := range f.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}

	return nil, nil //nolint:nilnil
}

func (f *fakeAccounts) FindByID(_ context.Context, id uint64) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.ID == id })
}

func (f *fakeAccounts) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return email != "" && u.Email == email })
}

func (f *fakeAccounts) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Username == username })
}

func (f *fakeAccounts) Create(_ context.Context, attrs accounts.Attrs) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCalls++

	if f.createErr != nil {
		return nil, f.createErr
	}

	for _, u := range f.users {
		if u.Username == attrs.Username {
			return nil, accounts.ErrAccountExists
		}
	}

	u := f.add(models.User{
		Active:     true,
		Username:   attrs.Username,
		Name:       attrs.Name,
		Email:      attrs.Email,
		AuthSource: attrs.AuthSource,
	})

	return u, nil
}

func (f *fakeAccounts) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.users)
}

type fakeLinks struct {
	mu       sync.Mutex
	links    map[string]uint64
	getErr   error
	writeErr error
}

func newFakeLinks() *fakeLinks {
	return &fakeLinks{links: map[string]uint64{}}
}

func (f *fakeLinks) Get(_ context.Context, uid string) (*linkstore.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}

	id, ok := f.links[uid]
	if !ok {
		return nil, nil //nolint:nilnil
	}

	return &linkstore.Link{UID: uid, UserID: id}, nil
}

func (f *fakeLinks) Set(_ context.Context, uid string, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.writeErr != nil {
		return f.writeErr
	}

	f.links[uid] = userID

	return nil
}

func (f *fakeLinks) Create(_ context.Context, uid string, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.writeErr != nil {
		return f.writeErr
	}

	if _, ok := f.links[uid]; ok {
		return linkstore.ErrLinkExists
	}

	f.links[uid] = userID

	return nil
}

type fakeGroups struct {
	mu      sync.Mutex
	groups  map[string]*models.Group
	members map[uint]map[uint64]bool
	addErr  map[string]error
	findErr map[string]error
}

func newFakeGroups(names ...string) *fakeGroups {
	f := &fakeGroups{
		groups:  map[string]*models.Group{},
		members: map[uint]map[uint64]bool{},
		addErr:  map[string]error{},
		findErr: map[string]error{},
	}

	for i, name := range names {
		f.groups[name] = &models.Group{ID: uint(i + 1), Name: name}
	}

	return f
}

func (f *fakeGroups) FindByName(_ context.Context, name string) (*models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.findErr[name]; err != nil {
		return nil, err
	}

	g, ok := f.groups[name]
	if !ok {
		return nil, nil //nolint:nilnil
	}

	c := *g

	return &c, nil
}

func (f *fakeGroups) AddMember(_ context.Context, groupID uint, userID uint64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name, g := range f.groups {
		if g.ID == groupID {
			if err := f.addErr[name]; err != nil {
				return false, err
			}
		}
	}

	if f.members[groupID] == nil {
		f.members[groupID] = map[uint64]bool{}
	}

	if f.members[groupID][userID] {
		return false, nil
	}

	f.members[groupID][userID] = true

	return true, nil
}

// membership returns the names of the groups userID belongs to.
func (f *fakeGroups) membership(userID uint64) map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := map[string]bool{}

	for name, g := range f.groups {
		if f.members[g.ID][userID] {
			out[name] = true
		}
	}

	return out
}
