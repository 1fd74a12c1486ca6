package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PhanMy23520965/LaLuneBakery/libs"
	"github.com/PhanMy23520965/LaLuneBakery/models"
	"github.com/PhanMy23520965/LaLuneBakery/repositories"
	"github.com/google/uuid"
)

type memoryAccountStore struct {
	mu        sync.Mutex
	accounts  map[string]models.Account
	conflicts int
	updateErr error
	// beforeUpdate runs once, ahead of the next Update, to interleave another write.
	beforeUpdate func()
}

func newMemoryAccountStore() *memoryAccountStore {
	return &memoryAccountStore{accounts: map[string]models.Account{}}
}

func cloneAccount(a models.Account) *models.Account {
	a.Cart = append(models.Cart{}, a.Cart...)
	return &a
}

func (m *memoryAccountStore) find(match func(models.Account) bool) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if match(a) {
			return cloneAccount(a), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryAccountStore) FindByID(ctx context.Context, id string) (*models.Account, error) {
	return m.find(func(a models.Account) bool { return a.ID == id })
}

func (m *memoryAccountStore) FindByLoginKey(ctx context.Context, loginKey string) (*models.Account, error) {
	return m.find(func(a models.Account) bool { return a.LoginKey == loginKey })
}

func (m *memoryAccountStore) FindByVerificationToken(ctx context.Context, token string) (*models.Account, error) {
	return m.find(func(a models.Account) bool {
		return a.VerificationToken != nil && *a.VerificationToken == token
	})
}

func (m *memoryAccountStore) FindByResetToken(ctx context.Context, token string, now time.Time) (*models.Account, error) {
	return m.find(func(a models.Account) bool {
		return a.ResetPasswordToken != nil && *a.ResetPasswordToken == token &&
			a.ResetPasswordExpires != nil && a.ResetPasswordExpires.After(now)
	})
}

func (m *memoryAccountStore) Create(ctx context.Context, a *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.accounts {
		if existing.LoginKey == a.LoginKey {
			return repositories.ErrDuplicateKey
		}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.Version = 1
	a.CreatedAt = time.Now()
	m.accounts[a.ID] = *cloneAccount(*a)
	return nil
}

func (m *memoryAccountStore) Update(ctx context.Context, a *models.Account) error {
	if hook := m.beforeUpdate; hook != nil {
		m.beforeUpdate = nil
		hook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	stored, ok := m.accounts[a.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if stored.Version != a.Version {
		return repositories.ErrVersionConflict
	}
	cart := stored.Cart
	a.Version = stored.Version + 1
	updated := *cloneAccount(*a)
	updated.Cart = cart
	m.accounts[a.ID] = updated
	return nil
}

func (m *memoryAccountStore) UpdateCart(ctx context.Context, id string, cart models.Cart, version int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.accounts[id]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	if m.conflicts > 0 {
		m.conflicts--
		stored.Version++
		m.accounts[id] = stored
		return 0, repositories.ErrVersionConflict
	}
	if stored.Version != version {
		return 0, repositories.ErrVersionConflict
	}
	stored.Cart = append(models.Cart{}, cart...)
	stored.Version++
	m.accounts[id] = stored
	return stored.Version, nil
}

func (m *memoryAccountStore) List(ctx context.Context, page, limit int) ([]models.Account, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]models.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].LoginKey < all[j].LoginKey })

	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

func (m *memoryAccountStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *memoryAccountStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accounts)
}

// plainHasher prefixes the password so tests can tell hashes apart without argon2 cost.
type plainHasher struct{}

func (plainHasher) Hash(ctx context.Context, password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Verify(ctx context.Context, encodedHash, password string) (bool, error) {
	return encodedHash == "hashed:"+password, nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []libs.Message
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, msg libs.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) last() libs.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return libs.Message{}
	}
	return m.sent[len(m.sent)-1]
}

// tokenFromLink extracts the trailing path segment of the first link in body.
func tokenFromLink(body, marker string) string {
	i := strings.Index(body, marker)
	if i < 0 {
		return ""
	}
	rest := body[i+len(marker):]
	end := strings.IndexAny(rest, `"<& `)
	if end < 0 {
		return rest
	}
	return rest[:end]
}

type memoryProductStore struct {
	mu        sync.Mutex
	products  []models.Product
	searches  int
	searchErr error
}

func (m *memoryProductStore) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	out := []models.Product{}
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(keyword)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryProductStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memoryProductStore) Create(ctx context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.products = append(m.products, *p)
	return nil
}

func (m *memoryProductStore) Update(ctx context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == p.ID {
			m.products[i] = *p
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *memoryProductStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *memoryProductStore) ReplaceAll(ctx context.Context, products []models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = nil
	for _, p := range products {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		m.products = append(m.products, p)
	}
	return nil
}

type memorySearchCache struct {
	mu          sync.Mutex
	entries     map[string][]models.Product
	invalidated int
	err         error
}

func newMemorySearchCache() *memorySearchCache {
	return &memorySearchCache{entries: map[string][]models.Product{}}
}

func (c *memorySearchCache) Get(ctx context.Context, keyword string) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	p, ok := c.entries[strings.ToLower(keyword)]
	if !ok {
		return nil, repositories.ErrCacheMiss
	}
	return p, nil
}

func (c *memorySearchCache) Set(ctx context.Context, keyword string, products []models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.entries[strings.ToLower(keyword)] = products
	return nil
}

func (c *memorySearchCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string][]models.Product{}
	c.invalidated++
	return nil
}

var errStoreDown = errors.New("store down")
