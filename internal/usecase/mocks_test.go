package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"account-pool-service/internal/domain"
	"account-pool-service/internal/domain/model"
	"account-pool-service/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
)

// memUserRepo is a small in-memory implementation used by unit tests.
type memUserRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.User // map by ID
	saveErr error                  // used by tests to simulate save failures
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{store: make(map[string]*model.User)}
}

func (m *memUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.store {
		if ex.ID != u.ID && (ex.Email == u.Email || ex.Username == u.Username) {
			return domain.ErrAlreadyExists
		}
	}
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindByIDForUpdate(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	return m.FindByID(ctx, tx, id)
}

func (m *memUserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) FindByUsername(ctx context.Context, tx repository.Tx, username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) UpdatePassword(ctx context.Context, tx repository.Tx, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

func (m *memUserRepo) ApplyActivation(ctx context.Context, tx repository.Tx, id string, level int, expireTime time.Time, totalCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Level = level
	u.ExpireTime = &expireTime
	u.TotalCount = totalCount
	u.UpdatedAt = time.Now()
	return nil
}

func (m *memUserRepo) IncrementUsed(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.UsedCount++
	u.UpdatedAt = time.Now()
	return nil
}

type memPoolAccountRepo struct {
	mu    sync.RWMutex
	store map[string]*model.PoolAccount // map by ID
}

func newMemPoolAccountRepo() *memPoolAccountRepo {
	return &memPoolAccountRepo{store: make(map[string]*model.PoolAccount)}
}

func (m *memPoolAccountRepo) Save(ctx context.Context, tx repository.Tx, a *model.PoolAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.store {
		if ex.ID != a.ID && ex.Account == a.Account {
			return domain.ErrAlreadyExists
		}
	}
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *memPoolAccountRepo) FindByAccount(ctx context.Context, tx repository.Tx, account string) (*model.PoolAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.store {
		if a.Account == account {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memPoolAccountRepo) FindActiveByAccountForUpdate(ctx context.Context, tx repository.Tx, account string) (*model.PoolAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.store {
		if a.Account == account && a.Active() {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memPoolAccountRepo) FindLeastUsedForUpdate(ctx context.Context, tx repository.Tx) (*model.PoolAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var active []*model.PoolAccount
	for _, a := range m.store {
		if a.Active() {
			active = append(active, a)
		}
	}
	if len(active) == 0 {
		return nil, domain.ErrNotFound
	}
	sort.Slice(active, func(i, j int) bool {
		if active[i].UsageCount != active[j].UsageCount {
			return active[i].UsageCount < active[j].UsageCount
		}
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})
	cp := *active[0]
	return &cp, nil
}

func (m *memPoolAccountRepo) RecordDistribution(ctx context.Context, tx repository.Tx, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.UsageCount++
	a.DistributedTime = &at
	a.UpdatedAt = at
	return nil
}

type memActivationCodeRepo struct {
	mu    sync.RWMutex
	store map[string]*model.ActivationCode // map by ID
}

func newMemActivationCodeRepo() *memActivationCodeRepo {
	return &memActivationCodeRepo{store: make(map[string]*model.ActivationCode)}
}

func (m *memActivationCodeRepo) Save(ctx context.Context, tx repository.Tx, code *model.ActivationCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.store {
		if ex.ID != code.ID && ex.Code == code.Code {
			return domain.ErrAlreadyExists
		}
	}
	cp := *code
	m.store[code.ID] = &cp
	return nil
}

func (m *memActivationCodeRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.ActivationCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.store {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memActivationCodeRepo) FindActiveByCodeForUpdate(ctx context.Context, tx repository.Tx, code string) (*model.ActivationCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.store {
		if c.Code == code && c.Status == model.StatusActive {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memActivationCodeRepo) IncrementUsed(ctx context.Context, tx repository.Tx, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.UsedCount++
	c.ActivatedAt = &at
	return nil
}

type memVerificationCodeRepo struct {
	mu    sync.RWMutex
	store map[string]*model.VerificationCode // map by ID
}

func newMemVerificationCodeRepo() *memVerificationCodeRepo {
	return &memVerificationCodeRepo{store: make(map[string]*model.VerificationCode)}
}

func (m *memVerificationCodeRepo) Save(ctx context.Context, tx repository.Tx, c *model.VerificationCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.store[c.ID] = &cp
	return nil
}

func (m *memVerificationCodeRepo) FindLatestUnused(ctx context.Context, tx repository.Tx, email, code, codeType string) (*model.VerificationCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var newest *model.VerificationCode
	for _, c := range m.store {
		if c.Email != email || c.Code != code || c.Type != codeType || c.Used {
			continue
		}
		if newest == nil || c.CreatedAt.After(newest.CreatedAt) {
			newest = c
		}
	}
	if newest == nil {
		return nil, domain.ErrNotFound
	}
	cp := *newest
	return &cp, nil
}

func (m *memVerificationCodeRepo) Consume(ctx context.Context, tx repository.Tx, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.store[id]
	if !ok || c.Used {
		return false, nil
	}
	c.Used = true
	return true, nil
}

func (m *memVerificationCodeRepo) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, c := range m.store {
		if c.ExpiresAt.Before(before) {
			delete(m.store, id)
			n++
		}
	}
	return n, nil
}

type memCheckoutRepo struct {
	mu    sync.RWMutex
	store []*model.Checkout
}

func newMemCheckoutRepo() *memCheckoutRepo { return &memCheckoutRepo{} }

func (m *memCheckoutRepo) Save(ctx context.Context, tx repository.Tx, c *model.Checkout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.store = append(m.store, &cp)
	return nil
}

func (m *memCheckoutRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, limit int) ([]*model.Checkout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Checkout
	for _, c := range m.store {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// noopTxManager runs the function directly: unit tests exercise business
// rules, not transactional plumbing.
type noopTxManager struct {
	// FailAfterFn, when set, is invoked after fn returns nil to simulate
	// a commit failure.
	FailAfterFn func() error
}

func (m *noopTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if err := fn(ctx, repository.NoTX); err != nil {
		return err
	}
	if m.FailAfterFn != nil {
		return m.FailAfterFn()
	}
	return nil
}

// mockMailer records deliveries and can simulate failure.
type mockMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	sendErr error
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *mockMailer) lastSent() (sentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}, false
	}
	return m.sent[len(m.sent)-1], true
}

// stubTokenIssuer mints predictable tokens.
type stubTokenIssuer struct {
	mintErr error
}

func (s *stubTokenIssuer) Mint(u *model.User) (string, error) {
	if s.mintErr != nil {
		return "", s.mintErr
	}
	return "token-" + u.ID, nil
}
