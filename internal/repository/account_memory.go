package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/resistance-admin/internal/domain"
)

type memoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

// NewMemoryAccountRepository returns an in-process repository.
func NewMemoryAccountRepository() AccountRepository {
	return &memoryAccountRepository{accounts: make(map[string]domain.Account)}
}

func (r *memoryAccountRepository) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[account.Username]; exists {
		return ErrDuplicate
	}
	now := time.Now().UTC()
	account.ID = uuid.NewString()
	account.CreatedAt = now
	account.UpdatedAt = now
	r.accounts[account.Username] = *account
	return nil
}

func (r *memoryAccountRepository) GetByIdentifier(_ context.Context, identifier string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if account, ok := r.accounts[identifier]; ok {
		return &account, nil
	}
	for _, account := range r.accounts {
		if account.Email != "" && account.Email == identifier {
			return &account, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryAccountRepository) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[username]; !ok {
		return ErrNotFound
	}
	delete(r.accounts, username)
	return nil
}
