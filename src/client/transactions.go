package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"fintrack-server/src/models"
)

// Fixed category lists offered by the UI; the server stores category as
// free text.
var (
	IncomeCategories  = []string{"工资", "奖金", "投资", "其他收入"}
	ExpenseCategories = []string{"餐饮", "交通", "住房", "购物", "娱乐", "医疗", "教育", "其他支出"}
)

// TransactionStore caches the user's transactions and keeps the cache in
// step with every mutating call.
type TransactionStore struct {
	c *Client

	mu           sync.RWMutex
	transactions []models.Transaction
	err          error
}

func newTransactionStore(c *Client) *TransactionStore {
	return &TransactionStore{c: c}
}

func (s *TransactionStore) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Err returns the error surfaced by the last failed store action.
func (s *TransactionStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Fetch repopulates the cache from the server.
func (s *TransactionStore) Fetch(ctx context.Context) ([]models.Transaction, error) {
	var list []models.Transaction
	if err := s.c.do(ctx, http.MethodGet, "/transactions", nil, &list); err != nil {
		s.setErr(err)
		return nil, err
	}
	s.mu.Lock()
	s.transactions = list
	s.err = nil
	s.mu.Unlock()
	return list, nil
}

// Add creates a transaction, defaulting the date to today, and appends the
// persisted row to the cache.
func (s *TransactionStore) Add(ctx context.Context, in models.TransactionInput) (*models.Transaction, error) {
	if in.Date == nil {
		today := models.Today()
		in.Date = &today
	}
	var created models.Transaction
	if err := s.c.do(ctx, http.MethodPost, "/transactions", in, &created); err != nil {
		s.setErr(err)
		return nil, err
	}
	s.mu.Lock()
	s.transactions = append(s.transactions, created)
	s.err = nil
	s.mu.Unlock()
	return &created, nil
}

func (s *TransactionStore) Update(ctx context.Context, id int64, in models.TransactionInput) (*models.Transaction, error) {
	var updated models.Transaction
	if err := s.c.do(ctx, http.MethodPut, fmt.Sprintf("/transactions/%d", id), in, &updated); err != nil {
		s.setErr(err)
		return nil, err
	}
	s.mu.Lock()
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			s.transactions[i] = updated
			break
		}
	}
	s.err = nil
	s.mu.Unlock()
	return &updated, nil
}

func (s *TransactionStore) Delete(ctx context.Context, id int64) error {
	if err := s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/transactions/%d", id), nil, nil); err != nil {
		s.setErr(err)
		return err
	}
	s.mu.Lock()
	kept := s.transactions[:0]
	for _, t := range s.transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.transactions = kept
	s.err = nil
	s.mu.Unlock()
	return nil
}

// All returns a copy of the cached transactions.
func (s *TransactionStore) All() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

func (s *TransactionStore) TotalIncome() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum float64
	for _, t := range s.transactions {
		if t.Type == models.TransactionIncome {
			sum += t.Amount
		}
	}
	return sum
}

func (s *TransactionStore) TotalExpense() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var sum float64
	for _, t := range s.transactions {
		if t.Type == models.TransactionExpense {
			sum += t.Amount
		}
	}
	return sum
}

func (s *TransactionStore) NetBalance() float64 {
	return s.TotalIncome() - s.TotalExpense()
}

func (s *TransactionStore) ByMonth(month time.Month, year int) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Transaction
	for _, t := range s.transactions {
		if t.Date.IsZero() {
			continue
		}
		if t.Date.Month() == month && t.Date.Year() == year {
			out = append(out, t)
		}
	}
	return out
}

func (s *TransactionStore) ByCategory(category string) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Transaction
	for _, t := range s.transactions {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Reset clears the cache, used when the user logs out.
func (s *TransactionStore) Reset() {
	s.mu.Lock()
	s.transactions = nil
	s.err = nil
	s.mu.Unlock()
}
