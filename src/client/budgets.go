package client

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"fintrack-server/src/models"
)

// Progress is the derived spend-vs-limit view for one category, recomputed
// from the caches on every call and never persisted.
type Progress struct {
	Category     string  `json:"category"`
	Spent        float64 `json:"spent"`
	Limit        float64 `json:"limit"`
	Percentage   float64 `json:"percentage"`
	IsOverBudget bool    `json:"isOverBudget"`
}

// BudgetStore caches the user's budgets and derives progress against the
// transaction cache.
type BudgetStore struct {
	c *Client

	mu      sync.RWMutex
	budgets []models.Budget
	err     error

	// now is swapped in tests to pin the current month.
	now func() time.Time
}

func newBudgetStore(c *Client) *BudgetStore {
	return &BudgetStore{c: c, now: time.Now}
}

func (s *BudgetStore) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *BudgetStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func budgetPath(category string) string {
	return "/budgets/category/" + url.PathEscape(category)
}

func (s *BudgetStore) Fetch(ctx context.Context) ([]models.Budget, error) {
	var list []models.Budget
	if err := s.c.do(ctx, http.MethodGet, "/budgets", nil, &list); err != nil {
		s.setErr(err)
		return nil, err
	}
	s.mu.Lock()
	s.budgets = list
	s.err = nil
	s.mu.Unlock()
	return list, nil
}

// Set updates the category's budget when one is cached and creates it
// otherwise, then patches the cache with the server's row.
func (s *BudgetStore) Set(ctx context.Context, category string, amount float64) (*models.Budget, error) {
	existing := s.ByCategory(category)
	in := models.BudgetInput{Category: category, Amount: &amount}

	var saved models.Budget
	var err error
	if existing != nil {
		err = s.c.do(ctx, http.MethodPut, budgetPath(category), in, &saved)
	} else {
		err = s.c.do(ctx, http.MethodPost, "/budgets", in, &saved)
	}
	if err != nil {
		s.setErr(err)
		return nil, err
	}

	s.mu.Lock()
	replaced := false
	for i := range s.budgets {
		if s.budgets[i].Category == category {
			s.budgets[i] = saved
			replaced = true
			break
		}
	}
	if !replaced {
		s.budgets = append(s.budgets, saved)
	}
	s.err = nil
	s.mu.Unlock()
	return &saved, nil
}

func (s *BudgetStore) Delete(ctx context.Context, category string) error {
	if err := s.c.do(ctx, http.MethodDelete, budgetPath(category), nil, nil); err != nil {
		s.setErr(err)
		return err
	}
	s.mu.Lock()
	kept := s.budgets[:0]
	for _, b := range s.budgets {
		if b.Category != category {
			kept = append(kept, b)
		}
	}
	s.budgets = kept
	s.err = nil
	s.mu.Unlock()
	return nil
}

func (s *BudgetStore) All() []models.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Budget, len(s.budgets))
	copy(out, s.budgets)
	return out
}

func (s *BudgetStore) ByCategory(category string) *models.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.budgets {
		if b.Category == category {
			budget := b
			return &budget
		}
	}
	return nil
}

// Progress sums this calendar month's expenses in the category against its
// budget limit. Returns nil when no budget exists for the category.
func (s *BudgetStore) Progress(category string) *Progress {
	budget := s.ByCategory(category)
	if budget == nil {
		return nil
	}

	now := s.now()
	var spent float64
	for _, t := range s.c.Transactions.ByMonth(now.Month(), now.Year()) {
		if t.Type == models.TransactionExpense && t.Category == category {
			spent += t.Amount
		}
	}

	percentage := spent / budget.Amount * 100
	return &Progress{
		Category:     category,
		Spent:        spent,
		Limit:        budget.Amount,
		Percentage:   percentage,
		IsOverBudget: percentage > 100,
	}
}

func (s *BudgetStore) AllProgress() []Progress {
	var out []Progress
	for _, b := range s.All() {
		if p := s.Progress(b.Category); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

func (s *BudgetStore) Reset() {
	s.mu.Lock()
	s.budgets = nil
	s.err = nil
	s.mu.Unlock()
}
