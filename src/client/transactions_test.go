package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// fakeTransactionAPI is an in-memory stand-in for the transactions endpoints.
type fakeTransactionAPI struct {
	t      *testing.T
	nextID int64
	rows   []models.Transaction
}

func (f *fakeTransactionAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/transactions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(f.t, w, http.StatusOK, f.rows)
	})
	mux.HandleFunc("POST /api/transactions", func(w http.ResponseWriter, r *http.Request) {
		var in models.TransactionInput
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&in))
		f.nextID++
		date := models.Today()
		if in.Date != nil {
			date = *in.Date
		}
		row := models.Transaction{
			ID:       f.nextID,
			UserID:   1,
			Type:     in.Type,
			Category: in.Category,
			Amount:   *in.Amount,
			Date:     date,
			Note:     in.Note,
		}
		f.rows = append(f.rows, row)
		writeJSON(f.t, w, http.StatusCreated, row)
	})
	mux.HandleFunc("PUT /api/transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		var in models.TransactionInput
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&in))
		for i := range f.rows {
			if f.rows[i].ID == id {
				f.rows[i].Type = in.Type
				f.rows[i].Category = in.Category
				f.rows[i].Amount = *in.Amount
				if in.Date != nil {
					f.rows[i].Date = *in.Date
				}
				if in.Note != nil {
					f.rows[i].Note = in.Note
				}
				writeJSON(f.t, w, http.StatusOK, f.rows[i])
				return
			}
		}
		writeJSON(f.t, w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "transaction not found",
		})
	})
	mux.HandleFunc("DELETE /api/transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		for i := range f.rows {
			if f.rows[i].ID == id {
				f.rows = append(f.rows[:i], f.rows[i+1:]...)
				writeJSON(f.t, w, http.StatusOK, map[string]interface{}{
					"success": true,
					"message": "transaction deleted",
				})
				return
			}
		}
		writeJSON(f.t, w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "transaction not found",
		})
	})
	return mux
}

func newTransactionClient(t *testing.T, rows []models.Transaction) (*Client, *fakeTransactionAPI) {
	fake := &fakeTransactionAPI{t: t, nextID: 100, rows: rows}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", ""), fake
}

func TestTotalsIdentity(t *testing.T) {
	rows := []models.Transaction{
		{ID: 1, Type: "income", Category: "工资", Amount: 8000, Date: models.NewDate(2026, time.August, 1)},
		{ID: 2, Type: "income", Category: "奖金", Amount: 1500.50, Date: models.NewDate(2026, time.August, 10)},
		{ID: 3, Type: "expense", Category: "餐饮", Amount: 320.25, Date: models.NewDate(2026, time.August, 12)},
		{ID: 4, Type: "expense", Category: "交通", Amount: 89.75, Date: models.NewDate(2026, time.August, 15)},
	}
	c, _ := newTransactionClient(t, rows)

	_, err := c.Transactions.Fetch(context.Background())
	require.NoError(t, err)

	income := c.Transactions.TotalIncome()
	expense := c.Transactions.TotalExpense()
	assert.Equal(t, 9500.50, income)
	assert.Equal(t, 410.00, expense)
	assert.Equal(t, income-expense, c.Transactions.NetBalance())
}

func TestByMonthAndCategory(t *testing.T) {
	rows := []models.Transaction{
		{ID: 1, Type: "expense", Category: "餐饮", Amount: 50, Date: models.NewDate(2026, time.August, 2)},
		{ID: 2, Type: "expense", Category: "餐饮", Amount: 60, Date: models.NewDate(2026, time.July, 2)},
		{ID: 3, Type: "expense", Category: "交通", Amount: 20, Date: models.NewDate(2026, time.August, 3)},
	}
	c, _ := newTransactionClient(t, rows)
	_, err := c.Transactions.Fetch(context.Background())
	require.NoError(t, err)

	august := c.Transactions.ByMonth(time.August, 2026)
	require.Len(t, august, 2)

	dining := c.Transactions.ByCategory("餐饮")
	require.Len(t, dining, 2)
	for _, tx := range dining {
		assert.Equal(t, "餐饮", tx.Category)
	}
}

func TestAddDefaultsDateToToday(t *testing.T) {
	c, _ := newTransactionClient(t, nil)
	_, err := c.Transactions.Fetch(context.Background())
	require.NoError(t, err)

	created, err := c.Transactions.Add(context.Background(), models.TransactionInput{
		Type:     "expense",
		Category: "餐饮",
		Amount:   floatPtr(50),
	})
	require.NoError(t, err)
	assert.Equal(t, models.Today().String(), created.Date.String())

	// the created row lands in the cache without a refetch
	assert.Len(t, c.Transactions.All(), 1)
}

func TestUpdateAndDeletePatchCache(t *testing.T) {
	rows := []models.Transaction{
		{ID: 1, Type: "expense", Category: "餐饮", Amount: 50, Date: models.NewDate(2026, time.August, 2)},
		{ID: 2, Type: "expense", Category: "交通", Amount: 30, Date: models.NewDate(2026, time.August, 3)},
	}
	c, _ := newTransactionClient(t, rows)
	_, err := c.Transactions.Fetch(context.Background())
	require.NoError(t, err)

	updated, err := c.Transactions.Update(context.Background(), 1, models.TransactionInput{
		Type:     "expense",
		Category: "餐饮",
		Amount:   floatPtr(75),
		Note:     strPtr("team dinner"),
	})
	require.NoError(t, err)
	assert.Equal(t, 75.0, updated.Amount)

	all := c.Transactions.All()
	require.Len(t, all, 2)
	assert.Equal(t, 75.0, all[0].Amount)

	require.NoError(t, c.Transactions.Delete(context.Background(), 2))
	all = c.Transactions.All()
	require.Len(t, all, 1)
	assert.Equal(t, int64(1), all[0].ID)
}

func TestDeleteNotOwnedSurfacesNotFound(t *testing.T) {
	c, _ := newTransactionClient(t, nil)
	_, err := c.Transactions.Fetch(context.Background())
	require.NoError(t, err)

	err = c.Transactions.Delete(context.Background(), 999)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.True(t, strings.Contains(c.Transactions.Err().Error(), "transaction not found"))
}

func TestResetClearsCache(t *testing.T) {
	rows := []models.Transaction{
		{ID: 1, Type: "income", Category: "工资", Amount: 100, Date: models.NewDate(2026, time.August, 1)},
	}
	c, _ := newTransactionClient(t, rows)
	_, err := c.Transactions.Fetch(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, c.Transactions.All())

	c.Transactions.Reset()
	assert.Empty(t, c.Transactions.All())
	assert.Zero(t, c.Transactions.TotalIncome())
}
