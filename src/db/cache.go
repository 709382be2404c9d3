package db

import (
	"log"
	"strconv"

	"github.com/dgraph-io/ristretto"
)

// Cache holds per-user list query results. Keys are deterministic
// ("transactions:<user_id>", "budgets:<user_id>"), so a mutation only has to
// drop the owning user's entry.
var Cache *ristretto.Cache

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func transactionListKey(userID int64) string {
	return "transactions:" + strconv.FormatInt(userID, 10)
}

func budgetListKey(userID int64) string {
	return "budgets:" + strconv.FormatInt(userID, 10)
}

func GetCachedTransactionList(userID int64) (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(transactionListKey(userID))
}

func SetTransactionListCache(userID int64, value interface{}) {
	if Cache == nil {
		return
	}
	Cache.Set(transactionListKey(userID), value, 1)
}

func InvalidateTransactionCache(userID int64) {
	if Cache == nil {
		return
	}
	Cache.Del(transactionListKey(userID))
}

func GetCachedBudgetList(userID int64) (interface{}, bool) {
	if Cache == nil {
		return nil, false
	}
	return Cache.Get(budgetListKey(userID))
}

func SetBudgetListCache(userID int64, value interface{}) {
	if Cache == nil {
		return
	}
	Cache.Set(budgetListKey(userID), value, 1)
}

func InvalidateBudgetCache(userID int64) {
	if Cache == nil {
		return
	}
	Cache.Del(budgetListKey(userID))
}
