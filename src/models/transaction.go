package models

import "time"

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

type Transaction struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Date      Date      `json:"date"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// TransactionInput carries create and update bodies. Amount is a pointer so
// a missing field is distinguishable from a zero amount; Date and Note are
// pointers because both are optional.
type TransactionInput struct {
	Type     string   `json:"type"`
	Category string   `json:"category"`
	Amount   *float64 `json:"amount"`
	Date     *Date    `json:"date,omitempty"`
	Note     *string  `json:"note,omitempty"`
}
