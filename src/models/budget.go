package models

type Budget struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"user_id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type BudgetInput struct {
	Category string   `json:"category"`
	Amount   *float64 `json:"amount"`
}
