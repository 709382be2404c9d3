package models

const (
	DefaultCurrency = "¥"
	DefaultTheme    = "light"
)

// Settings is the per-user display settings row. ID is a pointer because a
// freshly synthesized row is returned with a null id.
type Settings struct {
	ID       *int64 `json:"id"`
	UserID   int64  `json:"user_id"`
	Currency string `json:"currency"`
	Theme    string `json:"theme"`
}

// SettingsInput is a partial update: nil fields are left untouched.
type SettingsInput struct {
	Currency *string `json:"currency,omitempty"`
	Theme    *string `json:"theme,omitempty"`
}
