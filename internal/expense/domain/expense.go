package domain

import "time"

// Supported expense currencies.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyPLN = "PLN"
	CurrencyGBP = "GBP"
)

type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description,omitempty"`
}

type Expense struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"index"`
	Description string    `json:"description,omitempty"`
	Currency    string    `json:"currency" gorm:"not null"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	OwnerID     uint      `json:"owner_id" gorm:"index"`
	CategoryID  *uint     `json:"category_id,omitempty" gorm:"index"`
}

// OwnedBy implements authz.Ownable.
func (e *Expense) OwnedBy() uint { return e.OwnerID }
