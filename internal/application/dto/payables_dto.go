package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountPayableDTO cuenta por pagar.
type AccountPayableDTO struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	BranchID    string          `json:"branch_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"due_date"`
	OriginType  string          `json:"origin_type"`
	OriginID    *string         `json:"origin_id,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}
