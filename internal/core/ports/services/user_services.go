package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// User is the subset of the user service's user record this service reads.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserSvcFacade is the client contract for the external user service, the
// sole authority for live credit balances. Assign/Deduct return the party's
// balance after the change; callers persist those values verbatim and never
// recompute them.
type UserSvcFacade interface {
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetCreditBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	AssignCredit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error)
	DeductCredit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error)
}
