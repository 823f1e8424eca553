package api

import (
	"context"
	"fmt"
	"net/http"
)

type Account struct {
	ID        int64  `json:"Account_id"`
	Email     string `json:"Email"`
	Role      string `json:"role"`
	IsPremium bool   `json:"is_premium,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// AccountPayload is the body of account create/update. Password is left
// out on update when the admin did not type a new one.
type AccountPayload struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

// Payment is one premium purchase of an account.
type Payment struct {
	ID        int64  `json:"Payment_id"`
	PlanName  string `json:"Plan_name"`
	Amount    Amount `json:"Amount"`
	Method    string `json:"Payment_method"`
	Status    string `json:"Status"`
	PaidAt    string `json:"Payment_date"`
	ExpiresAt string `json:"Expired_date"`
}

const accountsPath = "/api/accounts"

func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var out []Account
	if err := c.get(ctx, "accounts.list", accountsPath+"/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAccount(ctx context.Context, p AccountPayload) error {
	return c.send(ctx, "accounts.create", http.MethodPost, accountsPath+"/", p, nil)
}

func (c *Client) UpdateAccount(ctx context.Context, id int64, p AccountPayload) error {
	return c.send(ctx, "accounts.update", http.MethodPut, fmt.Sprintf("%s/%d", accountsPath, id), p, nil)
}

func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.send(ctx, "accounts.delete", http.MethodDelete, fmt.Sprintf("%s/%d", accountsPath, id), nil, nil)
}

func (c *Client) PaymentHistory(ctx context.Context, accountID int64) ([]Payment, error) {
	var out []Payment
	if err := c.get(ctx, "payments.history", fmt.Sprintf("/api/payments/history/%d", accountID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
