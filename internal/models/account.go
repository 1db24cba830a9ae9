package models

import "time"

const (
	StartingBalance int64 = 1000

	AdminUsername       = "admin"
	AdminID             = "admin"
	AdminBalance  int64 = 999999
)

type ItemType string

const (
	ItemLuckyCoin ItemType = "LUCKY_COIN"
	ItemBonusCard ItemType = "BONUS_CARD"
)

type InventoryItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        ItemType `json:"type"`
	Modifier    float64  `json:"modifier"`
}

type Account struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Balance   int64           `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	Stats     Stats           `json:"stats"`
	Inventory []InventoryItem `json:"inventory"`
}

func NewAccount(username string, now time.Time) *Account {
	return &Account{
		ID:        GenerateAccountID(),
		Username:  username,
		Balance:   StartingBalance,
		CreatedAt: now,
		Stats:     NewStats(),
		Inventory: []InventoryItem{},
	}
}

// NewAdminAccount returns a fresh copy of the reserved admin account.
func NewAdminAccount(now time.Time) *Account {
	return &Account{
		ID:        AdminID,
		Username:  AdminUsername,
		Balance:   AdminBalance,
		CreatedAt: now,
		Stats:     NewStats(),
		Inventory: []InventoryItem{},
	}
}

func (a *Account) IsAdmin() bool {
	return a.ID == AdminID
}

func (a *Account) Clone() Account {
	c := *a
	c.Stats = a.Stats.Clone()
	c.Inventory = append([]InventoryItem(nil), a.Inventory...)
	if c.Inventory == nil {
		c.Inventory = []InventoryItem{}
	}
	return c
}
