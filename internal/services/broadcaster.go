package services

import "github.com/WEBtestTEAM88/playful-wagerland/internal/models"

// Broadcaster is notified after every ledger mutation.
type Broadcaster interface {
	BroadcastAccountUpdate(account models.Account)
	BroadcastStorageWarning(err error)
}

type nopBroadcaster struct{}

func (nopBroadcaster) BroadcastAccountUpdate(models.Account) {}
func (nopBroadcaster) BroadcastStorageWarning(error)         {}
