package models_test

import (
	"testing"
	"time"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

func TestModels(t *testing.T) {
	now := time.Now()
	account := models.NewAccount("alice", now)

	if account.ID == "" {
		t.Error("Account ID should not be empty")
	}
	if account.Balance != models.StartingBalance {
		t.Errorf("Expected starting balance %d, got %d", models.StartingBalance, account.Balance)
	}
	if account.IsAdmin() {
		t.Error("Regular account should not be admin")
	}

	admin := models.NewAdminAccount(now)
	if !admin.IsAdmin() || admin.Balance != models.AdminBalance {
		t.Errorf("Unexpected admin account: %+v", admin)
	}

	req := &models.PlayRequest{GameType: models.GameTypeCoinToss, Stake: 10}
	if err := req.Validate(); err != nil {
		t.Errorf("PlayRequest validation failed: %v", err)
	}

	invalid := &models.PlayRequest{GameType: "", Stake: 10}
	if err := invalid.Validate(); err == nil {
		t.Error("Request without a game should fail validation")
	}

	negative := &models.PlayRequest{GameType: models.GameTypeCoinToss, Stake: -1}
	if err := negative.Validate(); err == nil {
		t.Error("Negative stake should fail validation")
	}
}

func TestStatsRecording(t *testing.T) {
	stats := models.NewStats()

	stats.RecordWin(models.GameTypeCoinToss, 10)
	stats.RecordWin(models.GameTypeCoinToss, 40)
	if stats.Streak != 2 || stats.BiggestWin != 40 || stats.TotalWinnings != 50 {
		t.Errorf("Unexpected stats after wins: %+v", stats)
	}

	stats.RecordPush(models.GameTypeBlackjack)
	if stats.Streak != 2 {
		t.Errorf("Push should not reset streak, got %d", stats.Streak)
	}

	stats.RecordLoss(models.GameTypeBlackjack, 25)
	if stats.Streak != 0 {
		t.Errorf("Loss should reset streak, got %d", stats.Streak)
	}
	if stats.GamesPlayed != 4 || stats.Pushes != 1 || stats.TotalLosses != 25 {
		t.Errorf("Unexpected totals: %+v", stats)
	}

	bj := stats.Games[models.GameTypeBlackjack]
	if bj.Played != 2 || bj.Pushes != 1 || bj.Losses != 1 || bj.Lost != 25 {
		t.Errorf("Unexpected blackjack bucket: %+v", bj)
	}
}

func TestAccountCloneIsDeep(t *testing.T) {
	account := models.NewAccount("bob", time.Now())
	account.Stats.RecordWin(models.GameTypeBingo, 20)

	clone := account.Clone()
	clone.Stats.RecordWin(models.GameTypeBingo, 5)

	if account.Stats.Games[models.GameTypeBingo].Wins != 1 {
		t.Error("Mutating a clone should not touch the original stats")
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := map[int64]string{
		0:      "$0",
		1000:   "$1,000",
		999999: "$999,999",
		-50:    "-$50",
	}
	for amount, want := range tests {
		if got := models.FormatCurrency(amount); got != want {
			t.Errorf("FormatCurrency(%d) = %q, want %q", amount, got, want)
		}
	}
}
