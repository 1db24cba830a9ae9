package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.English)

func GenerateAccountID() string {
	return uuid.New().String()
}

func GenerateRoundID() string {
	return fmt.Sprintf("round_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

func GenerateSessionID() string {
	return fmt.Sprintf("game_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

// FormatCurrency renders whole currency units with grouping, e.g. "$1,000".
func FormatCurrency(amount int64) string {
	if amount < 0 {
		return currencyPrinter.Sprintf("-$%d", -amount)
	}
	return currencyPrinter.Sprintf("$%d", amount)
}

// Validate checks the request shape. A zero stake is allowed here for
// games priced by their selection.
func (r *PlayRequest) Validate() error {
	if r.GameType == "" {
		return fmt.Errorf("game type is required")
	}
	if r.Stake < 0 {
		return fmt.Errorf("stake must not be negative")
	}
	return nil
}
