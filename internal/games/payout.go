package games

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/WEBtestTEAM88/playful-wagerland/internal/models"
)

var (
	// ErrInvalidSelection is returned when the player's choice does not fit
	// the game (unknown option, wrong number of picks, out of range).
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrInvalidTable is returned for malformed odds tables.
	ErrInvalidTable = errors.New("invalid odds table")
)

// Payout applies a multiplier to a stake and floors the result.
func Payout(stake int64, multiplier decimal.Decimal) int64 {
	if stake <= 0 || !multiplier.IsPositive() {
		return 0
	}
	return decimal.NewFromInt(stake).Mul(multiplier).Floor().IntPart()
}

func Win(stake int64, multiplier decimal.Decimal, detail any) models.Outcome {
	payout := Payout(stake, multiplier)
	if payout == 0 {
		return Loss(detail)
	}
	return models.Outcome{
		Result:     models.ResultWin,
		Payout:     payout,
		Multiplier: multiplier,
		Detail:     detail,
	}
}

func Loss(detail any) models.Outcome {
	return models.Outcome{
		Result:     models.ResultLoss,
		Multiplier: decimal.Zero,
		Detail:     detail,
	}
}

func Push(stake int64, detail any) models.Outcome {
	return models.Outcome{
		Result:     models.ResultPush,
		Payout:     stake,
		Multiplier: decimal.NewFromInt(1),
		Detail:     detail,
	}
}

func mult(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
