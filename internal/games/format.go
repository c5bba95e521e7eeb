package games

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tovald/ChipsBot_Go/internal/domain"
)

var coinPrinter = message.NewPrinter(language.English)

// FormatCoins renders an amount with thousands separators.
func FormatCoins(amount int64) string {
	return coinPrinter.Sprintf("%d", amount)
}

func coinFlipMessage(out domain.GameOutcome, bet int64) string {
	if out.Won {
		return fmt.Sprintf("The coin landed on %s! You won %s coins.", out.CoinFace, FormatCoins(out.Payout-bet))
	}
	return fmt.Sprintf("The coin landed on %s. You lost %s coins.", out.CoinFace, FormatCoins(bet))
}

func diceMessage(out domain.GameOutcome, bet int64) string {
	if out.Won {
		return fmt.Sprintf("You rolled a %d! You won %s coins.", out.Roll, FormatCoins(out.Payout-bet))
	}
	return fmt.Sprintf("You rolled a %d, needed a %d. You lost %s coins.", out.Roll, out.Target, FormatCoins(bet))
}

func slotsMessage(out domain.GameOutcome, bet int64) string {
	reels := strings.Join(out.Reels, " | ")
	switch out.Combo {
	case domain.ComboJackpot:
		return fmt.Sprintf("[ %s ] JACKPOT! You won %s coins.", reels, FormatCoins(out.Payout-bet))
	case domain.ComboTriple:
		return fmt.Sprintf("[ %s ] Three of a kind! You won %s coins.", reels, FormatCoins(out.Payout-bet))
	case domain.ComboDouble:
		return fmt.Sprintf("[ %s ] A pair! You won %s coins.", reels, FormatCoins(out.Payout-bet))
	default:
		return fmt.Sprintf("[ %s ] No match. You lost %s coins.", reels, FormatCoins(bet))
	}
}
