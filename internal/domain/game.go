package domain

// GameKind identifies one of the supported chance games. The string
// value doubles as the cooldown command name.
type GameKind string

const (
	GameCoinFlip GameKind = "coinflip"
	GameDice     GameKind = "dice"
	GameSlots    GameKind = "slots"
)

// Coin faces for the coin flip game.
const (
	CoinHeads = "heads"
	CoinTails = "tails"
)

// SlotsCombo classifies a slots spin result.
type SlotsCombo string

const (
	ComboJackpot SlotsCombo = "jackpot"
	ComboTriple  SlotsCombo = "triple"
	ComboDouble  SlotsCombo = "double"
	ComboNone    SlotsCombo = "none"
)

// BetRequest carries the parameters of a single play. It is ephemeral
// and never persisted.
type BetRequest struct {
	Kind   GameKind
	Amount int64
	Choice string // coin flip: heads or tails
	Target int    // dice: 1-6, 0 means default
}

// GameOutcome is the resolved result of a single play. Payout is the
// total amount credited on a win, principal included; it is zero on a
// loss. Exactly one of the symbolic result fields is populated,
// matching Kind.
type GameOutcome struct {
	Kind     GameKind   `json:"game"`
	Won      bool       `json:"won"`
	Payout   int64      `json:"payout"`
	CoinFace string     `json:"coin_face,omitempty"`
	Roll     int        `json:"roll,omitempty"`
	Target   int        `json:"target,omitempty"`
	Reels    []string   `json:"reels,omitempty"`
	Combo    SlotsCombo `json:"combo,omitempty"`
	Message  string     `json:"message"`
}

// PlayResult pairs a resolved outcome with the balance after the
// ledger committed it.
type PlayResult struct {
	Outcome    GameOutcome `json:"outcome"`
	NewBalance int64       `json:"new_balance"`
}
