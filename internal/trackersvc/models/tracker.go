package models

type Kind string

const (
	KindPlayer Kind = "player"
	KindYesNo  Kind = "yesno"
	KindNumber Kind = "number"
)

// ParseKind maps a raw type string to a Kind. Anything unrecognized is a
// player tracker.
func ParseKind(raw string) Kind {
	switch k := Kind(raw); k {
	case KindPlayer, KindYesNo, KindNumber:
		return k
	default:
		return KindPlayer
	}
}

// ValidKind reports whether raw names one of the three tracker kinds.
func ValidKind(raw string) bool {
	switch Kind(raw) {
	case KindPlayer, KindYesNo, KindNumber:
		return true
	}
	return false
}

// Action is the mutation applied to an existing tracker row.
type Action string

const (
	ActionIncrement Action = "increment"
	ActionDecrement Action = "decrement"
	ActionSetValue  Action = "set_value"
)

// ParseAction maps a raw action; unknown actions increment.
func ParseAction(raw string) Action {
	switch a := Action(raw); a {
	case ActionDecrement, ActionSetValue:
		return a
	default:
		return ActionIncrement
	}
}

// Tracker is a per-game counter row. PlayerName is filled from the seat's
// opponent when PlayerSeat matches a seat of the game.
type Tracker struct {
	ID         int64   `json:"id"`
	GameID     int64   `json:"game_id"`
	Tracker    string  `json:"tracker"`
	Count      int     `json:"count"`
	Kind       Kind    `json:"type"`
	PlayerSeat *int    `json:"player_seat"`
	PlayerName *string `json:"player_name"`
}

func (t Tracker) Key() TrackerKey {
	return TrackerKey{GameID: t.GameID, Tracker: t.Tracker, Kind: t.Kind, PlayerSeat: t.PlayerSeat}
}

// TrackerKey is the identity of a tracker row within a game. A nil
// PlayerSeat only matches another nil PlayerSeat.
type TrackerKey struct {
	GameID     int64
	Tracker    string
	Kind       Kind
	PlayerSeat *int
}

func (k TrackerKey) Matches(other TrackerKey) bool {
	return k.GameID == other.GameID &&
		k.Tracker == other.Tracker &&
		k.Kind == other.Kind &&
		SameSeat(k.PlayerSeat, other.PlayerSeat)
}

// SameSeat compares optional seats: both nil match, both set and equal match.
func SameSeat(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// TrackerFact is one tracker row of an owner's game, joined with the
// seat's opponent name (nil when the seat does not resolve).
type TrackerFact struct {
	GameID     int64
	Tracker    string
	Kind       Kind
	Count      int
	PlayerName *string
}

type RecordTrackerRequest struct {
	Tracker    string `json:"tracker"`
	Type       any    `json:"type"`
	PlayerSeat any    `json:"player_seat"`
	Value      any    `json:"value"`
}

type ApplyTrackerRequest struct {
	ID     any `json:"id"`
	Action any `json:"action"`
	Value  any `json:"value"`
}

type DeleteTrackerRequest struct {
	ID any `json:"id"`
}
