package domain

import (
	"context"
)

// GameState is the flat persisted form of a game. Cell matrices hold attack
// statuses only: occupancy and segment links are rebuilt from ship records.
type GameState struct {
	RoundCounter         int          `json:"round_counter" msgpack:"round_counter"`
	IsPlayerStep         bool         `json:"is_player_step" msgpack:"is_player_step"`
	IsPlayerUseAbility   bool         `json:"is_player_use_ability" msgpack:"is_player_use_ability"`
	IsPlayerDoAttack     bool         `json:"is_player_do_attack" msgpack:"is_player_do_attack"`
	PlayerFieldWidth     int          `json:"player_field_width" msgpack:"player_field_width"`
	PlayerFieldHeight    int          `json:"player_field_height" msgpack:"player_field_height"`
	PlayerField          [][]int      `json:"player_field" msgpack:"player_field"`
	BotFieldWidth        int          `json:"bot_field_width" msgpack:"bot_field_width"`
	BotFieldHeight       int          `json:"bot_field_height" msgpack:"bot_field_height"`
	BotField             [][]int      `json:"bot_field" msgpack:"bot_field"`
	PlayerShipData       []ShipRecord `json:"player_ship_data" msgpack:"player_ship_data"`
	BotShipData          []ShipRecord `json:"bot_ship_data" msgpack:"bot_ship_data"`
	PlayerAbilityManager []string     `json:"player_ability_manager" msgpack:"player_ability_manager"`
}

// ShipRecord describes one active ship. Every field is required; pointers
// tell a missing key apart from a zero value.
type ShipRecord struct {
	Coords      *[2]int         `json:"coords,omitempty" msgpack:"coords,omitempty"`
	Orientation *int            `json:"orientation,omitempty" msgpack:"orientation,omitempty"`
	Segments    []SegmentRecord `json:"segments,omitempty" msgpack:"segments,omitempty"`
}

type SegmentRecord struct {
	Status int `json:"status" msgpack:"status"`
}

type StateRepository interface {
	Save(ctx context.Context, name string, state GameState) error
	Load(ctx context.Context, name string) (GameState, error)
}
