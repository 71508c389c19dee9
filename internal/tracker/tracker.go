package tracker

import (
	"fmt"

	"leaguewatch/internal/riotapi"
	"leaguewatch/internal/store"

	"github.com/rs/zerolog/log"
)

type TransitionKind int

const (
	BecameLive TransitionKind = iota
	RemainsLive
	BecameIdle
	RemainsIdle
	Unknown
)

func (kind TransitionKind) String() string {
	switch kind {
	case BecameLive:
		return "became live"
	case RemainsLive:
		return "remains live"
	case BecameIdle:
		return "became idle"
	case RemainsIdle:
		return "remains idle"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("transition %d", int(kind))
	}
}

// Transition is the classified change in an account's live status
// between two polling passes. Game is set for BecameLive, Err for
// Unknown
type Transition struct {
	Kind TransitionKind
	Game *riotapi.LiveGame
	Err  error
}

// Tracker remembers which game each account was last seen in, so a
// game that is still running on the next pass does not get announced
// twice. State is keyed by game id, not by a boolean, because the
// same account can chain games back to back
type Tracker struct {
	store *store.Store
}

func NewTracker(store *store.Store) *Tracker {
	return &Tracker{store: store}
}

// Observe feeds the latest spectator result for an account into the
// tracker and returns the resulting transition. A failed query leaves
// the stored state untouched
func (tracker *Tracker) Observe(guildID string, entry store.RosterEntry, game *riotapi.LiveGame, queryErr error) (Transition, error) {

	if queryErr != nil {
		return Transition{Kind: Unknown, Err: queryErr}, nil
	}

	lastGameId, tracked, err := tracker.store.LastGame(guildID, entry)
	if err != nil {
		return Transition{}, fmt.Errorf("could not read live game state: %w", err)
	}

	// Not in a game right now
	if game == nil {
		if !tracked {
			return Transition{Kind: RemainsIdle}, nil
		}
		if err := tracker.store.ClearLastGame(guildID, entry); err != nil {
			return Transition{}, fmt.Errorf("could not clear live game state: %w", err)
		}
		log.Debug().Msg(fmt.Sprintf("Summoner %s finished game %d", entry.SummonerId, lastGameId))
		return Transition{Kind: BecameIdle}, nil
	}

	// Same game as last pass, nothing new to announce
	if tracked && lastGameId == game.GameId {
		return Transition{Kind: RemainsLive}, nil
	}

	if err := tracker.store.SetLastGame(guildID, entry, game.GameId, game.StartTime); err != nil {
		return Transition{}, fmt.Errorf("could not record live game state: %w", err)
	}
	log.Debug().Msg(fmt.Sprintf("Summoner %s entered game %d", entry.SummonerId, game.GameId))
	return Transition{Kind: BecameLive, Game: game}, nil
}
