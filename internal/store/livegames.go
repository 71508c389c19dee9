package store

import (
	"database/sql"
	"errors"
	"time"

	"leaguewatch/internal/riotapi"
)

// LastGame returns the game id last seen live for an account in a
// guild. The second return value is false when no game is tracked
func (store *Store) LastGame(guildID string, entry RosterEntry) (riotapi.GameId, bool, error) {

	var gameId int64
	err := store.db.QueryRow(
		`SELECT game_id FROM live_games WHERE guild_id = ? AND summoner_id = ? AND region = ?`,
		guildID, string(entry.SummonerId), string(entry.Region),
	).Scan(&gameId)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return riotapi.GameId(gameId), true, nil
}

// SetLastGame records the game currently seen live for an account.
// One row per (guild, summoner, region), an existing row is replaced
func (store *Store) SetLastGame(guildID string, entry RosterEntry, gameId riotapi.GameId, startedAt time.Time) error {
	_, err := store.db.Exec(
		`INSERT INTO live_games (guild_id, summoner_id, region, game_id, started_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(guild_id, summoner_id, region) DO UPDATE SET
			game_id = excluded.game_id,
			started_at = excluded.started_at`,
		guildID, string(entry.SummonerId), string(entry.Region), int64(gameId), startedAt,
	)
	return err
}

// ClearLastGame forgets the tracked game for an account, so the next
// game it enters counts as new again
func (store *Store) ClearLastGame(guildID string, entry RosterEntry) error {
	_, err := store.db.Exec(
		`DELETE FROM live_games WHERE guild_id = ? AND summoner_id = ? AND region = ?`,
		guildID, string(entry.SummonerId), string(entry.Region),
	)
	return err
}

// PruneLiveGames drops live game rows whose account is no longer
// registered anywhere in the guild, for instance after a member
// re-registered under a different riot account
func (store *Store) PruneLiveGames() (int64, error) {
	result, err := store.db.Exec(
		`DELETE FROM live_games WHERE NOT EXISTS (
			SELECT 1 FROM registrations r
			WHERE r.guild_id = live_games.guild_id
			  AND r.summoner_id = live_games.summoner_id
			  AND r.region = live_games.region
		)`,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
