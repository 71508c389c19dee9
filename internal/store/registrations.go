package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"leaguewatch/internal/riotapi"
)

// Register writes the registration for a member, overwriting any
// previous one. There is no merge: the new summoner replaces the old
// one field by field
func (store *Store) Register(guildID string, userID string, summoner riotapi.Summoner) error {

	name := strings.TrimSpace(summoner.Name)
	if name == "" {
		return fmt.Errorf("summoner name is empty")
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	_, err := store.db.Exec(
		`INSERT INTO registrations (guild_id, user_id, summoner_name, region, puuid, account_id, summoner_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(guild_id, user_id) DO UPDATE SET
			summoner_name = excluded.summoner_name,
			region = excluded.region,
			puuid = excluded.puuid,
			account_id = excluded.account_id,
			summoner_id = excluded.summoner_id,
			updated_at = CURRENT_TIMESTAMP`,
		guildID, userID, name, string(summoner.Region),
		string(summoner.Puuid), string(summoner.AccountId), string(summoner.SummonerId),
	)
	return err
}

// Get returns the registration for a member, or ErrNotRegistered
func (store *Store) Get(guildID string, userID string) (Registration, error) {

	var reg Registration
	var region string
	err := store.db.QueryRow(
		`SELECT guild_id, user_id, summoner_name, region, puuid, account_id, summoner_id, updated_at
		 FROM registrations WHERE guild_id = ? AND user_id = ?`,
		guildID, userID,
	).Scan(&reg.GuildID, &reg.UserID, &reg.Summoner.Name, &region,
		&reg.Summoner.Puuid, &reg.Summoner.AccountId, &reg.Summoner.SummonerId, &reg.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Registration{}, ErrNotRegistered
	}
	if err != nil {
		return Registration{}, err
	}
	reg.Summoner.Region = riotapi.RegionCode(region)
	return reg, nil
}

// Roster returns the accounts to poll for a guild, in registration
// order, with duplicates collapsed by (summoner id, region). Two
// members registering the same account only produce one entry
func (store *Store) Roster(guildID string) ([]RosterEntry, error) {

	rows, err := store.db.Query(
		`SELECT summoner_id, region FROM registrations
		 WHERE guild_id = ? AND summoner_id <> ''
		 GROUP BY summoner_id, region
		 ORDER BY MIN(id)`,
		guildID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []RosterEntry
	for rows.Next() {
		var summonerId, region string
		if err := rows.Scan(&summonerId, &region); err != nil {
			return nil, err
		}
		roster = append(roster, RosterEntry{
			SummonerId: riotapi.SummonerId(summonerId),
			Region:     riotapi.RegionCode(region),
		})
	}
	return roster, rows.Err()
}

// SummonerNames returns the display names registered for an account in
// a guild. More than one name can come back when members registered the
// same account under different spellings
func (store *Store) SummonerNames(guildID string, entry RosterEntry) ([]string, error) {

	rows, err := store.db.Query(
		`SELECT DISTINCT summoner_name FROM registrations
		 WHERE guild_id = ? AND summoner_id = ? AND region = ?
		 ORDER BY summoner_name`,
		guildID, string(entry.SummonerId), string(entry.Region),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ResetGuild wipes everything the guild has accumulated: registrations,
// live game state and settings. There is no undo
func (store *Store) ResetGuild(guildID string) error {

	store.mu.Lock()
	defer store.mu.Unlock()

	tx, err := store.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"registrations", "live_games", "guild_settings"} {
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE guild_id = ?", table), guildID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
