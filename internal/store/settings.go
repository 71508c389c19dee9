package store

import (
	"database/sql"
	"errors"

	"leaguewatch/internal/riotapi"
)

// GuildSettings returns the settings for a guild. A guild that never
// configured anything gets the defaults back
func (store *Store) GuildSettings(guildID string) (GuildSettings, error) {

	settings := GuildSettings{GuildID: guildID, DefaultRegion: "na"}
	var region string
	var enabled int
	err := store.db.QueryRow(
		`SELECT default_region, announce_channel_id, polling_enabled, poll_interval_seconds
		 FROM guild_settings WHERE guild_id = ?`,
		guildID,
	).Scan(&region, &settings.AnnounceChannelID, &enabled, &settings.PollIntervalSeconds)
	if errors.Is(err, sql.ErrNoRows) {
		return settings, nil
	}
	if err != nil {
		return GuildSettings{}, err
	}
	settings.DefaultRegion = riotapi.RegionCode(region)
	settings.PollingEnabled = enabled != 0
	return settings, nil
}

// SetAnnounceChannel points a guild's announcements at a channel and
// enables polling for the guild in the same step
func (store *Store) SetAnnounceChannel(guildID string, channelID string) error {
	_, err := store.db.Exec(
		`INSERT INTO guild_settings (guild_id, announce_channel_id, polling_enabled) VALUES (?, ?, 1)
		 ON CONFLICT(guild_id) DO UPDATE SET
			announce_channel_id = excluded.announce_channel_id,
			polling_enabled = 1`,
		guildID, channelID,
	)
	return err
}

// SetDefaultRegion stores the region used when a member registers
// without naming one
func (store *Store) SetDefaultRegion(guildID string, region riotapi.RegionCode) error {
	_, err := store.db.Exec(
		`INSERT INTO guild_settings (guild_id, default_region) VALUES (?, ?)
		 ON CONFLICT(guild_id) DO UPDATE SET default_region = excluded.default_region`,
		guildID, string(region),
	)
	return err
}

// SetPollingEnabled flips the polling flag for a guild
func (store *Store) SetPollingEnabled(guildID string, enabled bool) error {
	value := 0
	if enabled {
		value = 1
	}
	_, err := store.db.Exec(
		`INSERT INTO guild_settings (guild_id, polling_enabled) VALUES (?, ?)
		 ON CONFLICT(guild_id) DO UPDATE SET polling_enabled = excluded.polling_enabled`,
		guildID, value,
	)
	return err
}

// GuildsToPoll lists the guilds the polling loop should visit:
// polling enabled and an announcement channel configured
func (store *Store) GuildsToPoll() ([]GuildSettings, error) {

	rows, err := store.db.Query(
		`SELECT guild_id, default_region, announce_channel_id, polling_enabled, poll_interval_seconds
		 FROM guild_settings
		 WHERE polling_enabled = 1 AND announce_channel_id <> ''
		 ORDER BY guild_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guilds []GuildSettings
	for rows.Next() {
		var settings GuildSettings
		var region string
		var enabled int
		if err := rows.Scan(&settings.GuildID, &region, &settings.AnnounceChannelID, &enabled, &settings.PollIntervalSeconds); err != nil {
			return nil, err
		}
		settings.DefaultRegion = riotapi.RegionCode(region)
		settings.PollingEnabled = enabled != 0
		guilds = append(guilds, settings)
	}
	return guilds, rows.Err()
}
