package store

import (
	"errors"
	"time"

	"leaguewatch/internal/riotapi"
)

var ErrNotRegistered = errors.New("no summoner registered for this member")

// Registration links one discord member in one guild to one riot account
type Registration struct {
	GuildID   string
	UserID    string
	Summoner  riotapi.Summoner
	UpdatedAt time.Time
}

// RosterEntry is what the polling loop needs per account: the summoner
// id to spectate and the region it lives in
type RosterEntry struct {
	SummonerId riotapi.SummonerId
	Region     riotapi.RegionCode
}

// GuildSettings is the per guild configuration the polling loop reads
type GuildSettings struct {
	GuildID             string
	DefaultRegion       riotapi.RegionCode
	AnnounceChannelID   string
	PollingEnabled      bool
	PollIntervalSeconds int
}
