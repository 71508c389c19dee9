package riotapi

import "time"

type Puuid string
type AccountId string
type SummonerId string
type GameId int64

// Summoner holds the three opaque identifiers riot issues for an account.
// They are never parsed, only stored and echoed back in requests
type Summoner struct {
	Name       string
	Region     RegionCode
	Puuid      Puuid
	AccountId  AccountId
	SummonerId SummonerId
}

// LiveGame describes one active match as reported by the spectator endpoint
type LiveGame struct {
	GameId    GameId
	StartTime time.Time
}
