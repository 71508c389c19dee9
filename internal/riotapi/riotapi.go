package riotapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"leaguewatch/internal/common"

	"github.com/rs/zerolog/log"
)

// Riot schema
const RIOT_SCHEMA = "https://%s.api.riotgames.com"

// Routes inside the riot API
const ROUTE_SUMMONER = "/lol/summoner/v4/summoners/by-name/%s"
const ROUTE_SPECTATOR = "/lol/spectator/v4/active-games/by-summoner/%s"

// CredentialSource provides the shared api key for a service name.
// An empty key with a nil error means no key has been configured yet
type CredentialSource interface {
	SharedToken(service string) (string, error)
}

// The service name the riot api key is stored under
const CredentialService = "league"

// Client is the single point of contact with the riot API.
// The api key is fetched lazily from the credential source and cached;
// RefreshCredential swaps it without a restart
type Client struct {
	creds CredentialSource
	proxy common.Proxy

	// Overrides the riot schema when set; tests point it at a local server
	baseURL string

	mu     sync.RWMutex
	apiKey string
}

func NewClient(creds CredentialSource, timeout time.Duration) *Client {
	return &Client{creds: creds, proxy: common.NewProxy(timeout)}
}

// WithBaseURL sends every request to a fixed base url instead of the
// per region riot servers, for instance through a local proxy
func (client *Client) WithBaseURL(baseURL string) *Client {
	client.baseURL = baseURL
	return client
}

// LookupSummoner resolves a summoner name in a region to the three
// identifiers riot issues for the account
func (client *Client) LookupSummoner(ctx context.Context, name string, region RegionCode) (Summoner, error) {

	reg, err := Resolve(region)
	if err != nil {
		return Summoner{}, err
	}

	route := fmt.Sprintf(ROUTE_SUMMONER, url.PathEscape(name))
	data, err := client.request(ctx, reg.Segment, route)
	if err != nil {
		return Summoner{}, err
	}

	// All three identifiers have to be present,
	// a partial payload is useless to us
	var raw struct {
		Puuid     string `json:"puuid"`
		AccountId string `json:"accountId"`
		Id        string `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Summoner{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if raw.Puuid == "" || raw.AccountId == "" || raw.Id == "" {
		return Summoner{}, fmt.Errorf("%w: summoner payload is missing identifiers", ErrMalformedResponse)
	}

	return Summoner{
		Name:       name,
		Region:     region,
		Puuid:      Puuid(raw.Puuid),
		AccountId:  AccountId(raw.AccountId),
		SummonerId: SummonerId(raw.Id),
	}, nil
}

// ActiveGame asks the spectator endpoint whether the summoner is
// currently in a game. A nil game with a nil error means the summoner
// is not playing right now; that is a negative result, not a failure
func (client *Client) ActiveGame(ctx context.Context, summonerId SummonerId, region RegionCode) (*LiveGame, error) {

	reg, err := Resolve(region)
	if err != nil {
		return nil, err
	}

	route := fmt.Sprintf(ROUTE_SPECTATOR, url.PathEscape(string(summonerId)))
	data, err := client.request(ctx, reg.Segment, route)
	if err != nil {
		// 404 from the spectator endpoint means the summoner
		// is simply not in a game
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var raw struct {
		GameId        int64 `json:"gameId"`
		GameStartTime int64 `json:"gameStartTime"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if raw.GameId == 0 {
		return nil, fmt.Errorf("%w: spectator payload is missing the game id", ErrMalformedResponse)
	}

	return &LiveGame{
		GameId:    GameId(raw.GameId),
		StartTime: time.UnixMilli(raw.GameStartTime),
	}, nil
}

// RefreshCredential drops the cached api key and re-reads it from the
// credential source. Call it whenever the key is updated so no stale
// value survives the update
func (client *Client) RefreshCredential() error {
	key, err := client.creds.SharedToken(CredentialService)
	if err != nil {
		return err
	}
	client.mu.Lock()
	client.apiKey = key
	client.mu.Unlock()
	log.Info().Msg("Riot api key refreshed")
	return nil
}

func (client *Client) credential() (string, error) {

	client.mu.RLock()
	key := client.apiKey
	client.mu.RUnlock()
	if key != "" {
		return key, nil
	}

	// First use, fetch from the credential source
	client.mu.Lock()
	defer client.mu.Unlock()
	if client.apiKey != "" {
		return client.apiKey, nil
	}
	key, err := client.creds.SharedToken(CredentialService)
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", ErrCredentialMissing
	}
	client.apiKey = key
	return key, nil
}

// request builds the full url for a route in a region, performs the GET
// and classifies the status code. On 200 it returns the raw body
func (client *Client) request(ctx context.Context, segment string, route string) ([]byte, error) {

	apiKey, err := client.credential()
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf(RIOT_SCHEMA, segment)
	if client.baseURL != "" {
		base = client.baseURL
	}
	requestUrl := base + route + "?api_key=" + url.QueryEscape(apiKey)
	log.Debug().Msg(fmt.Sprintf("Requesting to route %s in segment %s", route, segment))

	status, body, err := client.proxy.Get(ctx, requestUrl)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	switch status {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusUnauthorized:
		return nil, ErrCredentialInvalid
	default:
		return nil, &ProviderError{Status: status}
	}
}
