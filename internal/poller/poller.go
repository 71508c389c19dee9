package poller

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"leaguewatch/internal/common"
	"leaguewatch/internal/riotapi"
	"leaguewatch/internal/store"
	"leaguewatch/internal/telemetry"
	"leaguewatch/internal/tracker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NotificationSink is where announcements end up. The discord layer
// implements it; tests plug in whatever they want
type NotificationSink interface {
	Send(channelID string, content string) error
}

// How long to stay quiet about a broken api key before telling the
// operator again
const credentialAlertQuiet = time.Hour

// Poller wakes up on a fixed interval, walks the roster of every guild
// that has polling enabled, asks the spectator endpoint about each
// account and announces the games that just started
type Poller struct {
	store   *store.Store
	riot    *riotapi.Client
	tracker *tracker.Tracker
	sink    NotificationSink

	interval      time.Duration
	maxConcurrent int

	housekeepingExecutor common.TimedExecutor
	credentialAlert      common.Stopwatch
	lastVisit            map[string]time.Time

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewPoller(db *store.Store, riot *riotapi.Client, trk *tracker.Tracker, sink NotificationSink, interval time.Duration, maxConcurrent int) *Poller {

	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	poller := &Poller{
		store:           db,
		riot:            riot,
		tracker:         trk,
		sink:            sink,
		interval:        interval,
		maxConcurrent:   maxConcurrent,
		credentialAlert: common.NewStopwatch(credentialAlertQuiet),
		lastVisit:       map[string]time.Time{},
		stopChan:        make(chan struct{}),
	}
	poller.housekeepingExecutor = common.NewTimedExecutor(24*time.Hour, poller.housekeeping)
	return poller
}

// Run blocks until the context is cancelled or Stop is called.
// Cancellation interrupts the sleep between passes, it does not wait
// for the next tick
func (poller *Poller) Run(ctx context.Context) {

	log.Info().Msg(fmt.Sprintf("Starting polling loop with interval %s", poller.interval))

	poller.wg.Add(1)
	defer poller.wg.Done()

	// Stop may already have been called before this goroutine was
	// scheduled; no pass must start after Stop has returned
	select {
	case <-ctx.Done():
		return
	case <-poller.stopChan:
		return
	default:
	}

	ticker := time.NewTicker(poller.interval)
	defer ticker.Stop()

	poller.pass(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Polling loop stopped: context cancelled")
			return
		case <-poller.stopChan:
			log.Info().Msg("Polling loop stopped")
			return
		case <-ticker.C:
			poller.pass(ctx)
		}
	}
}

// Stop asks the loop to finish and waits until it has
func (poller *Poller) Stop() {
	poller.stopOnce.Do(func() { close(poller.stopChan) })
	poller.wg.Wait()
}

type spectatorResult struct {
	entry store.RosterEntry
	game  *riotapi.LiveGame
	err   error
}

// pass visits every guild due for polling. A failure on one roster
// entry never aborts the pass, and a failure in one guild never
// prevents visiting the next
func (poller *Poller) pass(ctx context.Context) {

	passId := uuid.New()

	guilds, err := poller.store.GuildsToPoll()
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Pass %s: could not list guilds to poll: %v", passId, err))
		return
	}

	seen := make(map[string]struct{}, len(guilds))
	for _, guild := range guilds {
		if ctx.Err() != nil {
			return
		}
		seen[guild.GuildID] = struct{}{}
		if !poller.due(guild) {
			continue
		}
		poller.lastVisit[guild.GuildID] = time.Now()
		poller.pollGuild(ctx, passId, guild)
	}

	// Forget guilds that stopped polling so the map does not grow
	// without bound
	for guildID := range poller.lastVisit {
		if _, ok := seen[guildID]; !ok {
			delete(poller.lastVisit, guildID)
		}
	}

	poller.housekeepingExecutor.Execute()
	telemetry.PollPasses.Inc()
}

// due respects a per guild interval override: guilds asking for a
// slower cadence than the loop's own are skipped until enough time
// has gone by
func (poller *Poller) due(guild store.GuildSettings) bool {
	if guild.PollIntervalSeconds <= 0 {
		return true
	}
	last, ok := poller.lastVisit[guild.GuildID]
	if !ok {
		return true
	}
	return time.Since(last) >= time.Duration(guild.PollIntervalSeconds)*time.Second
}

func (poller *Poller) pollGuild(ctx context.Context, passId uuid.UUID, guild store.GuildSettings) {

	roster, err := poller.store.Roster(guild.GuildID)
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Pass %s: could not fetch roster for guild %s: %v", passId, guild.GuildID, err))
		return
	}
	if len(roster) == 0 {
		return
	}
	log.Debug().Msg(fmt.Sprintf("Pass %s: polling %d accounts in guild %s", passId, len(roster), guild.GuildID))

	// Fan out the spectator queries with bounded parallelism. Results
	// keep roster order so announcements go out first detected first
	results := make([]spectatorResult, len(roster))
	semaphore := make(chan struct{}, poller.maxConcurrent)
	var wg sync.WaitGroup
	for i, entry := range roster {
		select {
		case semaphore <- struct{}{}:
		case <-ctx.Done():
			return
		}
		wg.Add(1)
		go func(i int, entry store.RosterEntry) {
			defer wg.Done()
			defer func() { <-semaphore }()
			game, err := poller.riot.ActiveGame(ctx, entry.SummonerId, entry.Region)
			telemetry.SpectatorQueries.Inc()
			results[i] = spectatorResult{entry: entry, game: game, err: err}
		}(i, entry)
	}
	wg.Wait()

	for _, result := range results {
		poller.handleResult(passId, guild, result)
	}
}

func (poller *Poller) handleResult(passId uuid.UUID, guild store.GuildSettings, result spectatorResult) {

	transition, err := poller.tracker.Observe(guild.GuildID, result.entry, result.game, result.err)
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Pass %s: could not track summoner %s: %v", passId, result.entry.SummonerId, err))
		return
	}

	switch transition.Kind {
	case tracker.BecameLive:
		content := poller.announcement(guild.GuildID, result.entry, transition.Game)
		if err := poller.sink.Send(guild.AnnounceChannelID, content); err != nil {
			log.Error().Msg(fmt.Sprintf("Pass %s: could not send announcement to channel %s: %v", passId, guild.AnnounceChannelID, err))
			return
		}
		telemetry.Notifications.Inc()
	case tracker.Unknown:
		telemetry.SpectatorFailures.Inc()
		if riotapi.IsCredentialError(transition.Err) {
			// Tell the operator once, not every thirty seconds
			if stopped, _ := poller.credentialAlert.Stopped(); stopped {
				poller.credentialAlert.Start()
				log.Error().Msg(fmt.Sprintf("Pass %s: riot api credential problem, polling is running dry: %v", passId, transition.Err))
			}
			return
		}
		log.Warn().Msg(fmt.Sprintf("Pass %s: skipping summoner %s this pass: %v", passId, result.entry.SummonerId, transition.Err))
	}
}

// announcement names the account the way the guild knows it, falling
// back to the raw summoner id when the registration is gone
func (poller *Poller) announcement(guildID string, entry store.RosterEntry, game *riotapi.LiveGame) string {

	name := string(entry.SummonerId)
	if names, err := poller.store.SummonerNames(guildID, entry); err == nil && len(names) > 0 {
		name = strings.Join(names, " / ")
	}

	glyph := ""
	if region, err := riotapi.Resolve(entry.Region); err == nil {
		glyph = region.Glyph + " "
	}

	return fmt.Sprintf("%s**%s** (%s) started a game!", glyph, name, strings.ToUpper(string(entry.Region)))
}

func (poller *Poller) housekeeping() {
	pruned, err := poller.store.PruneLiveGames()
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not prune live game state: %v", err))
		return
	}
	if pruned > 0 {
		log.Info().Msg(fmt.Sprintf("Pruned %d stale live game records", pruned))
	}
}
