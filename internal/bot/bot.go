package bot

import (
	"context"
	"errors"
	"fmt"

	"leaguewatch/internal/riotapi"
	"leaguewatch/internal/store"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Bot is the discord facing surface: it parses commands and calls into
// the store and the riot client. The polling loop lives elsewhere and
// only shares those two collaborators, there is no shared mutable state
// between the two
type Bot struct {
	discord *discordgo.Session
	store   *store.Store
	riot    *riotapi.Client
}

func NewBot(token string, db *store.Store, riot *riotapi.Client) (*Bot, error) {

	discord, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("could not create discord session: %w", err)
	}
	discord.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	bot := &Bot{discord: discord, store: db, riot: riot}
	discord.AddHandler(bot.Receive)
	return bot, nil
}

// Session exposes the underlying discord session so the announcement
// sink can be built on top of it
func (bot *Bot) Session() *discordgo.Session {
	return bot.discord
}

func (bot *Bot) Start() error {
	if err := bot.discord.Open(); err != nil {
		return fmt.Errorf("could not open discord session: %w", err)
	}
	log.Info().Msg("Connected to discord")
	return nil
}

func (bot *Bot) Stop() error {
	return bot.discord.Close()
}

func (bot *Bot) Receive(discord *discordgo.Session, message *discordgo.MessageCreate) {

	// Reject my own messages
	if message.Author.ID == discord.State.User.ID {
		return
	}

	// Ignore messages from private channels
	if message.GuildID == "" {
		log.Debug().Msg("Ignoring private message")
		return
	}

	parseResult := Parse(message.Content)
	switch parseResult.parseid {
	case PARSEID_NO_BOT_PREFIX:
		return
	case PARSEID_OK:
		log.Debug().Msg(fmt.Sprintf("Command understood: %s", message.Content))
		var responses []Response
		switch parseResult.command {
		case COMMAND_REGISTER:
			switch args := parseResult.arguments.(type) {
			default:
				panic(fmt.Sprintf("unexpected type of register arguments %T", args))
			case RegisterArguments:
				responses = bot.register(message.GuildID, message.Author.ID, args)
			}
		case COMMAND_SUMMONER:
			switch args := parseResult.arguments.(type) {
			default:
				panic(fmt.Sprintf("unexpected type of summoner arguments %T", args))
			case SummonerArguments:
				targetID := args.TargetID
				// Prefer the structured mention list when discord
				// provides one
				if targetID == "" && len(message.Mentions) > 0 {
					targetID = message.Mentions[0].ID
				}
				responses = bot.summoner(message.GuildID, message.Author.ID, targetID)
			}
		case COMMAND_REGION:
			switch region := parseResult.arguments.(type) {
			default:
				panic(fmt.Sprintf("unexpected type of region %T", region))
			case riotapi.RegionCode:
				responses = bot.region(message.GuildID, region)
			}
		case COMMAND_CHANNEL:
			responses = bot.channel(message.GuildID, message.ChannelID)
		case COMMAND_APIKEY:
			switch key := parseResult.arguments.(type) {
			default:
				panic(fmt.Sprintf("unexpected type of api key %T", key))
			case string:
				responses = bot.apikey(key)
			}
		case COMMAND_RESET:
			responses = bot.reset(message.GuildID)
		case COMMAND_REGIONS:
			responses = RegionsMessage()
		case COMMAND_HELP:
			responses = HelpMessage()
		default:
			panic(fmt.Sprintf("Command %d is not one of the possible ones", parseResult.command))
		}
		bot.sendResponses(discord, message.ChannelID, responses)
	default:
		log.Debug().Msg(fmt.Sprintf("Wrong input: '%s'. Reason: %s", message.Content, parseResult.errorMessage))
		bot.sendResponses(discord, message.ChannelID, InputNotValid(parseResult.errorMessage))
	}
}

func (bot *Bot) sendResponses(discord *discordgo.Session, channelId string, responses []Response) {
	for _, response := range responses {
		response.Send(channelId, discord)
	}
}

// register looks the summoner up against riot and overwrites whatever
// the member had registered before. Nothing is written when the lookup
// fails
func (bot *Bot) register(guildID string, userID string, args RegisterArguments) []Response {

	region := args.Region
	if region == "" {
		// Fall back to the member's current region, then to the
		// guild default
		if reg, err := bot.store.Get(guildID, userID); err == nil {
			region = reg.Summoner.Region
		} else {
			settings, err := bot.store.GuildSettings(guildID)
			if err != nil {
				log.Error().Msg(fmt.Sprintf("Could not read settings for guild %s: %v", guildID, err))
				return InternalError()
			}
			region = settings.DefaultRegion
		}
	}

	summoner, err := bot.riot.LookupSummoner(context.Background(), args.Name, region)
	if err != nil {
		log.Debug().Msg(fmt.Sprintf("Lookup failed for summoner '%s' in region %s: %v", args.Name, region, err))
		return RegistrationFailure(err, args.Name, region)
	}

	if err := bot.store.Register(guildID, userID, summoner); err != nil {
		log.Error().Msg(fmt.Sprintf("Could not store registration for user %s in guild %s: %v", userID, guildID, err))
		return InternalError()
	}

	log.Info().Msg(fmt.Sprintf("Registered summoner '%s' (%s) for user %s in guild %s", summoner.Name, region, userID, guildID))
	return RegistrationSuccess(summoner)
}

// summoner reports the caller's own registration, or the mentioned
// member's when targetID is set
func (bot *Bot) summoner(guildID string, userID string, targetID string) []Response {

	lookupID := userID
	self := true
	if targetID != "" && targetID != userID {
		lookupID = targetID
		self = false
	}

	reg, err := bot.store.Get(guildID, lookupID)
	if errors.Is(err, store.ErrNotRegistered) {
		return NotRegisteredMessage(self)
	}
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not read registration for user %s in guild %s: %v", lookupID, guildID, err))
		return InternalError()
	}
	return SummonerInfo(reg, self)
}

func (bot *Bot) region(guildID string, region riotapi.RegionCode) []Response {

	if _, err := riotapi.Resolve(region); err != nil {
		return RegistrationFailure(err, "", region)
	}
	if err := bot.store.SetDefaultRegion(guildID, region); err != nil {
		log.Error().Msg(fmt.Sprintf("Could not set default region for guild %s: %v", guildID, err))
		return InternalError()
	}
	return RegionSet(region)
}

func (bot *Bot) channel(guildID string, channelID string) []Response {

	if err := bot.store.SetAnnounceChannel(guildID, channelID); err != nil {
		log.Error().Msg(fmt.Sprintf("Could not set announce channel for guild %s: %v", guildID, err))
		return InternalError()
	}
	log.Info().Msg(fmt.Sprintf("Guild %s now announces to channel %s", guildID, channelID))
	return ChannelSet()
}

// apikey stores the shared riot api key and pokes the client so its
// cached copy is replaced right away
func (bot *Bot) apikey(key string) []Response {

	if err := bot.store.SetSharedToken(riotapi.CredentialService, key); err != nil {
		log.Error().Msg(fmt.Sprintf("Could not store api key: %v", err))
		return InternalError()
	}
	if err := bot.riot.RefreshCredential(); err != nil {
		log.Error().Msg(fmt.Sprintf("Could not refresh api key: %v", err))
		return InternalError()
	}
	return ApiKeySet()
}

func (bot *Bot) reset(guildID string) []Response {

	if err := bot.store.ResetGuild(guildID); err != nil {
		log.Error().Msg(fmt.Sprintf("Could not reset guild %s: %v", guildID, err))
		return InternalError()
	}
	log.Info().Msg(fmt.Sprintf("Guild %s has been reset", guildID))
	return GuildReset()
}
