package bot

import (
	"fmt"
	"strings"

	"leaguewatch/internal/riotapi"

	"github.com/rs/zerolog/log"
)

const prefix string = "league"

const (
	COMMAND_REGISTER = iota
	COMMAND_SUMMONER = iota
	COMMAND_REGION   = iota
	COMMAND_CHANNEL  = iota
	COMMAND_APIKEY   = iota
	COMMAND_RESET    = iota
	COMMAND_REGIONS  = iota
	COMMAND_HELP     = iota
)

const (
	PARSEID_OK                     = iota
	PARSEID_NO_BOT_PREFIX          = iota
	PARSEID_NO_COMMAND             = iota
	PARSEID_COMMAND_NOT_RECOGNISED = iota
	PARSEID_NO_INPUT               = iota
	PARSEID_NOT_A_MENTION          = iota
)

var errorMessages map[int]string = map[int]string{
	PARSEID_NO_COMMAND:             "No command provided",
	PARSEID_COMMAND_NOT_RECOGNISED: "Command `%s` not recognised",
	PARSEID_NO_INPUT:               "Command `%s` requires an argument",
	PARSEID_NOT_A_MENTION:          "Argument to `summoner` has to be a user mention",
}

type RegisterArguments struct {
	Name   string
	Region riotapi.RegionCode // empty when the member did not name one
}

type SummonerArguments struct {
	TargetID string // empty when the member asks about themselves
}

type ParseResult struct {
	command      int
	parseid      int
	errorMessage string
	arguments    interface{}
}

func Parse(message string) ParseResult {

	noInput := func(command int, commandString string) ParseResult {
		parseid := PARSEID_NO_INPUT
		return ParseResult{command: command, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], commandString)}
	}

	// The message has to start with the bot prefix
	if !strings.HasPrefix(message, prefix) {
		log.Debug().Msg("Reject message not intended for the bot")
		return ParseResult{parseid: PARSEID_NO_BOT_PREFIX}
	}

	// Get the command if valid
	words := strings.Fields(strings.TrimSpace(message[len(prefix):]))
	if len(words) == 0 {
		parseid := PARSEID_NO_COMMAND
		return ParseResult{parseid: parseid, errorMessage: errorMessages[parseid]}
	}
	commandString := words[0]
	words = words[1:]

	switch commandString {
	case "register":
		// league register <summoner_name> [region]
		command := COMMAND_REGISTER
		if len(words) == 0 {
			return noInput(command, commandString)
		}
		return parseRegister(command, words)
	case "summoner":
		// league summoner [@member]
		command := COMMAND_SUMMONER
		if len(words) == 0 {
			return ParseResult{command: command, parseid: PARSEID_OK, arguments: SummonerArguments{}}
		}
		return parseSummoner(command, words[0])
	case "region":
		// league region <region_code>
		command := COMMAND_REGION
		if len(words) == 0 {
			return noInput(command, commandString)
		}
		return ParseResult{command: command, parseid: PARSEID_OK, arguments: riotapi.RegionCode(strings.ToLower(words[0]))}
	case "channel":
		// league channel
		return ParseResult{command: COMMAND_CHANNEL, parseid: PARSEID_OK}
	case "apikey":
		// league apikey <key>
		command := COMMAND_APIKEY
		if len(words) == 0 {
			return noInput(command, commandString)
		}
		return ParseResult{command: command, parseid: PARSEID_OK, arguments: words[0]}
	case "reset":
		// league reset
		return ParseResult{command: COMMAND_RESET, parseid: PARSEID_OK}
	case "regions":
		// league regions
		return ParseResult{command: COMMAND_REGIONS, parseid: PARSEID_OK}
	case "help":
		// league help
		return ParseResult{command: COMMAND_HELP, parseid: PARSEID_OK}
	default:
		parseid := PARSEID_COMMAND_NOT_RECOGNISED
		return ParseResult{parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], commandString)}
	}
}

// parseRegister splits a register command into name and region.
// If the last word is a known region code it is taken as the region
// and the rest is the name; otherwise the whole input is the name and
// the region falls back to the member's current one or the guild
// default later on
func parseRegister(command int, words []string) ParseResult {

	args := RegisterArguments{}
	if len(words) > 1 {
		last := riotapi.RegionCode(strings.ToLower(words[len(words)-1]))
		if _, err := riotapi.Resolve(last); err == nil {
			args.Region = last
			words = words[:len(words)-1]
		}
	}
	args.Name = strings.TrimSpace(strings.Join(words, " "))
	if args.Name == "" {
		parseid := PARSEID_NO_INPUT
		return ParseResult{command: command, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], "register")}
	}
	return ParseResult{command: command, parseid: PARSEID_OK, arguments: args}
}

// parseSummoner accepts an optional member to ask about. Discord writes
// a mention into the raw message content as <@id> or <@!id>
func parseSummoner(command int, word string) ParseResult {

	id, ok := parseMention(word)
	if !ok {
		parseid := PARSEID_NOT_A_MENTION
		return ParseResult{command: command, parseid: parseid, errorMessage: errorMessages[parseid]}
	}
	return ParseResult{command: command, parseid: PARSEID_OK, arguments: SummonerArguments{TargetID: id}}
}

func parseMention(word string) (string, bool) {

	if !strings.HasPrefix(word, "<@") || !strings.HasSuffix(word, ">") {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(word, "<@"), ">")
	id = strings.TrimPrefix(id, "!")
	if id == "" {
		return "", false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return id, true
}
