package bot

import (
	"errors"
	"fmt"
	"strings"

	"leaguewatch/internal/riotapi"
	"leaguewatch/internal/store"

	"github.com/bwmarrin/discordgo"
)

// Standard colors for embeds
const (
	colorSuccess = 0x00FF00
	colorFailure = 0xFF0000
	colorNeutral = 0x808080
)

func HelpMessage() []Response {

	embed := discordgo.MessageEmbed{Title: "Commands available", Color: colorNeutral}
	fields := []struct{ name, value string }{
		{"`league register <summoner_name> [region]`", "Link a summoner to your account and start announcing their games. Region defaults to your current one, then to the guild default"},
		{"`league summoner [@member]`", "Show the summoner linked to your account, or to the mentioned member's"},
		{"`league region <region_code>`", "Set the default region for this guild"},
		{"`league channel`", "Announce new games in the channel this command is typed in"},
		{"`league apikey <key>`", "Set the riot api key used for all requests"},
		{"`league regions`", "List the known region codes"},
		{"`league reset`", "Clear every registration and setting for this guild"},
		{"`league help`", "Print this message"},
	}
	for _, field := range fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: field.name, Value: field.value, Inline: false})
	}
	return []Response{ResponseEmbed{embed}}
}

func InputNotValid(errorMessage string) []Response {
	return []Response{ResponseString{fmt.Sprintf("Input not valid: \n> %s", errorMessage)}}
}

func RegistrationSuccess(summoner riotapi.Summoner) []Response {

	embed := discordgo.MessageEmbed{Title: "Registration Success", Color: colorSuccess}
	embed.Description = fmt.Sprintf(
		"Summoner now registered.\n**Summoner Name**: %s\n**Region**: %s\n**PUUID**: %s\n**AccountId**: %s\n**SummonerId**: %s",
		summoner.Name, strings.ToUpper(string(summoner.Region)), summoner.Puuid, summoner.AccountId, summoner.SummonerId,
	)
	return []Response{ResponseEmbed{embed}}
}

// RegistrationFailure turns a classified lookup error into the message
// the member actually needs to read
func RegistrationFailure(err error, name string, region riotapi.RegionCode) []Response {

	embed := discordgo.MessageEmbed{Title: "Registration Failure", Color: colorFailure}
	switch {
	case errors.Is(err, riotapi.ErrInvalidRegion):
		embed.Title = "Invalid Region"
		embed.Description = fmt.Sprintf("Region %s not found. Available regions:\n%s",
			strings.ToUpper(string(region)), regionList())
	case errors.Is(err, riotapi.ErrNotFound):
		embed.Description = fmt.Sprintf("Summoner '%s' does not exist in the region %s.", name, strings.ToUpper(string(region)))
	case errors.Is(err, riotapi.ErrCredentialMissing):
		embed.Description = "No riot api key is configured. Set one with `league apikey <key>`."
	case errors.Is(err, riotapi.ErrCredentialInvalid):
		embed.Description = "The riot api key is invalid or expired."
	case errors.Is(err, riotapi.ErrMalformedResponse):
		embed.Description = "Riot returned a response I could not understand. Try again later."
	default:
		embed.Description = fmt.Sprintf("Riot api request failed: %v", err)
	}
	return []Response{ResponseEmbed{embed}}
}

func SummonerInfo(reg store.Registration, self bool) []Response {
	if !self {
		return []Response{ResponseString{fmt.Sprintf("That user's summoner name is %s.", reg.Summoner.Name)}}
	}
	return []Response{ResponseString{fmt.Sprintf("Your summoner name is %s, located in %s.",
		reg.Summoner.Name, strings.ToUpper(string(reg.Summoner.Region)))}}
}

func NotRegisteredMessage(self bool) []Response {
	if !self {
		return []Response{ResponseString{"That user does not have a summoner name setup yet."}}
	}
	return []Response{ResponseString{"You do not have a summoner name setup yet."}}
}

func RegionsMessage() []Response {

	embed := discordgo.MessageEmbed{Title: "Known regions", Color: colorNeutral, Description: regionList()}
	return []Response{ResponseEmbed{embed}}
}

func regionList() string {

	var lines []string
	for _, code := range riotapi.RegionCodes() {
		region, _ := riotapi.Resolve(code)
		lines = append(lines, fmt.Sprintf("%s `%s`", region.Glyph, code))
	}
	return strings.Join(lines, "\n")
}

func ChannelSet() []Response {
	return []Response{ResponseString{"Channel set. New games will be announced here."}}
}

func RegionSet(code riotapi.RegionCode) []Response {
	return []Response{ResponseString{fmt.Sprintf("Default region for this guild is now %s.", strings.ToUpper(string(code)))}}
}

func ApiKeySet() []Response {
	return []Response{ResponseString{"Riot api key stored."}}
}

func GuildReset() []Response {
	return []Response{ResponseString{"Data cleared."}}
}

func InternalError() []Response {
	return []Response{ResponseString{"Sorry, something went wrong!"}}
}
