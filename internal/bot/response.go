package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type ResponseString struct {
	content string
}
type ResponseEmbed struct {
	embed discordgo.MessageEmbed
}

type Response interface {
	Send(channelid string, discord *discordgo.Session)
}

func (response ResponseString) Send(channelid string, discord *discordgo.Session) {
	if _, err := discord.ChannelMessageSend(channelid, response.content); err != nil {
		log.Error().Msg(fmt.Sprintf("Could not send message to channel %s: %v", channelid, err))
	}
}

func (response ResponseEmbed) Send(channelid string, discord *discordgo.Session) {
	if _, err := discord.ChannelMessageSendEmbed(channelid, &response.embed); err != nil {
		log.Error().Msg(fmt.Sprintf("Could not send embed to channel %s: %v", channelid, err))
	}
}
