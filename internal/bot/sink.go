package bot

import (
	"github.com/bwmarrin/discordgo"
)

// Sink delivers polling loop announcements through the discord session
type Sink struct {
	discord *discordgo.Session
}

func NewSink(discord *discordgo.Session) *Sink {
	return &Sink{discord: discord}
}

func (sink *Sink) Send(channelID string, content string) error {
	_, err := sink.discord.ChannelMessageSendEmbed(channelID, announcementEmbed(content))
	return err
}

func announcementEmbed(content string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Description: content, Color: colorNeutral}
}
