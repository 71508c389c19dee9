package bot

import (
	"strings"
	"testing"

	"leaguewatch/internal/riotapi"
	"leaguewatch/internal/store"
)

func embedDescription(t *testing.T, responses []Response) string {
	t.Helper()
	if len(responses) != 1 {
		t.Fatalf("got %d responses, want 1", len(responses))
	}
	embed, ok := responses[0].(ResponseEmbed)
	if !ok {
		t.Fatalf("response is %T, want ResponseEmbed", responses[0])
	}
	return embed.embed.Description
}

func TestRegistrationFailureMessages(t *testing.T) {

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unknown region", riotapi.ErrInvalidRegion, "Available regions"},
		{"summoner not found", riotapi.ErrNotFound, "does not exist in the region"},
		{"no api key", riotapi.ErrCredentialMissing, "No riot api key is configured"},
		{"bad api key", riotapi.ErrCredentialInvalid, "invalid or expired"},
		{"garbage response", riotapi.ErrMalformedResponse, "could not understand"},
		{"provider error", &riotapi.ProviderError{Status: 502}, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			description := embedDescription(t, RegistrationFailure(tt.err, "Faker", "kr"))
			if !strings.Contains(description, tt.want) {
				t.Errorf("description %q does not contain %q", description, tt.want)
			}
		})
	}
}

func responseText(t *testing.T, responses []Response) string {
	t.Helper()
	if len(responses) != 1 {
		t.Fatalf("got %d responses, want 1", len(responses))
	}
	text, ok := responses[0].(ResponseString)
	if !ok {
		t.Fatalf("response is %T, want ResponseString", responses[0])
	}
	return text.content
}

func TestSummonerMessagesForSelfAndOthers(t *testing.T) {

	reg := store.Registration{Summoner: riotapi.Summoner{Name: "Faker", Region: "kr"}}

	if got := responseText(t, SummonerInfo(reg, true)); !strings.HasPrefix(got, "Your summoner name is Faker") {
		t.Errorf("SummonerInfo for self = %q", got)
	}
	if got := responseText(t, SummonerInfo(reg, false)); got != "That user's summoner name is Faker." {
		t.Errorf("SummonerInfo for another member = %q", got)
	}
	if got := responseText(t, NotRegisteredMessage(true)); !strings.HasPrefix(got, "You do not have") {
		t.Errorf("NotRegisteredMessage for self = %q", got)
	}
	if got := responseText(t, NotRegisteredMessage(false)); !strings.HasPrefix(got, "That user does not have") {
		t.Errorf("NotRegisteredMessage for another member = %q", got)
	}
}

func TestAnnouncementEmbed(t *testing.T) {

	embed := announcementEmbed("Faker started a game!")
	if embed.Description != "Faker started a game!" {
		t.Errorf("embed description = %q", embed.Description)
	}
	if embed.Color != colorNeutral {
		t.Errorf("embed color = %#x, want %#x", embed.Color, colorNeutral)
	}
}

func TestRegionListMentionsEveryCode(t *testing.T) {

	list := regionList()
	for _, code := range riotapi.RegionCodes() {
		if !strings.Contains(list, "`"+string(code)+"`") {
			t.Errorf("region list is missing %s", code)
		}
	}
}
