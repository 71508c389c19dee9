package bot

import (
	"testing"

	"leaguewatch/internal/riotapi"
)

func TestParse(t *testing.T) {

	tests := []struct {
		name        string
		message     string
		wantParseid int
		wantCommand int
	}{
		{"not for the bot", "hello there", PARSEID_NO_BOT_PREFIX, 0},
		{"prefix only", "league", PARSEID_NO_COMMAND, 0},
		{"unknown command", "league dance", PARSEID_COMMAND_NOT_RECOGNISED, 0},
		{"register without input", "league register", PARSEID_NO_INPUT, COMMAND_REGISTER},
		{"register", "league register Faker kr", PARSEID_OK, COMMAND_REGISTER},
		{"summoner", "league summoner", PARSEID_OK, COMMAND_SUMMONER},
		{"summoner with mention", "league summoner <@123456789>", PARSEID_OK, COMMAND_SUMMONER},
		{"summoner with bad argument", "league summoner Faker", PARSEID_NOT_A_MENTION, COMMAND_SUMMONER},
		{"region without input", "league region", PARSEID_NO_INPUT, COMMAND_REGION},
		{"region", "league region euw", PARSEID_OK, COMMAND_REGION},
		{"channel", "league channel", PARSEID_OK, COMMAND_CHANNEL},
		{"apikey without input", "league apikey", PARSEID_NO_INPUT, COMMAND_APIKEY},
		{"apikey", "league apikey RGAPI-123", PARSEID_OK, COMMAND_APIKEY},
		{"reset", "league reset", PARSEID_OK, COMMAND_RESET},
		{"regions", "league regions", PARSEID_OK, COMMAND_REGIONS},
		{"help", "league help", PARSEID_OK, COMMAND_HELP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.message)
			if result.parseid != tt.wantParseid {
				t.Fatalf("Parse(%q).parseid = %d, want %d", tt.message, result.parseid, tt.wantParseid)
			}
			if tt.wantParseid == PARSEID_OK && result.command != tt.wantCommand {
				t.Errorf("Parse(%q).command = %d, want %d", tt.message, result.command, tt.wantCommand)
			}
		})
	}
}

func TestParseSummonerArguments(t *testing.T) {

	tests := []struct {
		name         string
		message      string
		wantParseid  int
		wantTargetID string
	}{
		{"no mention", "league summoner", PARSEID_OK, ""},
		{"plain mention", "league summoner <@123456789>", PARSEID_OK, "123456789"},
		{"nickname mention", "league summoner <@!123456789>", PARSEID_OK, "123456789"},
		{"not a mention", "league summoner Faker", PARSEID_NOT_A_MENTION, ""},
		{"empty mention", "league summoner <@>", PARSEID_NOT_A_MENTION, ""},
		{"mention with letters", "league summoner <@abc>", PARSEID_NOT_A_MENTION, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.message)
			if result.parseid != tt.wantParseid {
				t.Fatalf("Parse(%q).parseid = %d, want %d", tt.message, result.parseid, tt.wantParseid)
			}
			if tt.wantParseid != PARSEID_OK {
				return
			}
			args, ok := result.arguments.(SummonerArguments)
			if !ok {
				t.Fatalf("Parse(%q).arguments = %T, want SummonerArguments", tt.message, result.arguments)
			}
			if args.TargetID != tt.wantTargetID {
				t.Errorf("Parse(%q).TargetID = %q, want %q", tt.message, args.TargetID, tt.wantTargetID)
			}
		})
	}
}

func TestParseRegisterArguments(t *testing.T) {

	tests := []struct {
		name       string
		message    string
		wantName   string
		wantRegion riotapi.RegionCode
	}{
		{"name and region", "league register Faker kr", "Faker", "kr"},
		{"region in upper case", "league register Faker KR", "Faker", "kr"},
		{"no region", "league register Faker", "Faker", ""},
		{"name with spaces", "league register hide on bush kr", "hide on bush", "kr"},
		{"name with spaces and no region", "league register hide on bush", "hide on bush", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.message)
			if result.parseid != PARSEID_OK {
				t.Fatalf("Parse(%q).parseid = %d, want ok", tt.message, result.parseid)
			}
			args, ok := result.arguments.(RegisterArguments)
			if !ok {
				t.Fatalf("Parse(%q).arguments = %T, want RegisterArguments", tt.message, result.arguments)
			}
			if args.Name != tt.wantName || args.Region != tt.wantRegion {
				t.Errorf("Parse(%q) = %+v, want name %q region %q", tt.message, args, tt.wantName, tt.wantRegion)
			}
		})
	}
}
