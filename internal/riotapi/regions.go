package riotapi

import "fmt"

type RegionCode string

// A region groups the server segment used to build request urls
// and the glyph shown next to player names in messages
type Region struct {
	Segment string
	Glyph   string
}

var ErrInvalidRegion = fmt.Errorf("invalid region")

// Order matters here: it is the order regions are listed in messages
// and the order used for indexed selection in the setup dialog
var regionCodes = []RegionCode{
	"br", "eune", "euw", "jp", "kr", "lan", "las", "na", "oce", "tr", "ru", "pbe",
}

var regions = map[RegionCode]Region{
	"br":   {Segment: "br1", Glyph: "🇧🇷"},
	"eune": {Segment: "eun1", Glyph: "🇪🇺"},
	"euw":  {Segment: "euw1", Glyph: "🇪🇺"},
	"jp":   {Segment: "jp1", Glyph: "🇯🇵"},
	"kr":   {Segment: "kr", Glyph: "🇰🇷"},
	"lan":  {Segment: "la1", Glyph: "🇲🇽"},
	"las":  {Segment: "la2", Glyph: "🇦🇷"},
	"na":   {Segment: "na1", Glyph: "🇺🇸"},
	"oce":  {Segment: "oc1", Glyph: "🇦🇺"},
	"tr":   {Segment: "tr1", Glyph: "🇹🇷"},
	"ru":   {Segment: "ru", Glyph: "🇷🇺"},
	"pbe":  {Segment: "pbe1", Glyph: "🧪"},
}

// Resolve returns the region for the provided code,
// or ErrInvalidRegion if the code is not one of the known ones
func Resolve(code RegionCode) (Region, error) {
	region, ok := regions[code]
	if !ok {
		return Region{}, fmt.Errorf("%w: %s", ErrInvalidRegion, code)
	}
	return region, nil
}

// RegionCodes returns all the known region codes in their fixed order
func RegionCodes() []RegionCode {
	codes := make([]RegionCode, len(regionCodes))
	copy(codes, regionCodes)
	return codes
}
