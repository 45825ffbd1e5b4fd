package osmparser

const (
	TagHighway     = "highway"
	TagOneway      = "oneway"
	TagMaxSpeed    = "maxspeed"
	TagMaxSpeedMph = "maxspeed_mph"

	onewayNo = "no"
)

// AllowedRoadType is the set of highway classes usable as roads.
var AllowedRoadType = map[string]bool{
	"motorway":       true,
	"trunk":          true,
	"primary":        true,
	"secondary":      true,
	"tertiary":       true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"motorway_link":  true,
	"trunk_link":     true,
	"primary_link":   true,
	"secondary_link": true,
	"tertiary_link":  true,
}

// DefaultSpeedLimitMph is used when a way carries no usable speed tag.
var DefaultSpeedLimitMph = map[string]float64{
	"motorway":       60,
	"trunk":          45,
	"primary":        35,
	"secondary":      30,
	"residential":    25,
	"tertiary":       25,
	"unclassified":   25,
	"living_street":  10,
	"motorway_link":  30,
	"trunk_link":     30,
	"primary_link":   30,
	"secondary_link": 30,
	"tertiary_link":  25,
}

const (
	kmhPerMph   = 1.609344
	knotsPerMph = 0.868976
)
