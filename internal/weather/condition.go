package weather

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/weather-forecast-pipeline/internal/common"
)

const (
	defaultIconID      = "cloudy"
	defaultDescription = "Cloudy"
	windIconID         = "wind"
)

// Tier is a precipitation intensity bucket.
type Tier int

const (
	TierLight Tier = iota
	TierModerate
	TierHeavy
)

func (t Tier) String() string {
	switch t {
	case TierLight:
		return "light"
	case TierHeavy:
		return "heavy"
	default:
		return "moderate"
	}
}

// IntensityTier buckets a precipitation amount in mm: light below 2.5,
// heavy from 7.5, moderate in between.
func IntensityTier(amount float64) Tier {
	switch {
	case amount < 2.5:
		return TierLight
	case amount >= 7.5:
		return TierHeavy
	default:
		return TierModerate
	}
}

type period int

const (
	periodNone period = iota
	periodDay
	periodNight
)

// normalizeSymbol lower-cases a symbol code and splits off its day/night suffix.
// Polar twilight is rendered with the day variant.
func normalizeSymbol(code string) (string, period) {
	s := strings.ToLower(strings.TrimSpace(code))
	base, suffix := common.CutAnySuffix(s, "_day", "_night", "_polartwilight")
	switch suffix {
	case "_day", "_polartwilight":
		return base, periodDay
	case "_night":
		return base, periodNight
	default:
		return base, periodNone
	}
}

// Classify maps a provider symbol code and a precipitation amount (mm, nil when
// unknown) to an icon id and a title-cased description. It is total: any input,
// including garbage, yields a non-empty pair.
func Classify(symbolCode string, precipitation *float64) (iconID, description string) {
	base, p := normalizeSymbol(symbolCode)
	if base == "" {
		return defaultIconID, defaultDescription
	}

	amount := 0.0
	if precipitation != nil {
		amount = *precipitation
	}
	tier := IntensityTier(amount)

	return iconFor(base, p, tier), descriptionFor(base, tier)
}

func iconFor(base string, p period, tier Tier) string {
	rule, ok := iconTable[base]
	if !ok {
		if common.HasAny(base, "wind") {
			return windIconID
		}
		return defaultIconID
	}
	return rule.resolve(p, tier)
}

func descriptionFor(base string, tier Tier) string {
	phrases, ok := descriptionTable[base]
	if !ok {
		return defaultDescription
	}
	return titleCase(phrases[tier])
}

// titleCase builds a fresh Caser per call; cases.Caser is not safe for concurrent use.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// severity maps a tier to the numeric suffix of graded icons (rainy-1, rainy-2, ...).
type severity [3]int

var (
	gradedSeverity      = &severity{1, 2, 3}
	lightGradedSeverity = &severity{1, 2, 2}
)

// iconRule is one row of the base-code+period -> icon id table. Any is used when
// the code carries no day/night suffix or the period has no dedicated variant.
// When Scale is set the ids contain a %d verb filled with the tier's severity.
type iconRule struct {
	Day   string
	Night string
	Any   string
	Scale *severity
}

func (r iconRule) resolve(p period, tier Tier) string {
	id := r.Any
	switch {
	case p == periodDay && r.Day != "":
		id = r.Day
	case p == periodNight && r.Night != "":
		id = r.Night
	}
	if id == "" {
		id = r.Day
	}
	if r.Scale != nil {
		id = fmt.Sprintf(id, r.Scale[tier])
	}
	return id
}

// tierPhrases is one row of the base-code+tier -> description table, indexed by Tier.
type tierPhrases [3]string

func fixed(phrase string) tierPhrases {
	return tierPhrases{phrase, phrase, phrase}
}
