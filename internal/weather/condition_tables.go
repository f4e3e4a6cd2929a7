package weather

// iconTable maps a normalized symbol base code to its icon ids.
// Codes are the MET Norway / Yr symbol set plus a few tropical codes.
var iconTable = map[string]iconRule{
	// Sky cover
	"clearsky":     {Day: "clear-day", Night: "clear-night", Any: "clear-day"},
	"fair":         {Day: "cloudy-1-day", Night: "cloudy-1-night", Any: "cloudy-1-day"},
	"partlycloudy": {Day: "cloudy-2-day", Night: "cloudy-2-night", Any: "cloudy-2-day"},
	"cloudy":       {Any: "cloudy"},
	"fog":          {Day: "fog-day", Night: "fog-night", Any: "fog"},

	// Rain
	"lightrain":        {Any: "rainy-%d", Scale: lightGradedSeverity},
	"rain":             {Any: "rainy-%d", Scale: gradedSeverity},
	"heavyrain":        {Any: "rainy-3"},
	"lightrainshowers": {Day: "rainy-1-day", Night: "rainy-1-night", Any: "rainy-1"},
	"rainshowers":      {Day: "rainy-2-day", Night: "rainy-2-night", Any: "rainy-2"},
	"heavyrainshowers": {Day: "rainy-3-day", Night: "rainy-3-night", Any: "rainy-3"},

	// Sleet
	"lightsleet":        {Any: "rain-and-sleet-mix"},
	"sleet":             {Any: "rain-and-sleet-mix"},
	"heavysleet":        {Any: "snow-and-sleet-mix"},
	"lightsleetshowers": {Any: "rain-and-sleet-mix"},
	"sleetshowers":      {Any: "rain-and-sleet-mix"},
	"heavysleetshowers": {Any: "snow-and-sleet-mix"},

	// Snow
	"lightsnow":        {Any: "snowy-%d", Scale: lightGradedSeverity},
	"snow":             {Any: "snowy-%d", Scale: gradedSeverity},
	"heavysnow":        {Any: "snowy-3"},
	"lightsnowshowers": {Day: "snowy-1-day", Night: "snowy-1-night", Any: "snowy-1"},
	"snowshowers":      {Day: "snowy-2-day", Night: "snowy-2-night", Any: "snowy-2"},
	"heavysnowshowers": {Day: "snowy-3-day", Night: "snowy-3-night", Any: "snowy-3"},

	// Thunder with showers. The "lights" spelling is how the provider publishes them.
	"lightrainshowersandthunder":   {Day: "isolated-thunderstorms-day", Night: "isolated-thunderstorms-night", Any: "isolated-thunderstorms"},
	"lightssleetshowersandthunder": {Day: "isolated-thunderstorms-day", Night: "isolated-thunderstorms-night", Any: "isolated-thunderstorms"},
	"lightssnowshowersandthunder":  {Day: "isolated-thunderstorms-day", Night: "isolated-thunderstorms-night", Any: "isolated-thunderstorms"},
	"rainshowersandthunder":        {Day: "scattered-thunderstorms-day", Night: "scattered-thunderstorms-night", Any: "scattered-thunderstorms"},
	"sleetshowersandthunder":       {Day: "scattered-thunderstorms-day", Night: "scattered-thunderstorms-night", Any: "scattered-thunderstorms"},
	"snowshowersandthunder":        {Day: "scattered-thunderstorms-day", Night: "scattered-thunderstorms-night", Any: "scattered-thunderstorms"},
	"heavyrainshowersandthunder":   {Any: "severe-thunderstorm"},
	"heavysleetshowersandthunder":  {Any: "severe-thunderstorm"},
	"heavysnowshowersandthunder":   {Any: "severe-thunderstorm"},

	// Thunder with continuous precipitation
	"lightrainandthunder":  {Any: "isolated-thunderstorms"},
	"lightsleetandthunder": {Any: "isolated-thunderstorms"},
	"lightsnowandthunder":  {Any: "isolated-thunderstorms"},
	"rainandthunder":       {Any: "thunderstorms"},
	"sleetandthunder":      {Any: "thunderstorms"},
	"snowandthunder":       {Any: "thunderstorms"},
	"heavyrainandthunder":  {Any: "severe-thunderstorm"},
	"heavysleetandthunder": {Any: "severe-thunderstorm"},
	"heavysnowandthunder":  {Any: "severe-thunderstorm"},

	// Tropical
	"tropicalstorm": {Any: "tropical-storm"},
	"hurricane":     {Any: "hurricane"},
}

// descriptionTable maps a normalized symbol base code to its phrase per intensity tier.
var descriptionTable = map[string]tierPhrases{
	"clearsky":     fixed("clear sky"),
	"fair":         fixed("fair"),
	"partlycloudy": fixed("partly cloudy"),
	"cloudy":       fixed("cloudy"),
	"fog":          fixed("fog"),

	"lightrain":        {"light rain", "rain", "rain"},
	"rain":             {"light rain", "rain", "heavy rain"},
	"heavyrain":        fixed("heavy rain"),
	"lightrainshowers": fixed("light rain showers"),
	"rainshowers":      fixed("rain showers"),
	"heavyrainshowers": fixed("heavy rain showers"),

	"lightsleet":        fixed("light sleet"),
	"sleet":             fixed("sleet"),
	"heavysleet":        fixed("heavy sleet"),
	"lightsleetshowers": fixed("light sleet showers"),
	"sleetshowers":      fixed("sleet showers"),
	"heavysleetshowers": fixed("heavy sleet showers"),

	"lightsnow":        {"light snow", "snow", "snow"},
	"snow":             {"light snow", "snow", "heavy snow"},
	"heavysnow":        fixed("heavy snow"),
	"lightsnowshowers": fixed("light snow showers"),
	"snowshowers":      fixed("snow showers"),
	"heavysnowshowers": fixed("heavy snow showers"),

	"lightrainshowersandthunder":   fixed("light rain showers and thunder"),
	"lightssleetshowersandthunder": fixed("light sleet showers and thunder"),
	"lightssnowshowersandthunder":  fixed("light snow showers and thunder"),
	"rainshowersandthunder":        fixed("rain showers and thunder"),
	"sleetshowersandthunder":       fixed("sleet showers and thunder"),
	"snowshowersandthunder":        fixed("snow showers and thunder"),
	"heavyrainshowersandthunder":   fixed("heavy rain showers and thunder"),
	"heavysleetshowersandthunder":  fixed("heavy sleet showers and thunder"),
	"heavysnowshowersandthunder":   fixed("heavy snow showers and thunder"),

	"lightrainandthunder":  fixed("light rain and thunder"),
	"lightsleetandthunder": fixed("light sleet and thunder"),
	"lightsnowandthunder":  fixed("light snow and thunder"),
	"rainandthunder":       fixed("rain and thunder"),
	"sleetandthunder":      fixed("sleet and thunder"),
	"snowandthunder":       fixed("snow and thunder"),
	"heavyrainandthunder":  fixed("heavy rain and thunder"),
	"heavysleetandthunder": fixed("heavy sleet and thunder"),
	"heavysnowandthunder":  fixed("heavy snow and thunder"),

	"tropicalstorm": fixed("tropical storm"),
	"hurricane":     fixed("hurricane"),
}
