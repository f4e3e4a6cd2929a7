package icons

import "fmt"

const (
	fallbackURLFormat = "https://openweathermap.org/img/wn/%s@4x.png"
	fallbackCode      = "04d"
)

// vendorCodes maps icon ids to OpenWeatherMap icon codes.
var vendorCodes = map[string]string{
	"clear-day":      "01d",
	"clear-night":    "01n",
	"cloudy-1-day":   "02d",
	"cloudy-1-night": "02n",
	"cloudy-2-day":   "03d",
	"cloudy-2-night": "03n",
	"cloudy":         "04d",
	"fog":            "50d",
	"fog-day":        "50d",
	"fog-night":      "50n",
	"wind":           "50d",

	"rainy-1":       "10d",
	"rainy-2":       "10d",
	"rainy-3":       "09d",
	"rainy-1-day":   "10d",
	"rainy-1-night": "10n",
	"rainy-2-day":   "10d",
	"rainy-2-night": "10n",
	"rainy-3-day":   "09d",
	"rainy-3-night": "09n",

	"rain-and-sleet-mix": "13d",
	"snow-and-sleet-mix": "13d",

	"snowy-1":       "13d",
	"snowy-2":       "13d",
	"snowy-3":       "13d",
	"snowy-1-day":   "13d",
	"snowy-1-night": "13n",
	"snowy-2-day":   "13d",
	"snowy-2-night": "13n",
	"snowy-3-day":   "13d",
	"snowy-3-night": "13n",

	"isolated-thunderstorms":        "11d",
	"isolated-thunderstorms-day":    "11d",
	"isolated-thunderstorms-night":  "11n",
	"scattered-thunderstorms":       "11d",
	"scattered-thunderstorms-day":   "11d",
	"scattered-thunderstorms-night": "11n",
	"thunderstorms":                 "11d",
	"severe-thunderstorm":           "11d",
	"tropical-storm":                "11d",
	"hurricane":                     "11d",
}

// VendorCode returns the vendor icon code for iconID; unknown ids map to cloudy.
func VendorCode(iconID string) string {
	if code, ok := vendorCodes[iconID]; ok {
		return code
	}
	return fallbackCode
}

// FallbackURL is the vendor icon URL for iconID.
func FallbackURL(iconID string) string {
	return fmt.Sprintf(fallbackURLFormat, VendorCode(iconID))
}
