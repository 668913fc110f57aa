package types

// ForecastDay is one entry of the short forecast shown next to the current
// conditions.
type ForecastDay struct {
	Day       string `json:"day"`
	High      int    `json:"high"`
	Low       int    `json:"low"`
	Condition string `json:"condition"`
}

// WeatherSnapshot holds the current conditions plus a short forecast. When
// the upstream feed fails the planner substitutes FallbackWeather so the
// view layer always has renderable data.
type WeatherSnapshot struct {
	Temperature int           `json:"temperature"`
	Condition   string        `json:"condition"`
	Description string        `json:"description"`
	Humidity    int           `json:"humidity"`
	WindSpeed   int           `json:"wind_speed"`
	Forecast    []ForecastDay `json:"forecast"`
}

// LocalEvent is a single city event from the events feed.
type LocalEvent struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
}

// FeedSnapshot is what the feed handler returns: weather and events, each
// possibly a fallback, plus flags telling the caller which halves are live.
type FeedSnapshot struct {
	Weather       WeatherSnapshot `json:"weather"`
	Events        []LocalEvent    `json:"events"`
	WeatherIsLive bool            `json:"weather_is_live"`
	EventsAreLive bool            `json:"events_are_live"`
}

// FallbackWeather is the fixed payload substituted on any weather feed
// failure (network, non-2xx, malformed body).
func FallbackWeather() WeatherSnapshot {
	return WeatherSnapshot{
		Temperature: 72,
		Condition:   "Partly Cloudy",
		Description: "partly cloudy",
		Humidity:    65,
		WindSpeed:   8,
		Forecast: []ForecastDay{
			{Day: "Today", High: 75, Low: 65, Condition: "Partly Cloudy"},
			{Day: "Tomorrow", High: 78, Low: 68, Condition: "Sunny"},
			{Day: "Wed", High: 73, Low: 62, Condition: "Rainy"},
		},
	}
}

// FallbackEvents is the fixed payload substituted on any events feed failure.
func FallbackEvents() []LocalEvent {
	return []LocalEvent{
		{Name: "Broadway Show", StartTime: "8:00 PM"},
		{Name: "Art Exhibition", StartTime: "10:00 AM"},
		{Name: "Central Park Concert", StartTime: "6:00 PM"},
	}
}
