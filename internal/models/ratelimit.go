package models

// RateLimitStatus is a point-in-time view of the provider admission budget.
type RateLimitStatus struct {
	CallsLastMinute int `json:"calls_last_minute"`
	CallsLastDay    int `json:"calls_last_day"`
	MinuteLimit     int `json:"minute_limit"`
	DayLimit        int `json:"day_limit"`
}
