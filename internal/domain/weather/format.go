package weather

import (
	"strings"
	"time"
)

// FormatLocalTime переводит момент в локальное время города и печатает его
// как на карточке: «3:05pm, jan 02», если момент в пределах двух часов от now
// (иначе только время), «:00» у ровных часов опускается. Нулевое время — "N/A".
func FormatLocalTime(ts time.Time, offsetSeconds int, now time.Time) string {
	if ts.IsZero() {
		return "N/A"
	}

	local := ts.In(time.FixedZone("", offsetSeconds))

	d := now.Sub(ts)
	if d < 0 {
		d = -d
	}

	layout := "3:04PM"
	if d < 2*time.Hour {
		layout = "3:04PM, Jan 02"
	}

	return strings.ReplaceAll(strings.ToLower(local.Format(layout)), ":00", "")
}

// LocalObservedAt / LocalSunrise / LocalSunset — готовые строки для выдачи.

func (w Weather) LocalObservedAt(now time.Time) string {
	return FormatLocalTime(w.ObservedAt, w.TimezoneOffset, now)
}

func (w Weather) LocalSunrise(now time.Time) string {
	return FormatLocalTime(w.Sunrise, w.TimezoneOffset, now)
}

func (w Weather) LocalSunset(now time.Time) string {
	return FormatLocalTime(w.Sunset, w.TimezoneOffset, now)
}
