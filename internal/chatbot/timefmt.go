package chatbot

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// TimeLayout is the layout used for every time placeholder.
const TimeLayout = "2006-01-02 15:04:05"

const (
	minOffsetHour = -12
	maxOffsetHour = 14
)

var offsetMinutes = [...]int{0, 30, 45}

// FormatTime renders now in the provided location. A nil location is treated
// as UTC.
func FormatTime(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(TimeLayout)
}

// Offset is a fixed UTC offset expressed as a signed hour and an unsigned
// minute component. Hour zero is always positive.
type Offset struct {
	Hour   int
	Minute int
}

// Offsets enumerates every generated offset: hours -12 through 14 crossed
// with minutes 0, 30 and 45.
func Offsets() []Offset {
	out := make([]Offset, 0, (maxOffsetHour-minOffsetHour+1)*len(offsetMinutes))
	for hour := minOffsetHour; hour <= maxOffsetHour; hour++ {
		for _, minute := range offsetMinutes {
			out = append(out, Offset{Hour: hour, Minute: minute})
		}
	}
	return out
}

// Seconds returns the signed offset from UTC. The minute component carries
// the sign of the hour, so -5:30 is five and a half hours behind UTC.
func (o Offset) Seconds() int {
	sign := 1
	hour := o.Hour
	if hour < 0 {
		sign = -1
		hour = -hour
	}
	return sign * (hour*3600 + o.Minute*60)
}

// Name returns the zone name, e.g. GMT+07:00.
func (o Offset) Name() string {
	sign, hour := offsetSign(o.Hour)
	return fmt.Sprintf("GMT%s%02d:%02d", sign, hour, o.Minute)
}

// Location returns a fixed zone for the offset.
func (o Offset) Location() *time.Location {
	return time.FixedZone(o.Name(), o.Seconds())
}

// ZoneLabel builds the placeholder for an offset, for example
// {time_utc_plus_07_00} or {time_gmt_minus_03_30}.
func ZoneLabel(prefix string, hour, minute int) string {
	sign := "plus"
	if hour < 0 {
		sign = "minus"
		hour = -hour
	}
	return fmt.Sprintf("{time_%s_%s_%02d_%02d}", prefix, sign, hour, minute)
}

func offsetSign(hour int) (string, int) {
	if hour < 0 {
		return "-", -hour
	}
	return "+", hour
}
