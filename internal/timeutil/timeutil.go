package timeutil

import "time"

// Layout is the human-readable rendering used for point timestamps.
const Layout = "2006-01-02 15:04:05"

// ToLocalString converts an epoch-millisecond timestamp to a local
// wall-clock string, e.g. "2021-03-01 14:05:09". Sub-second precision is
// floored away.
func ToLocalString(ms int64) string {
	return time.Unix(ms/1000, 0).Local().Format(Layout)
}

// ToAMPM returns "AM" when the local hour of the instant is before noon,
// otherwise "PM".
func ToAMPM(ms int64) string {
	if time.Unix(ms/1000, 0).Local().Hour() < 12 {
		return "AM"
	}
	return "PM"
}
