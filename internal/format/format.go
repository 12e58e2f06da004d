// Package format renders Lanyard presence records as display text.
// Every function is a pure function of its input; identical payloads
// always produce byte-identical output.
package format

import (
	"fmt"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"lanyard-mcp-go/internal/lanyard"
)

// statusEmoji maps a Discord status word to its marker. Unknown values
// fall back to the white circle.
var statusEmoji = map[string]string{
	"online":  "🟢",
	"idle":    "🟡",
	"dnd":     "🔴",
	"offline": "⚫",
}

// activityTypeLabels maps the Discord activity type enum to a label.
var activityTypeLabels = map[int]string{
	0: "Playing",
	1: "Streaming",
	2: "Listening to",
	3: "Watching",
	4: "Custom Status",
	5: "Competing in",
}

// Timestamp formats a millisecond epoch timestamp as a UTC string.
// Values whose UTC year falls outside the representable calendar render
// as "Unknown" instead of propagating an error.
func Timestamp(ms int64) string {
	t := time.UnixMilli(ms).UTC()
	if t.Year() < 1 || t.Year() > 9999 {
		return "Unknown"
	}
	return t.Format("2006-01-02 15:04:05") + " UTC"
}

// SpotifyBlock renders the labeled Spotify section. Absent song, artist
// or album fields render as "Unknown"; start/end lines appear only when
// the corresponding timestamp is present and non-zero.
func SpotifyBlock(spotify *lanyard.Spotify) string {
	if spotify == nil {
		return "Not listening to Spotify"
	}

	var b strings.Builder
	b.WriteString("🎵 Spotify Activity:\n")
	fmt.Fprintf(&b, "  Song: %s\n", stringOr(spotify.Song, "Unknown"))
	fmt.Fprintf(&b, "  Artist: %s\n", stringOr(spotify.Artist, "Unknown"))
	fmt.Fprintf(&b, "  Album: %s\n", stringOr(spotify.Album, "Unknown"))

	if ts := spotify.Timestamps; ts != nil {
		if ts.Start != nil && *ts.Start != 0 {
			fmt.Fprintf(&b, "  Started: %s\n", Timestamp(*ts.Start))
		}
		if ts.End != nil && *ts.End != 0 {
			fmt.Fprintf(&b, "  Ends: %s\n", Timestamp(*ts.End))
		}
	}
	return b.String()
}

// ActivitiesBlock renders the activity list as 1-based ordinal entries
// with optional indented Details and State lines.
func ActivitiesBlock(activities []lanyard.Activity) string {
	if len(activities) == 0 {
		return "No activities"
	}

	var b strings.Builder
	for i, activity := range activities {
		name := stringOr(activity.Name, "Unknown")
		label, ok := activityTypeLabels[activity.Type]
		if !ok {
			label = "Activity"
		}
		fmt.Fprintf(&b, "\n%d. %s %s\n", i+1, label, name)

		if activity.Details != nil && *activity.Details != "" {
			fmt.Fprintf(&b, "   Details: %s\n", *activity.Details)
		}
		if activity.State != nil && *activity.State != "" {
			fmt.Fprintf(&b, "   State: %s\n", *activity.State)
		}
	}
	return b.String()
}

// KVBlock renders the user's custom key/value entries in document order.
func KVBlock(kv *orderedmap.OrderedMap[string, string]) string {
	if kv == nil || kv.Len() == 0 {
		return "No KV data"
	}

	var b strings.Builder
	b.WriteString("📝 Custom KV Data:\n")
	for pair := kv.Oldest(); pair != nil; pair = pair.Next() {
		fmt.Fprintf(&b, "  %s: %s\n", pair.Key, pair.Value)
	}
	return b.String()
}

// stringOr dereferences an optional string, substituting fallback when
// the field is absent.
func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
