package format

import (
	"fmt"
	"strings"

	"lanyard-mcp-go/internal/lanyard"
)

// UserDisplay resolves the display name and ID for a presence record.
// Post-migration accounts (discriminator "0") render as @username;
// legacy accounts keep the username#discriminator form. requestedID is
// used when the upstream record carries no user object.
func UserDisplay(user *lanyard.DiscordUser, requestedID string) (display, id string) {
	username := "Unknown"
	discriminator := "0"
	id = requestedID
	if user != nil {
		if user.Username != "" {
			username = user.Username
		}
		if user.Discriminator != "" {
			discriminator = user.Discriminator
		}
		if user.ID != "" {
			id = user.ID
		}
	}
	if discriminator == "0" {
		return "@" + username, id
	}
	return username + "#" + discriminator, id
}

// StatusLine renders the status word with its emoji marker.
func StatusLine(status string) string {
	if status == "" {
		status = "unknown"
	}
	emoji, ok := statusEmoji[status]
	if !ok {
		emoji = "⚪"
	}
	return fmt.Sprintf("Status: %s %s", emoji, strings.ToUpper(status))
}

// Presence renders the full presence report: header, status, device
// flags, then Spotify, activities and KV sections when present.
func Presence(p *lanyard.Presence, requestedID string) string {
	display, id := UserDisplay(p.DiscordUser, requestedID)

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Discord Presence for %s (%s)\n\n", display, id)
	b.WriteString(StatusLine(p.DiscordStatus))
	b.WriteString("\n\n")

	if p.ActiveOnDiscordDesktop {
		b.WriteString("💻 Active on Desktop\n")
	}
	if p.ActiveOnDiscordMobile {
		b.WriteString("📱 Active on Mobile\n")
	}
	b.WriteString("\n")

	if p.ListeningToSpotify && p.Spotify != nil {
		b.WriteString(SpotifyBlock(p.Spotify))
		b.WriteString("\n")
	}

	if len(p.Activities) > 0 {
		b.WriteString("🎮 Activities:")
		b.WriteString(ActivitiesBlock(p.Activities))
		b.WriteString("\n")
	}

	if p.KVLen() > 0 {
		b.WriteString(KVBlock(p.KV))
	}

	return strings.TrimSpace(b.String())
}

// SpotifyStatus renders the Spotify-only report, adding album art and
// track URL lines when the record carries them.
func SpotifyStatus(p *lanyard.Presence) string {
	username := p.Username()

	if !p.ListeningToSpotify || p.Spotify == nil {
		return fmt.Sprintf("🎵 %s is not currently listening to Spotify", username)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ Spotify Status for %s\n\n", username)
	b.WriteString(SpotifyBlock(p.Spotify))

	if art := stringOr(p.Spotify.AlbumArtURL, ""); art != "" {
		fmt.Fprintf(&b, "  Album Art: %s\n", art)
	}
	if trackID := stringOr(p.Spotify.TrackID, ""); trackID != "" {
		fmt.Fprintf(&b, "  Track URL: https://open.spotify.com/track/%s\n", trackID)
	}

	return strings.TrimSpace(b.String())
}

// KVData renders the KV-only report.
func KVData(p *lanyard.Presence) string {
	username := p.Username()

	if p.KVLen() == 0 {
		return fmt.Sprintf("📝 %s has no custom KV data set", username)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ KV Data for %s\n\n", username)
	b.WriteString(KVBlock(p.KV))

	return strings.TrimSpace(b.String())
}
