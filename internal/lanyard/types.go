package lanyard

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// apiEnvelope is the top-level Lanyard REST response body.
type apiEnvelope struct {
	Success bool      `json:"success"`
	Data    *Presence `json:"data"`
}

// Presence is a snapshot of a user's current Discord presence as
// reported by Lanyard. Optional sub-records decode to nil pointers so
// "absent" and "present but empty" stay distinguishable.
type Presence struct {
	DiscordUser            *DiscordUser                           `json:"discord_user"`
	DiscordStatus          string                                 `json:"discord_status"`
	ActiveOnDiscordDesktop bool                                   `json:"active_on_discord_desktop"`
	ActiveOnDiscordMobile  bool                                   `json:"active_on_discord_mobile"`
	ListeningToSpotify     bool                                   `json:"listening_to_spotify"`
	Spotify                *Spotify                               `json:"spotify"`
	Activities             []Activity                             `json:"activities"`
	KV                     *orderedmap.OrderedMap[string, string] `json:"kv"`
}

// DiscordUser identifies the tracked user.
type DiscordUser struct {
	Username      string `json:"username"`
	ID            string `json:"id"`
	Discriminator string `json:"discriminator"`
}

// Spotify describes the track the user is currently listening to.
type Spotify struct {
	Song        *string            `json:"song"`
	Artist      *string            `json:"artist"`
	Album       *string            `json:"album"`
	AlbumArtURL *string            `json:"album_art_url"`
	TrackID     *string            `json:"track_id"`
	Timestamps  *SpotifyTimestamps `json:"timestamps"`
}

// SpotifyTimestamps holds the track's start/end times in epoch milliseconds.
type SpotifyTimestamps struct {
	Start *int64 `json:"start"`
	End   *int64 `json:"end"`
}

// Activity is one entry of the user's activity list. Name is optional
// like the other fields: an absent name renders as "Unknown" while an
// empty one passes through.
type Activity struct {
	Name    *string `json:"name"`
	Type    int     `json:"type"`
	Details *string `json:"details"`
	State   *string `json:"state"`
}

// Username returns the username for display, defaulting to "Unknown"
// when the user record is absent.
func (p *Presence) Username() string {
	if p.DiscordUser == nil || p.DiscordUser.Username == "" {
		return "Unknown"
	}
	return p.DiscordUser.Username
}

// KVLen returns the number of KV entries, treating an absent map as empty.
func (p *Presence) KVLen() int {
	if p.KV == nil {
		return 0
	}
	return p.KV.Len()
}
