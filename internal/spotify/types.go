package spotify

import "strings"

// Track is a playable item from a playlist, the library, or a search.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
	DurationMS int      `json:"duration_ms"`
	URI        string   `json:"uri"`
}

// ArtistNames joins the track's artist names for display.
func (t Track) ArtistNames() string {
	names := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Album struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Images []Image `json:"images"`
}

type Image struct {
	Height int    `json:"height"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
}

// Playlist is a user playlist. The pseudo-playlist "liked" (the user's
// saved tracks) is prepended by GetPlaylists and is not a real API object.
type Playlist struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Tracks      PlaylistTracks `json:"tracks"`
}

type PlaylistTracks struct {
	Total int `json:"total"`
}

type Device struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsActive bool   `json:"is_active"`
}

// CurrentlyPlaying is the playback state of the user's active device.
// Item is nil when the API reports no track information.
type CurrentlyPlaying struct {
	Item       *Track  `json:"item"`
	IsPlaying  bool    `json:"is_playing"`
	ProgressMS *int    `json:"progress_ms"`
	Device     *Device `json:"device"`
}

// Queue is the upcoming-tracks view of the player.
type Queue struct {
	CurrentlyPlaying *Track  `json:"currently_playing"`
	Queue            []Track `json:"queue"`
}

// TokenPair is the result of a successful token exchange. RefreshToken
// may be empty; some exchanges omit it.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Internal response envelopes.

type playlistsResponse struct {
	Items []Playlist `json:"items"`
}

type playlistTracksResponse struct {
	Items []struct {
		Track Track `json:"track"`
	} `json:"items"`
}

type likedTracksResponse struct {
	Items []struct {
		AddedAt string `json:"added_at"`
		Track   Track  `json:"track"`
	} `json:"items"`
}

type searchResponse struct {
	Tracks struct {
		Items []Track `json:"items"`
	} `json:"tracks"`
}

type devicesResponse struct {
	Devices []Device `json:"devices"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}
