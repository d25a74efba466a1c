package playlist

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/miloshomes9-hub/masti-chat/pkg/logging"
)

// Handler serves the AI playlist curator endpoint.
type Handler struct {
	curator *Curator
	spotify *SpotifyClient
	logger  *logging.Logger
}

// NewHandler creates a playlist handler. spotify may be nil, which keeps the
// endpoint in basic mode.
func NewHandler(curator *Curator, spotify *SpotifyClient, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{curator: curator, spotify: spotify, logger: logger}
}

type curateRequest struct {
	Vibe   string `json:"vibe"`
	Length int    `json:"length"`
	Notes  string `json:"notes"`
}

// TrackLink is one curated track plus search links the widget can render.
type TrackLink struct {
	Artist  string `json:"artist"`
	Title   string `json:"title"`
	YouTube string `json:"youtube"`
	Spotify string `json:"spotify"`
}

type curateResponse struct {
	Mode               string      `json:"mode"`
	PlaylistName       string      `json:"playlist_name"`
	Tracks             []TrackLink `json:"tracks"`
	SpotifyPlaylistURL string      `json:"spotify_playlist_url,omitempty"`
	SpotifyPlaylistID  string      `json:"spotify_playlist_id,omitempty"`
}

// Curate handles POST /api/playlist. Basic mode returns the track list with
// search links; when a Spotify client is configured the playlist is also
// created on the account. Any Spotify failure degrades back to basic mode
// rather than erroring.
func (h *Handler) Curate(w http.ResponseWriter, r *http.Request) {
	var req curateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	req.Vibe = strings.TrimSpace(req.Vibe)
	if req.Vibe == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing 'vibe' in body"})
		return
	}

	name, tracks, err := h.curator.Curate(r.Context(), req.Vibe, req.Length, req.Notes)
	if err != nil {
		h.logger.Error("playlist: curation failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Playlist generation failed"})
		return
	}

	resp := curateResponse{
		Mode:         "basic",
		PlaylistName: name,
		Tracks:       make([]TrackLink, 0, len(tracks)),
	}
	for _, t := range tracks {
		q := url.QueryEscape(t.Title + " " + t.Artist)
		resp.Tracks = append(resp.Tracks, TrackLink{
			Artist:  t.Artist,
			Title:   t.Title,
			YouTube: "https://www.youtube.com/results?search_query=" + q,
			Spotify: "https://open.spotify.com/search/" + q,
		})
	}

	if h.spotify != nil {
		created, err := h.spotify.Export(r.Context(), name, "Auto-generated by Music Masti Magic AI curator", tracks)
		if err != nil {
			h.logger.Warn("playlist: spotify export failed, returning basic mode", "error", err)
		} else {
			resp.Mode = "spotify"
			resp.SpotifyPlaylistURL = created.URL
			resp.SpotifyPlaylistID = created.ID
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("playlist: failed to encode response", "error", err)
	}
}
