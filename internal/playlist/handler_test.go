package playlist

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miloshomes9-hub/masti-chat/pkg/logging"
)

func postPlaylist(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/playlist", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Curate(rr, req)
	return rr
}

func TestCurateHandlerRequiresVibe(t *testing.T) {
	h := NewHandler(NewCurator(&stubLLM{}, "gpt-4o-mini", 0.6), nil, logging.Default())

	rr := postPlaylist(t, h, `{"length":10}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Missing 'vibe' in body", resp["error"])
}

func TestCurateHandlerBasicMode(t *testing.T) {
	stub := &stubLLM{reply: `{"playlist_name":"Baraat Hits","tracks":[{"artist":"Panjabi MC","title":"Mundian To Bach Ke"}]}`}
	h := NewHandler(NewCurator(stub, "gpt-4o-mini", 0.6), nil, logging.Default())

	rr := postPlaylist(t, h, `{"vibe":"baraat","length":1}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp curateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "basic", resp.Mode)
	assert.Equal(t, "Baraat Hits", resp.PlaylistName)
	require.Len(t, resp.Tracks, 1)
	assert.Equal(t, "Panjabi MC", resp.Tracks[0].Artist)
	assert.Contains(t, resp.Tracks[0].YouTube, "youtube.com/results?search_query=")
	assert.Contains(t, resp.Tracks[0].Spotify, "open.spotify.com/search/")
	assert.Empty(t, resp.SpotifyPlaylistURL)
}

func TestCurateHandlerSpotifyMode(t *testing.T) {
	srv, _ := fakeSpotify(t)
	spotify := newFakeClient(t, srv)
	stub := &stubLLM{reply: `{"playlist_name":"Sangeet Bangers","tracks":[{"artist":"Diljit Dosanjh","title":"G.O.A.T."}]}`}
	h := NewHandler(NewCurator(stub, "gpt-4o-mini", 0.6), spotify, logging.Default())

	rr := postPlaylist(t, h, `{"vibe":"sangeet","length":1}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp curateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "spotify", resp.Mode)
	assert.Equal(t, "pl-1", resp.SpotifyPlaylistID)
	assert.Equal(t, "https://open.spotify.com/playlist/pl-1", resp.SpotifyPlaylistURL)
	require.Len(t, resp.Tracks, 1, "track list is returned in both modes")
}

func TestCurateHandlerSpotifyFailureDegradesToBasic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "spotify is down", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	spotify := newFakeClient(t, srv)
	stub := &stubLLM{reply: `{"playlist_name":"Baraat Hits","tracks":[{"artist":"a","title":"b"}]}`}
	h := NewHandler(NewCurator(stub, "gpt-4o-mini", 0.6), spotify, logging.Default())

	rr := postPlaylist(t, h, `{"vibe":"baraat"}`)

	require.Equal(t, http.StatusOK, rr.Code, "spotify failures must not error the request")
	var resp curateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "basic", resp.Mode)
	require.Len(t, resp.Tracks, 1)
}

func TestCurateHandlerProviderFailure(t *testing.T) {
	h := NewHandler(NewCurator(&stubLLM{err: errors.New("boom")}, "gpt-4o-mini", 0.6), nil, logging.Default())

	rr := postPlaylist(t, h, `{"vibe":"garba"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Playlist generation failed", resp["error"])
}
