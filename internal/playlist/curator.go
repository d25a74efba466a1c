package playlist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/miloshomes9-hub/masti-chat/internal/llm"
)

const curatorPrompt = `You are a professional wedding DJ playlist curator for Music Masti Magic.
Return strictly JSON with this shape:
{
  "playlist_name": "string",
  "tracks": [{"artist":"string","title":"string"}]
}
Focus on Bollywood/Punjabi/Gujarati/South Indian + Top 40/EDM/Hip-Hop/Latin blends for mixed crowds when relevant.
Avoid explicit versions. Balance energy for events.`

// Track is one curated song.
type Track struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
}

// Curator asks the completion provider for a JSON track list matching a vibe.
type Curator struct {
	llm         llm.Client
	model       string
	temperature float32
	now         func() time.Time
}

// NewCurator creates a playlist curator backed by the given completion client.
func NewCurator(client llm.Client, model string, temperature float32) *Curator {
	return &Curator{llm: client, model: model, temperature: temperature, now: time.Now}
}

// Curate generates a named track list for the given vibe. length is clamped
// to 1..50; notes are optional free text.
func (c *Curator) Curate(ctx context.Context, vibe string, length int, notes string) (string, []Track, error) {
	if length <= 0 {
		length = 20
	}
	if length > 50 {
		length = 50
	}
	if strings.TrimSpace(notes) == "" {
		notes = "N/A"
	}

	user := fmt.Sprintf("Create %d tracks for:\nVibe: %s\nNotes: %s\nFormat: JSON only.", length, vibe, notes)
	resp, err := c.llm.Complete(ctx, llm.Request{
		Model:       c.model,
		System:      []string{curatorPrompt},
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		Temperature: c.temperature,
		ForceJSON:   true,
	})
	if err != nil {
		return "", nil, fmt.Errorf("playlist: completion failed: %w", err)
	}

	var parsed struct {
		PlaylistName string  `json:"playlist_name"`
		Tracks       []Track `json:"tracks"`
	}
	if err := json.Unmarshal([]byte(resp.Text), &parsed); err != nil {
		return "", nil, fmt.Errorf("playlist: provider returned invalid JSON: %w", err)
	}

	name := strings.TrimSpace(parsed.PlaylistName)
	if name == "" {
		name = "Masti AI Playlist " + c.now().Format("2006-01-02")
	}
	return name, parsed.Tracks, nil
}
