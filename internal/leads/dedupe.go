package leads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduper suppresses repeat deliveries of the same contact within a window.
// The chat handler forwards captured contact fields on every turn they
// appear in, so without this the business inbox gets one email per message.
// A nil *Deduper is valid and never suppresses.
type Deduper struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDeduper creates a Redis-backed lead deduper.
func NewDeduper(client *redis.Client, ttl time.Duration) *Deduper {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Deduper{client: client, ttl: ttl}
}

// FirstSeen reports whether this contact has not been delivered within the
// TTL window, marking it seen as a side effect. Redis errors fail open: a
// broken dedupe store must never block lead delivery.
func (d *Deduper) FirstSeen(ctx context.Context, lead Lead) bool {
	if d == nil {
		return true
	}
	key := dedupeKey(lead)
	if key == "" {
		return true
	}
	ok, err := d.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), d.ttl).Result()
	if err != nil {
		return true
	}
	return ok
}

func dedupeKey(lead Lead) string {
	email := strings.ToLower(strings.TrimSpace(lead.Email))
	phone := digitsOnly(lead.Phone)
	if email == "" && phone == "" {
		return ""
	}
	return fmt.Sprintf("lead:dedupe:%s|%s", email, phone)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
