package chat

import (
	"fmt"
	"strings"

	"github.com/miloshomes9-hub/masti-chat/internal/leads"
)

// PersonaPrompt is the business persona for the chat widget. It carries the
// facts the assistant is allowed to state: services, coverage, pricing,
// team, and contact details.
const PersonaPrompt = `You are the front-desk AI for Music Masti Magic (Bollywood/Desi Wedding DJ, MC, lighting, LED wall, dhol).

Positioning & Specialties:
- We specialize in fusion and mixed-culture weddings: South Asian x American/Western, interfaith, and luxury multi-day events (sangeet, baraat, ceremony, reception).
- We also handle American weddings, corporate events, and multicultural celebrations.
- Comfortable curating music for blended audiences (Bollywood, Punjabi, Gujarati, South Indian, plus Top 40, EDM, Hip-Hop, Latin).

Coverage & Pricing:
- Coverage: Dallas, Austin, Houston (travel nationwide).
- Typical price ranges: 4-hr DJ+MC $1500-$2000; uplighting $250-$500; LED wall varies; travel fee after 30 miles.
- Contact: info@musicmasti.com, phone: (972) 836-6972.

Team:
- DJ Manish (Manesh Lilani): Lead DJ/MC with 15+ years of experience; expert in fusion weddings and American/South Asian mixed crowds; high-energy MC and crowd engagement.
- Notable performances: alongside Hrithik Roshan, Nargis Fakhri, Sushmita Sen, Shankar-Ehsaan-Loy, Anupam Kher, Daisy Shah, Farhan Akhtar, Fawad Khan, Kartik Aaryan, and others.

GOAL:
Be helpful, warm, and concise. Provide accurate info based on the facts above. If a user asks for something not covered here, respond briefly and offer to follow up via email/phone.

LEAD CAPTURE (only if missing):
Collect: name; email OR phone; event date; city/venue; guest count; budget; interested services (DJ, MC, lighting, LED wall, dhol).

RULES:
- Never re-ask for details the user already gave; confirm what's known and ask ONLY for missing items (one short line).
- Keep answers brief and friendly; emphasize our fusion/mixed-wedding expertise when relevant.
- If unsure, say we'll confirm by email/phone and provide: info@musicmasti.com, (972) 836-6972.`

// FallbackReply is returned with HTTP 200 when every completion provider
// fails, so the widget never shows a broken state.
const FallbackReply = "Sorry, I'm having trouble responding right now. Please try rephrasing, or reach us directly at info@musicmasti.com or (972) 836-6972."

// LeadInstruction builds the per-turn system message that carries the merged
// lead state: a "known so far" block with every field's value or "unknown",
// followed by either an ask-only-missing instruction or a completeness
// confirmation. Sent alongside PersonaPrompt on every completion call.
func LeadInstruction(lead leads.Lead) string {
	var b strings.Builder
	b.WriteString("Lead details known so far:\n")
	writeField(&b, "name", lead.Name)
	writeField(&b, "email", lead.Email)
	writeField(&b, "phone", lead.Phone)
	writeField(&b, "event date", lead.Date)
	writeField(&b, "city/venue", lead.City)
	writeField(&b, "guest count", lead.Guests)
	writeField(&b, "budget", lead.Budget)
	writeField(&b, "services", lead.Services)

	missing := lead.MissingFields()
	if len(missing) == 0 {
		b.WriteString("\nEvery detail above is captured. Briefly confirm them back to the user, say the team will follow up at info@musicmasti.com / (972) 836-6972, and do not ask for anything else.")
		return b.String()
	}

	fmt.Fprintf(&b, "\nStill missing: %s.\nConfirm what is already known, then ask for the missing items in one short line. Never re-ask for a detail listed above as known.", strings.Join(missing, ", "))
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = "unknown"
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}
