package leads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miloshomes9-hub/masti-chat/pkg/logging"
)

type fakeMailer struct {
	err   error
	calls []Lead
}

func (m *fakeMailer) DeliverLead(ctx context.Context, lead Lead, message, source string) error {
	m.calls = append(m.calls, lead)
	return m.err
}

func postLead(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/lead", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Deliver(rr, req)
	return rr
}

func TestDeliverSuccess(t *testing.T) {
	mailer := &fakeMailer{}
	repo := NewInMemoryRepository()
	h := NewHandler(mailer, repo, nil, logging.Default())

	rr := postLead(t, h, `{"name":"Asha","email":"asha@example.com","message":"June wedding"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp deliverResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.OK)

	require.Len(t, mailer.calls, 1)
	assert.Equal(t, "asha@example.com", mailer.calls[0].Email)

	records, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "chat-widget", records[0].Source)
	assert.Equal(t, "June wedding", records[0].Message)
}

func TestDeliverInvalidBody(t *testing.T) {
	h := NewHandler(&fakeMailer{}, NewInMemoryRepository(), nil, logging.Default())

	rr := postLead(t, h, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var resp deliverResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.False(t, resp.OK)
	assert.Equal(t, "Invalid request body", resp.Error)
}

func TestDeliverRequiresContact(t *testing.T) {
	mailer := &fakeMailer{}
	h := NewHandler(mailer, NewInMemoryRepository(), nil, logging.Default())

	rr := postLead(t, h, `{"name":"Asha","city":"Dallas"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var resp deliverResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Provide email or phone", resp.Error)
	assert.Empty(t, mailer.calls)
}

func TestDeliverMailFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp: connection refused")}
	repo := NewInMemoryRepository()
	h := NewHandler(mailer, repo, nil, logging.Default())

	rr := postLead(t, h, `{"email":"asha@example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp deliverResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Email send failed", resp.Error)

	records, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, records, "failed deliveries must not be recorded")
}

func TestDeliverSuppressesDuplicates(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	mailer := &fakeMailer{}
	h := NewHandler(mailer, NewInMemoryRepository(), NewDeduper(client, time.Hour), logging.Default())

	first := postLead(t, h, `{"email":"asha@example.com"}`)
	second := postLead(t, h, `{"email":"asha@example.com"}`)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Len(t, mailer.calls, 1, "duplicate contact should not be mailed again")
}

func TestListLeads(t *testing.T) {
	repo := NewInMemoryRepository()
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := repo.Create(context.Background(), Lead{Email: email}, "", "chat-widget")
		require.NoError(t, err)
	}
	h := NewHandler(&fakeMailer{}, repo, nil, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/admin/leads?limit=2", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp ListResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Leads, 2)
	assert.Equal(t, "c@x.com", resp.Leads[0].Lead.Email, "newest first")
}
