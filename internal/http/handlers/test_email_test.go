package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miloshomes9-hub/masti-chat/pkg/logging"
)

type fakeTestMailer struct {
	err error
	to  []string
}

func (m *fakeTestMailer) SendTest(ctx context.Context, to string) error {
	m.to = append(m.to, to)
	return m.err
}

func TestSendTestEmail(t *testing.T) {
	mailer := &fakeTestMailer{}
	h := NewTestEmailHandler(mailer, logging.Default())

	rr := httptest.NewRecorder()
	h.SendTest(rr, httptest.NewRequest(http.MethodGet, "/admin/test-email?to=owner@musicmasti.com", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, []string{"owner@musicmasti.com"}, mailer.to)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, true, resp["ok"])
}

func TestSendTestEmailDefaultsRecipient(t *testing.T) {
	mailer := &fakeTestMailer{}
	h := NewTestEmailHandler(mailer, logging.Default())

	rr := httptest.NewRecorder()
	h.SendTest(rr, httptest.NewRequest(http.MethodGet, "/admin/test-email", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, []string{""}, mailer.to, "empty recipient lets the service fall back to the lead inbox")
}

func TestSendTestEmailFailure(t *testing.T) {
	mailer := &fakeTestMailer{err: errors.New("smtp: auth failed")}
	h := NewTestEmailHandler(mailer, logging.Default())

	rr := httptest.NewRecorder()
	h.SendTest(rr, httptest.NewRequest(http.MethodGet, "/admin/test-email", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, false, resp["ok"])
}

func TestSendTestEmailUnconfigured(t *testing.T) {
	h := NewTestEmailHandler(nil, logging.Default())

	rr := httptest.NewRecorder()
	h.SendTest(rr, httptest.NewRequest(http.MethodGet, "/admin/test-email", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
