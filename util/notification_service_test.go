package util_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/ems/api/model"
	"github.com/dev-mohitbeniwal/ems/api/util"
)

type postedMessage struct {
	Channel string
	Text    string
	Blocks  string
}

func newFakeSlack(t *testing.T, ok bool) (*httptest.Server, *[]postedMessage) {
	t.Helper()
	var mu sync.Mutex
	var posted []postedMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat.postMessage", r.URL.Path)
		require.NoError(t, r.ParseForm())
		mu.Lock()
		posted = append(posted, postedMessage{
			Channel: r.PostForm.Get("channel"),
			Text:    r.PostForm.Get("text"),
			Blocks:  r.PostForm.Get("blocks"),
		})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			_, _ = w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"channel":"C1","ts":"1700000000.000100"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &posted
}

func testPolicy() model.Policy {
	published := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return model.Policy{
		ID:                         "p1",
		Title:                      "Code of Conduct",
		Version:                    "2.0",
		Priority:                   model.PolicyPriorityHigh,
		AcknowledgmentDeadlineDays: 7,
		PublishedAt:                &published,
	}
}

func TestNewSlackClient_RequiresToken(t *testing.T) {
	_, err := util.NewSlackClient("")
	assert.Error(t, err)
}

func TestNotificationService_SlackDelivery(t *testing.T) {
	srv, posted := newFakeSlack(t, true)
	client, err := util.NewSlackClient("xoxb-test", util.WithSlackAPIURL(srv.URL+"/"))
	require.NoError(t, err)

	n := util.NewNotificationService(util.WithSlack(client, "C-ADMIN"))
	ctx := context.Background()
	emp := model.Employee{ID: "u1", Name: "Ann", Email: "ann@example.com", SlackID: "U123", Department: "Ops"}

	require.NoError(t, n.NotifyPolicyPublished(ctx, testPolicy(), 12))
	require.NoError(t, n.SendReminder(ctx, emp, testPolicy(), 2))
	require.NoError(t, n.Escalate(ctx, emp, testPolicy(), 3))

	require.Len(t, *posted, 3)
	assert.Equal(t, "C-ADMIN", (*posted)[0].Channel)
	assert.Contains(t, (*posted)[0].Text, "12 employees")

	assert.Equal(t, "U123", (*posted)[1].Channel)
	assert.Contains(t, (*posted)[1].Text, "Code of Conduct")
	assert.Contains(t, (*posted)[1].Blocks, "2024-03-08")
	assert.Contains(t, (*posted)[1].Blocks, "Reminder #2")

	assert.Equal(t, "C-ADMIN", (*posted)[2].Channel)
	assert.Contains(t, (*posted)[2].Text, "after 3 reminders")
}

func TestNotificationService_SkipsUsersWithoutSlackID(t *testing.T) {
	srv, posted := newFakeSlack(t, true)
	client, err := util.NewSlackClient("xoxb-test", util.WithSlackAPIURL(srv.URL+"/"))
	require.NoError(t, err)

	n := util.NewNotificationService(util.WithSlack(client, ""))
	require.NoError(t, n.SendReminder(context.Background(), model.Employee{ID: "u1"}, testPolicy(), 1))
	require.NoError(t, n.Escalate(context.Background(), model.Employee{ID: "u1"}, testPolicy(), 3))
	assert.Empty(t, *posted)
}

func TestNotificationService_SlackError(t *testing.T) {
	srv, _ := newFakeSlack(t, false)
	client, err := util.NewSlackClient("xoxb-test", util.WithSlackAPIURL(srv.URL+"/"))
	require.NoError(t, err)

	n := util.NewNotificationService(util.WithSlack(client, "C-ADMIN"))
	err = n.NotifyPolicyPublished(context.Background(), testPolicy(), 1)
	assert.ErrorContains(t, err, "channel_not_found")
}

func TestNotificationService_LogOnly(t *testing.T) {
	n := util.NewNotificationService()
	ctx := context.Background()
	assert.NoError(t, n.NotifyPolicyPublished(ctx, testPolicy(), 1))
	assert.NoError(t, n.SendReminder(ctx, model.Employee{ID: "u1", SlackID: "U1"}, testPolicy(), 1))
	assert.NoError(t, n.Escalate(ctx, model.Employee{ID: "u1"}, testPolicy(), 3))
}
