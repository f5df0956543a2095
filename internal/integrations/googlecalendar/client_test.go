package googlecalendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestListBusyAllDayEventBindsToShopTimezone(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("singleEvents"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"id":"evt-1","status":"confirmed","start":{"date":"2026-09-07"},"end":{"date":"2026-09-08"}},
			{"id":"evt-2","status":"confirmed","start":{"dateTime":"2026-09-07T10:00:00+02:00"},"end":{"dateTime":"2026-09-07T11:00:00+02:00"}},
			{"id":"evt-3","status":"cancelled","start":{"dateTime":"2026-09-07T12:00:00+02:00"},"end":{"dateTime":"2026-09-07T13:00:00+02:00"}}
		]}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL, "shop", srv.Client(), madrid, nopLogger{})

	from := time.Date(2026, 9, 7, 0, 0, 0, 0, madrid)
	intervals, err := client.ListBusy(context.Background(), from, from.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, intervals, 2)

	// all-day событие занимает день салона, а не сутки UTC
	assert.True(t, intervals[0].Start.Equal(time.Date(2026, 9, 7, 0, 0, 0, 0, madrid)))
	assert.True(t, intervals[0].End.Equal(time.Date(2026, 9, 8, 0, 0, 0, 0, madrid)))

	assert.True(t, intervals[1].Start.Equal(time.Date(2026, 9, 7, 10, 0, 0, 0, madrid)))
	assert.True(t, intervals[1].End.Equal(time.Date(2026, 9, 7, 11, 0, 0, 0, madrid)))
}
