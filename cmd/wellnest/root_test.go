package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellnest/tracker-api/internal/aggregate"
	"wellnest/tracker-api/internal/service"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "dashboard")
}

func TestLoginThenDeleteLog(t *testing.T) {
	var deleted []string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token":"tok","email":"sam@example.com","fullName":"Sam"}`))
	})
	mux.HandleFunc("GET /api/v1/sleep", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":"65f000000000000000000003","timestamp":"2026-02-23T07:00:00Z","durationHours":7},
			{"id":"65f000000000000000000002","timestamp":"2026-02-22T07:00:00Z","durationHours":6},
			{"id":"65f000000000000000000001","timestamp":"2026-02-21T07:00:00Z","durationHours":8}
		]`))
	})
	mux.HandleFunc("DELETE /api/v1/sleep/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		deleted = append(deleted, r.PathValue("id"))
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	session := filepath.Join(t.TempDir(), "session.yaml")
	out, err := execute(t, "--server", srv.URL, "--session", session, "login", "--email", "sam@example.com", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Sam")

	out, err = execute(t, "--session", session, "logs", "delete", "sleep", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"65f000000000000000000002"}, deleted)
	assert.Contains(t, out, "2 entries left.")

	_, err = execute(t, "--session", session, "logs", "delete", "steps", "1")
	assert.ErrorContains(t, err, "unknown log kind")
}

func TestPrintDashboard(t *testing.T) {
	d := &service.Dashboard{
		Timezone: "UTC",
		Labels:   aggregate.DayLabels,
		Water: service.WaterSummary{
			WeeklyGlasses: aggregate.WeeklySeries{4, 0, 8, 0, 0, 0, 0},
			GoalGlasses:   8,
			TodayGlasses:  4,
			TodayPercent:  50,
		},
	}
	buf := &bytes.Buffer{}
	printDashboard(buf, d)

	out := buf.String()
	assert.Contains(t, out, "Mon  Tue  Wed")
	assert.Contains(t, out, "water 4/8 glasses (50%)")
	assert.True(t, strings.Contains(out, "total 12"), out)
}
