package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ridereport/tripstats"
	"github.com/ridereport/tripstats/internal/testutil"
	"github.com/ridereport/tripstats/report"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	a, sum := testutil.Ingest(t, testutil.DirtyCorpus())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New("127.0.0.1:0", a, sum, logger)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %s", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %s", err)
	}
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv, "/health")
	if status != http.StatusOK {
		t.Errorf("status = %d, want %d", status, http.StatusOK)
	}
	var got map[string]string
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("failed to unmarshal response: %s", err)
	}
	if got["status"] != "ok" {
		t.Errorf("status field = %q, want %q", got["status"], "ok")
	}
}

func TestZones(t *testing.T) {
	srv := newTestServer(t)
	for _, tc := range []struct {
		desc       string
		path       string
		wantStatus int
		expected   zonesResponse
	}{
		{
			desc:       "no k falls back to the default",
			path:       "/api/v1/zones",
			wantStatus: http.StatusOK,
			expected: zonesResponse{
				K: report.DefaultK,
				Zones: []tripstats.ZoneCount{
					{Zone: "ZONEA", Count: 3},
					{Zone: "ZONEB", Count: 2},
					{Zone: "ZONEC", Count: 1},
				},
			},
		},
		{
			desc:       "k truncates",
			path:       "/api/v1/zones?k=1",
			wantStatus: http.StatusOK,
			expected: zonesResponse{
				K:     1,
				Zones: []tripstats.ZoneCount{{Zone: "ZONEA", Count: 3}},
			},
		},
		{
			desc:       "k of zero is empty but ok",
			path:       "/api/v1/zones?k=0",
			wantStatus: http.StatusOK,
			expected:   zonesResponse{K: 0, Zones: []tripstats.ZoneCount{}},
		},
		{
			desc:       "negative k is empty but ok",
			path:       "/api/v1/zones?k=-2",
			wantStatus: http.StatusOK,
			expected:   zonesResponse{K: -2, Zones: []tripstats.ZoneCount{}},
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			status, body := get(t, srv, tc.path)
			if status != tc.wantStatus {
				t.Fatalf("status = %d, want %d", status, tc.wantStatus)
			}
			var got zonesResponse
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("failed to unmarshal response: %s", err)
			}
			if diff := cmp.Diff(got, tc.expected); diff != "" {
				t.Errorf("not the same: \n%+v != \n%+v\ndiff:%s", got, tc.expected, diff)
			}
		})
	}
}

func TestZonesRejectsNonIntegerK(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv, "/api/v1/zones?k=ten")
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", status, http.StatusBadRequest)
	}
	var got errorResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("failed to unmarshal response: %s", err)
	}
	if got.Error == "" {
		t.Error("error field is empty, want a message about k")
	}
}

func TestSlots(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv, "/api/v1/slots?k=3")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want %d", status, http.StatusOK)
	}
	var got slotsResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("failed to unmarshal response: %s", err)
	}
	expected := slotsResponse{
		K: 3,
		Slots: []tripstats.SlotCount{
			{Zone: "ZONEA", Hour: 8, Count: 2},
			{Zone: "ZONEB", Hour: 9, Count: 2},
			{Zone: "ZONEA", Hour: 20, Count: 1},
		},
	}
	if diff := cmp.Diff(got, expected); diff != "" {
		t.Errorf("not the same: \n%+v != \n%+v\ndiff:%s", got, expected, diff)
	}
}

func TestReport(t *testing.T) {
	srv := newTestServer(t)
	status, body := get(t, srv, "/api/v1/report?k=2")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want %d", status, http.StatusOK)
	}
	var got report.Report
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("failed to unmarshal response: %s", err)
	}
	if got.GeneratedAt.IsZero() {
		t.Error("GeneratedAt is zero, want a timestamp")
	}
	got.GeneratedAt = time.Time{}
	expected := report.Report{
		K:           2,
		RowsSeen:    11,
		RowsSkipped: 5,
		Trips:       6,
		Zones:       3,
		TopZones: []tripstats.ZoneCount{
			{Zone: "ZONEA", Count: 3},
			{Zone: "ZONEB", Count: 2},
		},
		TopSlots: []tripstats.SlotCount{
			{Zone: "ZONEA", Hour: 8, Count: 2},
			{Zone: "ZONEB", Hour: 9, Count: 2},
		},
	}
	if diff := cmp.Diff(got, expected); diff != "" {
		t.Errorf("not the same: \n%+v != \n%+v\ndiff:%s", got, expected, diff)
	}
}

func TestWriteEndpointsAreNotRouted(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/api/v1/zones", "application/json", nil)
	if err != nil {
		t.Fatalf("POST failed: %s", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
	}
}
