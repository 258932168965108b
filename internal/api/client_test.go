package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/Itecs-company/Obed-micro/internal/api"
	"github.com/Itecs-company/Obed-micro/internal/model"
)

// capture records the last request the test server saw.
type capture struct {
	method string
	path   string
	query  url.Values
	auth   string
	body   []byte
}

func newCaptureServer(t *testing.T, status int, response string) (*capture, *api.Client) {
	t.Helper()
	rec := &capture{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.Query()
		rec.auth = r.Header.Get("Authorization")
		rec.body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	client := api.NewClient(context.Background(), server.URL,
		&oauth2.Token{AccessToken: "sekret"}, 5*time.Second)
	return rec, client
}

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestListRecordsCarriesBearerToken(t *testing.T) {
	rec, client := newCaptureServer(t, http.StatusOK,
		`{"employees":[],"lunch_price":150,"total_participants":0,"total_cost":0}`)

	if _, err := client.ListRecords(context.Background(), model.DateRange{}); err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if rec.auth != "Bearer sekret" {
		t.Errorf("Authorization = %q, want bearer credential", rec.auth)
	}
}

func TestListRecordsOmitsUnsetBounds(t *testing.T) {
	rec, client := newCaptureServer(t, http.StatusOK,
		`{"employees":[],"lunch_price":150,"total_participants":0,"total_cost":0}`)

	if _, err := client.ListRecords(context.Background(), model.DateRange{}); err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if _, ok := rec.query["start_date"]; ok {
		t.Error("start_date sent for unbounded range")
	}
	if _, ok := rec.query["end_date"]; ok {
		t.Error("end_date sent for unbounded range")
	}

	start := mustDate(t, "2026-03-01")
	rng := model.DateRange{Start: &start}
	if _, err := client.ListRecords(context.Background(), rng); err != nil {
		t.Fatalf("ListRecords with range: %v", err)
	}
	if got := rec.query.Get("start_date"); got != "2026-03-01" {
		t.Errorf("start_date = %q, want ISO date", got)
	}
	if _, ok := rec.query["end_date"]; ok {
		t.Error("end_date sent for half-open range")
	}
}

func TestUpdateRecordSendsPatchVerbatim(t *testing.T) {
	rec, client := newCaptureServer(t, http.StatusOK,
		`{"id":4,"full_name":"n","status":true,"date":"2026-03-01","note":"x"}`)

	patch := map[string]any{"note": "x"}
	if _, err := client.UpdateRecord(context.Background(), 4, patch); err != nil {
		t.Fatalf("UpdateRecord: %v", err)
	}
	if rec.method != http.MethodPut || rec.path != "/employees/4" {
		t.Errorf("request = %s %s, want PUT /employees/4", rec.method, rec.path)
	}

	var sent map[string]any
	if err := json.Unmarshal(rec.body, &sent); err != nil {
		t.Fatalf("decoding sent body: %v", err)
	}
	if len(sent) != 1 || sent["note"] != "x" {
		t.Errorf("sent body = %v, want exactly the patch", sent)
	}
}

func TestImportRecordsBuildsMultipart(t *testing.T) {
	rec, client := newCaptureServer(t, http.StatusOK, `{"imported":2}`)

	n, err := client.ImportRecords(context.Background(), "roster.xlsx", strings.NewReader("cells"))
	if err != nil {
		t.Fatalf("ImportRecords: %v", err)
	}
	if n != 2 {
		t.Errorf("imported = %d, want 2", n)
	}
	body := string(rec.body)
	if !strings.Contains(body, `name="file"; filename="roster.xlsx"`) {
		t.Errorf("multipart body missing file part: %q", body)
	}
	if !strings.Contains(body, "cells") {
		t.Error("multipart body missing file contents")
	}
}

func TestExportRecordsQuery(t *testing.T) {
	rec, client := newCaptureServer(t, http.StatusOK, "binary-bytes")

	end := mustDate(t, "2026-03-31")
	rng := model.DateRange{End: &end}
	data, err := client.ExportRecords(context.Background(), api.FormatPDF, false, rng)
	if err != nil {
		t.Fatalf("ExportRecords: %v", err)
	}
	if string(data) != "binary-bytes" {
		t.Errorf("payload = %q", data)
	}
	if rec.path != "/employees/export/pdf" {
		t.Errorf("path = %q", rec.path)
	}
	if got := rec.query.Get("include_price"); got != "false" {
		t.Errorf("include_price = %q, want false", got)
	}
	if got := rec.query.Get("end_date"); got != "2026-03-31" {
		t.Errorf("end_date = %q", got)
	}
}

func TestErrorCarriesServerDetail(t *testing.T) {
	_, client := newCaptureServer(t, http.StatusNotFound, `{"detail":"Employee not found"}`)

	err := client.DeleteRecord(context.Background(), 99)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "Employee not found") {
		t.Errorf("error = %q, want status and server detail", err)
	}
}

func TestParseExportFormat(t *testing.T) {
	if _, err := api.ParseExportFormat("csv"); err == nil {
		t.Error("expected error for unknown format")
	}
	f, err := api.ParseExportFormat("excel")
	if err != nil {
		t.Fatalf("ParseExportFormat(excel): %v", err)
	}
	if f.Ext() != "xlsx" {
		t.Errorf("excel ext = %q, want xlsx", f.Ext())
	}
	if api.FormatPDF.Ext() != "pdf" {
		t.Errorf("pdf ext = %q, want pdf", api.FormatPDF.Ext())
	}
}
