package oecd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

/*
TestFetchDataset verifies the request shape: dataset code appended to the
base URL, default query parameters present, and extras merged over them.
*/
func TestFetchDataset(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"dataSets":[{"observations":{"0:0":[1]}}],"structure":{"dimensions":{"observation":[]}}}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		BaseURL:     srv.URL + "/data/",
		StartPeriod: "2000",
		EndPeriod:   "2023",
		Timeout:     5 * time.Second,
	})

	p, err := c.FetchDataset(context.Background(), "EDU_FIN", url.Values{"measure": []string{"USD"}})
	if err != nil {
		t.Fatalf("FetchDataset: %v", err)
	}
	if len(p.DataSets) != 1 || len(p.DataSets[0].Observations) != 1 {
		t.Errorf("unexpected payload: %+v", p)
	}

	if gotPath != "/data/EDU_FIN" {
		t.Errorf("path = %q, want /data/EDU_FIN", gotPath)
	}
	for key, want := range map[string]string{
		"dimensionAtObservation": "AllDimensions",
		"detail":                 "dataonly",
		"startPeriod":            "2000",
		"endPeriod":              "2023",
		"measure":                "USD",
	} {
		if got := gotQuery.Get(key); got != want {
			t.Errorf("query %s = %q, want %q", key, got, want)
		}
	}
}

func TestFetchDatasetHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL + "/", Timeout: 5 * time.Second})

	_, err := c.FetchDataset(context.Background(), "EDU_ENRL", nil)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, want *FetchError", err)
	}
	if fe.Dataset != "EDU_ENRL" || fe.Status != http.StatusServiceUnavailable {
		t.Errorf("FetchError = %+v, want dataset EDU_ENRL status 503", fe)
	}
}

func TestFetchDatasetBadBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL + "/", Timeout: 5 * time.Second})

	_, err := c.FetchDataset(context.Background(), "EDU_ENRL", nil)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, want *FetchError", err)
	}
	if fe.Status != 0 {
		t.Errorf("FetchError.Status = %d, want 0 for a parse failure", fe.Status)
	}
}

func TestFetchDatasetEmptyCode(t *testing.T) {
	t.Parallel()

	c := NewClient(ClientConfig{BaseURL: "http://example.invalid/"})
	if _, err := c.FetchDataset(context.Background(), "", nil); err == nil {
		t.Error("FetchDataset with empty code succeeded, want error")
	}
}
