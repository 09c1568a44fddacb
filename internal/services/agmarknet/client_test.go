package agmarknet

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRecordsSendsFiltersAndParsesMixedPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resource/res-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api-key") != "k" || q.Get("filters[commodity]") != "Lady Finger" || q.Get("filters[state]") != "Tamil Nadu" {
			t.Errorf("unexpected query %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"records":[
			{"market":"Koyambedu","min_price":"2000","max_price":3000,"modal_price":"2500"},
			{"market":"Odd","min_price":"NR","max_price":"","modal_price":null}
		]}`))
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, "res-1", time.Second)
	recs, err := c.Records(context.Background(), "Lady Finger", "Tamil Nadu")
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].MinPrice != 2000 || recs[0].MaxPrice != 3000 || recs[0].ModalPrice != 2500 {
		t.Fatalf("unexpected first record %+v", recs[0])
	}
	if recs[1].MinPrice != 0 || recs[1].ModalPrice != 0 {
		t.Fatalf("unparseable prices should decode to zero, got %+v", recs[1])
	}
}

func TestRecordsWithoutKey(t *testing.T) {
	c := NewClient("", "", "", time.Second)
	if c.Enabled() {
		t.Fatal("client without key should be disabled")
	}
	if _, err := c.Records(context.Background(), "Tomato", "Karnataka"); !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestRecordsNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, "", time.Second)
	if _, err := c.Records(context.Background(), "Tomato", "Karnataka"); err == nil {
		t.Fatal("expected error on 403")
	}
}
