package places

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestShortNames(t *testing.T) {
	got := ShortNames([]string{"Gare Cornavin", "", "Gare de Lancy Pont Rouge", "Bel-Air", "Genève Eaux Vives"}, 3)
	want := []string{"Gare Cornavin", "Bel-Air", "Genève Eaux Vives"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFixedLocator(t *testing.T) {
	if _, err := (FixedLocator{}).Locate(context.Background()); !errors.Is(err, ErrNoLocation) {
		t.Errorf("expected ErrNoLocation, got %v", err)
	}
	lat, lon := 46.2, 6.14
	at, err := FixedLocator{Latitude: &lat, Longitude: &lon}.Locate(context.Background())
	if err != nil || at.Latitude != lat || at.Longitude != lon {
		t.Errorf("unexpected position %+v (%v)", at, err)
	}
}

func TestOverpass_Stations(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("data")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"elements":[
			{"tags":{"name":"Plainpalais"}},
			{"tags":{"public_transport":"station"}},
			{"tags":{"name":"Gare de Lancy Pont Rouge"}},
			{"tags":{"name":"Lancy Bachet"}}
		]}`))
	}))
	defer srv.Close()

	o := NewOverpass(srv.URL, 10000, 3, time.Second)
	names, err := o.Stations(context.Background(), Coordinates{Latitude: 46.2, Longitude: 6.14})
	if err != nil {
		t.Fatalf("Stations failed: %v", err)
	}
	if want := []string{"Plainpalais", "Lancy Bachet"}; !reflect.DeepEqual(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}
	if !strings.Contains(query, "node(around:10000,46.2,6.14)[public_transport=station]") {
		t.Errorf("unexpected query %q", query)
	}
}

func TestOverpass_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("data") == "" {
			t.Error("expected data parameter")
		}
		http.Error(w, "busy", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	o := NewOverpass(srv.URL, 10000, 3, time.Second)
	if _, err := o.Stations(context.Background(), Coordinates{}); err == nil {
		t.Error("expected error for non-200 status")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := o.Stations(ctx, Coordinates{}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

type stubLookup struct {
	names []string
	err   error
}

func (s stubLookup) Stations(context.Context, Coordinates) ([]string, error) {
	return s.names, s.err
}

func TestLabels(t *testing.T) {
	ctx := context.Background()
	labels, located := Labels(ctx, FixedLocator{}, stubLookup{names: []string{"x"}})
	if located || !reflect.DeepEqual(labels, DefaultLabels) {
		t.Errorf("expected default labels without location, got %v", labels)
	}

	lat, lon := 1.0, 2.0
	loc := FixedLocator{Latitude: &lat, Longitude: &lon}
	labels, located = Labels(ctx, loc, stubLookup{names: []string{"Central"}})
	if !located || !reflect.DeepEqual(labels, []string{"Central"}) {
		t.Errorf("expected lookup names, got %v", labels)
	}
	labels, _ = Labels(ctx, loc, stubLookup{err: errors.New("offline")})
	if len(labels) != 0 {
		t.Errorf("expected no labels when lookup fails, got %v", labels)
	}
}
