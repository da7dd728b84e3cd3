package ondilo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestListPools(t *testing.T) {
	t.Run("round-trip", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("method = %s, want GET", r.Method)
			}
			if r.URL.Path != apiPrefix+"/pools" {
				t.Errorf("path = %s, want %s/pools", r.URL.Path, apiPrefix)
			}
			w.Write([]byte(`[{"id": 1, "name": "Backyard"}]`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		pools, err := client.ListPools(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []Pool{{ID: 1, Name: "Backyard"}}
		if !reflect.DeepEqual(pools, want) {
			t.Errorf("pools = %+v, want %+v", pools, want)
		}
	})

	t.Run("full pool payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{
				"id": 234,
				"name": "John pool",
				"type": "outdoor_inground_pool",
				"volume": 15,
				"disinfection": {"primary": "chlorine", "secondary": {"uv_sanitizer": true, "ozonator": false}},
				"address": {"street": "162 Avenue Robert Schuman", "zipcode": "13760", "city": "Saint-Cannat", "country": "France", "latitude": 43.612282, "longitude": 5.3179397},
				"updated_at": "2019-11-27T23:00:21+0000"
			}]`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		pools, err := client.ListPools(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(pools) != 1 {
			t.Fatalf("got %d pools, want 1", len(pools))
		}

		pool := pools[0]
		if pool.Type != "outdoor_inground_pool" || pool.Volume != 15 {
			t.Errorf("pool = %+v, want type/volume decoded", pool)
		}
		if pool.Disinfection == nil || pool.Disinfection.Primary != "chlorine" || !pool.Disinfection.Secondary.UVSanitizer {
			t.Errorf("disinfection = %+v, want chlorine with uv sanitizer", pool.Disinfection)
		}
		if pool.Address == nil || pool.Address.City != "Saint-Cannat" {
			t.Errorf("address = %+v, want city decoded", pool.Address)
		}
		if pool.UpdatedAt == nil || pool.UpdatedAt.IsZero() {
			t.Errorf("updated_at = %v, want vendor timestamp decoded", pool.UpdatedAt)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.ListPools(context.Background())
		if err == nil || !strings.Contains(err.Error(), "failed to parse pool list") {
			t.Errorf("error = %v, want parse failure with body preview", err)
		}
	})
}

func TestGetICODetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != apiPrefix+"/pools/234/device" {
			t.Errorf("path = %s, want %s/pools/234/device", r.URL.Path, apiPrefix)
		}
		w.Write([]byte(`{"uuid": "abc-123", "serial_number": "W1122333044455", "sw_version": "1.7.1-stable"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	device, err := client.GetICODetails(context.Background(), 234)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if device.SerialNumber != "W1122333044455" {
		t.Errorf("serial = %q, want W1122333044455", device.SerialNumber)
	}
	if device.SWVersion != "1.7.1-stable" {
		t.Errorf("sw_version = %q, want 1.7.1-stable", device.SWVersion)
	}
}

func TestGetLastMeasures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != apiPrefix+"/pools/1/lastmeasures" {
			t.Errorf("path = %s, want %s/pools/1/lastmeasures", r.URL.Path, apiPrefix)
		}

		want := []string{"temperature", "ph", "orp", "salt", "battery", "tds", "rssi"}
		got := r.URL.Query()["types[]"]
		if !reflect.DeepEqual(got, want) {
			t.Errorf("types[] = %v, want %v (all seven, documented order)", got, want)
		}

		w.Write([]byte(`[{"data_type": "temperature", "value": 20.5, "value_time": "2019-11-27T23:00:21+0000", "is_valid": true, "exclusion_reason": null}]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	measures, err := client.GetLastMeasures(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(measures) != 1 {
		t.Fatalf("got %d measures, want 1", len(measures))
	}

	m := measures[0]
	if m.DataType != MeasureTemperature || m.Value != 20.5 || !m.IsValid {
		t.Errorf("measure = %+v, want valid temperature 20.5", m)
	}
	if m.ExclusionReason != nil {
		t.Errorf("exclusion_reason = %v, want nil", *m.ExclusionReason)
	}
}

func TestGetPoolHistory(t *testing.T) {
	t.Run("query parameters", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != apiPrefix+"/pools/1/measures" {
				t.Errorf("path = %s, want %s/pools/1/measures", r.URL.Path, apiPrefix)
			}
			q := r.URL.Query()
			if got := q.Get("type"); got != "temperature" {
				t.Errorf("type = %q, want temperature", got)
			}
			if got := q.Get("period"); got != "week" {
				t.Errorf("period = %q, want week", got)
			}
			if len(q) != 2 {
				t.Errorf("query has %d parameters, want exactly 2: %v", len(q), q)
			}
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		if _, err := client.GetPoolHistory(context.Background(), 1, MeasureTemperature, PeriodWeek); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("period passes through uninterpreted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The server, not the client, validates the period.
			if got := r.URL.Query().Get("period"); got != "fortnight" {
				t.Errorf("period = %q, want fortnight passed through", got)
			}
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("invalid period"))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.GetPoolHistory(context.Background(), 1, MeasureTemperature, Period("fortnight"))
		apiErr, ok := err.(*APIError)
		if !ok {
			t.Fatalf("expected *APIError, got %T", err)
		}
		if apiErr.StatusCode != 400 {
			t.Errorf("StatusCode = %d, want 400 from the server", apiErr.StatusCode)
		}
	})
}

func TestGetPoolConfiguration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != apiPrefix+"/pools/7/configuration" {
			t.Errorf("path = %s, want %s/pools/7/configuration", r.URL.Path, apiPrefix)
		}
		w.Write([]byte(`{"temperature_low": 10, "temperature_high": 30, "ph_low": 7.1, "ph_high": 7.7, "orp_low": 550, "orp_high": 800, "salt_low": 3000, "salt_high": 5000, "tds_low": 250, "tds_high": 2000, "pool_guy_number": "+3312345678", "maintenance_day": 2}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	cfg, err := client.GetPoolConfiguration(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PHLow != 7.1 || cfg.PHHigh != 7.7 {
		t.Errorf("ph bounds = %v/%v, want 7.1/7.7", cfg.PHLow, cfg.PHHigh)
	}
	if cfg.MaintenanceDay != 2 {
		t.Errorf("maintenance_day = %d, want 2", cfg.MaintenanceDay)
	}
}

func TestGetPoolShares(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != apiPrefix+"/pools/7/shares" {
			t.Errorf("path = %s, want %s/pools/7/shares", r.URL.Path, apiPrefix)
		}
		w.Write([]byte(`[{"lastname": "Doe", "firstname": "Jane", "email": "jane.doe@example.com"}]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	shares, err := client.GetPoolShares(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shares) != 1 || shares[0].Email != "jane.doe@example.com" {
		t.Errorf("shares = %+v, want one share for jane.doe@example.com", shares)
	}
}
