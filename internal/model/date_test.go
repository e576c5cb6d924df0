package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rvanleeuwen/investment-tracker/internal/model"
)

func TestDate_JSON(t *testing.T) {
	t.Run("marshals as YYYY-MM-DD string", func(t *testing.T) {
		d := model.NewDate(time.Date(2024, 3, 7, 15, 30, 0, 0, time.UTC))

		data, err := json.Marshal(d)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if string(data) != `"2024-03-07"` {
			t.Errorf(`Expected "2024-03-07", got %s`, data)
		}
	})

	t.Run("unmarshals from YYYY-MM-DD string", func(t *testing.T) {
		var d model.Date
		if err := json.Unmarshal([]byte(`"2023-12-31"`), &d); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if d.String() != "2023-12-31" {
			t.Errorf("Expected 2023-12-31, got %s", d)
		}
	})

	t.Run("rejects non-date strings", func(t *testing.T) {
		var d model.Date
		if err := json.Unmarshal([]byte(`"31/12/2023"`), &d); err == nil {
			t.Error("Expected an error for malformed date")
		}
	})

	t.Run("time-of-day is truncated", func(t *testing.T) {
		d := model.NewDate(time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC))
		if d.Hour() != 0 || d.Minute() != 0 {
			t.Errorf("Expected midnight, got %v", d.Time)
		}
	})
}

func TestParseDate(t *testing.T) {
	t.Run("round-trips through String", func(t *testing.T) {
		d, err := model.ParseDate("2024-02-29")
		if err != nil {
			t.Fatalf("ParseDate failed: %v", err)
		}
		if d.String() != "2024-02-29" {
			t.Errorf("Expected 2024-02-29, got %s", d)
		}
	})

	t.Run("rejects impossible dates", func(t *testing.T) {
		if _, err := model.ParseDate("2023-02-29"); err == nil {
			t.Error("Expected an error for 2023-02-29")
		}
	})
}
