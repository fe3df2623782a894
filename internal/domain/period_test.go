package domain

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2024-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Year != 2024 || p.Month != time.February {
		t.Fatalf("expected 2024-02, got %+v", p)
	}

	if _, err := ParsePeriod("2024-13"); err == nil {
		t.Fatal("expected error for month 13")
	}
	if _, err := ParsePeriod("feb-2024"); err == nil {
		t.Fatal("expected error for malformed key")
	}
}

func TestPeriodKey(t *testing.T) {
	p := Period{Year: 2024, Month: time.February}
	if got := p.Key(); got != "2024-02" {
		t.Fatalf("expected 2024-02, got %s", got)
	}
}

func TestPeriodNext(t *testing.T) {
	tests := []struct {
		in   Period
		want Period
	}{
		{Period{2024, time.January}, Period{2024, time.February}},
		{Period{2024, time.December}, Period{2025, time.January}},
		{Period{2023, time.November}, Period{2023, time.December}},
	}

	for _, tt := range tests {
		if got := tt.in.Next(); got != tt.want {
			t.Errorf("%s.Next() = %s, want %s", tt.in.Key(), got.Key(), tt.want.Key())
		}
	}
}

func TestPeriodCompare(t *testing.T) {
	jan := Period{2024, time.January}
	feb := Period{2024, time.February}
	dec23 := Period{2023, time.December}

	if !jan.Before(feb) {
		t.Error("expected 2024-01 before 2024-02")
	}
	if !feb.After(dec23) {
		t.Error("expected 2024-02 after 2023-12")
	}
	if jan.Compare(jan) != 0 {
		t.Error("expected equal periods to compare 0")
	}
	if !dec23.Before(jan) {
		t.Error("expected 2023-12 before 2024-01")
	}
}

func TestPeriodDays(t *testing.T) {
	if got := (Period{2023, time.February}).Days(); got != 28 {
		t.Errorf("expected 28 days in 2023-02, got %d", got)
	}
	if got := (Period{2024, time.February}).Days(); got != 29 {
		t.Errorf("expected 29 days in 2024-02, got %d", got)
	}
	if got := (Period{2024, time.January}).Days(); got != 31 {
		t.Errorf("expected 31 days in 2024-01, got %d", got)
	}
}

func TestPeriodOf(t *testing.T) {
	p := PeriodOf(time.Date(2024, time.March, 31, 23, 59, 0, 0, time.UTC))
	if p != (Period{2024, time.March}) {
		t.Fatalf("expected 2024-03, got %s", p.Key())
	}
}
