package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true},
		{"12.346", 1235, true},
		{"0", 0, true},
		{"0.00", 0, true},
		{"7", 700, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"", 0, false},
		{"1.2.3", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q: unexpected error %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
		if got != tc.want {
			t.Fatalf("%q: got %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMoneyString(t *testing.T) {
	if s := (Money{Cents: 1234}).String(); s != "12.34" {
		t.Fatalf("got %q", s)
	}
	if s := (Money{Cents: -5}).String(); s != "-0.05" {
		t.Fatalf("got %q", s)
	}
	if s := (Money{Cents: 0}).String(); s != "0.00" {
		t.Fatalf("got %q", s)
	}
}

func TestMoneyJSON(t *testing.T) {
	var m Money
	if err := m.UnmarshalJSON([]byte(`"19.99"`)); err != nil {
		t.Fatalf("string form: %v", err)
	}
	if m.Cents != 1999 {
		t.Fatalf("got %d", m.Cents)
	}
	if err := m.UnmarshalJSON([]byte(`42.5`)); err != nil {
		t.Fatalf("number form: %v", err)
	}
	if m.Cents != 4250 {
		t.Fatalf("got %d", m.Cents)
	}
	if err := m.UnmarshalJSON([]byte(`-3`)); err == nil {
		t.Fatal("negative amount should be rejected")
	}
	out, err := (Money{Cents: 105}).MarshalJSON()
	if err != nil || string(out) != "1.05" {
		t.Fatalf("got %q, %v", out, err)
	}
}
