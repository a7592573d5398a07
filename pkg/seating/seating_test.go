package seating

import (
	"reflect"
	"testing"

	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/sightline"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
		want int
	}{
		{"empty", nil, 1},
		{"sequential", []int{1, 2, 3}, 4},
		{"gaps", []int{7, 2}, 8},
		{"zero", []int{0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]sightline.SeatingRow, len(tt.ids))
			for i, id := range tt.ids {
				rows[i].ID = id
			}
			if got := NextID(rows); got != tt.want {
				t.Errorf("NextID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	rows := Default()
	want := []sightline.SeatingRow{{ID: 1, DistFromScreen: 10, EarHeight: 44}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("Default() = %+v, want %+v", rows, want)
	}

	rows[0].EarHeight = 42
	rows = Add(Add(rows))
	want = []sightline.SeatingRow{
		{ID: 1, DistFromScreen: 10, EarHeight: 42},
		{ID: 2, DistFromScreen: 14, EarHeight: 42, RiserHeight: 8},
		{ID: 3, DistFromScreen: 18, EarHeight: 42, RiserHeight: 16},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Add() = %+v, want %+v", rows, want)
	}
}

func TestAddDoesNotAlias(t *testing.T) {
	base := make([]sightline.SeatingRow, 1, 4)
	base[0] = sightline.SeatingRow{ID: 1, DistFromScreen: 10, EarHeight: 44}
	a := Add(base)
	b := Add(base)
	a[1].EarHeight = 50
	if b[1].EarHeight == 50 {
		t.Error("Add results share a backing array")
	}
}

func TestRemove(t *testing.T) {
	rows := Add(Add(Default()))

	got, err := Remove(rows, 2)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("Remove(2) = %+v", got)
	}
	if len(rows) != 3 || rows[1].ID != 2 {
		t.Error("Remove modified its input")
	}

	if _, err := Remove(rows, 9); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Remove(missing) error = %v, want NOT_FOUND", err)
	}
	if _, err := Remove(Default(), 1); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Remove(last row) error = %v, want INVALID_INPUT", err)
	}
}

func TestUpdate(t *testing.T) {
	rows := Add(Default())
	tests := []struct {
		field Field
		value float64
		check func(sightline.SeatingRow) float64
	}{
		{FieldDistance, 16.5, func(r sightline.SeatingRow) float64 { return r.DistFromScreen }},
		{FieldEar, 40, func(r sightline.SeatingRow) float64 { return r.EarHeight }},
		{FieldRiser, 12, func(r sightline.SeatingRow) float64 { return r.RiserHeight }},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			got, err := Update(rows, 2, tt.field, tt.value)
			if err != nil {
				t.Fatalf("Update: %v", err)
			}
			if v := tt.check(got[1]); v != tt.value {
				t.Errorf("%s = %v, want %v", tt.field, v, tt.value)
			}
			if v := Get(got[1], tt.field); v != tt.value {
				t.Errorf("Get(%s) = %v, want %v", tt.field, v, tt.value)
			}
			if got[0] != rows[0] {
				t.Error("Update changed another row")
			}
		})
	}

	if rows[1].DistFromScreen != 14 {
		t.Error("Update modified its input")
	}
	if _, err := Update(rows, 5, FieldEar, 40); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Update(missing) error = %v, want NOT_FOUND", err)
	}
	if _, err := Update(rows, 1, Field("seat"), 1); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Update(bad field) error = %v, want INVALID_INPUT", err)
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in      string
		want    Field
		wantErr bool
	}{
		{"dist", FieldDistance, false},
		{"distFromScreen", FieldDistance, false},
		{" EAR ", FieldEar, false},
		{"riserHeight", FieldRiser, false},
		{"width", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseField(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseField(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseField(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
