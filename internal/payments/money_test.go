package payments

import (
	"errors"
	"testing"
	"time"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr error
	}{
		{in: "10.50", want: 1050},
		{in: "10.5", want: 1050},
		{in: "10", want: 1000},
		{in: " 25 ", want: 2500},
		{in: "10.555", want: 1056},
		{in: "10.554", want: 1055},
		{in: "0.005", want: 1},
		{in: "0.01", want: 1},
		{in: "10,50", want: 1050},
		{in: "10.", wantErr: ErrAmountInvalid},
		{in: "1234567.89", want: 123456789},
		{in: "", wantErr: ErrAmountEmpty},
		{in: "   ", wantErr: ErrAmountEmpty},
		{in: "abc", wantErr: ErrAmountInvalid},
		{in: "1.234,56", wantErr: ErrAmountInvalid},
		{in: "0", wantErr: ErrAmountInvalid},
		{in: "0.00", wantErr: ErrAmountInvalid},
		{in: "0.004", wantErr: ErrAmountInvalid},
		{in: "99999999999999999999999999999999999999999999999999", wantErr: ErrAmountTooLarge},
		{in: "-5", wantErr: ErrAmountInvalid},
		{in: "+5", wantErr: ErrAmountInvalid},
		{in: "1e2", wantErr: ErrAmountInvalid},
		{in: "1E-2", wantErr: ErrAmountInvalid},
		{in: "1e50000000", wantErr: ErrAmountInvalid},
		{in: "1,2,3", wantErr: ErrAmountInvalid},
		{in: "100000000000000000000", wantErr: ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToMinorUnits(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ToMinorUnits(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToMinorUnits(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ToMinorUnits(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestToMinorUnitsRejectsExponentQuickly(t *testing.T) {
	start := time.Now()
	if _, err := ToMinorUnits("1e50000000"); !errors.Is(err, ErrAmountInvalid) {
		t.Fatalf("ToMinorUnits(1e50000000) error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("ToMinorUnits(1e50000000) took %v", elapsed)
	}
}

func TestMajorUnits(t *testing.T) {
	if got := MajorUnits(1050).String(); got != "10.5" {
		t.Errorf("MajorUnits(1050) = %s", got)
	}
	if got := MajorUnits(-99).StringFixed(2); got != "-0.99" {
		t.Errorf("MajorUnits(-99) = %s", got)
	}
}
