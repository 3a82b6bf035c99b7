package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/dompet/internal/ingest"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{name: "plain integer", in: "50000", want: 50000},
		{name: "dot grouping", in: "50.000", want: 50000},
		{name: "dot grouping millions", in: "1.250.000", want: 1250000},
		{name: "dot grouping with comma decimals", in: "50.000,50", want: 50000.5},
		{name: "comma grouping with dot decimals", in: "50,000.50", want: 50000.5},
		{name: "comma decimal", in: "12,5", want: 12.5},
		{name: "comma grouping", in: "1,000", want: 1000},
		{name: "dot decimal", in: "12.50", want: 12.5},
		{name: "rupiah prefix and spaces", in: " Rp 75.000 ", want: 75000},
		{name: "zero", in: "0", wantErr: true},
		{name: "negative", in: "-5000", wantErr: true},
		{name: "empty", in: "   ", wantErr: true},
		{name: "garbage", in: "lima ribu", wantErr: true},
		{name: "overflows to infinity", in: "1e309", wantErr: true},
		{name: "underflows to zero", in: "1e-400", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ingest.ParseAmount(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ingest.ErrInvalidAmount)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{"2026-03-05", "05/03/2026", "05-03-2026", "5/3/2026"} {
		t.Run(in, func(t *testing.T) {
			got, err := ingest.ParseDate(in)
			require.NoError(t, err)

			y, m, d := got.Date()
			assert.Equal(t, 2026, y)
			assert.Equal(t, 3, int(m))
			assert.Equal(t, 5, d)
		})
	}

	for _, in := range []string{"", "2026-02-30", "yesterday", "03/13/2026"} {
		t.Run("invalid "+in, func(t *testing.T) {
			_, err := ingest.ParseDate(in)
			assert.ErrorIs(t, err, ingest.ErrInvalidDate)
		})
	}
}
