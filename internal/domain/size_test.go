package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAccommodate(t *testing.T) {
	tests := []struct {
		slot    SizeClass
		vehicle SizeClass
		want    bool
	}{
		{SizeSmall, SizeSmall, true},
		{SizeSmall, SizeLarge, false},
		{SizeSmall, SizeOversize, false},
		{SizeLarge, SizeSmall, true},
		{SizeLarge, SizeLarge, true},
		{SizeLarge, SizeOversize, false},
		{SizeOversize, SizeSmall, true},
		{SizeOversize, SizeLarge, true},
		{SizeOversize, SizeOversize, true},
	}

	for _, tt := range tests {
		t.Run(tt.slot.String()+"/"+tt.vehicle.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccommodate(tt.slot, tt.vehicle))
			assert.Equal(t, tt.want, tt.slot.CanAccommodate(tt.vehicle))
		})
	}

	assert.False(t, CanAccommodate(SizeOversize, SizeClass(0)))
}

func TestParseSizeClass(t *testing.T) {
	tests := []struct {
		input   string
		want    SizeClass
		wantErr bool
	}{
		{"small", SizeSmall, false},
		{" LARGE ", SizeLarge, false},
		{"Oversize", SizeOversize, false},
		{"1", SizeSmall, false},
		{"2", SizeLarge, false},
		{"3", SizeOversize, false},
		{"4", 0, true},
		{"medium", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSizeClass(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSizeClass)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSizeClass_JSON(t *testing.T) {
	data, err := json.Marshal(Vehicle{LicensePlate: "A1", Size: SizeLarge})
	require.NoError(t, err)
	assert.JSONEq(t, `{"license_plate":"A1","size":"LARGE"}`, string(data))

	var v Vehicle
	require.NoError(t, json.Unmarshal([]byte(`{"license_plate":"B2","size":"oversize"}`), &v))
	assert.Equal(t, SizeOversize, v.Size)

	err = json.Unmarshal([]byte(`{"size":"huge"}`), &v)
	assert.ErrorIs(t, err, ErrInvalidSizeClass)
}

func TestNewVehicle(t *testing.T) {
	v, err := NewVehicle("  abc123 ", SizeSmall)
	require.NoError(t, err)
	assert.Equal(t, "abc123", v.LicensePlate)

	_, err = NewVehicle("   ", SizeSmall)
	assert.ErrorIs(t, err, ErrInvalidLicensePlate)

	_, err = NewVehicle("abc", SizeClass(9))
	assert.ErrorIs(t, err, ErrInvalidSizeClass)

	assert.True(t, SamePlate("abc123", "ABC123"))
	assert.False(t, SamePlate("abc123", "abc124"))
}
