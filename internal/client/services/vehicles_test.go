package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/rentkeeper/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func boolp(b bool) *bool { return &b }

var fleet = []models.Vehicle{
	{ID: "1", Name: "Civic", Type: "sedan", Engine: "petrol", Size: 5, Available: boolp(true)},
	{ID: "2", Name: "Model 3", Type: "sedan", Engine: "electric", Size: 5, Available: boolp(false)},
	{ID: "3", Name: "Hilux", Type: "truck", Engine: "diesel", Size: 2},
	{ID: "4", Name: "Transit", Type: "van", Engine: "diesel", Size: 9, Available: boolp(true)},
}

func ids(vs []models.Vehicle) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.ID)
	}
	return out
}

func TestVehicleFilter(t *testing.T) {
	tests := []struct {
		name string
		f    VehicleFilter
		want []string
	}{
		{"zero matches all", VehicleFilter{}, []string{"1", "2", "3", "4"}},
		{"query name", VehicleFilter{Query: "civ"}, []string{"1"}},
		{"query type", VehicleFilter{Query: "SEDAN"}, []string{"1", "2"}},
		{"engine", VehicleFilter{Engine: "diesel"}, []string{"3", "4"}},
		{"size", VehicleFilter{Size: 5}, []string{"1", "2"}},
		{"type", VehicleFilter{Type: "van"}, []string{"4"}},
		{"available", VehicleFilter{AvailableOnly: true}, []string{"1", "3", "4"}},
		{"combined", VehicleFilter{Engine: "diesel", AvailableOnly: true, Size: 9}, []string{"4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.f.Apply(fleet))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVehicleService(t *testing.T) {
	fc := &fakeClient{Vehicles: fleet}
	svc := NewVehicleService(fc)
	ctx := context.Background()

	got, err := svc.List(ctx, VehicleFilter{Engine: "electric"})
	require.NoError(t, err)
	require.Equal(t, []string{"2"}, ids(got))

	v, err := svc.Create(ctx, models.CreateVehicleRequest{Name: "Golf"})
	require.NoError(t, err)
	require.Equal(t, "Golf", v.Name)

	require.NoError(t, svc.Delete(ctx, "1"))

	fc.VehiclesErr = errors.New("down")
	_, err = svc.List(ctx, VehicleFilter{})
	require.Error(t, err)
}
