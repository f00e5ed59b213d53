package service

import (
	"context"
	"fmt"
	"time"

	"github.com/katiamach/meteostat-client/internal/model"
	"github.com/katiamach/meteostat-client/pkg/meteostat"
)

// WeatherService exposes the meteostat client to the REST layer.
type WeatherService struct {
	client *meteostat.Client
}

// New creates new WeatherService.
func New(client *meteostat.Client) *WeatherService {
	return &WeatherService{client: client}
}

// NearbyStations searches the station directory around the requested
// location.
func (ws *WeatherService) NearbyStations(_ context.Context, req *model.NearbyRequest) ([]*model.NearbyStation, error) {
	matches, err := ws.client.FindStations(meteostat.FindQuery{
		Location:      meteostat.LatLon{Lat: req.Lat, Lon: req.Lon},
		MaxDistanceKm: req.MaxDistanceKm,
		Limit:         req.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search stations: %w", err)
	}

	stations := make([]*model.NearbyStation, 0, len(matches))
	for _, m := range matches {
		stations = append(stations, &model.NearbyStation{
			ID:         m.Station.ID,
			Name:       m.Station.DisplayName("en"),
			Country:    m.Station.Country,
			Latitude:   m.Station.Location.Latitude,
			Longitude:  m.Station.Location.Longitude,
			DistanceKm: m.DistanceKm,
		})
	}

	return stations, nil
}

// DailyAt returns the daily record of one station for one date.
func (ws *WeatherService) DailyAt(ctx context.Context, stationID string, date time.Time) (*meteostat.DailyRecord, error) {
	frame, err := ws.client.Daily().ByStation(ctx, stationID)
	if err != nil {
		return nil, err
	}

	record, err := frame.At(date).CollectOne()
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// RefreshStations rebuilds the station directory from the source.
func (ws *WeatherService) RefreshStations(ctx context.Context) error {
	return ws.client.RefreshStations(ctx)
}
