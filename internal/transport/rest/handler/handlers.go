package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/katiamach/meteostat-client/internal/logger"
	"github.com/katiamach/meteostat-client/internal/model"
	"github.com/katiamach/meteostat-client/pkg/meteostat"
)

//go:generate mockgen -source=handlers.go -destination=mock/mock.go -package=mock WeatherService

// WeatherService provides weather service methods.
type WeatherService interface {
	NearbyStations(ctx context.Context, req *model.NearbyRequest) ([]*model.NearbyStation, error)
	DailyAt(ctx context.Context, stationID string, date time.Time) (*meteostat.DailyRecord, error)
}

// WeatherServer is a server for weather info processing.
type WeatherServer struct {
	service WeatherService
}

// NewWeatherServer creates new WeatherServer.
func NewWeatherServer(service WeatherService) *WeatherServer {
	return &WeatherServer{service}
}

// GetNearbyStationsHandler handles nearby-station search requests.
func (s *WeatherServer) GetNearbyStationsHandler(w http.ResponseWriter, r *http.Request) {
	req, err := validateNearbyParams(r.URL.Query())
	if err != nil {
		logger.Error(err)
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	stations, err := s.service.NearbyStations(r.Context(), req)
	if err != nil {
		logger.Error(fmt.Errorf("failed to search nearby stations: %v", err))
		respondErr(w, http.StatusInternalServerError, err)
		return
	}

	respond(w, http.StatusOK, stations)
}

// GetDailyWeatherHandler handles daily weather requests for one station
// and date.
func (s *WeatherServer) GetDailyWeatherHandler(w http.ResponseWriter, r *http.Request) {
	stationID, date, err := validateDailyParams(r.URL.Query())
	if err != nil {
		logger.Error(err)
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	record, err := s.service.DailyAt(r.Context(), stationID, date)
	if err != nil {
		logger.Error(fmt.Errorf("failed to get daily weather: %v", err))
		respondErr(w, statusForError(err), err)
		return
	}

	respond(w, http.StatusOK, record)
}

func validateNearbyParams(params url.Values) (*model.NearbyRequest, error) {
	latStr := params.Get("lat")
	if latStr == "" {
		return nil, errors.New("lat parameter not provided in query")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("lat parameter is not a number: %w", err)
	}

	lonStr := params.Get("lon")
	if lonStr == "" {
		return nil, errors.New("lon parameter not provided in query")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, fmt.Errorf("lon parameter is not a number: %w", err)
	}

	req := &model.NearbyRequest{Lat: lat, Lon: lon}

	if maxStr := params.Get("max_km"); maxStr != "" {
		req.MaxDistanceKm, err = strconv.ParseFloat(maxStr, 64)
		if err != nil {
			return nil, fmt.Errorf("max_km parameter is not a number: %w", err)
		}
	}
	if limitStr := params.Get("limit"); limitStr != "" {
		req.Limit, err = strconv.Atoi(limitStr)
		if err != nil {
			return nil, fmt.Errorf("limit parameter is not a number: %w", err)
		}
	}

	return req, nil
}

func validateDailyParams(params url.Values) (string, time.Time, error) {
	stationID := params.Get("station")
	if stationID == "" {
		return "", time.Time{}, errors.New("station parameter not provided in query")
	}

	dateStr := params.Get("date")
	if dateStr == "" {
		return "", time.Time{}, errors.New("date parameter not provided in query")
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("date parameter is not a valid date: %w", err)
	}

	return stationID, date, nil
}

// statusForError maps client errors to 404 and everything else to 500.
func statusForError(err error) int {
	var singleRow *meteostat.SingleRowError
	switch {
	case errors.Is(err, meteostat.ErrStationNotFound),
		errors.Is(err, meteostat.ErrNoStationFound):
		return http.StatusNotFound
	case errors.As(err, &singleRow):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
