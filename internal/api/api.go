package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/katiamach/meteostat-client/internal/config"
	"github.com/katiamach/meteostat-client/internal/logger"
	"github.com/katiamach/meteostat-client/internal/transport/rest/handler"
)

// RunAPI runs the weather API on top of the given service.
func RunAPI(cfg *config.Config, service handler.WeatherService) error {
	server := handler.NewWeatherServer(service)

	r := mux.NewRouter()

	r.HandleFunc("/stations/nearby", server.GetNearbyStationsHandler).Methods("GET")
	r.HandleFunc("/weather/daily", server.GetDailyWeatherHandler).Methods("GET")

	logger.Info(fmt.Sprintf("Starting meteostat api at port %s", cfg.Port))

	options := setupCorsOptions(cfg.Origin)
	return http.ListenAndServe(":"+cfg.Port, handlers.CORS(options...)(r))
}
