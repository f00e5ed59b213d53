package meteostat

// WeatherCondition is the coded hourly condition reported in the coco
// column of the bulk data.
type WeatherCondition int

const (
	ConditionClear WeatherCondition = iota + 1
	ConditionFair
	ConditionCloudy
	ConditionOvercast
	ConditionFog
	ConditionFreezingFog
	ConditionLightRain
	ConditionRain
	ConditionHeavyRain
	ConditionFreezingRain
	ConditionHeavyFreezingRain
	ConditionSleet
	ConditionHeavySleet
	ConditionLightSnowfall
	ConditionSnowfall
	ConditionHeavySnowfall
	ConditionRainShower
	ConditionHeavyRainShower
	ConditionSleetShower
	ConditionHeavySleetShower
	ConditionSnowShower
	ConditionHeavySnowShower
	ConditionLightning
	ConditionHail
	ConditionThunderstorm
	ConditionHeavyThunderstorm
	ConditionStorm
)

var conditionNames = map[WeatherCondition]string{
	ConditionClear:             "Clear",
	ConditionFair:              "Fair",
	ConditionCloudy:            "Cloudy",
	ConditionOvercast:          "Overcast",
	ConditionFog:               "Fog",
	ConditionFreezingFog:       "Freezing Fog",
	ConditionLightRain:         "Light Rain",
	ConditionRain:              "Rain",
	ConditionHeavyRain:         "Heavy Rain",
	ConditionFreezingRain:      "Freezing Rain",
	ConditionHeavyFreezingRain: "Heavy Freezing Rain",
	ConditionSleet:             "Sleet",
	ConditionHeavySleet:        "Heavy Sleet",
	ConditionLightSnowfall:     "Light Snowfall",
	ConditionSnowfall:          "Snowfall",
	ConditionHeavySnowfall:     "Heavy Snowfall",
	ConditionRainShower:        "Rain Shower",
	ConditionHeavyRainShower:   "Heavy Rain Shower",
	ConditionSleetShower:       "Sleet Shower",
	ConditionHeavySleetShower:  "Heavy Sleet Shower",
	ConditionSnowShower:        "Snow Shower",
	ConditionHeavySnowShower:   "Heavy Snow Shower",
	ConditionLightning:         "Lightning",
	ConditionHail:              "Hail",
	ConditionThunderstorm:      "Thunderstorm",
	ConditionHeavyThunderstorm: "Heavy Thunderstorm",
	ConditionStorm:             "Storm",
}

// Valid reports whether the code is a known condition.
func (c WeatherCondition) Valid() bool {
	_, ok := conditionNames[c]
	return ok
}

func (c WeatherCondition) String() string {
	if name, ok := conditionNames[c]; ok {
		return name
	}
	return "Unknown"
}
