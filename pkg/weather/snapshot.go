package weather

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// compassLabels are the 16-point compass names, starting at north and moving
// clockwise every 22.5 degrees.
var compassLabels = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSO", "SO", "OSO", "O", "ONO", "NO", "NNO",
}

// Snapshot is the normalized current-conditions view rendered on fair pages.
type Snapshot struct {
	City          string   `json:"ciudad"`
	Country       string   `json:"pais"`
	Temperature   float64  `json:"temperatura"`
	FeelsLike     float64  `json:"sensacion_termica"`
	Humidity      int      `json:"humedad"`
	Pressure      int      `json:"presion"`
	Description   string   `json:"descripcion"`
	Icon          string   `json:"icono"`
	IconURL       string   `json:"icono_url"`
	WindSpeedKmh  float64  `json:"viento_kmh"`
	WindDirection string   `json:"viento_direccion"`
	VisibilityKm  *float64 `json:"visibilidad_km,omitempty"`
	Sunrise       string   `json:"amanecer"`
	Sunset        string   `json:"atardecer"`
	ObservedAt    int64    `json:"observado_en"`
}

func newSnapshot(obs observation) *Snapshot {
	snap := &Snapshot{
		City:          obs.Name,
		Country:       obs.Sys.Country,
		Temperature:   roundTo(obs.Main.Temp, 1),
		FeelsLike:     roundTo(obs.Main.FeelsLike, 1),
		Humidity:      obs.Main.Humidity,
		Pressure:      obs.Main.Pressure,
		WindSpeedKmh:  roundTo(obs.Wind.Speed*3.6, 1),
		WindDirection: compassLabel(obs.Wind.Deg),
		Sunrise:       formatClock(obs.Sys.Sunrise),
		Sunset:        formatClock(obs.Sys.Sunset),
		ObservedAt:    obs.Dt,
	}

	if len(obs.Weather) > 0 {
		snap.Description = capitalize(obs.Weather[0].Description)
		snap.Icon = obs.Weather[0].Icon
		if snap.Icon != "" {
			snap.IconURL = fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", snap.Icon)
		}
	}

	if obs.Visibility != nil {
		km := roundTo(float64(*obs.Visibility)/1000, 1)
		snap.VisibilityKm = &km
	}

	return snap
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}

func compassLabel(deg float64) string {
	idx := int(math.Round(deg/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return compassLabels[idx]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func formatClock(unix int64) string {
	if unix == 0 {
		return ""
	}
	return time.Unix(unix, 0).Local().Format("15:04")
}

// CacheLookup normalizes a city name into a stable cache lookup value.
func CacheLookup(city string) string {
	lowered := strings.ToLower(strings.TrimSpace(city))
	return strings.ReplaceAll(lowered, " ", "_")
}
