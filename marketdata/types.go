package marketdata

import (
	"sort"
	"time"

	"stocast/models"
)

// dailyBar mirrors one element of the Tiingo end-of-day price response.
type dailyBar struct {
	Date     string  `json:"date"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	AdjClose float64 `json:"adjClose"`
	Volume   int64   `json:"volume"`
}

// toPricePoints converts provider bars into the engine's price series:
// strictly date-ordered, positive adjusted closes only.
func toPricePoints(bars []dailyBar) ([]models.PricePoint, error) {
	points := make([]models.PricePoint, 0, len(bars))
	for _, b := range bars {
		if b.AdjClose <= 0 {
			continue
		}
		d, err := time.Parse(time.RFC3339, b.Date)
		if err != nil {
			return nil, err
		}
		points = append(points, models.PricePoint{Date: d, AdjClose: b.AdjClose})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}
