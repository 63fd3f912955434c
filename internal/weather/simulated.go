package weather

import (
	"context"
	"math/rand"
	"time"
)

var conditions = []string{"sunny", "partly cloudy", "cloudy", "rainy", "stormy"}

// Simulated generates plausible readings from a fixed seed. The same station
// and date always produce the same weather, which keeps the UI stable across
// refreshes and makes tests deterministic.
type Simulated struct {
	Station string
	Now     func() time.Time // defaults to time.Now
}

func NewSimulated(station string) *Simulated {
	return &Simulated{Station: station}
}

func (s *Simulated) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// dayRand seeds a generator from the station name and calendar day so each
// day's weather is fixed.
func (s *Simulated) dayRand(date time.Time) *rand.Rand {
	seed := int64(date.Year())*10000 + int64(date.YearDay())
	for _, r := range s.Station {
		seed = seed*31 + int64(r)
	}
	return rand.New(rand.NewSource(seed))
}

func (s *Simulated) day(date time.Time) Day {
	rng := s.dayRand(date)
	low := 8 + rng.Float64()*10
	high := low + 5 + rng.Float64()*12
	cond := conditions[rng.Intn(len(conditions))]
	precip := 0.0
	if cond == "rainy" || cond == "stormy" {
		precip = 1 + rng.Float64()*20
	}
	return Day{
		Date:          time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		HighC:         high,
		LowC:          low,
		Condition:     cond,
		Precipitation: precip,
		Humidity:      35 + rng.Intn(50),
	}
}

func (s *Simulated) Current(ctx context.Context) (Current, error) {
	now := s.now()
	d := s.day(now)
	// interpolate between the day's low and high by hour
	frac := float64(now.Hour()) / 24
	temp := d.LowC + (d.HighC-d.LowC)*frac
	return Current{
		Observed:      now,
		TempC:         temp,
		Condition:     d.Condition,
		Humidity:      d.Humidity,
		WindKPH:       5 + s.dayRand(now).Float64()*25,
		Precipitation: d.Precipitation,
	}, nil
}

func (s *Simulated) Forecast(ctx context.Context, days int) ([]Day, error) {
	now := s.now()
	out := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, s.day(now.AddDate(0, 0, i)))
	}
	return out, nil
}

func (s *Simulated) Alerts(ctx context.Context) ([]Alert, error) {
	now := s.now()
	var alerts []Alert
	for i := 0; i < 3; i++ {
		d := s.day(now.AddDate(0, 0, i))
		if d.Condition == "stormy" {
			alerts = append(alerts, Alert{
				Severity: "warning",
				Title:    "Storm expected " + d.Date.Format("Mon 02 Jan"),
				Message:  "Secure equipment and check drainage before the front arrives.",
				Issued:   now,
			})
		}
		if d.Precipitation > 15 {
			alerts = append(alerts, Alert{
				Severity: "advisory",
				Title:    "Heavy rain " + d.Date.Format("Mon 02 Jan"),
				Message:  "Spraying and harvest work may be interrupted.",
				Issued:   now,
			})
		}
	}
	return alerts, nil
}

func (s *Simulated) History(ctx context.Context, start, end time.Time) ([]Day, error) {
	var out []Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, s.day(d))
	}
	return out, nil
}
