// Command derive runs the dashboard derivations over a JSON file of raw
// observations for one province and prints the current reading together with
// its hourly strip. It uses the same domain package as the pipeline, so the
// output matches what the service would publish.
//
// Usage:
//
//	go run ./cmd/derive \
//	  -in data/mock/cordoba_horario_240115.json \
//	  -now 2024-01-15T15:20:00-03:00
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/clima-metrics-etl/internal/config"
	"github.com/couchcryptid/clima-metrics-etl/internal/domain"
)

// output is what derive prints.
type output struct {
	Current domain.DashboardReading `json:"current"`
	Hourly  []domain.HourlySlot     `json:"hourly"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("derive", flag.ContinueOnError)
	in := fs.String("in", "", "JSON array of raw observations")
	nowFlag := fs.String("now", "", "pin the current time (RFC 3339); defaults to the wall clock")
	tzName := fs.String("tz", config.DefaultTimezone, "dashboard timezone")
	slots := fs.Int("slots", domain.DefaultHourlySlots, "hourly strip length")
	budget := fs.Int("particles", domain.DefaultParticleBudget, "precipitation particle budget")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		fs.Usage()
		return errors.New("missing required flag: -in")
	}

	loc, err := time.LoadLocation(*tzName)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	var clk clockwork.Clock = clockwork.NewRealClock()
	if *nowFlag != "" {
		pinned, err := time.Parse(time.RFC3339, *nowFlag)
		if err != nil {
			return fmt.Errorf("parse -now: %w", err)
		}
		clk = clockwork.NewFakeClockAt(pinned)
		domain.SetClock(clk)
		defer domain.SetClock(nil)
	}
	now := clk.Now().In(loc)

	series, err := readSeries(*in, loc)
	if err != nil {
		return err
	}

	current, ok := domain.CurrentObservation(series, now)
	if !ok {
		return fmt.Errorf("%s: no timestamped observations", *in)
	}

	opts := domain.EnrichOptions{
		Icons:          domain.DefaultIconSet(),
		Location:       loc,
		ParticleBudget: *budget,
	}
	reading := domain.EnrichObservation(current, opts)
	reading = domain.LocateProvince(context.Background(), reading, nil, slog.Default())

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output{
		Current: reading,
		Hourly:  domain.HourlyStrip(series, now, *slots, opts.Icons),
	})
}

func readSeries(path string, loc *time.Location) ([]domain.Observation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	series := make([]domain.Observation, 0, len(raws))
	for i, raw := range raws {
		obs, err := domain.ParseRawObservation(domain.RawEvent{Value: raw}, loc)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", path, i, err)
		}
		series = append(series, obs)
	}
	return series, nil
}
