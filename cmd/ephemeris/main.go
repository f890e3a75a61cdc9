package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/thurmanmarka/ephemeris"
	"github.com/thurmanmarka/ephemeris/internal/compare"
	"github.com/thurmanmarka/ephemeris/internal/config"
	"github.com/thurmanmarka/ephemeris/internal/table"
	"github.com/thurmanmarka/ephemeris/internal/timeutil"
	"github.com/thurmanmarka/ephemeris/schedule"
)

func main() {
	log.SetFlags(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// No args, or a leading flag, runs the rise/set summary.
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		runRiseSet(cfg, os.Args[1:])
		return
	}

	switch os.Args[1] {
	case "table":
		runTable(cfg, os.Args[2:])
	case "commute":
		runCommute(cfg, os.Args[2:])
	case "compare":
		runCompare(cfg, os.Args[2:])
	case "watch":
		runWatch(cfg, os.Args[2:])
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `ephemeris – sunrise, sunset, twilight and golden hour

Usage:
  ephemeris [flags]            # sunrise, solar noon, sunset (default mode)
  ephemeris table [flags]      # every solar event of the day
  ephemeris commute [flags]    # morning and evening tables with leave-by times
  ephemeris compare [flags]    # model variants against independent references
  ephemeris watch [flags]      # run configured jobs at solar events

Location flags default to the config file (%s, or $EPHEMERIS_CONFIG).
Run "ephemeris <subcommand> -h" for subcommand flags.
`, config.DefaultPath)
}

// ---------------------
// Shared flags
// ---------------------

type commonFlags struct {
	lat    *float64
	lon    *float64
	tz     *int
	alt    *float64
	date   *string
	algo   *string
	method *string
}

func addCommonFlags(fs *flag.FlagSet, cfg *config.Config) *commonFlags {
	return &commonFlags{
		lat:    fs.Float64("lat", cfg.Location.Latitude, "latitude in degrees (north positive)"),
		lon:    fs.Float64("lon", cfg.Location.Longitude, "longitude in degrees (east positive, west negative)"),
		tz:     fs.Int("tz", cfg.Location.Timezone, "UTC offset in whole hours"),
		alt:    fs.Float64("alt", cfg.Location.Altitude, "observer altitude in meters"),
		date:   fs.String("date", "", "date in YYYY-MM-DD (optional, defaults to today at the location)"),
		algo:   fs.String("algo", "", "orbital element variant: noaa, usno or laskar (defaults to config)"),
		method: fs.String("method", "", "event solver: closed or bisection (defaults to config)"),
	}
}

// resolve validates the flags and builds the calculator, date and location.
func (c *commonFlags) resolve(cfg *config.Config) (*ephemeris.Calculator, ephemeris.Date, ephemeris.Location) {
	loc := ephemeris.Location{
		Latitude:  *c.lat,
		Longitude: *c.lon,
		TZOffset:  *c.tz,
		Altitude:  *c.alt,
	}
	if loc.Latitude == 0 && loc.Longitude == 0 {
		log.Println("warning: lat=0 lon=0 (Gulf of Guinea). Use -lat and -lon to set a real location.")
	}

	model, err := cfg.Model()
	if err != nil {
		log.Fatalf("invalid algorithm config: %v", err)
	}
	if *c.algo != "" {
		if model.Algorithm, err = ephemeris.ParseAlgorithm(*c.algo); err != nil {
			log.Fatalf("invalid -algo: %v", err)
		}
	}
	if *c.method != "" {
		if model.Method, err = ephemeris.ParseMethod(*c.method); err != nil {
			log.Fatalf("invalid -method: %v", err)
		}
	}

	calc, err := ephemeris.New(model)
	if err != nil {
		log.Fatalf("invalid model: %v", err)
	}

	var date ephemeris.Date
	if *c.date == "" {
		date = ephemeris.DateOf(time.Now().In(loc.Zone()))
	} else if date, err = ephemeris.ParseDate(*c.date); err != nil {
		log.Fatalf("invalid -date %q: %v", *c.date, err)
	}

	if err := ephemeris.Validate(date, loc); err != nil {
		log.Fatalf("invalid input: %v", err)
	}
	return calc, date, loc
}

// clockHours parses an optional HH:MM; empty means the current local time.
func clockHours(s string, loc ephemeris.Location) float64 {
	if s == "" {
		return timeutil.TimeToHours(time.Now().In(loc.Zone()))
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		log.Fatalf("invalid -now %q (want HH:MM): %v", s, err)
	}
	return float64(t.Hour()) + float64(t.Minute())/60
}

func parseFlags(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}
}

// ---------------------
// Rise/set (default) mode
// ---------------------

type jsonOutput struct {
	Latitude         float64    `json:"latitude"`
	Longitude        float64    `json:"longitude"`
	Altitude         float64    `json:"altitude"`
	TZOffset         int        `json:"tzOffset"`
	Date             string     `json:"date"` // YYYY-MM-DD
	Algorithm        string     `json:"algorithm"`
	Method           string     `json:"method"`
	Sunrise          *time.Time `json:"sunrise,omitempty"`
	SunriseCondition string     `json:"sunriseCondition"`
	SolarNoon        time.Time  `json:"solarNoon"`
	Sunset           *time.Time `json:"sunset,omitempty"`
	SunsetCondition  string     `json:"sunsetCondition"`
	Declination      float64    `json:"declination"`
	EquationOfTime   float64    `json:"equationOfTimeMinutes"`
	DaylightHours    *float64   `json:"daylightHours,omitempty"`
}

func runRiseSet(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("ephemeris", flag.ExitOnError)
	common := addCommonFlags(fs, cfg)
	jsonOut := fs.Bool("json", false, "output result as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ephemeris [flags]

Flags:
`)
		fs.PrintDefaults()
	}
	parseFlags(fs, args)

	calc, date, loc := common.resolve(cfg)

	rise, err := calc.Sunrise(date, loc)
	if err != nil {
		log.Fatalf("error computing sunrise: %v", err)
	}
	set, err := calc.Sunset(date, loc)
	if err != nil {
		log.Fatalf("error computing sunset: %v", err)
	}
	s, err := calc.Solar(date, loc)
	if err != nil {
		log.Fatalf("error computing solar noon: %v", err)
	}

	var daylight *float64
	if h, err := calc.DaylightHours(date, loc); err == nil {
		daylight = &h
	} else if !errors.Is(err, ephemeris.ErrNoRiseNoSet) {
		log.Fatalf("error computing daylight: %v", err)
	}

	if *jsonOut {
		out := jsonOutput{
			Latitude:         loc.Latitude,
			Longitude:        loc.Longitude,
			Altitude:         loc.Altitude,
			TZOffset:         loc.TZOffset,
			Date:             date.String(),
			Algorithm:        calc.Config().Algorithm.String(),
			Method:           calc.Config().Method.String(),
			SunriseCondition: rise.Condition.String(),
			SunsetCondition:  set.Condition.String(),
			SolarNoon:        timeutil.FractionalHoursToTime(date.Year, time.Month(date.Month), date.Day, s.Noon, loc.Zone()),
			Declination:      s.Declination,
			EquationOfTime:   s.EquationOfTime * 60,
			DaylightHours:    daylight,
		}
		if t, ok := rise.Time(date, loc); ok {
			out.Sunrise = &t
		}
		if t, ok := set.Time(date, loc); ok {
			out.Sunset = &t
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			log.Fatalf("failed to encode JSON: %v", err)
		}
		return
	}

	fmt.Printf("Sun rise/set for lat=%.6f lon=%.6f alt=%.1fm\n", loc.Latitude, loc.Longitude, loc.Altitude)
	fmt.Printf("Date: %s (%s, %s)\n\n", date, loc.Zone(), calc.Config().Algorithm)
	fmt.Printf("Sunrise:    %s\n", describe(rise))
	fmt.Printf("Solar noon: %s\n", ephemeris.EventResult{Occurs: true, Hours: s.Noon}.String())
	fmt.Printf("Sunset:     %s\n", describe(set))
	if daylight != nil {
		fmt.Printf("Daylight:   %s\n", table.Humanize(*daylight))
	}
}

func describe(r ephemeris.EventResult) string {
	if r.Occurs {
		return r.String()
	}
	return fmt.Sprintf("%s (%s)", r, r.Condition)
}

// ---------------------
// Table subcommand
// ---------------------

func runTable(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("table", flag.ExitOnError)
	common := addCommonFlags(fs, cfg)
	nowS := fs.String("now", "", "reference clock time HH:MM for the relative column (defaults to now)")
	kindS := fs.String("kind", "day", "table: day, morning or evening")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ephemeris table [flags]

Flags:
`)
		fs.PrintDefaults()
	}
	parseFlags(fs, args)

	var kind table.Kind
	switch strings.ToLower(*kindS) {
	case "day":
		kind = table.Day
	case "morning":
		kind = table.Morning
	case "evening":
		kind = table.Evening
	default:
		log.Fatalf("unknown -kind %q (use day, morning or evening)", *kindS)
	}

	calc, date, loc := common.resolve(cfg)
	s, err := calc.Solar(date, loc)
	if err != nil {
		log.Fatalf("error computing solar quantities: %v", err)
	}
	now := clockHours(*nowS, loc)

	fmt.Printf("Solar events for %s at %.4f, %.4f (%s)\n", date, loc.Latitude, loc.Longitude, loc.Zone())
	rows := table.Build(calc, s, loc, kind.Events(), now, 0)
	if err := table.Render(os.Stdout, rows, table.RelativeColumns, table.ColorEnabled(os.Stdout)); err != nil {
		log.Fatalf("failed to render table: %v", err)
	}
}

// ---------------------
// Commute subcommand
// ---------------------

func runCommute(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("commute", flag.ExitOnError)
	common := addCommonFlags(fs, cfg)
	nowS := fs.String("now", "", "reference clock time HH:MM (defaults to now)")
	commute := fs.Float64("commute", cfg.Commute.Minutes, "one-way commute in minutes")
	workday := fs.Float64("workday", cfg.Commute.WorkdayHours, "hours spent at work")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ephemeris commute [flags]

Flags:
`)
		fs.PrintDefaults()
	}
	parseFlags(fs, args)

	if *commute < 0 || *workday < 0 {
		log.Fatalf("-commute and -workday must be non-negative")
	}

	calc, date, loc := common.resolve(cfg)
	s, err := calc.Solar(date, loc)
	if err != nil {
		log.Fatalf("error computing solar quantities: %v", err)
	}
	now := clockHours(*nowS, loc)
	color := table.ColorEnabled(os.Stdout)

	fmt.Printf("Commute plan for %s (%s commute)\n\n", date, table.Humanize(*commute/60))
	for _, kind := range []table.Kind{table.Morning, table.Evening} {
		fmt.Printf("%s:\n", strings.ToUpper(kind.String()[:1])+kind.String()[1:])
		rows := table.Build(calc, s, loc, kind.Events(), now, *commute)
		if err := table.Render(os.Stdout, rows, table.CommuteColumns, color); err != nil {
			log.Fatalf("failed to render table: %v", err)
		}
		fmt.Println()
	}

	for _, line := range table.PlanCommute(calc, s, loc, now, *commute, *workday).Advice() {
		fmt.Println(line)
	}
}

// ---------------------
// Compare subcommand
// ---------------------

func runCompare(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	common := addCommonFlags(fs, cfg)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ephemeris compare [flags]

Flags:
`)
		fs.PrintDefaults()
	}
	parseFlags(fs, args)

	calc, date, loc := common.resolve(cfg)

	fmt.Printf("Orbital element variants for %s\n", date)
	if err := compare.Variants(ephemeris.CenturiesFor(date)).Write(os.Stdout); err != nil {
		log.Fatalf("failed to write variants: %v", err)
	}

	res, err := compare.Against(calc, date, loc)
	if err != nil {
		log.Fatalf("reference comparison failed: %v", err)
	}
	fmt.Printf("\n%s vs Meeus (arcseconds):\n", calc.Config().Algorithm)
	fmt.Printf("  declination:     %+8.2f\n", res.Declination*3600)
	fmt.Printf("  right ascension: %+8.2f\n", res.RightAscension*3600)
	fmt.Printf("  obliquity:       %+8.2f\n", res.Obliquity*3600)
	fmt.Printf("  nutation:        %+8.2f\n", res.Nutation*3600)
	fmt.Printf("  distance (AU):   %+.2e\n", res.Distance)

	times, err := compare.SunTimesWith(calc, date, loc)
	if err != nil {
		log.Fatalf("go-sunrise comparison failed: %v", err)
	}
	fmt.Println("\nvs go-sunrise:")
	printDelta("sunrise", times.Rise, times.RefRise)
	printDelta("sunset", times.Set, times.RefSet)
}

func printDelta(name string, got, ref time.Time) {
	if got.IsZero() || ref.IsZero() {
		fmt.Printf("  %-8s n/a\n", name+":")
		return
	}
	fmt.Printf("  %-8s %s vs %s (%+.1fs)\n", name+":", got.Format("15:04:05"), ref.Format("15:04:05"), got.Sub(ref).Seconds())
}

// ---------------------
// Watch subcommand
// ---------------------

func runWatch(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	common := addCommonFlags(fs, cfg)
	list := fs.Bool("list", false, "print the next activation of each job and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ephemeris watch [flags]

Jobs come from the "jobs" section of the config file.

Flags:
`)
		fs.PrintDefaults()
	}
	parseFlags(fs, args)

	if len(cfg.Jobs) == 0 {
		log.Fatalf("no jobs configured (add a jobs section to %s)", config.DefaultPath)
	}

	logger, err := cfg.Logger()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	calc, _, loc := common.resolve(cfg)
	runner := schedule.NewRunner(logger, loc.Zone())

	for _, job := range cfg.Jobs {
		sched, err := schedule.Parse(job.Schedule, calc, loc)
		if err != nil {
			logger.Fatal("invalid job schedule",
				zap.String("job", job.Name),
				zap.String("schedule", job.Schedule),
				zap.Error(err),
			)
		}
		runner.Add(job.Name, job.Message, sched, nil)
	}

	for _, e := range runner.Entries() {
		if *list {
			next := "never"
			if !e.Next.IsZero() {
				next = e.Next.Format(time.RFC3339)
			}
			fmt.Printf("%-20s %s\n", e.Name, next)
			continue
		}
		logger.Info("next activation", zap.String("job", e.Name), zap.Time("at", e.Next))
	}
	if *list {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner.Start()
	<-ctx.Done()
	<-runner.Stop().Done()
}
