package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/thurmanmarka/ephemeris"
)

// reference is one expected rise/set pair. Zero times mean "did not occur".
type reference struct {
	row  int
	date ephemeris.Date
	rise time.Time
	set  time.Time
}

// CSV format:
//
// date,rise,set
// 2025-01-01,07:32,17:12
// 2025-01-02,07:32,17:13
//
// - date is YYYY-MM-DD
// - rise/set are local times in HH:MM (24-hour clock), or --:-- when absent
// - All times are in the fixed UTC offset given by -tz.
//
// With -reference=go-sunrise the references are generated for every day in
// [-from, -to] instead of being read from -refcsv.
func main() {
	var (
		lat      = flag.Float64("lat", 0, "latitude in degrees (north positive)")
		lon      = flag.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
		tz       = flag.Int("tz", 0, "UTC offset in whole hours")
		alt      = flag.Float64("alt", 0, "observer altitude in meters")
		algoS    = flag.String("algo", "noaa", "orbital element variant: noaa, usno or laskar")
		methodS  = flag.String("method", "closed", "event solver: closed or bisection")
		refKind  = flag.String("reference", "csv", "reference source: csv or go-sunrise")
		refCSV   = flag.String("refcsv", "", "path to reference ephemeris CSV file (date,rise,set)")
		fromS    = flag.String("from", "", "first date YYYY-MM-DD for -reference=go-sunrise")
		toS      = flag.String("to", "", "last date YYYY-MM-DD for -reference=go-sunrise")
		verbose  = flag.Bool("verbose", false, "log per-day errors instead of only summary")
		twilight = flag.String("twilight", "", "twilight kind: civil, nautical, astronomical (csv reference only)")
		outCSV   = flag.String("outcsv", "", "optional path to write per-row error CSV")
	)

	flag.Parse()

	cfg := ephemeris.DefaultConfig()
	var err error
	if cfg.Algorithm, err = ephemeris.ParseAlgorithm(*algoS); err != nil {
		log.Fatalf("invalid -algo: %v", err)
	}
	if cfg.Method, err = ephemeris.ParseMethod(*methodS); err != nil {
		log.Fatalf("invalid -method: %v", err)
	}
	calc, err := ephemeris.New(cfg)
	if err != nil {
		log.Fatalf("invalid model: %v", err)
	}

	loc := ephemeris.Location{Latitude: *lat, Longitude: *lon, TZOffset: *tz, Altitude: *alt}
	if err := ephemeris.Validate(ephemeris.Date{Year: 2000, Month: 1, Day: 1}, loc); err != nil {
		log.Fatalf("invalid location: %v", err)
	}
	if *lat == 0 && *lon == 0 {
		log.Println("warning: lat=0 lon=0 (Gulf of Guinea). Did you mean to set -lat/-lon?")
	}

	useTwilight := false
	var twilightKind ephemeris.TwilightKind
	if *twilight != "" {
		useTwilight = true
		switch strings.ToLower(*twilight) {
		case "civil":
			twilightKind = ephemeris.TwilightCivil
		case "nautical":
			twilightKind = ephemeris.TwilightNautical
		case "astronomical":
			twilightKind = ephemeris.TwilightAstronomical
		default:
			log.Fatalf("unknown twilight kind %q (use civil, nautical, or astronomical)", *twilight)
		}
	}

	var (
		refs    []reference
		skipped int
	)
	switch strings.ToLower(*refKind) {
	case "csv":
		if *refCSV == "" {
			log.Fatalf("missing -refcsv (path to reference CSV)")
		}
		refs, skipped = readCSV(*refCSV, loc)
	case "go-sunrise":
		if useTwilight {
			log.Fatalf("-twilight needs a csv reference; go-sunrise only computes rise and set")
		}
		refs = generate(*fromS, *toS, loc)
	default:
		log.Fatalf("unknown -reference %q (use csv or go-sunrise)", *refKind)
	}

	modeDesc := "SUNRISE/SUNSET"
	if useTwilight {
		modeDesc = fmt.Sprintf("SUN (%s TWILIGHT)", strings.ToUpper(twilightKind.String()))
	}

	var outWriter *csv.Writer
	if *outCSV != "" {
		outFile, err := os.Create(*outCSV)
		if err != nil {
			log.Fatalf("failed to create outcsv %q: %v", *outCSV, err)
		}
		defer outFile.Close()

		outWriter = csv.NewWriter(outFile)
		defer outWriter.Flush()

		if err := outWriter.Write([]string{
			"date",
			"mode",
			"algorithm",
			"rise_err",
			"set_err",
			"rise_signed",
			"set_signed",
		}); err != nil {
			log.Fatalf("failed to write outcsv header: %v", err)
		}
	}

	var riseStats, setStats, riseSigned, setSigned stats

	for _, ref := range refs {
		var (
			rs  ephemeris.RiseSet
			err error
		)
		if useTwilight {
			// In twilight mode, the CSV "rise" is dawn and "set" is dusk.
			rs, err = calc.Twilight(ref.date, loc, twilightKind)
		} else {
			rs, err = riseSet(calc, ref.date, loc)
		}
		if err != nil {
			log.Printf("row %d: ephemeris error: %v, skipping", ref.row, err)
			skipped++
			continue
		}

		riseErr := diffMinutes(rs.Rise, ref.rise)
		setErr := diffMinutes(rs.Set, ref.set)
		riseS := diffMinutesSigned(rs.Rise, ref.rise)
		setS := diffMinutesSigned(rs.Set, ref.set)

		riseStats.add(riseErr)
		setStats.add(setErr)
		riseSigned.add(riseS)
		setSigned.add(setS)

		if *verbose {
			fmt.Printf("%s %s: rise err=%.2f min (got=%s ref=%s), set err=%.2f min (got=%s ref=%s)\n",
				ref.date, modeDesc,
				riseErr, clock(rs.Rise), clock(ref.rise),
				setErr, clock(rs.Set), clock(ref.set))
		}

		if outWriter != nil {
			rec := []string{
				ref.date.String(),
				modeDesc,
				cfg.Algorithm.String(),
				fmt.Sprintf("%.6f", riseErr),
				fmt.Sprintf("%.6f", setErr),
				fmt.Sprintf("%.6f", riseS),
				fmt.Sprintf("%.6f", setS),
			}
			if err := outWriter.Write(rec); err != nil {
				log.Printf("row %d: failed to write outcsv: %v", ref.row, err)
			}
		}
	}

	fmt.Println("=== ephemeris profiler summary ===")
	fmt.Printf("Mode:      %s\n", modeDesc)
	fmt.Printf("Model:     %s / %s\n", cfg.Algorithm, cfg.Method)
	fmt.Printf("Reference: %s\n", *refKind)
	fmt.Printf("Lat/Lon:   %.4f / %.4f\n", *lat, *lon)
	fmt.Printf("TZ:        %s\n", loc.Zone())
	fmt.Printf("Rows:      %d (processed), %d skipped\n", len(refs)-skipped, skipped)

	if riseStats.count == 0 && setStats.count == 0 {
		fmt.Println("No valid rows to compute stats.")
		return
	}

	printStats("Rise error (minutes):", riseStats, "avg")
	printStats("Set error (minutes):", setStats, "avg")
	printStats("Rise signed error (minutes, our - ref):", riseSigned, "mean")
	printStats("Set signed error (minutes, our - ref):", setSigned, "mean")
}

func printStats(title string, s stats, meanLabel string) {
	fmt.Println("\n" + title)
	fmt.Printf("  count: %d\n", s.count)
	fmt.Printf("  min:   %.3f\n", s.min)
	fmt.Printf("  max:   %.3f\n", s.max)
	fmt.Printf("  %-5s  %.3f\n", meanLabel+":", s.mean())
}

func clock(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Format("15:04")
}

func riseSet(calc *ephemeris.Calculator, date ephemeris.Date, loc ephemeris.Location) (ephemeris.RiseSet, error) {
	rise, err := calc.Sunrise(date, loc)
	if err != nil {
		return ephemeris.RiseSet{}, err
	}
	set, err := calc.Sunset(date, loc)
	if err != nil {
		return ephemeris.RiseSet{}, err
	}

	var rs ephemeris.RiseSet
	if t, ok := rise.Time(date, loc); ok {
		rs.Rise = t
	}
	if t, ok := set.Time(date, loc); ok {
		rs.Set = t
	}
	return rs, nil
}

func readCSV(path string, loc ephemeris.Location) (refs []reference, skipped int) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open refcsv %q: %v", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // allow variable, we validate

	records, err := r.ReadAll()
	if err != nil {
		log.Fatalf("failed to read CSV: %v", err)
	}
	if len(records) == 0 {
		log.Fatalf("empty CSV file")
	}

	// If first row looks like a header, skip it.
	startIdx := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		startIdx = 1
	}

	zone := loc.Zone()
	for i := startIdx; i < len(records); i++ {
		ref, err := parseRecord(records[i], zone)
		if err != nil {
			log.Printf("row %d: %v, skipping", i+1, err)
			skipped++
			continue
		}
		ref.row = i + 1
		refs = append(refs, ref)
	}
	return refs, skipped
}

func parseRecord(row []string, zone *time.Location) (reference, error) {
	if len(row) < 3 {
		return reference{}, fmt.Errorf("expected at least 3 columns (date,rise,set), got %d", len(row))
	}
	dateStr := strings.TrimSpace(row[0])
	riseStr := strings.TrimSpace(row[1])
	setStr := strings.TrimSpace(row[2])

	date, err := ephemeris.ParseDate(dateStr)
	if err != nil {
		return reference{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	day := time.Date(date.Year, time.Month(date.Month), date.Day, 0, 0, 0, 0, zone)

	rise, err := parseLocalTime(day, riseStr, zone)
	if err != nil {
		return reference{}, fmt.Errorf("invalid rise time %q: %w", riseStr, err)
	}
	set, err := parseLocalTime(day, setStr, zone)
	if err != nil {
		return reference{}, fmt.Errorf("invalid set time %q: %w", setStr, err)
	}
	return reference{date: date, rise: rise, set: set}, nil
}

// generate computes go-sunrise references for every day in [from, to].
func generate(fromS, toS string, loc ephemeris.Location) []reference {
	if fromS == "" || toS == "" {
		log.Fatalf("-reference=go-sunrise needs -from and -to")
	}
	from, err := ephemeris.ParseDate(fromS)
	if err != nil {
		log.Fatalf("invalid -from %q: %v", fromS, err)
	}
	to, err := ephemeris.ParseDate(toS)
	if err != nil {
		log.Fatalf("invalid -to %q: %v", toS, err)
	}

	zone := loc.Zone()
	var refs []reference
	for d, i := from, 1; !after(d, to); d, i = d.AddDays(1), i+1 {
		rise, set := sunrise.SunriseSunset(loc.Latitude, loc.Longitude, d.Year, time.Month(d.Month), d.Day)
		ref := reference{row: i, date: d}
		if !rise.IsZero() {
			ref.rise = rise.In(zone)
		}
		if !set.IsZero() {
			ref.set = set.In(zone)
		}
		refs = append(refs, ref)
	}
	return refs
}

func after(a, b ephemeris.Date) bool {
	if a.Year != b.Year {
		return a.Year > b.Year
	}
	if a.Month != b.Month {
		return a.Month > b.Month
	}
	return a.Day > b.Day
}
