package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"mdscli/internal/app"
	"mdscli/internal/config"
	apierrors "mdscli/internal/errors"
)

func main() {
	year := flag.Int("year", 0, "single end year to fetch (e.g. 2024)")
	from := flag.Int("from", 0, "first end year of a range")
	to := flag.Int("to", 0, "last end year of a range")
	refresh := flag.Bool("refresh", false, "bypass the cache and re-download")
	export := flag.Bool("export", true, "write wide and tidy CSV files")
	flag.Parse()

	years, err := resolveYears(*year, *from, *to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	application, err := app.NewApplication()
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	logger := application.Logger

	ctx := context.Background()
	var warnings []string
	succeeded := 0

	for _, y := range years {
		if err := fetchYear(ctx, application, y, *refresh, *export); err != nil {
			if !apierrors.IsRecoverable(err) {
				logger.Error("fatal error", slog.Int("end_year", y), slog.String("error", err.Error()))
				os.Exit(1)
			}
			logger.Warn("year skipped", slog.Int("end_year", y), slog.String("error", err.Error()))
			warnings = append(warnings, fmt.Sprintf("year %d: %v", y, err))
			continue
		}
		succeeded++
	}

	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	if succeeded == 0 {
		logger.Error("no year produced data", slog.Int("attempted", len(years)))
		os.Exit(1)
	}
	logger.Info("batch complete",
		slog.Int("succeeded", succeeded),
		slog.Int("skipped", len(warnings)))
}

func fetchYear(ctx context.Context, application *app.Application, year int, refresh, export bool) error {
	if export {
		return application.ExportYear(ctx, year, refresh)
	}
	_, err := application.Enrollment.FetchEnr(ctx, year, refresh)
	return err
}

// resolveYears turns the flag combination into an ordered year list.
func resolveYears(year, from, to int) ([]int, error) {
	switch {
	case year != 0:
		if from != 0 || to != 0 {
			return nil, fmt.Errorf("use either -year or -from/-to, not both")
		}
		return []int{year}, nil
	case from != 0 || to != 0:
		if from == 0 || to == 0 || from > to {
			return nil, fmt.Errorf("-from and -to must both be set with -from <= -to")
		}
		var years []int
		for y := from; y <= to; y++ {
			years = append(years, y)
		}
		return years, nil
	default:
		return config.AvailableYears(), nil
	}
}
