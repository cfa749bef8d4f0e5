package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jengzang/overlap-backend-go/internal/archive"
	"github.com/jengzang/overlap-backend-go/internal/normalize"
	"github.com/jengzang/overlap-backend-go/internal/overlap"
	"github.com/jengzang/overlap-backend-go/internal/report"
)

var (
	flagWaypoints     bool
	flagCSV           string
	flagTimeThreshold int64
	flagDistThreshold float64
)

var rootCmd = &cobra.Command{
	Use:   "overlap [archive] [archive2]",
	Short: "Analyze location-history archives and find overlaps between two users",
	Long: `Analyze Google Takeout location-history archives.

With one archive, prints the normalized, time-sorted point stream.
With two archives, merges both users' streams and reports candidate
spatiotemporal overlaps between them.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVar(&flagWaypoints, "waypoints", false, "expand intermediate waypoints of activity segments")
	rootCmd.Flags().StringVar(&flagCSV, "csv", "", "append place and activity rows to FULL_places.csv and FULL_activity_points.csv under this directory")
	rootCmd.Flags().Int64Var(&flagTimeThreshold, "time-threshold", overlap.DefaultTimeThresholdMin, "overlap time threshold in minutes")
	rootCmd.Flags().Float64Var(&flagDistThreshold, "dist-threshold", overlap.DefaultDistThresholdKm, "overlap distance threshold in km")
}

func run(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 1:
		return dump(args[0])
	case 2:
		return findOverlaps(args[0], args[1])
	default:
		usage(cmd)
		return nil
	}
}

// usage goes to stdout and the exit stays zero: a wrong argument count is a
// help request, not a failure.
func usage(cmd *cobra.Command) {
	fmt.Println("USAGE")
	fmt.Printf("  Dump single file  :\t%s [zipfile]\n", cmd.CommandPath())
	fmt.Printf("  Look for overlaps :\t%s [zipfile1] [zipfile2]\n", cmd.CommandPath())
	fmt.Println()
}

// dump prints the normalized, time-sorted point stream of one archive.
func dump(path string) error {
	loader := archive.NewLoader(normalize.New(flagWaypoints))

	points, err := loader.Load(path, archive.UserID(path))
	if err != nil {
		return err
	}

	sorted := overlap.Merge(points)
	if err := report.WriteDump(os.Stdout, sorted); err != nil {
		return err
	}

	if flagCSV != "" {
		if err := report.AppendHistoryCSVs(flagCSV, sorted); err != nil {
			return err
		}
		log.Printf("[CLI] Appended %d points under %s", len(sorted), flagCSV)
	}
	return nil
}

// findOverlaps merges two users' streams and reports candidate overlaps.
func findOverlaps(pathA, pathB string) error {
	loader := archive.NewLoader(normalize.New(flagWaypoints))

	userA := archive.UserID(pathA)
	userB := archive.UserID(pathB)

	pointsA, err := loader.Load(pathA, userA)
	if err != nil {
		return err
	}
	pointsB, err := loader.Load(pathB, userB)
	if err != nil {
		return err
	}

	merged := overlap.Merge(pointsA, pointsB)
	detector := overlap.NewDetector(userA, userB, flagTimeThreshold, flagDistThreshold)
	matches, err := detector.Detect(merged)
	if err != nil {
		return err
	}

	if err := report.WriteMatches(os.Stdout, matches); err != nil {
		return err
	}
	log.Printf("[CLI] %d points scanned, %d possible overlaps", len(merged), len(matches))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
