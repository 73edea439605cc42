package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/san-kum/qwave/internal/config"
	"github.com/san-kum/qwave/internal/logger"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	logLevel    string
	logPretty   bool
	configFile  string
	paramsFile  string
	potential   string
	preset      string
	points      int
	simTime     float64
	x0          float64
	output      string
	snapFormat  string
	movieFormat string
	frames      int
	workers     int
	incremental bool
	fps         int
	save        bool
	outDir      string
	stepsTick   int
	frameIdx    int

	log zerolog.Logger
)

// main registers the commands and flags and runs the root command. Without a
// subcommand the root renders a snapshot or a movie depending on --output.
func main() {
	rootCmd := &cobra.Command{
		Use:   "qwave",
		Short: "solve the time-dependent 1D Schrodinger equation (Crank-Nicolson)",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logger.New(logger.Config{Level: logLevel, Pretty: logPretty})
		},
		SilenceUsage: true,
		RunE:         runDefault,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".qwave", "data directory for saved runs")
	pf.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	pf.BoolVar(&logPretty, "log-pretty", true, "human readable logs")

	addRunFlags(rootCmd)
	rootCmd.Flags().StringVarP(&output, "output", "o", config.DefaultOutput, "output type: snapshot or movie")
	rootCmd.Flags().StringVar(&snapFormat, "snapshot-format", config.DefaultSnapshotFormat, "snapshot format: pdf, png, svg, ...")
	rootCmd.Flags().StringVar(&movieFormat, "movie-format", config.DefaultMovieFormat, "movie format: gif or png (frame sequence)")
	addMovieFlags(rootCmd)
	rootCmd.Flags().BoolVar(&save, "save", false, "store snapshot frames in the data directory (movies are always stored)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "plot |psi|^2 at t = time*T next to the initial packet",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	addRunFlags(snapshotCmd)
	snapshotCmd.Flags().StringVar(&snapFormat, "format", config.DefaultSnapshotFormat, "figure format: pdf, png, svg, ...")
	snapshotCmd.Flags().BoolVar(&save, "save", false, "store the initial and evolved frames in the data directory")

	movieCmd := &cobra.Command{
		Use:   "movie",
		Short: "render frames over one period T",
		Args:  cobra.NoArgs,
		RunE:  runMovie,
	}
	addRunFlags(movieCmd)
	addMovieFlags(movieCmd)
	movieCmd.Flags().StringVar(&movieFormat, "format", config.DefaultMovieFormat, "movie format: gif or png (frame sequence)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the packet propagate in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsTick, "steps-per-tick", 20, "dt steps per redraw")
	liveCmd.Flags().IntVar(&fps, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved frame in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame index (negative counts from the end)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export saved densities to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [potential]",
		Short: "list parameter presets for a potential kind",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-params [path]",
		Short: "write a default potential parameter file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initParams,
	}
	initCmd.Flags().StringVar(&potential, "potential", "", "potential kind: step, barrier, well, gaussian")
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a named preset")

	rootCmd.AddCommand(snapshotCmd, movieCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "run config file (yaml)")
	f.StringVar(&paramsFile, "params", config.DefaultParamsFile, "potential parameter file (text or yaml)")
	f.StringVar(&potential, "potential", "", "override the potential kind: step, barrier, well, gaussian")
	f.StringVar(&preset, "preset", "", "use a named preset of the potential kind")
	f.IntVarP(&points, "points", "N", config.DefaultPoints, "number of grid points")
	f.Float64VarP(&simTime, "time", "t", config.DefaultTime, "time in units of T, in [0, 1)")
	f.Float64VarP(&x0, "x0", "x", config.DefaultX0, "initial packet position, in [0, 1)")
	f.StringVar(&outDir, "out", ".", "output directory")
}

func addMovieFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&frames, "frames", config.DefaultFrames, "number of frames over one period")
	f.IntVar(&workers, "workers", 0, "parallel workers (0 = one per CPU)")
	f.BoolVar(&incremental, "incremental", false, "step each frame on from the previous one")
	f.IntVar(&fps, "fps", 30, "frames per second")
}
