package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/anim"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/lesson"
	"github.com/san-kum/physlab/internal/logging"
	"github.com/san-kum/physlab/internal/persistence"
	"github.com/san-kum/physlab/internal/server"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	preset     string
	loop       bool

	mass1, velocity1 float64
	mass2, velocity2 float64
	distance         float64

	cfg    *config.Config
	logger *slog.Logger
)

// main registers every command and starts the default diagram player when
// no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:               "physlab",
		Short:             "interactive physics lesson diagrams",
		PersistentPreRunE: setup,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return playDiagram(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default ~/.physlab)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	playCmd := &cobra.Command{
		Use:   "play [diagram]",
		Short: "play a diagram in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  playDiagram,
	}
	addParamFlags(playCmd)
	playCmd.Flags().BoolVar(&loop, "loop", true, "keep playing after the automatic reset")

	runCmd := &cobra.Command{
		Use:   "run [diagram]",
		Short: "run one cycle headless and save the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDiagram,
	}
	addParamFlags(runCmd)

	diagramsCmd := &cobra.Command{
		Use:   "diagrams",
		Short: "list diagrams",
		RunE:  listDiagrams,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [diagram]",
		Short: "list presets for a diagram",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [elastic|inelastic]",
		Short: "check conservation over every slider combination",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepCollisions,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot body positions of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and frames as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the tick trace as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a frame or the whole trace as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().Int("frame", -1, "frame index to draw (default: position plot of the whole trace)")
	exportSVGCmd.Flags().StringP("output", "o", "", "output file (default stdout)")

	sandboxCmd := &cobra.Command{
		Use:   "sandbox [elastic|inelastic]",
		Short: "replay a collision in the box2d solver",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSandbox,
	}
	addParamFlags(sandboxCmd)

	cueCmd := &cobra.Command{
		Use:   "cue [file.wav]",
		Short: "write the impact sound for the configured collision",
		Args:  cobra.ExactArgs(1),
		RunE:  writeCue,
	}
	addParamFlags(cueCmd)
	cueCmd.Flags().Float64("speed", 0, "impact speed in m/s (default: closing speed of the collision)")

	lessonsCmd := &cobra.Command{
		Use:   "lessons",
		Short: "list lessons",
		RunE:  listLessons,
	}

	lessonCmd := &cobra.Command{
		Use:   "lesson [id]",
		Short: "show a lesson inside a course",
		Args:  cobra.ExactArgs(1),
		RunE:  showLesson,
	}
	lessonCmd.Flags().String("course", "", "course id the lesson is mounted in")
	lessonCmd.Flags().String("open", "", "panel to expand")

	examplesCmd := &cobra.Command{
		Use:   "examples [lesson]",
		Short: "page through worked examples",
		Args:  cobra.ExactArgs(1),
		RunE:  showExamples,
	}
	examplesCmd.Flags().Int("page", 0, "example index, wraps in both directions")

	checkExamplesCmd := &cobra.Command{
		Use:   "check-examples",
		Short: "recompute every worked example answer",
		RunE:  checkExamples,
	}

	quizCmd := &cobra.Command{
		Use:   "quiz [lesson]",
		Short: "take a lesson's knowledge check and record the attempt",
		Args:  cobra.ExactArgs(1),
		RunE:  takeQuiz,
	}
	quizCmd.Flags().String("course", "", "course id the check belongs to")

	attemptsCmd := &cobra.Command{
		Use:   "attempts [lesson_path]",
		Short: "list recorded knowledge check attempts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listAttempts,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve lessons, traces and attempts over http",
		RunE:  serve,
	}
	serveCmd.Flags().String("addr", "", "listen address")

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective config as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(playCmd, runCmd, diagramsCmd, presetsCmd, sweepCmd, listCmd, plotCmd,
		exportCmd, exportCSVCmd, exportSVGCmd, sandboxCmd, cueCmd, lessonsCmd, lessonCmd,
		examplesCmd, checkExamplesCmd, quizCmd, attemptsCmd, serveCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the config once for every command. Flags override the file
// and the environment.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
		cfg.Database = filepath.Join(dataDir, "physlab.db")
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger = logging.Setup(cfg.LogLevel, os.Stderr)
	return nil
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset slider values")
	cmd.Flags().Float64Var(&mass1, "mass1", 0, "mass of ball 1 (kg)")
	cmd.Flags().Float64Var(&velocity1, "velocity1", 0, "velocity of ball 1 (m/s)")
	cmd.Flags().Float64Var(&mass2, "mass2", 0, "mass of ball 2 (kg)")
	cmd.Flags().Float64Var(&velocity2, "velocity2", 0, "velocity of ball 2 (m/s)")
	cmd.Flags().Float64Var(&distance, "distance", 0, "mirror distance (m)")
}

// resolveDiagram picks the diagram from args or config and layers the preset
// and any explicit slider flags on top of the configured values.
func resolveDiagram(cmd *cobra.Command, args []string) (string, experiment.Params, error) {
	diagram := cfg.Diagram
	if len(args) > 0 {
		diagram = args[0]
	}
	if preset != "" {
		if err := cfg.ApplyPreset(diagram, preset); err != nil {
			return "", experiment.Params{}, fmt.Errorf("%w (available: %v)", err, config.ListPresets(diagram))
		}
	}
	p := cfg.Params()
	flags := cmd.Flags()
	if flags.Changed("mass1") {
		p.Collision.Mass1 = mass1
	}
	if flags.Changed("velocity1") {
		p.Collision.Velocity1 = velocity1
	}
	if flags.Changed("mass2") {
		p.Collision.Mass2 = mass2
	}
	if flags.Changed("velocity2") {
		p.Collision.Velocity2 = velocity2
	}
	if flags.Changed("distance") {
		p.Light.Distance = distance
	}
	p.Collision = p.Collision.Clamped()
	return diagram, p, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func serve(cmd *cobra.Command, args []string) error {
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	catalog, err := lesson.DefaultCatalog()
	if err != nil {
		return err
	}
	db, err := persistence.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := signalContext()
	defer cancel()

	srv := server.New(catalog, experiment.NewRegistry(), db, cfg.AnimConfig(), logger)
	return srv.Serve(ctx, cfg.Server)
}

func newAnimator(diagram string, p experiment.Params, c anim.Config) (*anim.Animator, error) {
	scene, err := experiment.NewRegistry().Scene(diagram, p)
	if err != nil {
		return nil, err
	}
	a := anim.New(scene, c)
	a.SetLogger(logger)
	return a, nil
}
