package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/anim"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/cue"
	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/export"
	"github.com/san-kum/physlab/internal/logging"
	"github.com/san-kum/physlab/internal/sandbox"
	"github.com/san-kum/physlab/internal/storage"
	"github.com/san-kum/physlab/internal/viz"
)

func playDiagram(cmd *cobra.Command, args []string) error {
	diagram, p, err := resolveDiagram(cmd, args)
	if err != nil {
		return err
	}
	ac := cfg.AnimConfig()
	if cmd.Flags().Changed("loop") {
		ac.Loop = loop
	}
	a, err := newAnimator(diagram, p, ac)
	if err != nil {
		return err
	}
	// The player owns the terminal.
	a.SetLogger(logging.Discard())
	return viz.Run(a, experiment.NewRegistry().Describe(diagram))
}

func runDiagram(cmd *cobra.Command, args []string) error {
	diagram, p, err := resolveDiagram(cmd, args)
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()
	scene, err := registry.Scene(diagram, p)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{Diagram: diagram, Params: p, Anim: cfg.AnimConfig()})
	if err := exp.Setup(scene, registry.DefaultMetrics(diagram)); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("running diagram", "diagram", diagram)
	res, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(res, cfg.AnimConfig())
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("ticks: %d (%.2fs on screen)\n", res.Ticks, float64(res.Ticks)*cfg.Animation.Interval.Seconds())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range sortedKeys(res.Metrics) {
		fmt.Fprintf(w, "%s\t%.6f\n", name, res.Metrics[name])
	}
	return w.Flush()
}

func listDiagrams(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DIAGRAM\tDESCRIPTION\tPRESETS")
	for _, name := range registry.List() {
		fmt.Fprintf(w, "%s\t%s\t%d\n", name, registry.Describe(name), len(config.ListPresets(name)))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	diagrams := experiment.NewRegistry().List()
	if len(args) > 0 {
		diagrams = args
	}
	for _, d := range diagrams {
		names := config.ListPresets(d)
		if len(names) == 0 {
			fmt.Printf("%s: no presets\n", d)
			continue
		}
		fmt.Printf("%s:\n", d)
		for _, name := range names {
			p := config.GetPreset(d, name)
			if d == experiment.LightPulse {
				fmt.Printf("  %-18s distance=%.1f\n", name, p.Light.Distance)
				continue
			}
			c := p.Collision
			fmt.Printf("  %-18s m1=%.1f v1=%+.1f m2=%.1f v2=%+.1f\n", name, c.Mass1, c.Velocity1, c.Mass2, c.Velocity2)
		}
	}
	return nil
}

func parseKind(args []string) (anim.Kind, error) {
	if len(args) == 0 {
		return anim.Elastic, nil
	}
	switch args[0] {
	case "elastic", experiment.CollisionElastic:
		return anim.Elastic, nil
	case "inelastic", experiment.CollisionInelastic:
		return anim.Inelastic, nil
	}
	return 0, fmt.Errorf("unknown collision kind %q (want elastic or inelastic)", args[0])
}

func sweepCollisions(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args)
	if err != nil {
		return err
	}
	points := experiment.Sweep(kind)

	var worst experiment.SweepPoint
	collisions, maxLoss := 0, 0.0
	for _, pt := range points {
		if !pt.Collides() {
			continue
		}
		collisions++
		if pt.MomentumDrift > worst.MomentumDrift {
			worst = pt
		}
		maxLoss = math.Max(maxLoss, pt.EnergyLoss)
	}
	fmt.Printf("%s: %s combinations, %s collide\n", kind, humanize.Comma(int64(len(points))), humanize.Comma(int64(collisions)))
	fmt.Printf("max momentum drift: %.3g\n", worst.MomentumDrift)
	fmt.Printf("max energy loss:    %.1f%%\n", maxLoss*100)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDIAGRAM\tWHEN\tTICKS\tINTERVAL\tDT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%.3f\n",
			run.ID,
			run.Diagram,
			humanize.Time(run.Timestamp),
			run.Ticks,
			run.Interval,
			run.Dt,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("diagram: %s\n", meta.Diagram)
	fmt.Printf("frames: %s\n\n", humanize.Comma(int64(len(frames))))

	for i, label := range meta.Bodies {
		data := make([]float64, 0, len(frames))
		for _, f := range frames {
			if i < len(f.Bodies) {
				data = append(data, f.Bodies[i].Position.X)
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(label+" position (m)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, frames)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	frames, err := storage.New(cfg.DataDir).LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteTrace(os.Stdout, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	idx, _ := cmd.Flags().GetInt("frame")
	var svg string
	switch {
	case idx < 0:
		svg = export.TraceToSVG(frames, 800, 300)
	case idx < len(frames):
		svg = export.FrameToSVG(frames[idx].Bodies, meta.Params.Track)
	default:
		return fmt.Errorf("frame %d out of range (run has %d)", idx, len(frames))
	}
	if svg == "" {
		return fmt.Errorf("not enough frames to draw")
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		_, err = io.WriteString(os.Stdout, svg)
		return err
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func runSandbox(cmd *cobra.Command, args []string) error {
	kind, err := parseKind(args)
	if err != nil {
		return err
	}
	_, p, err := resolveDiagram(cmd, []string{experiment.CollisionElastic})
	if err != nil {
		return err
	}
	rep, err := sandbox.Run(kind, p.Collision, sandbox.Options{})
	if err != nil {
		return err
	}
	if rep.BelowThreshold {
		logger.Warn("closing speed is below the solver's restitution threshold; contact will be inelastic")
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return err
	}
	fmt.Println(rep)
	fmt.Printf("momentum error: %.3g, velocity error: %.3g\n", rep.MomentumError(), rep.VelocityError())
	return nil
}

func writeCue(cmd *cobra.Command, args []string) error {
	speed, _ := cmd.Flags().GetFloat64("speed")
	if !cmd.Flags().Changed("speed") {
		_, p, err := resolveDiagram(cmd, []string{experiment.CollisionElastic})
		if err != nil {
			return err
		}
		speed = p.Collision.Velocity1 - p.Collision.Velocity2
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := cue.WriteWAV(f, speed); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%.0f Hz)\n", args[0], cue.Pitch(speed))
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
