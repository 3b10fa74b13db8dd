package main

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/internal/fixture"
	"github.com/vango-dev/reconcile/pkg/scheduler"
	"github.com/vango-dev/reconcile/pkg/telemetry"
	"github.com/vango-dev/reconcile/pkg/vdom"
	"github.com/vango-dev/reconcile/pkg/vtest"
)

type diffOptions struct {
	showHTML    bool
	showMetrics bool
	verify      bool
	targets     []string
}

func diffCmd(load func() (*config.Config, error)) *cobra.Command {
	var opts diffOptions

	cmd := &cobra.Command{
		Use:   "diff FILE...",
		Short: "Render tree fixtures in sequence and print host operations",
		Long: `Render every tree found in the given YAML fixture files, in order,
into the same container of an in-memory host. The first tree is mounted;
each following tree is patched over the previous one. For every step the
host operations it produced are printed.

Examples:
  reconcile diff old.yaml new.yaml
  reconcile diff steps.yaml --metrics
  reconcile diff modal.yaml --target overlay`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runDiff(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.showHTML, "html", true, "Print the final HTML of every root")
	cmd.Flags().BoolVar(&opts.showMetrics, "metrics", false, "Print the collected Prometheus counters")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "Check that the patched result matches a fresh mount of the last tree")
	cmd.Flags().StringSliceVarP(&opts.targets, "target", "t", nil, "Create an extra root element with this id for portals")

	return cmd
}

func runDiff(out, errOut io.Writer, cfg *config.Config, files []string, opts diffOptions) error {
	type step struct {
		file string
		tree *vdom.VNode
	}
	var steps []step
	for _, file := range files {
		trees, err := fixture.Load(file)
		if err != nil {
			return err
		}
		for _, tree := range trees {
			steps = append(steps, step{file: file, tree: tree})
		}
	}
	if len(steps) == 0 {
		return errors.New("F001").WithDetail("no trees in " + strings.Join(files, ", "))
	}

	logger := slog.New(cfg.Handler(errOut))
	host := vtest.NewHost()
	loop := scheduler.NewLoop()

	var diags []error
	rendererOpts := []vdom.Option{
		vdom.WithLoop(loop),
		vdom.WithLogger(logger),
		vdom.WithDiagnostics(func(err error) { diags = append(diags, err) }),
		vdom.WithCacheMax(cfg.Cache.Max),
	}
	if cfg.DepthOrder() {
		rendererOpts = append(rendererOpts, vdom.WithDepthOrder())
	}

	registry := prometheus.NewRegistry()
	if cfg.Metrics.Enabled || opts.showMetrics {
		metrics := telemetry.NewMetrics(
			telemetry.WithRegistry(registry),
			telemetry.WithNamespace(cfg.Metrics.Namespace),
		)
		rendererOpts = append(rendererOpts, vdom.WithMetrics(metrics))
	}
	if cfg.Tracing.Enabled {
		rendererOpts = append(rendererOpts, vdom.WithTracer(
			telemetry.NewTracer(telemetry.WithTracerName(cfg.Tracing.TracerName)),
		))
	}

	extra := make([]*vtest.Node, len(opts.targets))
	for i, id := range opts.targets {
		extra[i] = host.NewRoot("target")
		el := host.CreateElement("div")
		host.SetProperty(el, "id", nil, id)
		host.Insert(el, extra[i], nil)
	}
	host.Reset()

	root := host.NewRoot("root")
	r := vdom.NewRenderer(host, rendererOpts...)

	for i, s := range steps {
		r.Render(s.tree, root)
		loop.Drain()

		ops := host.OpStrings()
		host.Reset()

		fmt.Fprintf(out, "step %d (%s): %d ops\n", i+1, s.file, len(ops))
		for _, op := range ops {
			fmt.Fprintf(out, "  %s\n", op)
		}
	}

	for _, err := range diags {
		if e, ok := err.(*errors.Error); ok {
			fmt.Fprintf(out, "diagnostic: %s\n", e.FormatCompact())
			continue
		}
		fmt.Fprintf(out, "diagnostic: %v\n", err)
	}

	if opts.showHTML {
		fmt.Fprintf(out, "html: %s\n", root.HTML())
		for i, id := range opts.targets {
			fmt.Fprintf(out, "html #%s: %s\n", id, extra[i].HTML())
		}
	}

	if opts.showMetrics {
		if err := writeMetrics(out, registry); err != nil {
			return err
		}
	}

	if opts.verify {
		return verifyLast(out, files[len(files)-1], root.HTML(), opts.targets)
	}
	return nil
}

// verifyLast mounts a freshly decoded copy of the last tree in file into an
// empty host and compares the result with the patched HTML.
func verifyLast(out io.Writer, file, patched string, targets []string) error {
	trees, err := fixture.Load(file)
	if err != nil {
		return err
	}
	if len(trees) == 0 {
		return errors.New("F001").WithDetail("no trees in " + file)
	}

	host := vtest.NewHost()
	for _, id := range targets {
		el := host.CreateElement("div")
		host.SetProperty(el, "id", nil, id)
		host.Insert(el, host.NewRoot("target"), nil)
	}
	root := host.NewRoot("root")
	vdom.NewRenderer(host, vdom.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))).Render(trees[len(trees)-1], root)

	if fresh := root.HTML(); fresh != patched {
		return errors.Newf(errors.CategoryRuntime, "patched tree differs from a fresh mount:\n  patched: %s\n  fresh:   %s", patched, fresh)
	}
	fmt.Fprintln(out, "verify: ok")
	return nil
}

// writeMetrics prints every counter and gauge sample in registry, one line
// each, sorted by name and labels.
func writeMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := formatLabels(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				lines = append(lines, fmt.Sprintf("%s%s %g", mf.GetName(), labels, m.GetCounter().GetValue()))
			case dto.MetricType_GAUGE:
				lines = append(lines, fmt.Sprintf("%s%s %g", mf.GetName(), labels, m.GetGauge().GetValue()))
			case dto.MetricType_HISTOGRAM:
				lines = append(lines, fmt.Sprintf("%s_count%s %d", mf.GetName(), labels, m.GetHistogram().GetSampleCount()))
			}
		}
	}
	sort.Strings(lines)

	fmt.Fprintln(w, "metrics:")
	for _, line := range lines {
		fmt.Fprintf(w, "  %s\n", line)
	}
	return nil
}

func formatLabels(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = fmt.Sprintf("%s=%q", l.GetName(), l.GetValue())
	}
	return "{" + strings.Join(parts, ",") + "}"
}
