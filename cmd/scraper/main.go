package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"jobscraper/internal/app"
	"jobscraper/internal/config"
	"jobscraper/internal/logger"
	"jobscraper/internal/pipeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	platform string
	keywords []string
	pages    int
	location string
	store    string
	headful  bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "scraper",
		Short: "Run one scrape and merge the admitted postings into the job store",
		Long: `scraper collects recent postings from the configured job boards, drops
duplicates and postings already on record, and appends the rest to the
JSON job store. Flags override configs/config.yaml.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.platform, "platform", "p", "", "simplyhired, talent, glassdoor or all")
	f.StringArrayVarP(&opts.keywords, "keyword", "k", nil, "search keyword (repeatable)")
	f.IntVar(&opts.pages, "pages", 0, "result pages per keyword")
	f.StringVarP(&opts.location, "location", "l", "", "search location")
	f.StringVar(&opts.store, "store", "", "path of the JSON job store")
	f.BoolVar(&opts.headful, "headful", false, "show the browser window")
	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	log := logger.For("cli")

	if opts.store != "" {
		cfg.StorePath = opts.store
	}
	if opts.headful {
		cfg.Headless = false
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(ctx, cfg)
	defer a.Close()

	req := applyFlags(a.DefaultRequest(), cmd, opts)
	rc, err := a.Service.Run(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("❌ Scrape failed")
		return err
	}
	printSummary(cmd, rc, cfg.StorePath)
	return nil
}

// applyFlags overrides req with every flag the user actually set.
func applyFlags(req pipeline.Request, cmd *cobra.Command, opts options) pipeline.Request {
	flags := cmd.Flags()
	if flags.Changed("platform") {
		req.Platform = opts.platform
	}
	if flags.Changed("keyword") {
		req.Keywords = opts.keywords
	}
	if flags.Changed("pages") {
		req.Pages = opts.pages
	}
	if flags.Changed("location") {
		req.Location = opts.location
	}
	return req
}

func printSummary(cmd *cobra.Command, rc *pipeline.RunContext, storePath string) {
	res := rc.Result
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s finished in %s\n", rc.ID, rc.FinishedAt.Sub(rc.StartedAt).Round(time.Second))
	fmt.Fprintf(out, "  collected:        %d\n", res.Collected)
	fmt.Fprintf(out, "  duplicates:       %d\n", res.Duplicates)
	fmt.Fprintf(out, "  outside window:   %d\n", res.OutOfWindow)
	fmt.Fprintf(out, "  already recorded: %d\n", res.Rejected)
	fmt.Fprintf(out, "  admitted:         %d\n", len(res.Admitted))
	fmt.Fprintf(out, "  total in %s: %d\n", storePath, res.Store.TotalJobs)
	for _, p := range res.Admitted {
		fmt.Fprintf(out, "  + %s @ %s (%s)\n", p.Title, p.Company, p.Source)
	}
}
