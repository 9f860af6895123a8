package runner

import (
	"os"
	"strconv"
	"time"

	"github.com/logrusorgru/aurora/v4"
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/projectdiscovery/pdping/pkg/peerdiscovery/pingsweep"
	"github.com/projectdiscovery/pdping/pkg/version"
	envutil "github.com/projectdiscovery/utils/env"
	fileutil "github.com/projectdiscovery/utils/file"
)

var au *aurora.Aurora

var (
	TimeoutEnv     = envutil.GetEnvOrDefault("PDPING_TIMEOUT", "")
	ConcurrencyEnv = envutil.GetEnvOrDefault("PDPING_CONCURRENCY", "")
	ExecutorEnv    = envutil.GetEnvOrDefault("PDPING_EXECUTOR", pingsweep.ExecutorAuto)
)

// Options contains the configuration options for a sweep
type Options struct {
	CIDR  string
	Base  string
	Start int
	End   int
	Auto  bool

	ConfigFile  string
	Timeout     int // milliseconds
	Concurrency int
	Executor    string
	Engine      string
	Privileged  bool
	Prescan     int // percent of each range to probe, 0 disables

	IncludeUnreachable bool
	ShowProgress       bool
	CSVOutput          string
	JSON               bool
	ARP                bool
	NoColor            bool

	Verbose bool
	Silent  bool
	Version bool
}

// ParseOptions parses the command line flags provided by a user
func ParseOptions() *Options {
	options := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`pdping sweeps IPv4 ranges with ICMP echo requests and reports which hosts are up`)

	defaultTimeout := int(pingsweep.DefaultTimeout / time.Millisecond)
	if val, err := strconv.Atoi(TimeoutEnv); err == nil && val > 0 {
		defaultTimeout = val
	}
	defaultConcurrency := pingsweep.DefaultConcurrency
	if val, err := strconv.Atoi(ConcurrencyEnv); err == nil && val > 0 {
		defaultConcurrency = val
	}

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVar(&options.CIDR, "cidr", "", "IPv4 network to sweep in CIDR notation (e.g. 192.168.1.0/24)"),
		flagSet.StringVarP(&options.Base, "base", "b", "", "first three octets of the range to sweep (e.g. 192.168.1)"),
		flagSet.IntVarP(&options.Start, "start", "s", 1, "first host octet when sweeping a base"),
		flagSet.IntVarP(&options.End, "end", "e", 255, "last host octet when sweeping a base"),
		flagSet.BoolVar(&options.Auto, "auto", false, "sweep every private /24 network attached to this host"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&options.ConfigFile, "config", "", "cli flag configuration file"),
		flagSet.IntVarP(&options.Timeout, "timeout", "t", defaultTimeout, "probe timeout in milliseconds"),
		flagSet.IntVarP(&options.Concurrency, "concurrency", "c", defaultConcurrency, "maximum number of outstanding probes (1 = sequential)"),
		flagSet.StringVarP(&options.Executor, "executor", "ex", ExecutorEnv, "probe executor preference (auto, goroutine, process)"),
		flagSet.StringVarP(&options.Engine, "engine", "en", pingsweep.EngineICMP, "in-process ping engine (icmp, library)"),
		flagSet.BoolVarP(&options.Privileged, "privileged", "priv", pingsweep.DefaultPrivileged(), "use raw icmp sockets"),
		flagSet.IntVarP(&options.Prescan, "prescan", "ps", 0, "only probe the given percent of each range most likely to be online"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&options.IncludeUnreachable, "include-unreachable", "iu", false, "include unreachable hosts in the results"),
		flagSet.BoolVarP(&options.ShowProgress, "show-progress", "sp", false, "show a progress bar (sequential mode only)"),
		flagSet.StringVar(&options.CSVOutput, "csv", "", "write results to a csv file"),
		flagSet.BoolVarP(&options.JSON, "json", "j", false, "write results as json lines"),
		flagSet.BoolVar(&options.ARP, "arp", false, "add MAC addresses of reachable hosts from the local ARP table"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable output content coloring (ANSI escape codes)"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "show verbose output"),
		flagSet.BoolVar(&options.Silent, "silent", false, "show only results in output"),
		flagSet.BoolVar(&options.Version, "version", false, "show version of the project"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}

	if options.ConfigFile != "" {
		if !fileutil.FileExists(options.ConfigFile) {
			gologger.Fatal().Msgf("config file %s does not exist\n", options.ConfigFile)
		}
		if err := flagSet.MergeConfigFile(options.ConfigFile); err != nil {
			gologger.Fatal().Msgf("could not read config: %s\n", err)
		}
	}

	// configure aurora for logging
	au = aurora.New(aurora.WithColors(true))

	options.configureOutput()

	showBanner()

	if options.Version {
		gologger.Info().Msgf("Current Version: %s\n", version.String())
		os.Exit(0)
	}

	return options
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	// If the user desires verbose output, show verbose output
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
		au = aurora.New(aurora.WithColors(false))
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}

// ranges returns the ranges selected by the input flags
func (options *Options) ranges() ([]*pingsweep.RangeSpec, error) {
	if options.Auto {
		if options.CIDR != "" || options.Base != "" {
			return nil, &pingsweep.ConfigError{Field: "range", Message: "auto cannot be combined with cidr or base"}
		}
		return pingsweep.LocalRanges()
	}

	spec, err := pingsweep.ParseRangeSpec(options.CIDR, options.Base, options.Start, options.End)
	if err != nil {
		return nil, err
	}
	return []*pingsweep.RangeSpec{spec}, nil
}

// sweepConfig converts the flags into a validated sweep configuration
func (options *Options) sweepConfig() (pingsweep.Config, error) {
	if options.Prescan < 0 || options.Prescan > 100 {
		return pingsweep.Config{}, &pingsweep.ConfigError{Field: "prescan", Message: "prescan must be a percentage between 0 and 100"}
	}

	config := pingsweep.Config{
		Timeout:            time.Duration(options.Timeout) * time.Millisecond,
		Concurrency:        options.Concurrency,
		IncludeUnreachable: options.IncludeUnreachable,
		ShowProgress:       options.ShowProgress && !options.Silent && !options.JSON,
		Executor:           options.Executor,
		Engine:             options.Engine,
		Privileged:         options.Privileged,
		PrescanRatio:       float64(options.Prescan) / 100,
	}
	if err := config.Validate(); err != nil {
		return pingsweep.Config{}, err
	}
	return config, nil
}
