package options

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mason-leap-lab/go-utils/config"
	"github.com/mason-leap-lab/go-utils/logger"

	"github.com/mason-leap-lab/gmbcplot/common/results"
)

const (
	DefaultMovingAverageWindow = 150
	DefaultEpisodes            = 1000
	DefaultRandAgent           = 579
	DefaultNoRandAgent         = 569
	DefaultVanillaLimit        = 1000
	DefaultBins                = 30
)

var (
	log = &logger.ColorLogger{Color: true, Level: logger.LOG_LEVEL_INFO}

	ErrInvalidOption = errors.New("invalid option")
)

// Options Options definition
type Options struct {
	config.LoggerOptions

	Episodes            int64  `name:"nep" description:"Number of episodes to plot survival data for."`
	MovingAverageWindow int64  `name:"maw" description:"Moving average window for training curves."`
	TrainingData        bool   `name:"tr" description:"Plot training curves instead of survival curves."`
	TotalReward         bool   `name:"tot" description:"Show total reward instead of reward per timestep."`
	RandAgent           int64  `name:"ar" description:"Randomized agent number to load."`
	NoRandAgent         int64  `name:"anor" description:"Non-randomized agent number to load."`
	Raw                 bool   `name:"raw" description:"Plot raw data in addition to moving averaged data."`
	Seed                int64  `name:"s" description:"Seed of the training run."`
	Results             string `name:"results" description:"Directory of result files, overridden by the positional argument."`
	Output              string `name:"o" description:"Directory of rendered plots. Defaults to the results directory."`
	Ext                 string `name:"ext" description:"Plot format: png, svg."`
	Bins                int64  `name:"bins" description:"Number of histogram bins of survival plots."`
	VanillaLimit        int64  `name:"vanilla-limit" description:"Rows of vanilla survival data to keep, 0 to keep all."`
	ProfileFile         string `name:"profile" description:"YAML file overriding result file names and labels."`
	CacheDir            string `name:"cache" description:"Directory to cache decoded result files."`
	RecordFile          string `name:"record" description:"Nanolog file to record series statistics."`
	InflateFile         string `name:"inflate" description:"Print a record file as CSV and exit."`
	Show                bool   `name:"show" description:"Preview plots in the terminal."`
	NoColor             bool   `name:"no-color" description:"Print the summary without colors."`
	S3Bucket            string `name:"s3-bucket" description:"S3 bucket to fetch missing result files from."`
	S3Prefix            string `name:"s3-prefix" description:"Key prefix of result files in the S3 bucket."`
	S3Region            string `name:"s3-region" description:"AWS region of the S3 bucket."`
	S3Timeout           string `name:"s3-timeout" description:"Timeout of each S3 transfer, e.g. 1m."`
	Upload              bool   `name:"upload" description:"Upload rendered plots to the S3 bucket."`

	Profile results.Profile
	Timeout time.Duration
}

// NewOptions returns options with defaults assigned.
func NewOptions() *Options {
	return &Options{
		Episodes:            DefaultEpisodes,
		MovingAverageWindow: DefaultMovingAverageWindow,
		RandAgent:           DefaultRandAgent,
		NoRandAgent:         DefaultNoRandAgent,
		Results:             "results",
		Ext:                 "png",
		Bins:                DefaultBins,
		VanillaLimit:        DefaultVanillaLimit,
		S3Timeout:           "1m",
		Profile:             results.DefaultProfile(),
	}
}

// Validate validates options
func (opts *Options) Validate() error {
	if opts.MovingAverageWindow <= 0 {
		return fmt.Errorf("%w: moving average window must be positive, got %d", ErrInvalidOption, opts.MovingAverageWindow)
	}
	if opts.Episodes <= 0 {
		return fmt.Errorf("%w: number of episodes must be positive, got %d", ErrInvalidOption, opts.Episodes)
	}
	if opts.Bins <= 0 {
		return fmt.Errorf("%w: histogram bins must be positive, got %d", ErrInvalidOption, opts.Bins)
	}
	if opts.VanillaLimit < 0 {
		return fmt.Errorf("%w: vanilla limit must not be negative, got %d", ErrInvalidOption, opts.VanillaLimit)
	}

	opts.Ext = strings.TrimPrefix(strings.ToLower(opts.Ext), ".")
	switch opts.Ext {
	case "png", "svg":
	default:
		return fmt.Errorf("%w: unsupported plot format %q", ErrInvalidOption, opts.Ext)
	}

	if opts.Upload && opts.S3Bucket == "" {
		return fmt.Errorf("%w: -upload requires -s3-bucket", ErrInvalidOption)
	}
	timeout, err := time.ParseDuration(opts.S3Timeout)
	if err != nil || timeout <= 0 {
		return fmt.Errorf("%w: invalid s3 timeout %q", ErrInvalidOption, opts.S3Timeout)
	}
	opts.Timeout = timeout

	if opts.ProfileFile != "" {
		profile, err := results.LoadProfile(opts.ProfileFile)
		if err != nil {
			return err
		}
		opts.Profile = profile
		log.Info("Will name result files as profiled in %s", opts.ProfileFile)
	}
	return nil
}

// OutputDir returns the directory of rendered plots.
func (opts *Options) OutputDir() string {
	if opts.Output != "" {
		return opts.Output
	}
	return opts.Results
}

// Mode names the renderer selected by the options.
func (opts *Options) Mode() string {
	if opts.TrainingData {
		return "training"
	}
	return "survival"
}

// Locator resolves result files under the results directory.
func (opts *Options) Locator() *results.Locator {
	return results.NewLocator(filepath.Clean(opts.Results), opts.Profile)
}
