package runner

import (
	"errors"
	"testing"
	"time"

	"github.com/projectdiscovery/pdping/pkg/peerdiscovery/pingsweep"
)

func validOptions() *Options {
	return &Options{
		Base:        "192.168.1",
		Start:       1,
		End:         255,
		Timeout:     500,
		Concurrency: 64,
		Executor:    pingsweep.ExecutorAuto,
		Engine:      pingsweep.EngineICMP,
	}
}

func TestSweepConfig(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Options)
		field   string
		wantErr bool
	}{
		{name: "defaults", modify: func(*Options) {}},
		{name: "zero timeout", modify: func(o *Options) { o.Timeout = 0 }, field: "timeout", wantErr: true},
		{name: "zero concurrency", modify: func(o *Options) { o.Concurrency = 0 }, field: "concurrency", wantErr: true},
		{name: "prescan above 100", modify: func(o *Options) { o.Prescan = 150 }, field: "prescan", wantErr: true},
		{name: "unknown executor", modify: func(o *Options) { o.Executor = "vm" }, field: "executor", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := validOptions()
			tt.modify(options)

			_, err := options.sweepConfig()
			if (err != nil) != tt.wantErr {
				t.Fatalf("sweepConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var configErr *pingsweep.ConfigError
			if !errors.As(err, &configErr) || configErr.Field != tt.field {
				t.Errorf("sweepConfig() error = %v, want config error on %s", err, tt.field)
			}
		})
	}
}

func TestSweepConfigValues(t *testing.T) {
	options := validOptions()
	options.Timeout = 750
	options.Prescan = 25
	options.ShowProgress = true
	options.JSON = true

	config, err := options.sweepConfig()
	if err != nil {
		t.Fatalf("sweepConfig() error = %v", err)
	}
	if config.Timeout != 750*time.Millisecond {
		t.Errorf("Timeout = %s, want 750ms", config.Timeout)
	}
	if config.PrescanRatio != 0.25 {
		t.Errorf("PrescanRatio = %v, want 0.25", config.PrescanRatio)
	}
	if config.ShowProgress {
		t.Error("ShowProgress = true, want false with json output")
	}
}

func TestRanges(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Options)
		want    string
		wantErr bool
	}{
		{name: "base", modify: func(*Options) {}, want: "192.168.1.1-255"},
		{name: "cidr", modify: func(o *Options) { o.Base = ""; o.CIDR = "10.0.0.0/28" }, want: "10.0.0.0/28"},
		{name: "cidr and base", modify: func(o *Options) { o.CIDR = "10.0.0.0/28" }, wantErr: true},
		{name: "auto and base", modify: func(o *Options) { o.Auto = true }, wantErr: true},
		{name: "nothing", modify: func(o *Options) { o.Base = "" }, wantErr: true},
		{name: "bad end", modify: func(o *Options) { o.End = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := validOptions()
			tt.modify(options)

			ranges, err := options.ranges()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ranges() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, pingsweep.ErrConfiguration) {
					t.Errorf("ranges() error = %v, want a configuration error", err)
				}
				return
			}
			if len(ranges) != 1 || ranges[0].String() != tt.want {
				t.Errorf("ranges() = %v, want [%s]", ranges, tt.want)
			}
		})
	}
}
