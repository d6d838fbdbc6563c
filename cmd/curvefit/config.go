package main

import (
	"fmt"
	"strings"

	"github.com/aouyang1/go-curvefit"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "CURVEFIT"

// Config holds the dataset to fit and how to report the fit. Values are read from an optional
// YAML, JSON or TOML file and can be overridden by CURVEFIT_ prefixed environment variables,
// e.g. CURVEFIT_DEGREE=3 or CURVEFIT_X="1,2,3".
type Config struct {
	Model      string    `mapstructure:"model" validate:"required,oneof=polynomial exponential"`
	Degree     int       `mapstructure:"degree" validate:"gte=0"`
	X          []float64 `mapstructure:"x" validate:"required,min=1"`
	Y          []float64 `mapstructure:"y" validate:"required,min=1"`
	PredictX   []float64 `mapstructure:"predict_x"`
	Plot       string    `mapstructure:"plot"`
	PlotPoints int       `mapstructure:"plot_points" validate:"gt=0"`
	LogLevel   string    `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// Options converts the config into fitter options
func (c *Config) Options() *curvefit.Options {
	return &curvefit.Options{
		Model:          curvefit.ModelKind(c.Model),
		Degree:         c.Degree,
		PlotPoints:     c.PlotPoints,
		OutlierOptions: curvefit.NewDefaultOutlierOptions(),
	}
}

func loadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("model", string(curvefit.ModelPolynomial))
	v.SetDefault("degree", 1)
	v.SetDefault("plot", "")
	v.SetDefault("plot_points", curvefit.DefaultPlotPoints)
	v.SetDefault("log_level", "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file %s, %w", path, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// sample keys have no defaults so they are bound explicitly to be picked up from the environment
	for _, key := range []string{"x", "y", "predict_x"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("unable to bind environment variable for %s, %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal configuration, %w", err)
	}
	cfg.Model = strings.ToLower(cfg.Model)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	return &cfg, nil
}

// validate checks the config. The dataset fields are skipped when only serving since requests
// carry their own samples.
func (c *Config) validate(serving bool) error {
	validate := validator.New()

	var err error
	if serving {
		err = validate.StructExcept(c, "X", "Y")
	} else {
		err = validate.Struct(c)
	}
	if err != nil {
		return fmt.Errorf("invalid configuration, %w", err)
	}
	return nil
}
