// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config assembles the application configuration once at startup.
//
// Sources, lowest precedence first: built-in variant defaults, the YAML
// config file and RESEARCH_AGENT_* variables (viper), the .secrets/
// directory, a .env file, the process environment (EMAIL,
// HUGGINGFACEHUB_API_TOKEN, NCBI_API_KEY), and finally command-line flags.
// Missing credentials are not an error here; they surface at first use.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-agent/internal/secrets"
	"github.com/pdiddy/research-agent/pkg/types"
)

const (
	// ConfigName is the config file base name searched in . and
	// ~/.config/research-agent/.
	ConfigName = "research-agent"

	// EnvPrefix prefixes viper-managed environment overrides.
	EnvPrefix = "RESEARCH_AGENT"

	DefaultSecretsDir = ".secrets/"
	DefaultDotEnv     = ".env"
)

// Credentials are the plain environment variables holding secrets.
type Credentials struct {
	Email      string `env:"EMAIL"`
	HFToken    string `env:"HUGGINGFACEHUB_API_TOKEN"`
	HFTokenAlt string `env:"HF_TOKEN"`
	NCBIAPIKey string `env:"NCBI_API_KEY"`
}

// Options tells Load where to look.
type Options struct {
	Variant types.Variant

	// ConfigFile is an explicit config path; empty searches the defaults.
	ConfigFile string

	// SecretsDir and DotEnv default to .secrets/ and .env. Set them to "-"
	// to skip the source.
	SecretsDir string
	DotEnv     string

	// Flags holds command-line overrides. Only flags marked Changed apply.
	Flags *pflag.FlagSet
}

// Result is the loaded configuration plus provenance for logging.
type Result struct {
	Config types.AppConfig

	// ConfigFile is the config file used, or "".
	ConfigFile string

	// Secrets lists the .secrets/ key names that were found.
	Secrets []string
}

// Load builds the configuration for opts.Variant.
func Load(opts Options) (Result, error) {
	var res Result
	cfg := Defaults(opts.Variant)

	v := viper.New()
	setDefaults(v.SetDefault, cfg)
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", ConfigName))
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return res, fmt.Errorf("reading config: %w", err)
		}
	} else {
		res.ConfigFile = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return res, fmt.Errorf("decoding config: %w", err)
	}
	// The subcommand picks the variant; a config file cannot switch it.
	cfg.Agent.Variant = Defaults(opts.Variant).Agent.Variant

	secretsDir := opts.SecretsDir
	if secretsDir == "" {
		secretsDir = DefaultSecretsDir
	}
	if secretsDir != "-" {
		s, err := secrets.Load(secretsDir)
		if err != nil {
			return res, err
		}
		res.Secrets = secrets.Names(s)
		applyIfSet(&cfg.Model.APIKey, s[secrets.HFToken])
		applyIfSet(&cfg.PubMed.Email, s[secrets.PubMedEmail])
		applyIfSet(&cfg.PubMed.APIKey, s[secrets.NCBIAPIKey])
	}

	dotEnv := opts.DotEnv
	if dotEnv == "" {
		dotEnv = DefaultDotEnv
	}
	if dotEnv != "-" {
		// godotenv never overrides variables already present in the environment.
		if err := godotenv.Load(dotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return res, fmt.Errorf("loading %s: %w", dotEnv, err)
		}
	}

	creds, err := env.ParseAs[Credentials]()
	if err != nil {
		return res, fmt.Errorf("reading environment: %w", err)
	}
	applyIfSet(&cfg.Model.APIKey, creds.HFTokenAlt)
	applyIfSet(&cfg.Model.APIKey, creds.HFToken)
	applyIfSet(&cfg.PubMed.Email, creds.Email)
	applyIfSet(&cfg.PubMed.APIKey, creds.NCBIAPIKey)

	if err := applyFlags(&cfg, opts.Flags); err != nil {
		return res, err
	}

	if err := Validate(cfg); err != nil {
		return res, err
	}
	res.Config = cfg
	return res, nil
}

func applyIfSet(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}

// applyFlags copies changed flags into cfg. Flags a command does not define
// are ignored.
func applyFlags(cfg *types.AppConfig, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "model":
			cfg.Model.ModelID, err = flags.GetString(f.Name)
		case "base-url":
			cfg.Model.BaseURL, err = flags.GetString(f.Name)
		case "max-tokens":
			cfg.Model.MaxOutputTokens, err = flags.GetInt(f.Name)
		case "temperature":
			cfg.Model.Temperature, err = flags.GetFloat32(f.Name)
		case "max-iterations":
			cfg.Model.MaxIterations, err = flags.GetInt(f.Name)
		case "timeout":
			var d time.Duration
			if d, err = flags.GetDuration(f.Name); err == nil {
				cfg.Model.Timeout = d
				cfg.PubMed.Timeout = d
				cfg.Web.Timeout = d
			}
		case "max-results":
			var n int
			if n, err = flags.GetInt(f.Name); err == nil {
				cfg.PubMed.MaxResults = n
				cfg.Web.MaxResults = n
			}
		case "listing-size":
			cfg.UI.ListingSize, err = flags.GetInt(f.Name)
		case "email":
			cfg.PubMed.Email, err = flags.GetString(f.Name)
		case "abstracts":
			cfg.PubMed.IncludeAbstracts, err = flags.GetBool(f.Name)
		case "region":
			cfg.Web.Region, err = flags.GetString(f.Name)
		case "show-tool-calls":
			cfg.UI.ShowToolCalls, err = flags.GetBool(f.Name)
		case "log-level":
			cfg.UI.LogLevel, err = flags.GetString(f.Name)
		case "log-file":
			cfg.UI.LogFile, err = flags.GetString(f.Name)
		}
		if err != nil {
			err = fmt.Errorf("flag --%s: %w", f.Name, err)
		}
	})
	return err
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural constraints. Credentials are not required.
func Validate(cfg types.AppConfig) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
