package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds one invocation's settings after merging flags, environment
// variables and the optional config file, in that order of precedence.
type Config struct {
	InputPath        string `validate:"required"`
	OutputDir        string
	NoComments       bool
	NoFunctionBodies bool
	NoStats          bool
	DryRun           bool
	SingleFile       bool
	Quiet            bool
	Verbose          bool
	ConfigPath       string
}

const envPrefix = "CODE_CONTEXT_"

// applyEnv fills settings that flags left at their defaults from the
// environment. A .env file in the working directory is honored.
func applyEnv(config *Config) {
	_ = godotenv.Load()

	if config.OutputDir == "" {
		config.OutputDir = os.Getenv(envPrefix + "OUTPUT_DIR")
	}
	if config.ConfigPath == "" {
		config.ConfigPath = os.Getenv(envPrefix + "CONFIG")
	}
	if !config.NoComments {
		config.NoComments = envBool("NO_COMMENTS")
	}
	if !config.NoFunctionBodies {
		config.NoFunctionBodies = envBool("NO_FUNCTION_BODIES")
	}
	if !config.NoStats {
		config.NoStats = envBool("NO_STATS")
	}
	if !config.SingleFile {
		config.SingleFile = envBool("SINGLE_FILE")
	}
}

func envBool(name string) bool {
	v, err := strconv.ParseBool(os.Getenv(envPrefix + name))
	return err == nil && v
}

func loadConfigFile(config *Config) error {
	if config.ConfigPath == "" {
		return nil
	}

	data, err := os.ReadFile(filepath.Clean(config.ConfigPath))
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var cfg struct {
		OutputDir        string `yaml:"output_dir"`
		NoComments       bool   `yaml:"no_comments"`
		NoFunctionBodies bool   `yaml:"no_function_bodies"`
		NoStats          bool   `yaml:"no_stats"`
		SingleFile       bool   `yaml:"single_file"`
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	// Apply config values if flags and environment didn't set them
	if config.OutputDir == "" {
		config.OutputDir = cfg.OutputDir
	}
	if !config.NoComments {
		config.NoComments = cfg.NoComments
	}
	if !config.NoFunctionBodies {
		config.NoFunctionBodies = cfg.NoFunctionBodies
	}
	if !config.NoStats {
		config.NoStats = cfg.NoStats
	}
	if !config.SingleFile {
		config.SingleFile = cfg.SingleFile
	}

	return nil
}

var validate = validator.New()

func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid configuration: %s failed on %s", verrs[0].Field(), verrs[0].Tag())
		}
		return err
	}
	abs, err := filepath.Abs(config.InputPath)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	if filepath.Dir(abs) == abs {
		return errors.New("input path must not be the filesystem root")
	}
	return nil
}
