package cfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"ppi-predict/internal/common"
	"ppi-predict/internal/interactions"
	"ppi-predict/internal/svm"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Settings struct {
	RawPath       string
	ProcessedPath string
	FilteredPath  string
	SequencesPath string
	MetricsPath   string
	PairsPath     string
	DataPath      string
	OutputPath    string

	Namespace string
	Columns   interactions.Fields

	SVM          svm.Params
	TestFraction float64
	Seed         uint64
	FeatureDim   int

	UniProtBaseURL string
	FetchWorkers   int
	FetchRPS       float64
	FetchTimeout   time.Duration
	FetchRetries   int

	AlignWorkers int

	MetricsTextfileDir string
}

type ConfigFile struct {
	Paths struct {
		Raw       string `yaml:"raw"`
		Processed string `yaml:"processed"`
		Filtered  string `yaml:"filtered"`
		Sequences string `yaml:"sequences"`
		Metrics   string `yaml:"metrics"`
		Pairs     string `yaml:"pairs"`
		Data      string `yaml:"data"`
		Output    string `yaml:"output"`
	} `yaml:"paths"`

	Extract struct {
		Namespace string              `yaml:"namespace"`
		Columns   interactions.Fields `yaml:"columns"`
	} `yaml:"extract"`

	Model struct {
		C            float64 `yaml:"c"`
		Gamma        float64 `yaml:"gamma"`
		Tolerance    float64 `yaml:"tolerance"`
		MaxIter      int     `yaml:"maxIter"`
		CacheRows    int     `yaml:"cacheRows"`
		TestFraction float64 `yaml:"testFraction"`
		Seed         uint64  `yaml:"seed"`
		FeatureDim   int     `yaml:"featureDim"`
	} `yaml:"model"`

	Fetch struct {
		BaseURL string  `yaml:"baseURL"`
		Workers int     `yaml:"workers"`
		RPS     float64 `yaml:"rps"`
		Timeout string  `yaml:"timeout"`
		Retries int     `yaml:"retries"`
	} `yaml:"fetch"`

	Align struct {
		Workers int `yaml:"workers"`
	} `yaml:"align"`

	System struct {
		MetricsTextfileDir string `yaml:"metricsTextfileDir"`
	} `yaml:"system"`
}

func Load() (Settings, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("failed to load .env: %w", err)
	}

	// Try to load from YAML file first
	if configPath := os.Getenv(common.EnvConfigFile); configPath != "" {
		return loadFromYAML(configPath)
	}

	// Fallback to environment variables
	return loadFromEnv()
}

func loadFromYAML(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	fetchTimeout, err := time.ParseDuration(config.Fetch.Timeout)
	if err != nil {
		fetchTimeout = 30 * time.Second
	}

	params := svm.DefaultParams()
	params.C = getFloatFromEnvOrConfig(common.EnvSVMC, config.Model.C, common.DefaultSVMC)
	params.Gamma = getFloatFromEnvOrConfig(common.EnvSVMGamma, config.Model.Gamma, common.DefaultSVMGamma)
	params.Tolerance = getFloatFromEnvOrConfig(common.EnvSVMTolerance, config.Model.Tolerance, common.DefaultSVMTolerance)
	params.MaxIter = getIntFromEnvOrConfig(common.EnvSVMMaxIter, config.Model.MaxIter, common.DefaultSVMMaxIter)
	params.CacheRows = getIntFromEnvOrConfig(common.EnvSVMCacheRows, config.Model.CacheRows, common.DefaultSVMCacheRows)

	// Override with environment variables if they exist
	settings := Settings{
		RawPath:       getEnvOrDefault(common.EnvRawPath, orDefault(config.Paths.Raw, common.DefaultRawPath)),
		ProcessedPath: getEnvOrDefault(common.EnvProcessedPath, orDefault(config.Paths.Processed, common.DefaultProcessedPath)),
		FilteredPath:  getEnvOrDefault(common.EnvFilteredPath, orDefault(config.Paths.Filtered, common.DefaultFilteredPath)),
		SequencesPath: getEnvOrDefault(common.EnvSequencesPath, orDefault(config.Paths.Sequences, common.DefaultSequencesPath)),
		MetricsPath:   getEnvOrDefault(common.EnvMetricsPath, orDefault(config.Paths.Metrics, common.DefaultMetricsPath)),
		PairsPath:     getEnvOrDefault(common.EnvPairsPath, orDefault(config.Paths.Pairs, common.DefaultPairsPath)),
		DataPath:      getEnvOrDefault(common.EnvDataPath, config.Paths.Data),
		OutputPath:    getEnvOrDefault(common.EnvOutputPath, orDefault(config.Paths.Output, common.DefaultOutputPath)),
		Namespace:     getEnvOrDefault(common.EnvNamespace, orDefault(config.Extract.Namespace, common.DefaultNamespace)),
		Columns: interactions.Fields{
			InteractorA: getEnvOrDefault(common.EnvFieldA, orDefault(config.Extract.Columns.InteractorA, common.DefaultFieldInteractorA)),
			InteractorB: getEnvOrDefault(common.EnvFieldB, orDefault(config.Extract.Columns.InteractorB, common.DefaultFieldInteractorB)),
			Label:       getEnvOrDefault(common.EnvFieldLabel, orDefault(config.Extract.Columns.Label, common.DefaultFieldLabel)),
		},
		SVM:                params,
		TestFraction:       getFloatFromEnvOrConfig(common.EnvTestFraction, config.Model.TestFraction, common.DefaultTestFraction),
		Seed:               getUintFromEnvOrConfig(common.EnvSeed, config.Model.Seed),
		FeatureDim:         getIntFromEnvOrConfig(common.EnvFeatureDim, config.Model.FeatureDim, common.DefaultFeatureDim),
		UniProtBaseURL:     getEnvOrDefault(common.EnvUniProtBaseURL, orDefault(config.Fetch.BaseURL, common.DefaultUniProtBaseURL)),
		FetchWorkers:       getIntFromEnvOrConfig(common.EnvFetchWorkers, config.Fetch.Workers, common.DefaultFetchWorkers),
		FetchRPS:           getFloatFromEnvOrConfig(common.EnvFetchRPS, config.Fetch.RPS, common.DefaultFetchRPS),
		FetchTimeout:       getDurationOrDefault(common.EnvFetchTimeout, fetchTimeout),
		FetchRetries:       getIntFromEnvOrConfig(common.EnvFetchRetries, config.Fetch.Retries, common.DefaultFetchRetries),
		AlignWorkers:       getIntFromEnvOrConfig(common.EnvAlignWorkers, config.Align.Workers, common.DefaultAlignWorkers),
		MetricsTextfileDir: getEnvOrDefault(common.EnvMetricsTextfileDir, config.System.MetricsTextfileDir),
	}
	settings.SVM.Seed = settings.Seed

	// Validate configuration
	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

func loadFromEnv() (Settings, error) {
	params := svm.DefaultParams()
	params.C = getFloatOrDefault(common.EnvSVMC, common.DefaultSVMC)
	params.Gamma = getFloatOrDefault(common.EnvSVMGamma, common.DefaultSVMGamma)
	params.Tolerance = getFloatOrDefault(common.EnvSVMTolerance, common.DefaultSVMTolerance)
	params.MaxIter = getIntOrDefault(common.EnvSVMMaxIter, common.DefaultSVMMaxIter)
	params.CacheRows = getIntOrDefault(common.EnvSVMCacheRows, common.DefaultSVMCacheRows)

	settings := Settings{
		RawPath:       getEnvOrDefault(common.EnvRawPath, common.DefaultRawPath),
		ProcessedPath: getEnvOrDefault(common.EnvProcessedPath, common.DefaultProcessedPath),
		FilteredPath:  getEnvOrDefault(common.EnvFilteredPath, common.DefaultFilteredPath),
		SequencesPath: getEnvOrDefault(common.EnvSequencesPath, common.DefaultSequencesPath),
		MetricsPath:   getEnvOrDefault(common.EnvMetricsPath, common.DefaultMetricsPath),
		PairsPath:     getEnvOrDefault(common.EnvPairsPath, common.DefaultPairsPath),
		DataPath:      os.Getenv(common.EnvDataPath), // optional
		OutputPath:    getEnvOrDefault(common.EnvOutputPath, common.DefaultOutputPath),
		Namespace:     getEnvOrDefault(common.EnvNamespace, common.DefaultNamespace),
		Columns: interactions.Fields{
			InteractorA: getEnvOrDefault(common.EnvFieldA, common.DefaultFieldInteractorA),
			InteractorB: getEnvOrDefault(common.EnvFieldB, common.DefaultFieldInteractorB),
			Label:       getEnvOrDefault(common.EnvFieldLabel, common.DefaultFieldLabel),
		},
		SVM:                params,
		TestFraction:       getFloatOrDefault(common.EnvTestFraction, common.DefaultTestFraction),
		Seed:               getUintOrDefault(common.EnvSeed, 0),
		FeatureDim:         getIntOrDefault(common.EnvFeatureDim, common.DefaultFeatureDim),
		UniProtBaseURL:     getEnvOrDefault(common.EnvUniProtBaseURL, common.DefaultUniProtBaseURL),
		FetchWorkers:       getIntOrDefault(common.EnvFetchWorkers, common.DefaultFetchWorkers),
		FetchRPS:           getFloatOrDefault(common.EnvFetchRPS, common.DefaultFetchRPS),
		FetchTimeout:       getDurationOrDefault(common.EnvFetchTimeout, 30*time.Second),
		FetchRetries:       getIntOrDefault(common.EnvFetchRetries, common.DefaultFetchRetries),
		AlignWorkers:       getIntOrDefault(common.EnvAlignWorkers, common.DefaultAlignWorkers),
		MetricsTextfileDir: os.Getenv(common.EnvMetricsTextfileDir), // optional
	}
	settings.SVM.Seed = settings.Seed

	// Validate configuration
	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getUintOrDefault(key string, defaultValue uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			return u
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getIntFromEnvOrConfig(key string, configValue, defaultValue int) int {
	if env := os.Getenv(key); env != "" {
		if val, err := strconv.Atoi(env); err == nil {
			return val
		}
	}
	if configValue != 0 {
		return configValue
	}
	return defaultValue
}

func getUintFromEnvOrConfig(key string, configValue uint64) uint64 {
	return getUintOrDefault(key, configValue)
}

func getFloatFromEnvOrConfig(key string, configValue, defaultValue float64) float64 {
	if env := os.Getenv(key); env != "" {
		if val, err := strconv.ParseFloat(env, 64); err == nil {
			return val
		}
	}
	if configValue != 0 {
		return configValue
	}
	return defaultValue
}

// validateSettings performs range checks on configuration values
func validateSettings(settings *Settings) error {
	// Validate paths
	if settings.RawPath == "" || settings.ProcessedPath == "" || settings.FilteredPath == "" {
		return fmt.Errorf("raw, processed and filtered paths cannot be empty")
	}
	if settings.SequencesPath == "" || settings.MetricsPath == "" {
		return fmt.Errorf("sequence and metrics index paths cannot be empty")
	}
	if settings.PairsPath == "" {
		return fmt.Errorf("pairs path cannot be empty")
	}
	if settings.OutputPath == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	// Validate extraction
	if settings.Namespace == "" {
		return fmt.Errorf("identifier namespace cannot be empty")
	}
	if settings.Columns.InteractorA == "" || settings.Columns.InteractorB == "" || settings.Columns.Label == "" {
		return fmt.Errorf("interactor and label column names are required")
	}

	// Validate model parameters
	if settings.SVM.C <= 0 || settings.SVM.C > 1e6 {
		return fmt.Errorf("SVM C must be between 0 and 1e6, got %f", settings.SVM.C)
	}
	if settings.SVM.Gamma <= 0 || settings.SVM.Gamma > 1e3 {
		return fmt.Errorf("SVM gamma must be between 0 and 1000, got %f", settings.SVM.Gamma)
	}
	if settings.SVM.Tolerance <= 0 || settings.SVM.Tolerance > 1 {
		return fmt.Errorf("SVM tolerance must be between 0 and 1, got %f", settings.SVM.Tolerance)
	}
	if settings.SVM.MaxIter < 0 {
		return fmt.Errorf("SVM max iterations cannot be negative, got %d", settings.SVM.MaxIter)
	}
	if settings.SVM.CacheRows <= 0 || settings.SVM.CacheRows > 1<<20 {
		return fmt.Errorf("SVM cache rows must be between 1 and %d, got %d", 1<<20, settings.SVM.CacheRows)
	}
	if settings.TestFraction <= 0 || settings.TestFraction >= 1 {
		return fmt.Errorf("test fraction must be between 0 and 1 (exclusive), got %f", settings.TestFraction)
	}
	if settings.FeatureDim < 0 {
		return fmt.Errorf("feature dimension cannot be negative, got %d", settings.FeatureDim)
	}

	// Validate fetcher
	if settings.UniProtBaseURL == "" {
		return fmt.Errorf("UniProt base URL cannot be empty")
	}
	if settings.FetchWorkers <= 0 || settings.FetchWorkers > 64 {
		return fmt.Errorf("fetch workers must be between 1 and 64, got %d", settings.FetchWorkers)
	}
	if settings.FetchRPS <= 0 || settings.FetchRPS > 200 {
		return fmt.Errorf("fetch rate must be between 0 and 200 requests/s, got %f", settings.FetchRPS)
	}
	if settings.FetchTimeout < time.Second || settings.FetchTimeout > 5*time.Minute {
		return fmt.Errorf("fetch timeout must be between 1s and 5m, got %v", settings.FetchTimeout)
	}
	if settings.FetchRetries < 0 || settings.FetchRetries > 10 {
		return fmt.Errorf("fetch retries must be between 0 and 10, got %d", settings.FetchRetries)
	}

	// Validate alignment
	if settings.AlignWorkers <= 0 || settings.AlignWorkers > 256 {
		return fmt.Errorf("align workers must be between 1 and 256, got %d", settings.AlignWorkers)
	}

	return nil
}
