package common

// Environment variable keys
const (
	EnvConfigFile         = "CONFIG_FILE"
	EnvRawPath            = "RAW_PATH"
	EnvProcessedPath      = "PROCESSED_PATH"
	EnvFilteredPath       = "FILTERED_PATH"
	EnvSequencesPath      = "SEQUENCES_PATH"
	EnvMetricsPath        = "METRICS_PATH"
	EnvDataPath           = "DATA_PATH"
	EnvOutputPath         = "OUTPUT_PATH"
	EnvNamespace          = "NAMESPACE"
	EnvFieldA             = "FIELD_INTERACTOR_A"
	EnvFieldB             = "FIELD_INTERACTOR_B"
	EnvFieldLabel         = "FIELD_LABEL"
	EnvSVMC               = "SVM_C"
	EnvSVMGamma           = "SVM_GAMMA"
	EnvSVMTolerance       = "SVM_TOLERANCE"
	EnvSVMMaxIter         = "SVM_MAX_ITER"
	EnvSVMCacheRows       = "SVM_CACHE_ROWS"
	EnvTestFraction       = "TEST_FRACTION"
	EnvSeed               = "SEED"
	EnvFeatureDim         = "FEATURE_DIM"
	EnvUniProtBaseURL     = "UNIPROT_BASE_URL"
	EnvFetchWorkers       = "FETCH_WORKERS"
	EnvFetchRPS           = "FETCH_RPS"
	EnvFetchTimeout       = "FETCH_TIMEOUT"
	EnvFetchRetries       = "FETCH_RETRIES"
	EnvMetricsTextfileDir = "METRICS_TEXTFILE_DIR"
	EnvPairsPath          = "PAIRS_PATH"
	EnvAlignWorkers       = "ALIGN_WORKERS"
)

// Configuration defaults
const (
	DefaultRawPath       = "data/raw/interactions.mitab"
	DefaultProcessedPath = "data/processed/processed.csv"
	DefaultFilteredPath  = "data/processed/filtered.csv"
	DefaultSequencesPath = "data/processed/sequences.json"
	DefaultMetricsPath   = "data/processed/seqmetrics.json"
	DefaultPairsPath     = "data/processed/svm_features.csv"
	DefaultDataPath      = "data/cache"
	DefaultOutputPath    = "reports"
	DefaultNamespace     = "swiss-prot"

	DefaultFieldInteractorA = "Alt IDs Interactor A"
	DefaultFieldInteractorB = "Alt IDs Interactor B"
	DefaultFieldLabel       = "Interaction Types"

	DefaultSVMC         = 20.0
	DefaultSVMGamma     = 0.1
	DefaultSVMTolerance = 1e-3
	DefaultSVMMaxIter   = 10000
	DefaultSVMCacheRows = 512
	DefaultTestFraction = 0.2
	DefaultFeatureDim   = 216

	DefaultUniProtBaseURL = "https://rest.uniprot.org"
	DefaultFetchWorkers   = 8
	DefaultFetchRPS       = 10.0
	DefaultFetchRetries   = 3

	DefaultAlignWorkers = 4
)
