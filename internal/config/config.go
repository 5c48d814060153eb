package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds every knob the analyzer recognizes. All fields have working
// defaults so the binary runs inside an Atlantis container with nothing but
// AWS credentials in the environment.
type Config struct {
	Region              string `mapstructure:"region"`
	ModelID             string `mapstructure:"model_id"`
	InferenceProfileARN string `mapstructure:"inference_profile_arn"`
	InferenceProfileID  string `mapstructure:"inference_profile_id"`

	// Pull-request context injected by the host tool.
	RepoOwner   string `mapstructure:"repo_owner"`
	RepoName    string `mapstructure:"repo_name"`
	PullNum     string `mapstructure:"pull_num"`
	ProjectName string `mapstructure:"project_name"`
	Workspace   string `mapstructure:"workspace"`
	BaseBranch  string `mapstructure:"base_branch"`
	PlanFile    string `mapstructure:"plan_file"`

	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
	MaxPlanBytes int           `mapstructure:"max_plan_bytes"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	DBPath       string        `mapstructure:"db_path"`
	PromptDir    string        `mapstructure:"prompt_dir"`
	Redact       bool          `mapstructure:"redact"`
	TerraformBin string        `mapstructure:"terraform_bin"`
}

func Defaults() Config {
	return Config{
		Region:       "us-east-1",
		ModelID:      "anthropic.claude-sonnet-4-20250514-v1:0",
		RepoOwner:    "unknown",
		RepoName:     "unknown",
		PullNum:      "unknown",
		ProjectName:  "unknown",
		Workspace:    "default",
		BaseBranch:   "main",
		Timeout:      60 * time.Second,
		MaxRetries:   3,
		MaxPlanBytes: 120000,
		MaxTokens:    1500,
		Redact:       true,
		TerraformBin: "terraform",
	}
}

// envKeys maps viper keys to the environment variables that may set them.
// The AWS and Atlantis names match what the host container already exports;
// TFRISK_* names cover the tool's own knobs.
var envKeys = map[string][]string{
	"region":                {"AWS_REGION"},
	"model_id":              {"BEDROCK_MODEL_ID"},
	"inference_profile_arn": {"BEDROCK_INFERENCE_PROFILE_ARN"},
	"inference_profile_id":  {"BEDROCK_INFERENCE_PROFILE_ID"},
	"repo_owner":            {"BASE_REPO_OWNER"},
	"repo_name":             {"BASE_REPO_NAME"},
	"pull_num":              {"PULL_NUM"},
	"project_name":          {"PROJECT_NAME"},
	"workspace":             {"WORKSPACE"},
	"base_branch":           {"BASE_BRANCH"},
	"plan_file":             {"PLANFILE"},
	"timeout":               {"TFRISK_TIMEOUT"},
	"max_retries":           {"TFRISK_MAX_RETRIES"},
	"max_plan_bytes":        {"TFRISK_MAX_PLAN_BYTES"},
	"max_tokens":            {"TFRISK_MAX_TOKENS"},
	"db_path":               {"TFRISK_DB_PATH"},
	"prompt_dir":            {"TFRISK_PROMPT_DIR"},
	"redact":                {"TFRISK_REDACT"},
	"terraform_bin":         {"TFRISK_TERRAFORM_BIN"},
}

// Load merges defaults, an optional YAML config file, and environment
// variables, in increasing precedence.
func Load(configPath string) (Config, error) {
	defaults := Defaults()

	v := viper.New()
	v.SetDefault("region", defaults.Region)
	v.SetDefault("model_id", defaults.ModelID)
	v.SetDefault("repo_owner", defaults.RepoOwner)
	v.SetDefault("repo_name", defaults.RepoName)
	v.SetDefault("pull_num", defaults.PullNum)
	v.SetDefault("project_name", defaults.ProjectName)
	v.SetDefault("workspace", defaults.Workspace)
	v.SetDefault("base_branch", defaults.BaseBranch)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("max_retries", defaults.MaxRetries)
	v.SetDefault("max_plan_bytes", defaults.MaxPlanBytes)
	v.SetDefault("max_tokens", defaults.MaxTokens)
	v.SetDefault("redact", defaults.Redact)
	v.SetDefault("terraform_bin", defaults.TerraformBin)
	v.SetDefault("inference_profile_arn", "")
	v.SetDefault("inference_profile_id", "")
	v.SetDefault("plan_file", "")
	v.SetDefault("db_path", "")
	v.SetDefault("prompt_dir", "")

	for key, envs := range envKeys {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return Config{}, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	path := configPath
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".tfrisk", "config.yaml")
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to load config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaults.MaxRetries
	}
	if cfg.MaxPlanBytes <= 0 {
		cfg.MaxPlanBytes = defaults.MaxPlanBytes
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaults.MaxTokens
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(os.Getenv("HOME"), ".tfrisk", "tfrisk.db")
	}

	return cfg, nil
}

// TargetModelID returns the model identifier the inference call should use.
// An inference profile, when configured, takes precedence over the plain
// model id.
func (c Config) TargetModelID() string {
	if c.InferenceProfileARN != "" {
		return c.InferenceProfileARN
	}
	if c.InferenceProfileID != "" {
		return c.InferenceProfileID
	}
	return c.ModelID
}
