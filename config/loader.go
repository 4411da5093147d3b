package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/resolver/util"
)

// envPrefix scopes environment variable binding so the library never picks
// up unrelated variables from the host process.
const envPrefix = "RESOLVER_"

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	Getwd() (string, error)
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

func (rfs *RealFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

// Locator finds settings and env files in standard locations.
type Locator struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the located settings and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// Locate returns explicit paths if provided, otherwise searches standard
// locations for resolver.yml and .env files.
func (l *Locator) Locate(opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}

	if resolved.ConfigFile == "" {
		resolved.ConfigFile = l.findConfigFile()
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = l.findEnvFile()
	}

	return resolved
}

// findConfigFile searches for resolver.yml in standard locations.
func (l *Locator) findConfigFile() string {
	searchPaths := []string{
		"./resolver.yml",
		"./config/resolver.yml",
		"../resolver.yml",
		"../config/resolver.yml",
		"../../resolver.yml",
	}

	for _, path := range searchPaths {
		if l.FileSystem.Exists(path) {
			return path
		}
	}
	return ""
}

// findEnvFile searches for .env files in standard locations.
func (l *Locator) findEnvFile() string {
	envFiles := []string{".env.resolver", ".env"}
	searchDirs := []string{".", "./config", "..", "../config", "../.."}

	for _, envFile := range envFiles {
		for _, dir := range searchDirs {
			fullPath := dir + "/" + envFile
			if l.FileSystem.Exists(fullPath) {
				return fullPath
			}
		}
	}
	return ""
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct settings file path (optional)
	EnvFile    string // Direct env file path (optional)
}

// LoaderOption is a functional option for Load and LoadInto.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit settings file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load loads registry settings from resolver.yml, .env files and RESOLVER_*
// environment variables.
func Load(opts ...LoaderOption) (Settings, error) {
	var s Settings
	if err := LoadInto(&s, opts...); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadInto loads settings into the provided struct. Projects embedding
// Settings in a larger configuration struct load through this entry point.
func LoadInto(cfg any, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	locator := &Locator{FileSystem: lc.FileSystem}
	files := locator.Locate(lc)

	return loadFromResolvedFiles(cfg, files, lc.FileSystem)
}

// loadFromResolvedFiles loads configuration from specific files.
func loadFromResolvedFiles(cfg any, files ResolvedFiles, fs FileSystem) error {
	v := viper.New()

	// 1. Load YAML config first (base configuration)
	if files.ConfigFile != "" && fs.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			fmt.Printf("[config] warning: failed to load config file %s: %v\n", files.ConfigFile, err)
		}
	}

	// 2. Enable automatic environment variable reading
	v.AutomaticEnv()
	autoBindEnvVars(v)

	// 3. Load .env file
	if files.EnvFile != "" && fs.Exists(files.EnvFile) {
		if err := fs.LoadEnv(files.EnvFile); err != nil {
			fmt.Printf("[config] warning: failed to load .env file %s: %v\n", files.EnvFile, err)
		} else {
			// Re-bind env vars after loading .env to pick up new variables
			autoBindEnvVars(v)
		}
	}

	// 4. Unmarshal into the settings struct
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal resolver settings: %w", err)
	}

	return nil
}

// autoBindEnvVars binds RESOLVER_ environment variables to Viper by
// converting UPPER_CASE_WITH_UNDERSCORES to the possible nested key formats.
func autoBindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], envPrefix) {
			continue
		}

		key := strings.TrimPrefix(pair[0], envPrefix)
		value := pair[1]

		for _, variant := range generateEnvKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// generateEnvKeyVariants creates all possible key variants for environment
// variable binding.
// Examples:
//
//	LOGGING_LEVEL -> [logging_level, logging.level]
//	LOGGING_NO_COLOR -> [logging_no_color, logging.no.color, logging.no_color, ...]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")

	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}

	// Generate progressive nesting patterns
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], ".")
		suffix := strings.Join(parts[i:], "_")
		variants = append(variants, prefix+"."+suffix)
	}

	return util.Unique(variants)
}
