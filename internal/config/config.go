// Package config loads mdsum settings from flags, environment and an
// optional config file.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mdsum/internal/digest"
	apperrors "mdsum/internal/errors"
	"mdsum/internal/hash"
	"mdsum/internal/logging"
)

// EnvPrefix is prepended to every environment variable, e.g. MDSUM_CHUNK_SIZE.
const EnvPrefix = "MDSUM"

// Keys shared by flags, environment variables and config files.
const (
	KeyAlgorithm = "algorithm"
	KeyChunkSize = "chunk-size"
	KeyJobs      = "jobs"
	KeyFormat    = "format"
	KeyLogLevel  = "log-level"
	KeyProgress  = "progress"
	KeyConfig    = "config"
)

// DefaultChunkSize is the number of bytes handed to each update call.
const DefaultChunkSize = 32 * 1024

// MaxChunkSize bounds the per-read buffer.
const MaxChunkSize = 64 << 20

// Config is the validated runtime configuration.
type Config struct {
	Algorithm digest.Algorithm
	ChunkSize int
	Jobs      int
	Format    hash.Format
	LogLevel  string
	Progress  bool
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAlgorithm, digest.SHA256.String())
	v.SetDefault(KeyChunkSize, DefaultChunkSize)
	v.SetDefault(KeyJobs, runtime.NumCPU())
	v.SetDefault(KeyFormat, string(hash.FormatHex))
	v.SetDefault(KeyLogLevel, logging.DefaultLevel)
	v.SetDefault(KeyProgress, false)
	return v
}

// RegisterFlags adds the persistent flags understood by Load.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(KeyAlgorithm, "a", digest.SHA256.String(), "hash algorithm: sha1 or sha256")
	fs.Int(KeyChunkSize, DefaultChunkSize, "bytes passed to each update call")
	fs.IntP(KeyJobs, "j", runtime.NumCPU(), "number of inputs hashed concurrently")
	fs.String(KeyFormat, string(hash.FormatHex), "output format: hex or multihash")
	fs.String(KeyLogLevel, logging.DefaultLevel, "log level written to stderr")
	fs.Bool(KeyProgress, false, "report throughput on stderr (sequential runs only)")
	fs.String(KeyConfig, "", "path to a config file (yaml, toml or json)")
}

// BindFlags makes flag values take precedence over environment and file.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{KeyAlgorithm, KeyChunkSize, KeyJobs, KeyFormat, KeyLogLevel, KeyProgress} {
		f := fs.Lookup(key)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
	}
	return nil
}

// ReadFile merges the config file at path, if any.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w: %w", path, err, apperrors.ErrConfig)
	}
	return nil
}

// Load validates the merged settings.
func Load(v *viper.Viper) (Config, error) {
	alg, err := digest.ParseAlgorithm(v.GetString(KeyAlgorithm))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w: %w", KeyAlgorithm, err, apperrors.ErrConfig)
	}

	format, err := hash.ParseFormat(v.GetString(KeyFormat))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w: %w", KeyFormat, err, apperrors.ErrConfig)
	}

	chunk := v.GetInt(KeyChunkSize)
	if chunk <= 0 || chunk > MaxChunkSize {
		return Config{}, fmt.Errorf("%s must be in 1..%d, got %d: %w", KeyChunkSize, MaxChunkSize, chunk, apperrors.ErrConfig)
	}

	jobs := v.GetInt(KeyJobs)
	if jobs <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %d: %w", KeyJobs, jobs, apperrors.ErrConfig)
	}

	level := v.GetString(KeyLogLevel)
	if _, err := logging.ParseLevel(level); err != nil {
		return Config{}, fmt.Errorf("%s: %w: %w", KeyLogLevel, err, apperrors.ErrConfig)
	}

	return Config{
		Algorithm: alg,
		ChunkSize: chunk,
		Jobs:      jobs,
		Format:    format,
		LogLevel:  level,
		Progress:  v.GetBool(KeyProgress),
	}, nil
}
