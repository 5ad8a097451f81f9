package pcfg

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default CLI values shared by the guesser and trainer flag layers
// (internal/runner/guesserflags, internal/runner/trainerflags).
const (
	DefaultGuessMinLen    = 1
	DefaultGuessMaxLen    = 32
	DefaultGuessNumber    = 1_000_000
	DefaultStartFrom      = 8
	DefaultTrainLengthMin = 1
	DefaultTrainLengthMax = 255
)

var (
	// DefaultConfigFilePath is the guesser's user-facing CLI config file.
	DefaultConfigFilePath = filepath.Join(getUserHomeDir(), ".config/pcfg/config.yaml")

	// DefaultConfig holds the guesser defaults in effect for this process.
	// internal/runner/guesserflags replaces it at init time with the values
	// persisted under $HOME/.config/pcfg, if any.
	DefaultConfig = Config{
		GuessMinLen: DefaultGuessMinLen,
		GuessMaxLen: DefaultGuessMaxLen,
		GuessNumber: DefaultGuessNumber,
	}

	// DefaultTrainConfig is the trainer-side counterpart of DefaultConfig,
	// replaced at init time by internal/runner/trainerflags.
	DefaultTrainConfig = TrainConfig{
		TrainLengthMin: DefaultTrainLengthMin,
		TrainLengthMax: DefaultTrainLengthMax,
		StartFrom:      DefaultStartFrom,
	}
)

// Config holds the user-facing default CLI values for the guesser,
// persisted as yaml under $HOME/.config/pcfg.
type Config struct {
	GuessMinLen int `yaml:"guess_min_len"`
	GuessMaxLen int `yaml:"guess_max_len"`
	GuessNumber int `yaml:"guess_number"`
}

// TrainConfig holds the user-facing default CLI values for the trainer.
type TrainConfig struct {
	TrainLengthMin int `yaml:"train_length_min"`
	TrainLengthMax int `yaml:"train_length_max"`
	StartFrom      int `yaml:"start_from"`
}

// NewConfig reads a guesser Config from filePath.
func NewConfig(filePath string) (*Config, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(bin, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewTrainConfig reads a trainer TrainConfig from filePath.
func NewTrainConfig(filePath string) (*TrainConfig, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var cfg TrainConfig
	if err := yaml.Unmarshal(bin, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GenerateSample writes a sample guesser config with the package defaults.
func GenerateSample(filePath string) error {
	bin, err := yaml.Marshal(DefaultConfig)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, bin, 0600)
}

// GenerateTrainSample writes a sample trainer config with the package
// defaults.
func GenerateTrainSample(filePath string) error {
	bin, err := yaml.Marshal(DefaultTrainConfig)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, bin, 0600)
}

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}
