package trainerflags

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"

	pcfg "github.com/weircrack/pcfg"
)

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}

func init() {
	defaultsPath := filepath.Join(getUserHomeDir(), fmt.Sprintf(".config/pcfg/trainer_%v.yaml", version))
	// create default trainer defaults file if it does not exist
	if fileutil.FileExists(defaultsPath) {
		// if it exists use that data as default
		if bin, err := os.ReadFile(defaultsPath); err == nil {
			var cfg pcfg.TrainConfig
			if errx := yaml.Unmarshal(bin, &cfg); errx == nil {
				pcfg.DefaultTrainConfig = cfg
				return
			} else {
				gologger.Error().Msgf("pcfg trainer yaml configuration syntax error.\n %v\n.", yaml.FormatError(errx, true, true))
				os.Exit(1)
			}
		}
	}
	if err := validateDir(filepath.Join(getUserHomeDir(), ".config/pcfg")); err != nil {
		gologger.Error().Msgf("pcfg config dir not found and failed to create got: %v", err)
	}
	if err := pcfg.GenerateTrainSample(defaultsPath); err != nil {
		gologger.Error().Msgf("failed to save default config to %v got: %v", defaultsPath, err)
	}
}

// validateDir checks if dir exists if not creates it
func validateDir(dirPath string) error {
	if fileutil.FolderExists(dirPath) {
		return nil
	}
	return fileutil.CreateFolder(dirPath)
}
