package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	defaultConfigFileName  = "config.yml"
	defaultGenesisFileName = "genesis.json"
)

var (
	cfgPath     string
	genesisPath string
	replayFlag  bool
	rootCmd     = &cobra.Command{
		Use:   "staking-ledger",
		Short: "Share accounting ledger for delegated multi-collateral staking",
	}
)

func Setup() error {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	defaultConfigPath := getDefaultConfigFile(homePath, defaultConfigFileName)
	defaultGenesisPath := getDefaultConfigFile(homePath, defaultGenesisFileName)

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))
	rootCmd.PersistentFlags().StringVar(&genesisPath, "genesis", defaultGenesisPath, fmt.Sprintf("genesis file, json or yaml (default %s)", defaultGenesisPath))
	rootCmd.PersistentFlags().BoolVar(&replayFlag, "replay-unprocessable-messages", false, "replay the unprocessable messages and exit")
	if err := rootCmd.Execute(); err != nil {
		return err
	}

	return nil
}

func getDefaultConfigFile(homePath, filename string) string {
	return filepath.Join(homePath, filename)
}

func GetConfigPath() string {
	return cfgPath
}

func GetGenesisPath() string {
	return genesisPath
}

func GetReplayFlag() bool {
	return replayFlag
}
