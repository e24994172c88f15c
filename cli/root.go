package cli

import (
	"github.com/spf13/cobra"

	"park-server/config"
	"park-server/di"
)

var (
	Version = "dev"

	settingsPath string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "park-server",
	Version: Version,
	Short:   "Attraction wait-time dashboard backend",
	Long: `park-server loads the historical and forecast attraction data and serves
KPI dashboards, trend charts and ride-unit recommendations per day, week,
month or year.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&settingsPath, "config", config.GetResourcePath(config.SETTINGS_RESOURCE), "path to the settings YAML file")
}

func buildContainer() (*di.Container, error) {
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}
	return di.NewContainer(settings), nil
}
