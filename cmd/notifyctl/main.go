package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "notifyctl",
	Short:        "Flight notification CLI",
	Long:         `A CLI for rendering flight notices, sending bulk notifications and importing flight routes.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.notifyctl.yaml)")
	rootCmd.PersistentFlags().String("server", "http://localhost:8080", "notification service base URL")
	rootCmd.PersistentFlags().String("token", "", "Firebase ID token sent as a bearer credential")
	_ = viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))

	viper.SetDefault("base_timezone", "Asia/Jerusalem")
	viper.SetDefault("carrier_code", "LY")
	viper.SetDefault("replace_all", false)

	rootCmd.AddCommand(renderCmd, sendBulkCmd, routesCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".notifyctl")
	}

	viper.SetEnvPrefix("notifyctl")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func newClient() *client {
	return &client{
		baseURL: viper.GetString("server_url"),
		token:   viper.GetString("token"),
	}
}

func main() {
	Execute()
}
