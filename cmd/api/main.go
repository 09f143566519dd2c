package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title           Mental Health Sentiment API
// @version         1.0
// @description     텍스트 감정 분석 및 사용자별 분석 기록 API
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and JWT token.

var configPath string

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "Mental state sentiment analysis service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_PATH"), "optional YAML config file")
	rootCmd.AddCommand(serveCmd, migrateCmd, modelCmd, historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
