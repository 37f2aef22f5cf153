// 程序入口：render 单次渲染，watch 定时刷新，serve 托管已渲染产物
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath   string
	outDir       string
	topologyURL  string
	educationURL string
	logLevel     string
)

// rootCmd：所有子命令共享配置相关的持久参数
var rootCmd = &cobra.Command{
	Use:           "choropleth",
	Short:         "Render the U.S. educational attainment choropleth",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (or set CHOROPLETH_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "Output directory (or set OUT_DIR)")
	rootCmd.PersistentFlags().StringVar(&topologyURL, "topology-url", "", "County topology endpoint (or set TOPOLOGY_URL)")
	rootCmd.PersistentFlags().StringVar(&educationURL, "education-url", "", "Education dataset endpoint (or set EDUCATION_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error (or set LOG_LEVEL)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
