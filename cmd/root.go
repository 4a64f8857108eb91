package cmd

import (
	"learning_path_backend/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "learning-path",
	Short: "Smart Learning Path Generator API",
	Long:  "AI-generated learning paths, module progress tracking and auto-graded quizzes over HTTP.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env 可选，已存在的环境变量优先
		_ = godotenv.Load()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "configs", "Directory containing config.yaml")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dir, _ := cmd.Flags().GetString("config")
	return config.LoadConfig(dir)
}
