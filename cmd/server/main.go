package main

import (
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "mockmate",
	Short: "Mock interview backend: question generation, feedback scoring and interview queries",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)

		formatter := new(log.TextFormatter)
		formatter.TimestampFormat = "2006-01-02T15:04:05.999Z07:00"
		formatter.FullTimestamp = true
		log.SetFormatter(formatter)

		if err := godotenv.Load(); err != nil {
			log.Debug("Could not load .env file")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log level (trace,debug,info,warn,error)")
	serveCmd := newServeCmd()
	rootCmd.RunE = serveCmd.RunE
	rootCmd.AddCommand(serveCmd, newMigrateCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Fatal("could not execute root command")
	}
}
