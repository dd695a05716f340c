package main

import (
	"github.com/fadilmartias/mockmate/internal/repository"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the interviews and feedback tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connectDB()
			if err != nil {
				return err
			}
			if err := repository.AutoMigrate(db); err != nil {
				return err
			}
			log.Info("Migration complete")
			return nil
		},
	}
}
