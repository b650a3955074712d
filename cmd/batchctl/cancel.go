package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Send a cancellation request to a submitted job",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handlePath, _ := cmd.Flags().GetString("handle")
		j, err := loadHandle(handlePath)
		if err != nil {
			return err
		}
		if err := j.Cancel(context.Background()); err != nil {
			return fmt.Errorf("cancel: %w", err)
		}
		return nil
	},
}

func init() {
	cancelCmd.Flags().String("handle", defaultHandlePath, "path to the serialized job handle")
}
