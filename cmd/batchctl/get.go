package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get DEST REMOTE_PATH...",
	Short: "Copy one or more files out of a job's working directory",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		handlePath, _ := cmd.Flags().GetString("handle")
		j, err := loadHandle(handlePath)
		if err != nil {
			return err
		}
		dest, remotePaths := args[0], args[1:]
		if err := j.Get(context.Background(), remotePaths, dest); err != nil {
			return fmt.Errorf("get: %w", err)
		}
		return nil
	},
}

func init() {
	getCmd.Flags().String("handle", defaultHandlePath, "path to the serialized job handle")
}
