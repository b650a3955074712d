package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the current portable state of a submitted job",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handlePath, _ := cmd.Flags().GetString("handle")
		j, err := loadHandle(handlePath)
		if err != nil {
			return err
		}
		state, err := j.State(context.Background())
		if err != nil {
			return fmt.Errorf("state: %w", err)
		}
		fmt.Println(state)
		return nil
	},
}

func init() {
	stateCmd.Flags().String("handle", defaultHandlePath, "path to the serialized job handle")
}
