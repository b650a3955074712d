package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Block until a submitted job reaches a terminal state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		handlePath, _ := cmd.Flags().GetString("handle")
		j, err := loadHandle(handlePath)
		if err != nil {
			return err
		}
		if err := j.Wait(context.Background()); err != nil {
			return fmt.Errorf("wait: %w", err)
		}

		state, err := j.State(context.Background())
		if err != nil {
			return fmt.Errorf("state after wait: %w", err)
		}
		fmt.Println(state)

		code, err := j.ExitCode(context.Background())
		if err == nil && code != nil {
			fmt.Println(*code)
		}
		return nil
	},
}

func init() {
	waitCmd.Flags().String("handle", defaultHandlePath, "path to the serialized job handle")
}
