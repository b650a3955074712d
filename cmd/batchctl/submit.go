package main

import (
	"context"
	"fmt"

	"github.com/salome-platform/batchutil/pkg/registry"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit CONFIG",
	Short: "Submit a job described by a LaunchParameters YAML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		handlePath, _ := cmd.Flags().GetString("handle")

		cfg, err := loadConfig(args[0])
		if err != nil {
			return err
		}
		t, err := buildTransport(cfg)
		if err != nil {
			return err
		}
		j, err := registry.Create(cfg.Plugin, cfg.Params, t)
		if err != nil {
			return err
		}
		if err := j.Submit(context.Background()); err != nil {
			return fmt.Errorf("submit: %w", err)
		}
		if err := saveHandle(handlePath, j); err != nil {
			return err
		}
		fmt.Println(j.JobID())
		return nil
	},
}

func init() {
	submitCmd.Flags().String("handle", defaultHandlePath, "path to write the serialized job handle to")
}
