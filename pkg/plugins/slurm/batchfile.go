package slurm

import (
	"fmt"
	"strings"

	"github.com/salome-platform/batchutil/pkg/job"
)

// batchFile renders the #SBATCH header and command trailer exactly as
// original_source's plugins/slurm/job.py batch_file(): output/error
// redirection first, then conditional directives in the same field
// order, then each ExtraAsList entry as its own #SBATCH line, then the
// raw ExtraAsString, a blank line, the joined command, and the
// exit-code-capturing trailer.
func batchFile(params job.LaunchParameters) string {
	var b strings.Builder
	b.WriteString("#!/bin/bash -l\n")
	b.WriteString("#SBATCH --output=logs/output.log\n")
	b.WriteString("#SBATCH --error=logs/error.log\n")

	if params.Name != "" {
		fmt.Fprintf(&b, "#SBATCH --job-name=%s\n", params.Name)
	}
	if params.Ntasks > 0 {
		fmt.Fprintf(&b, "#SBATCH --ntasks=%d\n", params.Ntasks)
	}
	if params.Nodes > 0 {
		fmt.Fprintf(&b, "#SBATCH --nodes=%d\n", params.Nodes)
	}
	if params.Exclusive {
		b.WriteString("#SBATCH --exclusive\n")
	}
	if params.WallTime != "" {
		fmt.Fprintf(&b, "#SBATCH --time=%s\n", params.WallTime)
	}
	if params.MemPerNode != "" {
		fmt.Fprintf(&b, "#SBATCH --mem=%s\n", params.MemPerNode)
	}
	if params.MemPerCPU != "" {
		fmt.Fprintf(&b, "#SBATCH --mem-per-cpu=%s\n", params.MemPerCPU)
	}
	if params.Queue != "" {
		fmt.Fprintf(&b, "#SBATCH --qos=%s\n", params.Queue)
	}
	if params.Partition != "" {
		fmt.Fprintf(&b, "#SBATCH --partition=%s\n", params.Partition)
	}
	if params.Wckey != "" {
		fmt.Fprintf(&b, "#SBATCH --wckey=%s\n", params.Wckey)
	}
	for _, extra := range params.ExtraAsList {
		fmt.Fprintf(&b, "#SBATCH %s\n", extra)
	}
	if params.ExtraAsString != "" {
		b.WriteString(params.ExtraAsString)
	}

	b.WriteString("\n")
	b.WriteString(strings.Join(params.Command, " "))
	b.WriteString("\n")
	b.WriteString("EXIT_CODE=$?\necho $EXIT_CODE > logs/exit_code.log\nexit $EXIT_CODE\n")
	return b.String()
}
