package batchutil

import (
	"strconv"
	"strings"

	"github.com/salome-platform/batchutil/pkg/batcherr"
)

// SlurmTimeToSeconds parses a Slurm wall-time string into a number of
// seconds, returned as a decimal string so it can be passed straight
// through as a command-line argument that takes seconds (the daemonizer's
// --wall_time flag).
//
// Accepted forms, matching squeue/sbatch's --time grammar:
//
//	"minutes"
//	"minutes:seconds"
//	"hours:minutes:seconds"
//	"days-hours"
//	"days-hours:minutes"
//	"days-hours:minutes:seconds"
//
// A blank or all-whitespace input returns an empty string without error,
// matching a caller that treats an unset wall time as "no limit".
func SlurmTimeToSeconds(val string) (string, error) {
	val = strings.TrimSpace(val)
	if val == "" {
		return "", nil
	}

	var days int64
	var hasDays bool
	timePart := val

	if strings.Contains(val, "-") {
		dashParts := strings.SplitN(val, "-", 2)
		if strings.Contains(dashParts[1], "-") {
			return "", &batcherr.InvalidTimeError{Input: val, Cause: batcherr.ErrInvalidTime}
		}
		d, err := strconv.ParseInt(dashParts[0], 10, 64)
		if err != nil {
			return "", &batcherr.InvalidTimeError{Input: val, Cause: err}
		}
		days = d
		hasDays = true
		timePart = dashParts[1]
	}

	fields := strings.Split(timePart, ":")
	var hours, minutes, seconds int64
	var err error

	switch {
	case hasDays:
		switch len(fields) {
		case 1:
			hours, err = strconv.ParseInt(fields[0], 10, 64)
		case 2:
			hours, err = strconv.ParseInt(fields[0], 10, 64)
			if err == nil {
				minutes, err = strconv.ParseInt(fields[1], 10, 64)
			}
		case 3:
			hours, err = strconv.ParseInt(fields[0], 10, 64)
			if err == nil {
				minutes, err = strconv.ParseInt(fields[1], 10, 64)
			}
			if err == nil {
				seconds, err = strconv.ParseInt(fields[2], 10, 64)
			}
		default:
			return "", &batcherr.InvalidTimeError{Input: val, Cause: batcherr.ErrInvalidTime}
		}
	default:
		switch len(fields) {
		case 1:
			minutes, err = strconv.ParseInt(fields[0], 10, 64)
		case 2:
			minutes, err = strconv.ParseInt(fields[0], 10, 64)
			if err == nil {
				seconds, err = strconv.ParseInt(fields[1], 10, 64)
			}
		case 3:
			hours, err = strconv.ParseInt(fields[0], 10, 64)
			if err == nil {
				minutes, err = strconv.ParseInt(fields[1], 10, 64)
			}
			if err == nil {
				seconds, err = strconv.ParseInt(fields[2], 10, 64)
			}
		default:
			return "", &batcherr.InvalidTimeError{Input: val, Cause: batcherr.ErrInvalidTime}
		}
	}

	if err != nil {
		return "", &batcherr.InvalidTimeError{Input: val, Cause: err}
	}

	total := days*86400 + hours*3600 + minutes*60 + seconds
	return strconv.FormatInt(total, 10), nil
}
