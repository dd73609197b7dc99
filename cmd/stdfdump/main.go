// Command stdfdump inspects STDF files from the command line.
//
// Subcommands:
//
//	info   print the master information and per-kind record counts
//	table  project the file into rows and write them as CSV
//	bins   print the software and hardware bin definitions
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arloliu/stdf"
	"github.com/arloliu/stdf/record"
	"github.com/arloliu/stdf/table"
)

var log = logrus.New()

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:   "stdfdump",
		Short: "Inspect STDF test data files",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			log.SetLevel(logrus.WarnLevel)
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newInfoCmd(), newTableCmd(), newBinsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// load decodes one file and logs its warnings.
func load(path string) (*stdf.File, error) {
	file, err := stdf.DecodeFile(path)
	if err != nil {
		return nil, err
	}

	for _, w := range file.Warnings() {
		log.WithField("file", path).Warn(w.String())
	}
	log.WithFields(logrus.Fields{
		"file":        path,
		"records":     file.Store().Len(),
		"unknown":     file.UnknownCount(),
		"fingerprint": fmt.Sprintf("%016x", file.Fingerprint()),
	}).Debug("decoded")

	return file, nil
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print master information and record counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if mir, _ := file.Store().Master(); mir != nil {
				fmt.Fprintf(out, "lot:      %s\n", mir.LotID)
				fmt.Fprintf(out, "part:     %s\n", mir.PartType)
				fmt.Fprintf(out, "tester:   %s (%s)\n", mir.NodeName, mir.TesterType)
				fmt.Fprintf(out, "job:      %s rev %s\n", mir.JobName, mir.JobRevision)
			}
			for _, info := range file.Store().Wafers() {
				fmt.Fprintf(out, "wafer:    %s\n", info.Start.WaferID)
			}

			summary := file.Summary()
			kinds := make([]record.Kind, 0, len(summary))
			for kind := range summary {
				kinds = append(kinds, kind)
			}
			sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
			for _, kind := range kinds {
				fmt.Fprintf(out, "%-8s %d\n", kind, summary[kind])
			}

			return nil
		},
	}
}

func newTableCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "table <file>",
		Short: "Project the file into rows and write them as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := load(args[0])
			if err != nil {
				return err
			}

			dst := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				dst = f
			}

			w := csv.NewWriter(dst)
			if err := w.Write(table.Columns()); err != nil {
				return err
			}
			for _, row := range file.Table() {
				if err := w.Write(formatRow(row.Values())); err != nil {
					return err
				}
			}
			w.Flush()

			return w.Error()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write CSV to a file instead of stdout")

	return cmd
}

func newBinsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bins <file>",
		Short: "Print software and hardware bin definitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, sbr := range sortedBins(file.Store().SoftBins()) {
				fmt.Fprintf(out, "soft %5d %c %s\n", sbr.BinNum, printableBinFlag(sbr.PassFail), sbr.BinName)
			}
			for _, hbr := range sortedBins(file.Store().HardBins()) {
				fmt.Fprintf(out, "hard %5d %c %s\n", hbr.BinNum, printableBinFlag(hbr.PassFail), hbr.BinName)
			}

			return nil
		},
	}
}

// sortedBins orders bin records by bin number for stable output.
func sortedBins[T any](bins map[uint16]T) []T {
	nums := make([]uint16, 0, len(bins))
	for num := range bins {
		nums = append(nums, num)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })

	out := make([]T, 0, len(nums))
	for _, num := range nums {
		out = append(out, bins[num])
	}

	return out
}

func printableBinFlag(flag byte) byte {
	switch flag {
	case 'P', 'F':
		return flag
	default:
		return '?'
	}
}

// formatRow renders typed column values as CSV cells. NaN floats render
// as empty cells so spreadsheet tools treat them as missing data.
func formatRow(values []any) []string {
	cells := make([]string, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case string:
			cells[i] = x
		case float64:
			if x != x {
				cells[i] = ""
			} else {
				cells[i] = strconv.FormatFloat(x, 'g', -1, 64)
			}
		case bool:
			cells[i] = strconv.FormatBool(x)
		case int:
			cells[i] = strconv.Itoa(x)
		case int16:
			cells[i] = strconv.FormatInt(int64(x), 10)
		case uint8:
			cells[i] = strconv.FormatUint(uint64(x), 10)
		case uint32:
			cells[i] = strconv.FormatUint(uint64(x), 10)
		default:
			cells[i] = fmt.Sprint(x)
		}
	}

	return cells
}
