package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/scopekit/region"
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Execute a scope script against a fresh runtime",
	Long: `Run executes a scope script - a line-oriented replay of the calls a
compiled program makes into the runtime - and prints the allocation and
collection trace plus the final statistics. Pass "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := os.Stdin
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		rt := region.New(&region.Config{
			Trace: func(ev region.Event) {
				if quiet {
					return
				}
				switch ev.Kind {
				case region.EventEnter, region.EventExit:
					printInfo("%-7s depth=%d\n", ev.Kind, ev.Depth)
				case region.EventMalloc:
					printInfo("%-7s ref=%#x depth=%d size=%d\n", ev.Kind, uint64(ev.Ref), ev.Depth, ev.Size)
				default:
					printInfo("%-7s ref=%#x depth=%d\n", ev.Kind, uint64(ev.Ref), ev.Depth)
				}
			},
		})

		if err := runScript(rt, in, os.Stdout); err != nil {
			return err
		}

		s := rt.Stats()
		if jsonOut {
			return printJSON(s)
		}
		fmt.Printf("allocs=%d bytes=%d collections=%d reclaimed=%d floating=%d escaped=%d tracked=%d\n",
			s.Allocs, s.BytesAllocated, s.Collections, s.Reclaimed, s.Floating, s.Escaped, s.TrackerLen)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
