// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"os"

	"git.lukeshu.com/go/lowmemjson"
	"github.com/datawire/dlib/dlog"
	"github.com/datawire/ocibuild/pkg/cliutil"
	"github.com/spf13/cobra"

	"github.com/seojungmin/machine/lib/config"
	"github.com/seojungmin/machine/lib/latency"
	"github.com/seojungmin/machine/lib/machine"
	"github.com/seojungmin/machine/lib/policy"
	"github.com/seojungmin/machine/lib/textui"
	"github.com/seojungmin/machine/lib/trace"
	"github.com/seojungmin/machine/lib/workload"
)

func newRunCommand() *cobra.Command {
	var (
		hierarchyFlag  string
		cachingFlag    string
		sizeRowFlag    uint
		latencyRowFlag uint
		migFreqFlag    uint
		opCountFlag    uint
		machineSize    uint
		fileFlag       string
		outFlag        string
		seedFlag       uint64
		dumpConfig     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay a trace file against a simulated storage machine",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
	}
	cmd.Flags().StringVar(&hierarchyFlag, "hierarchy", "dram+nvm+ssd", "device hierarchy: nvm|dram+nvm|dram+ssd|dram+nvm+ssd|dram+nvm+ssd+hdd|cache+dram+nvm+ssd")
	cmd.Flags().StringVar(&cachingFlag, "caching", "lru", "replacement policy: fifo|lru|lfu|arc")
	cmd.Flags().UintVar(&sizeRowFlag, "size-row", 1, "device-capacity table row (1-5)")
	cmd.Flags().UintVar(&latencyRowFlag, "latency-row", 1, "nvm latency-multiplier table row (1-5)")
	cmd.Flags().UintVar(&migFreqFlag, "migration-frequency", 4, "denominator of the upward-promotion probability")
	cmd.Flags().UintVar(&opCountFlag, "operation-count", 0, "stop after this many trace operations (0 = entire trace)")
	cmd.Flags().UintVar(&machineSize, "machine-size", 1, "working-set multiplier for the backing device's capacity")
	cmd.Flags().StringVar(&fileFlag, "file", "", "path to the trace file (empty means a no-op run)")
	cmd.Flags().StringVar(&outFlag, "out", "", "write the throughput summary here instead of stdout")
	cmd.Flags().Uint64Var(&seedFlag, "seed", 1, "seed for the migration_frequency promotion coin flip")
	cmd.Flags().BoolVar(&dumpConfig, "dump-config", false, "print the resolved configuration as JSON to stderr before running")

	cmd.RunE = withRuntime(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		cfg := &config.Config{
			Hierarchy:          parseHierarchy(hierarchyFlag),
			Caching:            parseCaching(cachingFlag),
			SizeRow:            latency.SizeType(sizeRowFlag),
			LatencyRow:         latency.LatencyType(latencyRowFlag),
			MigrationFrequency: migFreqFlag,
			OperationCount:     opCountFlag,
			FileName:           fileFlag,
			MachineSize:        machineSize,
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if dumpConfig {
			if err := lowmemjson.NewEncoder(os.Stderr).Encode(cfg); err != nil {
				return err
			}
		}

		rng := workload.NewUniform(seedFlag)
		mach, err := machine.New(cfg, rng)
		if err != nil {
			return err
		}

		if cfg.FileName == "" {
			dlog.Info(ctx, "no trace file given, nothing to do")
			return writeSummary(outFlag, 0, 0)
		}

		f, err := os.Open(cfg.FileName)
		if err != nil {
			return err
		}
		defer f.Close()

		blocks, accesses, err := loadTrace(f)
		if err != nil {
			return err
		}
		mach.Bootstrap(blocks)

		hot := textui.NewHotBlocks(16)
		for i, a := range accesses {
			if cfg.OperationCount != 0 && uint(i) >= cfg.OperationCount {
				break
			}
			hot.Touch(a.block)
			locBefore := mach.Locate(a.block)
			switch a.op {
			case trace.Read:
				mach.Read(a.block)
			case trace.Write:
				mach.Write(a.block)
			case trace.Flush:
				mach.Flush(a.block)
			}
			dlog.Tracef(ctx, "op=%c block=%d before=%s after=%s", byte(a.op), a.block, locBefore, mach.Locate(a.block))
		}
		dlog.Infof(ctx, "recently hot blocks: %s", hot.String())

		return writeSummary(outFlag, mach.OperationCount, mach.TotalDurationUS)
	})
	return cmd
}

type tracedAccess struct {
	op    trace.Op
	block int64
}

func loadTrace(f *os.File) (blocks []int64, accesses []tracedAccess, err error) {
	r := trace.NewReader(f)
	seen := make(map[int64]struct{})
	for {
		op, fork, block, ok, err := r.Next()
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			break
		}
		g := trace.GlobalBlock(fork, block)
		if _, dup := seen[g]; !dup {
			seen[g] = struct{}{}
			blocks = append(blocks, g)
		}
		accesses = append(accesses, tracedAccess{op: op, block: g})
	}
	return blocks, accesses, nil
}

func writeSummary(outFlag string, opCount uint64, totalDurationUS float64) error {
	if outFlag == "" {
		_, err := textui.Summary(os.Stdout, opCount, totalDurationUS)
		return err
	}
	f, err := os.Create(outFlag)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = textui.Summary(f, opCount, totalDurationUS)
	return err
}

func parseHierarchy(s string) config.HierarchyKind {
	switch s {
	case "nvm":
		return config.HierarchyNvm
	case "dram+nvm":
		return config.HierarchyDramNvm
	case "dram+ssd":
		return config.HierarchyDramSsd
	case "dram+nvm+ssd":
		return config.HierarchyDramNvmSsd
	case "dram+nvm+ssd+hdd":
		return config.HierarchyDramNvmSsdHdd
	case "cache+dram+nvm+ssd":
		return config.HierarchyCacheDramNvmSsd
	default:
		return config.HierarchyKind(-1)
	}
}

func parseCaching(s string) config.CachingKind {
	switch s {
	case "fifo":
		return policy.FIFO
	case "lru":
		return policy.LRU
	case "lfu":
		return policy.LFU
	case "arc":
		return policy.ARC
	default:
		return policy.Kind(-1)
	}
}

