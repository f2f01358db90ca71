// Command filedemo appends lines to one file from a pool of goroutines under
// each write strategy in turn, leaving the file behind for inspection.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeebo/contention"
	"github.com/zeromicro/go-zero/core/logx"
)

func main() {
	var (
		strategy = flag.String("strategy", "", "run only this strategy: MUTEX, LOCK, QUEUE or CHANNEL (default all)")
		asJSON   = flag.Bool("json", false, "print a JSON report after the run")
	)
	flag.Parse()

	logx.SetWriter(logx.NewWriter(os.Stderr))
	logx.DisableStat()

	var strategies []contention.WriteStrategy
	if *strategy != "" {
		s, err := contention.ParseWriteStrategy(*strategy)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		strategies = append(strategies, s)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := contention.RunFileSuite(ctx, contention.DefaultFileConfig(), contention.StdConsole(), strategies...)

	if *asJSON {
		rep := contention.Report{Files: results}
		rep.AddError(err)
		buf, jerr := rep.JSON()
		if jerr != nil {
			fmt.Fprintln(os.Stderr, "encoding report:", jerr)
			os.Exit(1)
		}
		fmt.Println(string(buf))
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error during execution:", err)
		os.Exit(1)
	}
}
