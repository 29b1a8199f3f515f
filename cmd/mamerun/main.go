// Command mamerun plays an arcade romset in a window.
//
// Usage:
//
//	mamerun [romset]
//
// Without an argument a file dialog asks for the romset. Settings come
// from MAME_*, MAMERUN_* and LOG_* environment variables.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/bji/libretromame/config"
	"github.com/bji/libretromame/enginetest"
	"github.com/bji/libretromame/logging"
	"github.com/bji/libretromame/standalone"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [romset]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.LoadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	closer, err := logging.Init(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(2)
	}
	defer closer.Close()

	// The demo engine stands in until a real engine is linked.
	engine := enginetest.New(enginetest.DemoGames()...)

	if err := standalone.Run(engine, flag.Arg(0), cfg); err != nil {
		log.Error().Err(err).Msg("mamerun failed")
		closer.Close()
		os.Exit(1)
	}
}
