package main

import "os"

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("imputer failed")
		os.Exit(1)
	}
}
