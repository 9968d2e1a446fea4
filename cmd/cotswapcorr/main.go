// Command cotswapcorr builds coterminal swap-rate pseudo-roots from a
// forward-rate correlation described in a YAML model file.
//
//	cotswapcorr build --config model.yaml --format json
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Stack().Err(err).Msg("cotswapcorr failed")
		os.Exit(1)
	}
}
