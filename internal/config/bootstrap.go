package config

import (
	"os"

	"go.uber.org/zap"

	"github.com/boddenberg/dotenv-go/dotenv"
)

// Bootstrap loads path into the process environment when the file exists.
// It reports whether a load was attempted; a missing file is not an error.
func Bootstrap(path string, logger *zap.Logger, rec dotenv.Recorder) (*dotenv.Loader, bool) {
	loader := dotenv.NewWithStores(dotenv.Process(), dotenv.Server, dotenv.NewZapSink(logger), rec)

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return loader, false
	}

	loader.Load(path)
	return loader, true
}
