package ogtext

import (
	"io"
	"log"
	"os"
)

// Logger is the package-wide logger.
var Logger = log.New(os.Stderr, "[ogtext] ", log.LstdFlags)

// SetLogger replaces the logger. A nil logger discards output.
func SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	Logger = logger
}
