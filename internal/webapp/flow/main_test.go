package flow

import (
	"io"
	"os"
	"testing"

	"github.com/salesai/dashboard-system/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Options{Level: "error", Output: io.Discard})
	os.Exit(m.Run())
}
