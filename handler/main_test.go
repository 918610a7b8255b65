// handler/main_test.go
package handler

import (
	"os"
	"testing"

	"github.com/ryuga001/MiniOrangeAssessment1/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}
