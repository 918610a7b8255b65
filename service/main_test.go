// service/main_test.go
package service

import (
	"os"
	"testing"

	"github.com/ryuga001/MiniOrangeAssessment1/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}
