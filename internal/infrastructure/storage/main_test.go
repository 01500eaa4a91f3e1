package storage

import (
	"os"
	"testing"

	"github.com/OliveiraNt/ltu-generator/internal/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	utils.SetLogLevel("error")
	os.Exit(m.Run())
}
