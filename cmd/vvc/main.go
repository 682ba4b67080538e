package main

import (
	"os"

	"github.com/aquadee4433/VIdeoVoiceCapturer/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
