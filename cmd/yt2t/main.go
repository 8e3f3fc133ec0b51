// @title yt2t API
// @version 1.0
// @description YouTube audio extraction and speech-to-text services.
// @BasePath /
package main

import (
	"yt2t/cmd/yt2t/cmd"
)

func main() {
	cmd.Execute()
}
