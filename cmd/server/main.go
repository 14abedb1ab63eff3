// @title        TutorFlow API
// @version      1.0
// @description  Streaming tutor replies and topic summaries for course learners.
// @BasePath     /api
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
