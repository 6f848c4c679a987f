package main

import "github.com/dcapal/dcapal-web/cmd/dcapal-cli/cmd"

func main() {
	cmd.Execute()
}
