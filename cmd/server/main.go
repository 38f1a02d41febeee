package main

import "github.com/pickuphub/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
