package main

import "payanam/cmd/client/cmd"

func main() {
	cmd.Execute()
}
