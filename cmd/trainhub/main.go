package main

import "github.com/trainhub/trainhub/cmd/trainhub/cmd"

func main() {
	cmd.Execute()
}
