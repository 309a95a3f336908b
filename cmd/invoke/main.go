package main

import "serverless-adapter/cmd/invoke/cmd"

var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
