package main

import "github.com/computeruseprotocol/go-sdk/cmd"

func main() {
	cmd.Execute()
}
