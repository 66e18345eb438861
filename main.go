package main

import cmd "github.com/inference-gateway/toolgate/cmd"

func main() {
	cmd.Execute()
}
