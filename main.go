package main

import "github.com/MASTER-2222/linkedin/cmd"

func main() {
	cmd.Execute()
}
