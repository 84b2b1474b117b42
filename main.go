package main

import "github.com/meetu-app/meetu-server/cmd"

func main() {
	cmd.Execute()
}
