package main

import "github.com/vanshika/flowpath/cmd/flowpath/cmd"

func main() {
	cmd.Execute()
}
