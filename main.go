package main

import "github.com/papapumpkin/graphstat/cmd"

func main() {
	cmd.Execute()
}
