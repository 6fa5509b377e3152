package main

import "github.com/keepick/keepick/cmd"

func main() {
	cmd.Execute()
}
