package main

import "github.com/kaorahi/DIY-on-kata/cmd"

func main() {
	cmd.Execute()
}
