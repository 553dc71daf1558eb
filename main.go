package main

import "github.com/jsphweid/notestore/cmd"

func main() {
	cmd.Execute()
}
