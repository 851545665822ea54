package main

import "background-band/cmd"

func main() {
	cmd.Execute()
}
