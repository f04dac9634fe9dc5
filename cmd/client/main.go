package main

import "formular230/cmd/client/cmd"

func main() {
	cmd.Execute()
}
