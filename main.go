package main

import "connector-inventory/cmd"

func main() {
	cmd.Execute()
}
