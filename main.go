package main

import "wallet-state/cmd"

func main() {
	cmd.Execute()
}
