package main

import "photo-sync/cmd"

func main() {
	cmd.Execute()
}
