package main

import "github.com/KaramelBytes/csvstar/cmd"

func main() {
	cmd.Execute()
}
