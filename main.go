package main

import "github.com/MohamedAbuthar/gas/cmd"

func main() {
	cmd.Execute()
}
