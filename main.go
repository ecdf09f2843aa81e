package main

import "github.com/xiaomi388/manuscripts/cmd"

func main() {
	cmd.Execute()
}
