package main

import "github.com/aardwolf-security/krakenbuster/cmd"

func main() {
	cmd.Execute()
}
