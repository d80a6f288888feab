package main

import "github.com/ValentinKolb/xgroup/cmd"

func main() {
	cmd.Execute()
}
