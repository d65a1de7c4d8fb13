package main

import "github.com/Ri-Verma/portfolio/cmd"

func main() {
	cmd.Execute()
}
