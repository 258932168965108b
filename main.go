package main

import "github.com/Itecs-company/Obed-micro/cmd"

func main() {
	cmd.Execute()
}
