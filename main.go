package main

import "github.com/acme/customer-service/cmd"

func main() {
	cmd.Execute()
}
