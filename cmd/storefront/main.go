package main

import "fiesta-storefront/cmd/storefront/cmd"

func main() {
	cmd.Execute()
}
