package main

import "storefront-client/cmd"

func main() {
	cmd.Execute()
}
