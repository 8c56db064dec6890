package main

import (
	api "Knockout"
)

func main() {
	api.Run()
}
