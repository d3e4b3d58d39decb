package main

import "charitybridge/internal/app"

func main() {
	app.Run()
}
