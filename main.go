package main

import (
	"github.com/owl-eval/backend/cmd/app"
)

func main() {
	app.Run()
}
