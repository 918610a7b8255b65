// cmd/usersvc/main.go
package main

import (
	"github.com/ryuga001/MiniOrangeAssessment1/app"
)

func main() {
	app.RunUser()
}
